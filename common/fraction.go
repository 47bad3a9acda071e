package common

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/MixinNetwork/fraction/logger"
)

var (
	ErrInvalidArgument = errors.New("denominator cannot be zero")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrOverflow        = errors.New("int64 overflow")
)

var (
	ZeroFraction = NewWholeFraction(0)
	OneFraction  = NewWholeFraction(1)
)

// Fraction is an exact rational number with int64 numerator and denominator.
//
// A Fraction is always in lowest terms with a positive denominator, and it is
// never modified after construction, so values can be copied and shared
// freely. The zero value is not produced by any constructor but behaves as 0/1.
//
// Arithmetic wraps on int64 overflow like the builtin integer operators. Use
// the Checked variants to get ErrOverflow instead.
type Fraction struct {
	n int64
	d int64
}

// NewFraction returns numerator/denominator reduced to lowest terms, or
// ErrInvalidArgument when the denominator is zero. It returns ErrOverflow when
// the reduced value needs 1<<63 as a positive numerator or denominator, such as
// 1/math.MinInt64.
func NewFraction(numerator, denominator int64) (Fraction, error) {
	if denominator == 0 {
		return Fraction{}, fmt.Errorf("fraction %d/%d: %w", numerator, denominator, ErrInvalidArgument)
	}
	return normalize(numerator, denominator)
}

func NewFractionPanic(numerator, denominator int64) Fraction {
	f, err := NewFraction(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return f
}

// NewWholeFraction returns value/1.
func NewWholeFraction(value int64) Fraction {
	return Fraction{n: value, d: 1}
}

// normalize expects d != 0. A gcd of math.MinInt64 only comes from n == d ==
// math.MinInt64, and both quotients are then 1.
func normalize(n, d int64) (Fraction, error) {
	if n == 0 {
		return Fraction{n: 0, d: 1}, nil
	}
	g := gcd(n, d)
	n, d = n/g, d/g
	if d < 0 {
		if n == math.MinInt64 || d == math.MinInt64 {
			return Fraction{}, fmt.Errorf("fraction %d/%d: %w", n, d, ErrOverflow)
		}
		n, d = -n, -d
	}
	return Fraction{n: n, d: d}, nil
}

func normalizePanic(op string, f, y Fraction, n, d int64) Fraction {
	r, err := normalize(n, d)
	if err != nil {
		panic(fmt.Errorf("fraction %s %s %s: %w", op, f, y, err))
	}
	return r
}

func (f Fraction) Numerator() int64 {
	return f.n
}

func (f Fraction) Denominator() int64 {
	if f.d == 0 {
		return 1
	}
	return f.d
}

func (f Fraction) Sign() int {
	switch {
	case f.n < 0:
		return -1
	case f.n > 0:
		return 1
	}
	return 0
}

func (f Fraction) IsZero() bool {
	return f.n == 0
}

// Neg wraps for math.MinInt64, whose negation is itself.
func (f Fraction) Neg() Fraction {
	return normalizePanic("neg", f, f, -f.n, f.Denominator())
}

// Inv returns 1/f, or ErrDivisionByZero when f is zero. The inverse of an odd
// denominator over math.MinInt64 is not representable and gives ErrOverflow.
func (f Fraction) Inv() (Fraction, error) {
	if f.IsZero() {
		return Fraction{}, fmt.Errorf("inverse of %s: %w", f, ErrDivisionByZero)
	}
	return normalize(f.Denominator(), f.n)
}

// Add returns f+y over the least common multiple of both denominators.
// It panics with ErrOverflow if a wrapped multiple cannot be brought back to a
// positive denominator.
func (f Fraction) Add(y Fraction) Fraction {
	fd, yd := f.Denominator(), y.Denominator()
	den := lcm(fd, yd)
	num := f.n*(den/fd) + y.n*(den/yd)
	return normalizePanic("add", f, y, num, den)
}

func (f Fraction) Sub(y Fraction) Fraction {
	return f.Add(y.Neg())
}

// Mul cancels common factors across the operands before multiplying.
// It panics with ErrInvalidArgument if the product of the denominators wraps
// to zero, and with ErrOverflow if a wrapped product cannot be brought back
// to a positive denominator.
func (f Fraction) Mul(y Fraction) Fraction {
	n1, d1 := f.n, f.Denominator()
	n2, d2 := y.n, y.Denominator()
	if g := gcd(n1, d2); g > 1 {
		n1, d2 = n1/g, d2/g
	}
	if g := gcd(n2, d1); g > 1 {
		n2, d1 = n2/g, d1/g
	}
	den := d1 * d2
	if den == 0 {
		panic(fmt.Errorf("fraction mul %s %s: %w", f, y, ErrInvalidArgument))
	}
	return normalizePanic("mul", f, y, n1*n2, den)
}

// Div returns f/y, or ErrDivisionByZero when y is zero.
func (f Fraction) Div(y Fraction) (Fraction, error) {
	inv, err := y.Inv()
	if err != nil {
		return Fraction{}, fmt.Errorf("fraction div %s: %w", f, err)
	}
	return f.Mul(inv), nil
}

// Cmp returns -1, 0 or 1 from the sign of the numerator of f-y. The
// subtraction wraps for operands whose cross products exceed int64, and the
// ordering is then meaningless; CmpChecked reports that case.
func (f Fraction) Cmp(y Fraction) int {
	return f.Sub(y).Sign()
}

func (f Fraction) Equal(y Fraction) bool {
	return f.Cmp(y) == 0
}

func (f Fraction) GreaterThan(y Fraction) bool {
	return f.Cmp(y) > 0
}

func (f Fraction) LessThan(y Fraction) bool {
	return f.Cmp(y) < 0
}

func (f Fraction) String() string {
	if f.Denominator() == 1 {
		return strconv.FormatInt(f.n, 10)
	}
	return strconv.FormatInt(f.n, 10) + "/" + strconv.FormatInt(f.d, 10)
}

const fractionEncodingSize = 16

func (f Fraction) MarshalMsgpack() ([]byte, error) {
	b := make([]byte, fractionEncodingSize)
	binary.BigEndian.PutUint64(b[:8], uint64(f.n))
	binary.BigEndian.PutUint64(b[8:], uint64(f.Denominator()))
	return b, nil
}

func (f *Fraction) UnmarshalMsgpack(data []byte) error {
	if len(data) != fractionEncodingSize {
		logger.Verbosef("Fraction.UnmarshalMsgpack(%x) invalid size %d\n", data, len(data))
		return fmt.Errorf("invalid fraction encoding size %d", len(data))
	}
	n := int64(binary.BigEndian.Uint64(data[:8]))
	d := int64(binary.BigEndian.Uint64(data[8:]))
	v, err := NewFraction(n, d)
	if err != nil {
		logger.Verbosef("Fraction.UnmarshalMsgpack(%x) => %v\n", data, err)
		return err
	}
	*f = v
	return nil
}

type fractionJSON struct {
	Numerator   int64 `json:"numerator"`
	Denominator int64 `json:"denominator"`
}

func (f Fraction) MarshalJSON() ([]byte, error) {
	return json.Marshal(fractionJSON{Numerator: f.n, Denominator: f.Denominator()})
}

func (f *Fraction) UnmarshalJSON(b []byte) error {
	var raw fractionJSON
	err := json.Unmarshal(b, &raw)
	if err != nil {
		return err
	}
	v, err := NewFraction(raw.Numerator, raw.Denominator)
	if err != nil {
		logger.Verbosef("Fraction.UnmarshalJSON(%s) => %v\n", string(b), err)
		return err
	}
	*f = v
	return nil
}

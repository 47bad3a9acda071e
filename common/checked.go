package common

import (
	"fmt"
	"math"

	"github.com/MixinNetwork/fraction/logger"
)

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return c, false
	}
	return c, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return c, false
	}
	if c/b != a {
		return c, false
	}
	return c, true
}

// newFractionChecked refuses math.MinInt64 on either side, so that every
// checked result can be negated by SubChecked.
func newFractionChecked(numerator, denominator int64) (Fraction, error) {
	if denominator == 0 {
		return Fraction{}, fmt.Errorf("fraction %d/%d: %w", numerator, denominator, ErrInvalidArgument)
	}
	if numerator == math.MinInt64 || denominator == math.MinInt64 {
		return Fraction{}, fmt.Errorf("fraction %d/%d: %w", numerator, denominator, ErrOverflow)
	}
	return normalize(numerator, denominator)
}

func checkOperands(op string, f, y Fraction) error {
	if f.n == math.MinInt64 || y.n == math.MinInt64 {
		return overflow(op, f, y)
	}
	return nil
}

func overflow(op string, f, y Fraction) error {
	logger.Verbosef("Fraction.%s(%s, %s) overflow\n", op, f, y)
	return fmt.Errorf("fraction %s %s %s: %w", op, f, y, ErrOverflow)
}

// AddChecked is Add, but returns ErrOverflow instead of wrapping.
func (f Fraction) AddChecked(y Fraction) (Fraction, error) {
	err := checkOperands("add", f, y)
	if err != nil {
		return Fraction{}, err
	}
	fd, yd := f.Denominator(), y.Denominator()
	den, ok := mulInt64(fd, yd/gcd(fd, yd))
	if !ok {
		return Fraction{}, overflow("add", f, y)
	}
	a, ok := mulInt64(f.n, den/fd)
	if !ok {
		return Fraction{}, overflow("add", f, y)
	}
	b, ok := mulInt64(y.n, den/yd)
	if !ok {
		return Fraction{}, overflow("add", f, y)
	}
	num, ok := addInt64(a, b)
	if !ok {
		return Fraction{}, overflow("add", f, y)
	}
	r, err := newFractionChecked(num, den)
	if err != nil {
		return Fraction{}, overflow("add", f, y)
	}
	return r, nil
}

func (f Fraction) SubChecked(y Fraction) (Fraction, error) {
	if y.n == math.MinInt64 {
		return Fraction{}, overflow("sub", f, y)
	}
	return f.AddChecked(y.Neg())
}

func (f Fraction) MulChecked(y Fraction) (Fraction, error) {
	err := checkOperands("mul", f, y)
	if err != nil {
		return Fraction{}, err
	}
	n1, d1 := f.n, f.Denominator()
	n2, d2 := y.n, y.Denominator()
	if g := gcd(n1, d2); g > 1 {
		n1, d2 = n1/g, d2/g
	}
	if g := gcd(n2, d1); g > 1 {
		n2, d1 = n2/g, d1/g
	}
	num, ok := mulInt64(n1, n2)
	if !ok {
		return Fraction{}, overflow("mul", f, y)
	}
	den, ok := mulInt64(d1, d2)
	if !ok {
		return Fraction{}, overflow("mul", f, y)
	}
	r, err := newFractionChecked(num, den)
	if err != nil {
		return Fraction{}, overflow("mul", f, y)
	}
	return r, nil
}

func (f Fraction) DivChecked(y Fraction) (Fraction, error) {
	if y.IsZero() {
		return Fraction{}, fmt.Errorf("fraction div %s %s: %w", f, y, ErrDivisionByZero)
	}
	if y.n == math.MinInt64 {
		return Fraction{}, overflow("div", f, y)
	}
	inv, err := normalize(y.Denominator(), y.n)
	if err != nil {
		return Fraction{}, overflow("div", f, y)
	}
	return f.MulChecked(inv)
}

// CmpChecked is Cmp, but returns ErrOverflow when the difference of f and y
// cannot be represented, instead of an arbitrary ordering.
func (f Fraction) CmpChecked(y Fraction) (int, error) {
	r, err := f.SubChecked(y)
	if err != nil {
		return 0, err
	}
	return r.Sign(), nil
}

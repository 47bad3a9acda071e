package common

import (
	"bytes"
	"errors"
	"math"
	"os"
	"testing"

	"github.com/MixinNetwork/fraction/logger"
	"github.com/stretchr/testify/assert"
)

func TestCheckedMatchesWrapping(t *testing.T) {
	assert := assert.New(t)

	fractions := sampleFractions()
	for _, a := range fractions {
		for _, b := range fractions {
			sum, err := a.AddChecked(b)
			assert.Nil(err)
			assert.Equal(a.Add(b), sum)

			diff, err := a.SubChecked(b)
			assert.Nil(err)
			assert.Equal(a.Sub(b), diff)

			product, err := a.MulChecked(b)
			assert.Nil(err)
			assert.Equal(a.Mul(b), product)

			cmp, err := a.CmpChecked(b)
			assert.Nil(err)
			assert.Equal(a.Cmp(b), cmp)

			quotient, err := a.DivChecked(b)
			if b.IsZero() {
				assert.True(errors.Is(err, ErrDivisionByZero))
				continue
			}
			assert.Nil(err)
			expect, _ := a.Div(b)
			assert.Equal(expect, quotient)
		}
	}
}

func TestCheckedOverflow(t *testing.T) {
	assert := assert.New(t)

	largest := NewWholeFraction(math.MaxInt64)
	minusOne := NewWholeFraction(-1)
	_, err := largest.CmpChecked(minusOne)
	assert.True(errors.Is(err, ErrOverflow))
	_, err = largest.AddChecked(OneFraction)
	assert.True(errors.Is(err, ErrOverflow))
	diff, err := ZeroFraction.SubChecked(largest)
	assert.Nil(err)
	assert.Equal(NewWholeFraction(-math.MaxInt64), diff)
	_, err = minusOne.SubChecked(largest)
	assert.True(errors.Is(err, ErrOverflow))

	_, err = NewWholeFraction(1 << 62).MulChecked(NewWholeFraction(4))
	assert.True(errors.Is(err, ErrOverflow))
	tiny := NewFractionPanic(1, 1<<32)
	_, err = tiny.MulChecked(tiny)
	assert.True(errors.Is(err, ErrOverflow))
	_, err = tiny.DivChecked(NewWholeFraction(1 << 32))
	assert.True(errors.Is(err, ErrOverflow))

	_, err = NewFractionPanic(1, 3).AddChecked(NewFractionPanic(1, math.MaxInt64))
	assert.True(errors.Is(err, ErrOverflow))
	sum, err := NewFractionPanic(1, math.MaxInt64).AddChecked(NewFractionPanic(1, math.MaxInt64))
	assert.Nil(err)
	assert.Equal(NewFractionPanic(2, math.MaxInt64), sum)

	smallest := NewWholeFraction(math.MinInt64)
	_, err = smallest.AddChecked(OneFraction)
	assert.True(errors.Is(err, ErrOverflow))
	_, err = OneFraction.SubChecked(smallest)
	assert.True(errors.Is(err, ErrOverflow))
	_, err = OneFraction.MulChecked(smallest)
	assert.True(errors.Is(err, ErrOverflow))
	_, err = OneFraction.DivChecked(smallest)
	assert.True(errors.Is(err, ErrOverflow))

	_, err = OneFraction.DivChecked(ZeroFraction)
	assert.True(errors.Is(err, ErrDivisionByZero))

	product, err := NewFractionPanic(math.MaxInt64, 3).MulChecked(NewFractionPanic(3, math.MaxInt64))
	assert.Nil(err)
	assert.Equal(OneFraction, product)
}

func TestCheckedIntegers(t *testing.T) {
	assert := assert.New(t)

	v, ok := addInt64(math.MaxInt64, 1)
	assert.False(ok)
	v, ok = addInt64(math.MinInt64, -1)
	assert.False(ok)
	v, ok = addInt64(math.MinInt64, math.MaxInt64)
	assert.True(ok)
	assert.Equal(int64(-1), v)

	v, ok = mulInt64(math.MinInt64, -1)
	assert.False(ok)
	v, ok = mulInt64(-1, math.MinInt64)
	assert.False(ok)
	v, ok = mulInt64(1<<32, 1<<31)
	assert.False(ok)
	v, ok = mulInt64(1<<31, 1<<31)
	assert.True(ok)
	assert.Equal(int64(1<<62), v)
	v, ok = mulInt64(0, math.MinInt64)
	assert.True(ok)
	assert.Equal(int64(0), v)
	v, ok = mulInt64(-3, 7)
	assert.True(ok)
	assert.Equal(int64(-21), v)

	_, err := newFractionChecked(1, 0)
	assert.True(errors.Is(err, ErrInvalidArgument))
	_, err = newFractionChecked(math.MinInt64, 1)
	assert.True(errors.Is(err, ErrOverflow))
	_, err = newFractionChecked(1, math.MinInt64)
	assert.True(errors.Is(err, ErrOverflow))
	f, err := newFractionChecked(4, -6)
	assert.Nil(err)
	assert.Equal(NewFractionPanic(-2, 3), f)
}

func TestCheckedOverflowLogging(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)
	defer logger.SetLevel(0)

	logger.SetLevel(logger.INFO)
	_, err := NewWholeFraction(math.MaxInt64).AddChecked(OneFraction)
	assert.True(errors.Is(err, ErrOverflow))
	assert.Equal("", buf.String())

	logger.SetLevel(logger.VERBOSE)
	_, err = NewWholeFraction(math.MaxInt64).AddChecked(OneFraction)
	assert.True(errors.Is(err, ErrOverflow))
	assert.Contains(buf.String(), "Fraction.add(9223372036854775807, 1) overflow")

	buf.Reset()
	_, err = OneFraction.AddChecked(OneFraction)
	assert.Nil(err)
	assert.Equal("", buf.String())
}

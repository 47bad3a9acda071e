package common

// magnitude is |x| as uint64, so math.MinInt64 maps to 1<<63.
func magnitude(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}

// gcd runs Euclid's algorithm on the magnitudes of a and b.
// gcd(x, 0) is |x| and gcd(0, 0) is 0. The only result that does not fit in
// an int64 is 1<<63, from operands in {0, math.MinInt64}, and it comes back
// as math.MinInt64.
func gcd(a, b int64) int64 {
	x, y := magnitude(a), magnitude(b)
	for y > 0 {
		x, y = y, x%y
	}
	return int64(x)
}

func lcm(x, y int64) int64 {
	return x * (y / gcd(x, y))
}

package tupper

import (
	"fmt"
	"math/big"
)

var two = big.NewInt(2)

// Tupper evaluates Tupper's inequality at (x, y):
//
//	0.5 < floor(floor(y/17) / 2^(17x + y mod 17)) mod 2
//
// Division is floored and mod is Euclidean, so y may be any integer. A
// negative exponent scales the quotient up by a power of two, which is always
// even, so the inequality does not hold.
func Tupper(x int, y *big.Int) bool {
	q := new(big.Int).Div(y, seventeen)
	exp := new(big.Int).Mod(y, seventeen)
	exp.Add(exp, big.NewInt(int64(Height)*int64(x)))
	if exp.Sign() < 0 {
		return false
	}
	q.Div(q, new(big.Int).Exp(two, exp, nil))
	q.Mod(q, two)
	return q.Sign() > 0
}

// Evaluate plots the formula over the window starting at k. The plot's y
// axis points up, so window row y lands on grid row Height-1-y.
func Evaluate(k *big.Int) Grid {
	var g Grid
	y := new(big.Int)
	for wy := 0; wy < Height; wy++ {
		y.Add(k, big.NewInt(int64(wy)))
		for x := 0; x < Width; x++ {
			if Tupper(x, y) {
				g[Height-1-wy][x] = true
			}
		}
	}
	return g
}

// Verify checks that plotting k reproduces g.
func Verify(g Grid, k *big.Int) error {
	got := Evaluate(k)
	for y := range g {
		for x := range g[y] {
			if got[y][x] != g[y][x] {
				return fmt.Errorf("%w: first difference at (%d, %d)", ErrMismatch, x, y)
			}
		}
	}
	return nil
}

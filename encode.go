package tupper

import (
	"fmt"
	"math/big"
)

var seventeen = big.NewInt(Height)

// Bits flattens g in the order the formula reads it: each row is reversed,
// then the columns are walked top to bottom. The first bit is the most
// significant.
func Bits(g Grid) []uint8 {
	bits := make([]uint8, 0, Width*Height)
	for col := 0; col < Width; col++ {
		x := Width - 1 - col
		for y := 0; y < Height; y++ {
			if g[y][x] {
				bits = append(bits, 1)
			} else {
				bits = append(bits, 0)
			}
		}
	}
	return bits
}

// Encode returns the k constant for g.
func Encode(g Grid) *big.Int {
	k := new(big.Int)
	for _, b := range Bits(g) {
		k.Lsh(k, 1)
		if b == 1 {
			k.SetBit(k, 0, 1)
		}
	}
	return k.Mul(k, seventeen)
}

// Decode is the inverse of Encode.
func Decode(k *big.Int) (Grid, error) {
	var g Grid
	if k.Sign() < 0 {
		return g, fmt.Errorf("%w: got %s", ErrNotMultiple, k)
	}
	q, r := new(big.Int).QuoRem(k, seventeen, new(big.Int))
	if r.Sign() != 0 {
		return g, fmt.Errorf("%w: remainder %s", ErrNotMultiple, r)
	}
	if q.BitLen() > Width*Height {
		return g, fmt.Errorf("%w: %d bits", ErrTooLarge, q.BitLen())
	}
	// Bit 17x + (16-y) of k/17 holds pixel (x, y).
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			if q.Bit(Height*x+Height-1-y) == 1 {
				g[y][x] = true
			}
		}
	}
	return g, nil
}

// Digits returns the number of decimal digits of k. Zero has one digit.
func Digits(k *big.Int) int {
	if k.Sign() == 0 {
		return 1
	}
	return len(new(big.Int).Abs(k).String())
}

package services

import (
	"math"
	"math/bits"

	"github.com/ferreirogomes/chainequity/models"
)

// Aritmética defensiva do engine: soma e multiplicação checadas (overflow vira
// erro, nunca wrap silencioso) e subtração saturada onde o valor tem piso
// lógico em zero.

func checkedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, models.ErrMathOverflow
	}
	return a + b, nil
}

func checkedMul(a, b uint64) (uint64, error) {
	if b != 0 && a > math.MaxUint64/b {
		return 0, models.ErrMathOverflow
	}
	return a * b, nil
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

// mulDiv calcula a*b/den com produto intermediário de 128 bits, como o u128
// usado pela aritmética de dividendos.
func mulDiv(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, models.ErrMathOverflow
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= den {
		return 0, models.ErrMathOverflow
	}
	q, _ := bits.Div64(hi, lo, den)
	return q, nil
}

package modelselection

import (
	"math"

	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

// KRange generates candidate neighborhood sizes lo, lo+step, ... up to and
// including hi.
func KRange(lo, hi, step int) ([]int, error) {
	if lo < 1 {
		return nil, errors.NewHyperparameterError("k", lo, "must be at least 1")
	}
	if step < 1 {
		return nil, errors.NewValueError("KRange", "step must be at least 1")
	}
	if hi < lo {
		return nil, errors.NewValueError("KRange", "upper bound below lower bound")
	}

	var ks []int
	for k := lo; k <= hi; k += step {
		ks = append(ks, k)
	}
	return ks, nil
}

// KLogRange generates count log-spaced candidates between lo and hi
// inclusive, deduplicated after rounding to integers.
func KLogRange(lo, hi, count int) ([]int, error) {
	if lo < 1 {
		return nil, errors.NewHyperparameterError("k", lo, "must be at least 1")
	}
	if hi < lo {
		return nil, errors.NewValueError("KLogRange", "upper bound below lower bound")
	}
	if count < 2 {
		return nil, errors.NewValueError("KLogRange", "need at least 2 levels")
	}

	logLo, logHi := math.Log(float64(lo)), math.Log(float64(hi))
	var ks []int
	for i := 0; i < count; i++ {
		frac := float64(i) / float64(count-1)
		k := int(math.Round(math.Exp(logLo + frac*(logHi-logLo))))
		if len(ks) == 0 || k != ks[len(ks)-1] {
			ks = append(ks, k)
		}
	}
	return ks, nil
}

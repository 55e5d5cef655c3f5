package analytics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cognicore/suomi24/pkg/suomi24/internalerr"
)

// ZipfFit is a linear fit of log(frequency) against log(rank).
//
// Frequency ≈ exp(Intercept) * rank^Slope; Slope near -1 follows Zipf's
// law. Expected holds the ideal Zipf frequencies f1/r for each rank.
type ZipfFit struct {
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	RSquared  float64   `json:"r_squared"`
	Scale     float64   `json:"scale"`
	Expected  []float64 `json:"expected"`
}

// FitZipf fits ZipfFit to ranked frequencies. At least two labels with a
// positive count and two distinct ranks are needed.
func FitZipf(freqs []Frequency) (ZipfFit, error) {
	var logRank, logFreq []float64
	for _, f := range freqs {
		if f.Count <= 0 || f.Rank <= 0 {
			continue
		}
		logRank = append(logRank, math.Log(f.Rank))
		logFreq = append(logFreq, math.Log(float64(f.Count)))
	}
	if len(logRank) < 2 || distinct(logRank) < 2 {
		return ZipfFit{}, fmt.Errorf("%w: zipf fit needs at least two distinct ranks", internalerr.ErrInvalidInput)
	}

	alpha, beta := stat.LinearRegression(logRank, logFreq, nil, false)
	fit := ZipfFit{
		Slope:     beta,
		Intercept: alpha,
		RSquared:  stat.RSquared(logRank, logFreq, nil, alpha, beta),
		Scale:     math.Exp(alpha),
	}

	top := float64(freqs[0].Count)
	fit.Expected = make([]float64, len(freqs))
	for i := range freqs {
		fit.Expected[i] = top / float64(i+1)
	}
	return fit, nil
}

func distinct(xs []float64) int {
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		seen[x] = struct{}{}
	}
	return len(seen)
}

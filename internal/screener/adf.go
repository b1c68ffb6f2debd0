package screener

import (
	"math"

	"github.com/rxtech-lab/argo-zscore/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultADFMaxLag is the fixed number of lagged differences in the test regression.
const DefaultADFMaxLag = 20

// ADFResult is the outcome of an augmented Dickey-Fuller test with a constant term.
type ADFResult struct {
	Statistic  float64
	PValue     float64
	Critical10 float64
	// Observations used in the regression.
	Observations int
}

// Below10 reports whether the unit root is rejected at the 10% level.
func (r ADFResult) Below10() bool {
	return r.Statistic < r.Critical10
}

// ADF runs the augmented Dickey-Fuller test on x with exactly maxLag lagged differences.
//
// The regression is Δx_t = α + γ·x_{t-1} + Σ β_i·Δx_{t-i} + ε_t and the statistic is the t-value of γ.
func ADF(x []float64, maxLag int) (ADFResult, error) {
	if maxLag < 0 {
		return ADFResult{}, errors.Newf(errors.ErrCodeInvalidParameter, "max lag must not be negative, got %d", maxLag)
	}

	// level, lags and constant
	k := maxLag + 2
	if minimum := 2*maxLag + 4; len(x) < minimum {
		return ADFResult{}, errors.Newf(errors.ErrCodeInsufficientData, "adf needs at least %d observations, got %d", minimum, len(x))
	}

	diff := make([]float64, len(x)-1)
	for i := 1; i < len(x); i++ {
		diff[i-1] = x[i] - x[i-1]
	}

	nobs := len(diff) - maxLag

	design := mat.NewDense(nobs, k, nil)
	y := mat.NewVecDense(nobs, nil)

	for row := range nobs {
		t := row + maxLag
		y.SetVec(row, diff[t])
		design.Set(row, 0, x[t])

		for lag := 1; lag <= maxLag; lag++ {
			design.Set(row, lag, diff[t-lag])
		}

		design.Set(row, k-1, 1)
	}

	tValue, err := olsTValue(design, y, 0)
	if err != nil {
		return ADFResult{}, err
	}

	return ADFResult{
		Statistic:    tValue,
		PValue:       MacKinnonPValue(tValue),
		Critical10:   MacKinnonCritical10(nobs),
		Observations: nobs,
	}, nil
}

// olsTValue fits y on the design matrix and returns the t-value of coefficient i.
func olsTValue(design *mat.Dense, y *mat.VecDense, i int) (float64, error) {
	n, k := design.Dims()

	var xtx mat.Dense
	xtx.Mul(design.T(), design)

	var inverse mat.Dense
	if err := inverse.Inverse(&xtx); err != nil {
		return 0, errors.Wrap(errors.ErrCodeScreeningFailed, "adf regression is singular", err)
	}

	var xty mat.VecDense
	xty.MulVec(design.T(), y)

	var beta mat.VecDense
	beta.MulVec(&inverse, &xty)

	var fitted mat.VecDense
	fitted.MulVec(design, &beta)

	var residuals mat.VecDense
	residuals.SubVec(y, &fitted)

	sigma2 := mat.Dot(&residuals, &residuals) / float64(n-k)

	se := math.Sqrt(sigma2 * inverse.At(i, i))
	if se == 0 || math.IsNaN(se) {
		return 0, errors.New(errors.ErrCodeScreeningFailed, "adf regression has zero standard error")
	}

	return beta.AtVec(i) / se, nil
}

// MacKinnon (2010) response surface for the 10% critical value, one variable with a constant.
var tauC10 = [...]float64{-2.56677, -1.5384, -2.809}

// MacKinnonCritical10 returns the finite sample 10% critical value for nobs observations.
func MacKinnonCritical10(nobs int) float64 {
	inv := 1 / float64(nobs)

	return tauC10[0] + tauC10[1]*inv + tauC10[2]*inv*inv
}

// MacKinnon (1994) approximate p-value surface, one variable with a constant.
var (
	tauMaxC    = 2.74
	tauMinC    = -18.83
	tauStarC   = -1.61
	tauCSmallP = [...]float64{2.1659, 1.4412, 0.038269}
	tauCLargeP = [...]float64{1.7339, 0.93202, -0.12745, -0.010368}
)

// MacKinnonPValue returns the asymptotic p-value of an ADF statistic.
func MacKinnonPValue(stat float64) float64 {
	switch {
	case stat > tauMaxC:
		return 1
	case stat < tauMinC:
		return 0
	}

	coefficients := tauCLargeP[:]
	if stat <= tauStarC {
		coefficients = tauCSmallP[:]
	}

	return distuv.UnitNormal.CDF(polynomial(coefficients, stat))
}

// polynomial evaluates c[0] + c[1]·x + c[2]·x² + ...
func polynomial(c []float64, x float64) float64 {
	result := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		result = result*x + c[i]
	}

	return result
}

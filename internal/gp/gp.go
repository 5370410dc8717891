// Package gp is a small Gaussian-process regressor: a squared-exponential
// kernel, a zero prior mean, and a fixed observation noise. It exists to
// back BayesianSearch's continuous-parameter exploration; nothing else in
// the tree needs general linear algebra, so this hand-rolls the Cholesky
// solve on [][]float64 rather than pulling in a matrix library for one
// consumer (DESIGN.md).
package gp

import "math"

// Kernel is the squared-exponential (RBF) covariance function.
type Kernel struct {
	Variance    float64
	LengthScale float64
}

func (k Kernel) eval(a, b []float64) float64 {
	sq := 0.0
	for i := range a {
		d := a[i] - b[i]
		sq += d * d
	}
	return k.Variance * math.Exp(-sq/(2*k.LengthScale*k.LengthScale))
}

// Regressor is a fitted Gaussian process over zero-mean observations
// y_i = f(x_i) + noise.
type Regressor struct {
	kernel        Kernel
	noiseVariance float64

	xs     [][]float64
	ys     []float64
	alpha  []float64
	lowerL [][]float64
}

func NewRegressor(kernel Kernel, noiseVariance float64) *Regressor {
	return &Regressor{kernel: kernel, noiseVariance: noiseVariance}
}

// Fit recomputes the posterior from the given observations.
func (r *Regressor) Fit(xs [][]float64, ys []float64) {
	n := len(xs)
	r.xs = xs
	r.ys = ys

	k := make([][]float64, n)
	for i := 0; i < n; i++ {
		k[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			k[i][j] = r.kernel.eval(xs[i], xs[j])
			if i == j {
				k[i][j] += r.noiseVariance
			}
		}
	}

	r.lowerL = cholesky(k)
	z := forwardSubstitute(r.lowerL, ys)
	r.alpha = backSubstituteTranspose(r.lowerL, z)
}

// Predict returns the posterior mean and variance at x.
func (r *Regressor) Predict(x []float64) (mean, variance float64) {
	if len(r.xs) == 0 {
		return 0, r.kernel.Variance + r.noiseVariance
	}
	kStar := make([]float64, len(r.xs))
	for i, xi := range r.xs {
		kStar[i] = r.kernel.eval(x, xi)
	}

	for i, k := range kStar {
		mean += k * r.alpha[i]
	}

	v := forwardSubstitute(r.lowerL, kStar)
	var vtv float64
	for _, vi := range v {
		vtv += vi * vi
	}
	variance = r.kernel.eval(x, x) + r.noiseVariance - vtv
	if variance < 0 {
		variance = 0
	}
	return mean, variance
}

// cholesky computes the lower-triangular L such that L*L^T = a. a is
// assumed symmetric positive (semi-)definite, which holds here because the
// diagonal noiseVariance keeps the kernel matrix well conditioned.
func cholesky(a [][]float64) [][]float64 {
	n := len(a)
	l := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := a[i][j]
			for k := 0; k < j; k++ {
				sum -= l[i][k] * l[j][k]
			}
			if i == j {
				if sum < 0 {
					sum = 0
				}
				l[i][j] = math.Sqrt(sum)
			} else if l[j][j] != 0 {
				l[i][j] = sum / l[j][j]
			}
		}
	}
	return l
}

func forwardSubstitute(l [][]float64, b []float64) []float64 {
	n := len(b)
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for j := 0; j < i; j++ {
			sum -= l[i][j] * x[j]
		}
		if l[i][i] != 0 {
			x[i] = sum / l[i][i]
		}
	}
	return x
}

func backSubstituteTranspose(l [][]float64, b []float64) []float64 {
	n := len(b)
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= l[j][i] * x[j]
		}
		if l[i][i] != 0 {
			x[i] = sum / l[i][i]
		}
	}
	return x
}

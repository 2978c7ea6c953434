package autograd

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ReLU returns max(0, x) elementwise. The subgradient at 0 is taken as 0.
func ReLU(x *Tensor) *Tensor {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	}, x.data)
	t := newResult(&out, x)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad()
			xr, xc := x.data.Dims()
			gx := mat.NewDense(xr, xc, nil)
			for i := 0; i < xr; i++ {
				for j := 0; j < xc; j++ {
					if x.data.At(i, j) > 0 {
						gx.Set(i, j, g.At(i, j))
					}
				}
			}
			accumulate(x, gx)
		}
	}
	return t
}

// Dropout zeroes each entry with probability rate and scales survivors by
// 1/(1-rate), the inverted-dropout convention, so the expected value is
// unchanged. Outside training (or at rate 0) it is the identity and
// returns x itself. rate must lie in [0,1); rnd supplies the mask draws.
func Dropout(x *Tensor, rate float64, rnd *rand.Rand, training bool) *Tensor {
	if rate < 0 || rate >= 1 || math.IsNaN(rate) {
		panic(panicDropoutRate)
	}
	if !training || rate == 0 {
		return x
	}
	if rnd == nil {
		panic(panicDropoutRand)
	}
	xr, xc := x.data.Dims()
	keep := 1 / (1 - rate)
	mask := make([]float64, xr*xc)
	out := mat.NewDense(xr, xc, nil)
	for i := 0; i < xr; i++ {
		for j := 0; j < xc; j++ {
			if rnd.Float64() >= rate {
				mask[i*xc+j] = keep
				out.Set(i, j, x.data.At(i, j)*keep)
			}
		}
	}
	t := newResult(out, x)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad()
			gx := mat.NewDense(xr, xc, nil)
			for i := 0; i < xr; i++ {
				for j := 0; j < xc; j++ {
					gx.Set(i, j, g.At(i, j)*mask[i*xc+j])
				}
			}
			accumulate(x, gx)
		}
	}
	return t
}

// LogSoftmax applies the numerically stabilized row-wise transform
// out[i,j] = x[i,j] − max_i − log Σ_k exp(x[i,k] − max_i).
//
// Adjoint: gX[i,j] += g[i,j] − softmax[i,j]·Σ_k g[i,k], with softmax
// recovered as exp(out).
func LogSoftmax(x *Tensor) *Tensor {
	xr, xc := x.data.Dims()
	out := mat.NewDense(xr, xc, nil)
	for i := 0; i < xr; i++ {
		maxv := math.Inf(-1)
		for j := 0; j < xc; j++ {
			if v := x.data.At(i, j); v > maxv {
				maxv = v
			}
		}
		var sum float64
		for j := 0; j < xc; j++ {
			sum += math.Exp(x.data.At(i, j) - maxv)
		}
		lse := maxv + math.Log(sum)
		for j := 0; j < xc; j++ {
			out.Set(i, j, x.data.At(i, j)-lse)
		}
	}
	t := newResult(out, x)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad()
			gx := mat.NewDense(xr, xc, nil)
			for i := 0; i < xr; i++ {
				var rowSum float64
				for j := 0; j < xc; j++ {
					rowSum += g.At(i, j)
				}
				for j := 0; j < xc; j++ {
					soft := math.Exp(out.At(i, j))
					gx.Set(i, j, g.At(i, j)-soft*rowSum)
				}
			}
			accumulate(x, gx)
		}
	}
	return t
}

package autograd

import (
	"gonum.org/v1/gonum/mat"
)

// MatMul returns A·B.
//
// Adjoints: gA += g·Bᵀ, gB += Aᵀ·g.
func MatMul(a, b *Tensor) *Tensor {
	var out mat.Dense
	out.Mul(a.data, b.data)
	t := newResult(&out, a, b)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad()
			if a.requires {
				var ga mat.Dense
				ga.Mul(g, b.data.T())
				accumulate(a, &ga)
			}
			if b.requires {
				var gb mat.Dense
				gb.Mul(a.data.T(), g)
				accumulate(b, &gb)
			}
		}
	}
	return t
}

// Transpose returns Aᵀ as a fresh matrix.
//
// Adjoint: gA += gᵀ.
func Transpose(a *Tensor) *Tensor {
	var out mat.Dense
	out.CloneFrom(a.data.T())
	t := newResult(&out, a)
	if t.requires {
		t.backFn = func() {
			var ga mat.Dense
			ga.CloneFrom(t.ensureGrad().T())
			accumulate(a, &ga)
		}
	}
	return t
}

// Add returns A+B for equal shapes.
func Add(a, b *Tensor) *Tensor {
	var out mat.Dense
	out.Add(a.data, b.data)
	t := newResult(&out, a, b)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad()
			if a.requires {
				accumulate(a, g)
			}
			if b.requires {
				accumulate(b, g)
			}
		}
	}
	return t
}

// Sub returns A−B for equal shapes.
func Sub(a, b *Tensor) *Tensor {
	var out mat.Dense
	out.Sub(a.data, b.data)
	t := newResult(&out, a, b)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad()
			if a.requires {
				accumulate(a, g)
			}
			if b.requires {
				var gb mat.Dense
				gb.Scale(-1, g)
				accumulate(b, &gb)
			}
		}
	}
	return t
}

// Scale returns s·A for a plain (non-learned) scalar s.
func Scale(a *Tensor, s float64) *Tensor {
	var out mat.Dense
	out.Scale(s, a.data)
	t := newResult(&out, a)
	if t.requires {
		t.backFn = func() {
			var ga mat.Dense
			ga.Scale(s, t.ensureGrad())
			accumulate(a, &ga)
		}
	}
	return t
}

// AddScaledEye returns A + s·I for square A. The identity shift carries no
// gradient of its own, so the adjoint is a pass-through: gA += g.
func AddScaledEye(a *Tensor, s float64) *Tensor {
	r, c := a.data.Dims()
	if r != c {
		panic(panicNotSquare)
	}
	var out mat.Dense
	out.CloneFrom(a.data)
	for i := 0; i < r; i++ {
		out.Set(i, i, out.At(i, i)+s)
	}
	t := newResult(&out, a)
	if t.requires {
		t.backFn = func() {
			accumulate(a, t.ensureGrad())
		}
	}
	return t
}

// MulElem returns the Hadamard product A∘B for equal shapes.
//
// Adjoints: gA += g∘B, gB += g∘A.
func MulElem(a, b *Tensor) *Tensor {
	var out mat.Dense
	out.MulElem(a.data, b.data)
	t := newResult(&out, a, b)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad()
			if a.requires {
				var ga mat.Dense
				ga.MulElem(g, b.data)
				accumulate(a, &ga)
			}
			if b.requires {
				var gb mat.Dense
				gb.MulElem(g, a.data)
				accumulate(b, &gb)
			}
		}
	}
	return t
}

// AddBias returns X + bias broadcast over rows; bias must be 1×C.
//
// Adjoints: gX += g, gBias[0,j] += Σ_i g[i,j].
func AddBias(x, bias *Tensor) *Tensor {
	xr, xc := x.data.Dims()
	br, bc := bias.data.Dims()
	if br != 1 || bc != xc {
		panic(panicShape)
	}
	out := mat.NewDense(xr, xc, nil)
	for i := 0; i < xr; i++ {
		for j := 0; j < xc; j++ {
			out.Set(i, j, x.data.At(i, j)+bias.data.At(0, j))
		}
	}
	t := newResult(out, x, bias)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad()
			if x.requires {
				accumulate(x, g)
			}
			if bias.requires {
				gb := mat.NewDense(1, xc, nil)
				for j := 0; j < xc; j++ {
					var s float64
					for i := 0; i < xr; i++ {
						s += g.At(i, j)
					}
					gb.Set(0, j, s)
				}
				accumulate(bias, gb)
			}
		}
	}
	return t
}

// ScaleRows returns out[i,j] = x[i,j]·w[i,0]; w must be R×1 for an R-row x.
//
// Adjoints: gX[i,j] += g[i,j]·w[i,0], gW[i,0] += Σ_j g[i,j]·x[i,j].
func ScaleRows(x, w *Tensor) *Tensor {
	xr, xc := x.data.Dims()
	wr, wc := w.data.Dims()
	if wr != xr || wc != 1 {
		panic(panicShape)
	}
	out := mat.NewDense(xr, xc, nil)
	for i := 0; i < xr; i++ {
		wi := w.data.At(i, 0)
		for j := 0; j < xc; j++ {
			out.Set(i, j, x.data.At(i, j)*wi)
		}
	}
	t := newResult(out, x, w)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad()
			if x.requires {
				gx := mat.NewDense(xr, xc, nil)
				for i := 0; i < xr; i++ {
					wi := w.data.At(i, 0)
					for j := 0; j < xc; j++ {
						gx.Set(i, j, g.At(i, j)*wi)
					}
				}
				accumulate(x, gx)
			}
			if w.requires {
				gw := mat.NewDense(xr, 1, nil)
				for i := 0; i < xr; i++ {
					var s float64
					for j := 0; j < xc; j++ {
						s += g.At(i, j) * x.data.At(i, j)
					}
					gw.Set(i, 0, s)
				}
				accumulate(w, gw)
			}
		}
	}
	return t
}

// ScaleCols returns out[i,j] = x[i,j]·w[j,0]; w must be C×1 for a C-column
// x (a column vector of per-column factors).
//
// Adjoints: gX[i,j] += g[i,j]·w[j,0], gW[j,0] += Σ_i g[i,j]·x[i,j].
func ScaleCols(x, w *Tensor) *Tensor {
	xr, xc := x.data.Dims()
	wr, wc := w.data.Dims()
	if wr != xc || wc != 1 {
		panic(panicShape)
	}
	out := mat.NewDense(xr, xc, nil)
	for i := 0; i < xr; i++ {
		for j := 0; j < xc; j++ {
			out.Set(i, j, x.data.At(i, j)*w.data.At(j, 0))
		}
	}
	t := newResult(out, x, w)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad()
			if x.requires {
				gx := mat.NewDense(xr, xc, nil)
				for i := 0; i < xr; i++ {
					for j := 0; j < xc; j++ {
						gx.Set(i, j, g.At(i, j)*w.data.At(j, 0))
					}
				}
				accumulate(x, gx)
			}
			if w.requires {
				gw := mat.NewDense(xc, 1, nil)
				for j := 0; j < xc; j++ {
					var s float64
					for i := 0; i < xr; i++ {
						s += g.At(i, j) * x.data.At(i, j)
					}
					gw.Set(j, 0, s)
				}
				accumulate(w, gw)
			}
		}
	}
	return t
}

// Col extracts column j of x as an R×1 tensor.
//
// Adjoint: gX[:,j] += g[:,0].
func Col(x *Tensor, j int) *Tensor {
	xr, xc := x.data.Dims()
	if j < 0 || j >= xc {
		panic(panicColumn)
	}
	out := mat.NewDense(xr, 1, nil)
	for i := 0; i < xr; i++ {
		out.Set(i, 0, x.data.At(i, j))
	}
	t := newResult(out, x)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad()
			gx := mat.NewDense(xr, xc, nil)
			for i := 0; i < xr; i++ {
				gx.Set(i, j, g.At(i, 0))
			}
			accumulate(x, gx)
		}
	}
	return t
}

// ScaleElem returns v[i,j]·X, a whole-matrix scale by one learned entry.
//
// Adjoints: gX += v[i,j]·g, gV[i,j] += Σ g∘X.
func ScaleElem(x, v *Tensor, i, j int) *Tensor {
	vr, vc := v.data.Dims()
	if i < 0 || i >= vr || j < 0 || j >= vc {
		panic(panicEntry)
	}
	s := v.data.At(i, j)
	var out mat.Dense
	out.Scale(s, x.data)
	t := newResult(&out, x, v)
	if t.requires {
		t.backFn = func() {
			g := t.ensureGrad()
			if x.requires {
				var gx mat.Dense
				gx.Scale(s, g)
				accumulate(x, &gx)
			}
			if v.requires {
				xr, xc := x.data.Dims()
				var dot float64
				for r := 0; r < xr; r++ {
					for c := 0; c < xc; c++ {
						dot += g.At(r, c) * x.data.At(r, c)
					}
				}
				gv := mat.NewDense(vr, vc, nil)
				gv.Set(i, j, dot)
				accumulate(v, gv)
			}
		}
	}
	return t
}

// Sum reduces x to a 1×1 tensor holding Σ entries.
//
// Adjoint: gX += g[0,0] at every position.
func Sum(x *Tensor) *Tensor {
	out := mat.NewDense(1, 1, []float64{mat.Sum(x.data)})
	t := newResult(out, x)
	if t.requires {
		t.backFn = func() {
			s := t.ensureGrad().At(0, 0)
			xr, xc := x.data.Dims()
			gx := mat.NewDense(xr, xc, nil)
			for i := 0; i < xr; i++ {
				for j := 0; j < xc; j++ {
					gx.Set(i, j, s)
				}
			}
			accumulate(x, gx)
		}
	}
	return t
}

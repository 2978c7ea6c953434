package autograd

import (
	"gonum.org/v1/gonum/mat"
)

// Internal panic messages for tape misuse (programmer errors).
const (
	panicNilTensor   = "autograd: nil *Tensor"
	panicNilValue    = "autograd: nil matrix value"
	panicShape       = "autograd: dimension mismatch"
	panicNotSquare   = "autograd: square matrix required"
	panicDropoutRate = "autograd: dropout rate must be in [0,1)"
	panicDropoutRand = "autograd: dropout needs a *rand.Rand in training mode"
	panicEmptyIndex  = "autograd: empty index set"
	panicColumn      = "autograd: column index out of range"
	panicEntry       = "autograd: entry index out of range"
)

// Tensor is one node of the reverse-mode tape: a matrix value, an
// optional gradient of the same shape and the adjoint closure linking it
// to its inputs. Build leaves with NewConst or NewParam; every op returns
// a fresh interior node.
type Tensor struct {
	name     string
	data     *mat.Dense
	grad     *mat.Dense
	requires bool
	deps     []*Tensor
	backFn   func()
}

// NewConst wraps a value that never needs a gradient (features, the
// densified adjacency, targets). The matrix is aliased, not copied.
func NewConst(data *mat.Dense) *Tensor {
	if data == nil {
		panic(panicNilValue)
	}
	return &Tensor{data: data}
}

// NewParam wraps a trainable value under a stable name. The matrix is
// aliased: optimizers update it in place and the next forward pass sees
// the new values.
func NewParam(name string, data *mat.Dense) *Tensor {
	if data == nil {
		panic(panicNilValue)
	}
	return &Tensor{name: name, data: data, requires: true}
}

// Name returns the parameter name ("" for constants and interior nodes).
func (t *Tensor) Name() string { return t.name }

// Value returns the aliased matrix value.
func (t *Tensor) Value() *mat.Dense { return t.data }

// Grad returns the accumulated gradient, or nil when none has been
// produced yet (constants, or parameters before the first Backward).
func (t *Tensor) Grad() *mat.Dense { return t.grad }

// RequiresGrad reports whether this node participates in the tape.
func (t *Tensor) RequiresGrad() bool { return t.requires }

// Dims returns the value shape.
func (t *Tensor) Dims() (r, c int) { return t.data.Dims() }

// ZeroGrad clears the accumulated gradient in place, keeping the buffer.
func (t *Tensor) ZeroGrad() {
	if t.grad != nil {
		t.grad.Zero()
	}
}

// SetValue copies src into the tensor's value. Shapes must match.
func (t *Tensor) SetValue(src *mat.Dense) {
	if src == nil {
		panic(panicNilValue)
	}
	tr, tc := t.data.Dims()
	sr, sc := src.Dims()
	if tr != sr || tc != sc {
		panic(panicShape)
	}
	t.data.Copy(src)
}

// ensureGrad returns the gradient buffer, allocating zeros on first use.
func (t *Tensor) ensureGrad() *mat.Dense {
	if t.grad == nil {
		r, c := t.data.Dims()
		t.grad = mat.NewDense(r, c, nil)
	}
	return t.grad
}

// accumulate adds delta into dst's gradient buffer.
func accumulate(dst *Tensor, delta mat.Matrix) {
	g := dst.ensureGrad()
	g.Add(g, delta)
}

// newResult builds an interior node from a freshly computed value,
// wiring in the inputs that require gradients. The caller attaches the
// adjoint closure only when the result itself requires one.
func newResult(data *mat.Dense, inputs ...*Tensor) *Tensor {
	out := &Tensor{data: data}
	for _, in := range inputs {
		if in != nil && in.requires {
			out.requires = true
			out.deps = append(out.deps, in)
		}
	}
	return out
}

// Backward runs the reverse sweep from root, seeding ∂root/∂root = 1
// elementwise. Intended for 1×1 loss roots; for larger roots the seed
// corresponds to differentiating the sum of entries. Gradients accumulate
// into every reachable parameter; call ZeroGrad on parameters between
// steps.
func Backward(root *Tensor) {
	if root == nil {
		panic(panicNilTensor)
	}
	if !root.requires {
		return
	}
	seed := root.ensureGrad()
	r, c := seed.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			seed.Set(i, j, 1)
		}
	}

	// Post-order DFS: inputs precede consumers, so the reversed order
	// fires a node's closure only after all its consumers contributed.
	var order []*Tensor
	visited := make(map[*Tensor]bool)
	var visit func(*Tensor)
	visit = func(t *Tensor) {
		if visited[t] {
			return
		}
		visited[t] = true
		for _, d := range t.deps {
			visit(d)
		}
		order = append(order, t)
	}
	visit(root)

	for i := len(order) - 1; i >= 0; i-- {
		if fn := order[i].backFn; fn != nil {
			fn()
		}
	}
}

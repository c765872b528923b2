package optim

import (
	"math"

	"github.com/Ivorforce/tslearn/internal/nn"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// Adam keeps running first and second moment estimates per element and
// applies the bias-corrected update
//
//	p = p - lr * m̂ / (sqrt(v̂) + eps)
//
// where m̂ = m / (1 - beta1^t) and v̂ = v / (1 - beta2^t) (Kingma & Ba, 2014).
type Adam[T tensor.DType, B tensor.Backend] struct {
	params  []*nn.Parameter[T, B]
	lr      float64
	beta1   float64
	beta2   float64
	eps     float64
	t       int // completed steps
	m       map[*nn.Parameter[T, B]][]T
	v       map[*nn.Parameter[T, B]][]T
	backend B
}

// AdamConfig configures NewAdam. Zero fields take the defaults
// LR 0.001, Betas {0.9, 0.999}, Eps 1e-8.
type AdamConfig struct {
	LR    float64
	Betas [2]float64
	Eps   float64
}

func NewAdam[T tensor.DType, B tensor.Backend](params []*nn.Parameter[T, B], config AdamConfig, backend B) *Adam[T, B] {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam[T, B]{
		params:  params,
		lr:      config.LR,
		beta1:   config.Betas[0],
		beta2:   config.Betas[1],
		eps:     config.Eps,
		m:       make(map[*nn.Parameter[T, B]][]T),
		v:       make(map[*nn.Parameter[T, B]][]T),
		backend: backend,
	}
}

func (a *Adam[T, B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	a.t++
	c1 := 1 - math.Pow(a.beta1, float64(a.t))
	c2 := 1 - math.Pow(a.beta2, float64(a.t))

	for _, param := range a.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}
		g := typed[T](grad, a.backend)
		p := param.Tensor().Data()
		m, v := a.moments(param, len(p))

		// Moments are stored as T; the update is evaluated in float64.
		for i := range p {
			gi := float64(g[i])
			mi := a.beta1*float64(m[i]) + (1-a.beta1)*gi
			vi := a.beta2*float64(v[i]) + (1-a.beta2)*gi*gi
			m[i], v[i] = T(mi), T(vi)
			p[i] -= T(a.lr * (mi / c1) / (math.Sqrt(vi/c2) + a.eps))
		}
	}
}

func (a *Adam[T, B]) moments(param *nn.Parameter[T, B], n int) (m, v []T) {
	m, ok := a.m[param]
	if !ok {
		m = make([]T, n)
		a.m[param] = m
	}
	v, ok = a.v[param]
	if !ok {
		v = make([]T, n)
		a.v[param] = v
	}
	return m, v
}

func (a *Adam[T, B]) ZeroGrad() {
	for _, param := range a.params {
		param.ZeroGrad()
	}
}

func (a *Adam[T, B]) GetLR() float64 { return a.lr }

func (a *Adam[T, B]) SetLR(lr float64) { a.lr = lr }

// GetTimestep returns the number of completed steps.
func (a *Adam[T, B]) GetTimestep() int { return a.t }

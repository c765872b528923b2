package optim

import (
	"github.com/Ivorforce/tslearn/internal/nn"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// SGD is plain gradient descent, or heavy-ball momentum when Momentum > 0:
//
//	v = momentum*v + g
//	p = p - lr*v
//
// Velocity buffers are allocated on a parameter's first update.
type SGD[T tensor.DType, B tensor.Backend] struct {
	params     []*nn.Parameter[T, B]
	lr         float64
	momentum   float64
	velocities map[*nn.Parameter[T, B]][]T
	backend    B
}

// SGDConfig configures NewSGD. A zero LR means 0.01.
type SGDConfig struct {
	LR       float64
	Momentum float64 // in [0, 1)
}

func NewSGD[T tensor.DType, B tensor.Backend](params []*nn.Parameter[T, B], config SGDConfig, backend B) *SGD[T, B] {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD[T, B]{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter[T, B]][]T),
		backend:    backend,
	}
}

func (s *SGD[T, B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	lr, momentum := T(s.lr), T(s.momentum)
	for _, param := range s.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}
		g := typed[T](grad, s.backend)
		p := param.Tensor().Data()

		if s.momentum == 0 {
			for i := range p {
				p[i] -= lr * g[i]
			}
			continue
		}

		v, ok := s.velocities[param]
		if !ok {
			v = make([]T, len(p))
			s.velocities[param] = v
		}
		for i := range p {
			v[i] = momentum*v[i] + g[i]
			p[i] -= lr * v[i]
		}
	}
}

func (s *SGD[T, B]) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

func (s *SGD[T, B]) GetLR() float64 { return s.lr }

// SetLR changes the learning rate for subsequent steps. Velocities are kept.
func (s *SGD[T, B]) SetLR(lr float64) { s.lr = lr }

// Package cpu implements the CPU backend: generic float32/float64 tensor ops
// plus the soft-DTW distance and dynamic-programming kernels.
package cpu

import (
	"fmt"

	"github.com/Ivorforce/tslearn/internal/parallel"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// Config controls how the soft-DTW kernels use the CPU.
type Config struct {
	// Parallel fans out batch elements (and wavefront cells).
	Parallel parallel.Config

	// WavefrontMinCells enables anti-diagonal parallelism for single-element
	// batches when a diagonal has at least this many cells. Zero disables it.
	WavefrontMinCells int
}

// DefaultConfig returns CPU-count batch parallelism and no wavefront.
func DefaultConfig() Config {
	return Config{Parallel: parallel.DefaultConfig()}
}

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
	config Config
}

// New creates a new CPU backend with DefaultConfig.
func New() *CPUBackend {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a CPU backend with an explicit kernel configuration.
func NewWithConfig(cfg Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		config: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Config returns the kernel configuration.
func (cpu *CPUBackend) Config() Config {
	return cpu.config
}

// Add performs element-wise addition.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", opAdd, a, b)
}

// Sub performs element-wise subtraction.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", opSub, a, b)
}

// Mul performs element-wise multiplication.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", opMul, a, b)
}

// Reshape returns a tensor with the same data but different shape.
// The result is a view sharing storage with t.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := t.Reshaped(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return result
}

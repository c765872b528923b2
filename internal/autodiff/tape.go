package autodiff

import (
	"github.com/Ivorforce/tslearn/internal/autodiff/ops"
	"github.com/Ivorforce/tslearn/internal/tensor"
)

// GradientTape is an append-only log of differentiable operations.
//
// A soft-DTW loss evaluation records at most a handful of entries per term
// (pairwise distance, soft-DTW, and the arithmetic that combines terms), so
// one tape is normally cleared and reused for every optimizer step:
//
//	tape.Clear()
//	tape.StartRecording()
//	// ... forward ...
//	grads := tape.BackwardFrom(loss, ones, backend)
//	tape.StopRecording()
type GradientTape struct {
	operations []ops.Operation // execution order
	recording  bool
}

// NewGradientTape returns an empty tape that is not recording.
func NewGradientTape() *GradientTape {
	return &GradientTape{operations: make([]ops.Operation, 0, 16)}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record appends op while the tape is recording and ignores it otherwise.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear drops every recorded operation and keeps the recording state.
func (t *GradientTape) Clear() {
	clear(t.operations)
	t.operations = t.operations[:0]
}

// BackwardFrom seeds outputGrad at output and applies the chain rule to every
// recorded operation in reverse order. Operations whose output received no
// gradient are skipped. A tensor consumed by several operations, such as x
// in dist(x, x), gets the sum of their contributions.
//
// Recording is suspended for the duration, so gradient arithmetic on an
// autodiff backend never lands on the tape.
func (t *GradientTape) BackwardFrom(output, outputGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()

	grads := map[*tensor.RawTensor]*tensor.RawTensor{output: outputGrad}
	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		g, ok := grads[op.Output()]
		if !ok {
			continue
		}
		inputGrads := op.Backward(g, backend)
		for j, input := range op.Inputs() {
			if j >= len(inputGrads) || inputGrads[j] == nil {
				continue
			}
			if prev, seen := grads[input]; seen {
				grads[input] = backend.Add(prev, inputGrads[j])
			} else {
				grads[input] = inputGrads[j]
			}
		}
	}
	return grads
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

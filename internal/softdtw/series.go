package softdtw

import "fmt"

// Series is a batch of multivariate time series stored row-major as [Batch, Len, Dim].
type Series struct {
	Data  []float64
	Batch int
	Len   int
	Dim   int
}

// NewSeries wraps data as a [batch, length, dim] series. The slice is not copied.
func NewSeries(data []float64, batch, length, dim int) (Series, error) {
	s := Series{Data: data, Batch: batch, Len: length, Dim: dim}
	if err := s.Validate(); err != nil {
		return Series{}, err
	}
	return s, nil
}

// Validate checks that every dimension is positive and the buffer matches the shape.
func (s Series) Validate() error {
	if s.Batch <= 0 || s.Len <= 0 || s.Dim <= 0 {
		return fmt.Errorf("%w: shape [%d, %d, %d]", ErrEmptySeries, s.Batch, s.Len, s.Dim)
	}
	if !holds(len(s.Data), s.Batch, s.Len, s.Dim) {
		return fmt.Errorf("%w: %d values for shape [%d, %d, %d]",
			ErrBadShape, len(s.Data), s.Batch, s.Len, s.Dim)
	}
	return nil
}

// Element returns the Len×Dim block of batch element b (a view, not a copy).
func (s Series) Element(b int) []float64 {
	size := s.Len * s.Dim
	return s.Data[b*size : (b+1)*size : (b+1)*size]
}

// Single returns batch element b as a series of batch size one (a view).
func (s Series) Single(b int) Series {
	return Series{Data: s.Element(b), Batch: 1, Len: s.Len, Dim: s.Dim}
}

// zerosLike returns a zero-filled series with the same shape as s.
func zerosLike(s Series) Series {
	return Series{Data: make([]float64, len(s.Data)), Batch: s.Batch, Len: s.Len, Dim: s.Dim}
}

// Stack concatenates series along the batch axis. Length and dimension must agree.
func Stack(items ...Series) (Series, error) {
	if len(items) == 0 {
		return Series{}, fmt.Errorf("%w: nothing to stack", ErrEmptySeries)
	}
	first := items[0]
	out := Series{Len: first.Len, Dim: first.Dim}
	for i, s := range items {
		if err := s.Validate(); err != nil {
			return Series{}, fmt.Errorf("stack item %d: %w", i, err)
		}
		if s.Len != first.Len || s.Dim != first.Dim {
			return Series{}, fmt.Errorf("%w: stack item %d is [%d, %d], want [%d, %d]",
				ErrShapeMismatch, i, s.Len, s.Dim, first.Len, first.Dim)
		}
		out.Batch += s.Batch
		out.Data = append(out.Data, s.Data...)
	}
	return out, nil
}

// checkPair enforces the aggregator precondition: equal batch size and feature dimension.
// Series lengths may differ.
func checkPair(x, y Series) error {
	if err := x.Validate(); err != nil {
		return fmt.Errorf("x: %w", err)
	}
	if err := y.Validate(); err != nil {
		return fmt.Errorf("y: %w", err)
	}
	if x.Batch != y.Batch || x.Dim != y.Dim {
		return fmt.Errorf("%w: x is [%d, %d, %d], y is [%d, %d, %d]",
			ErrShapeMismatch, x.Batch, x.Len, x.Dim, y.Batch, y.Len, y.Dim)
	}
	return nil
}

// Grid is a batch of row-major matrices stored as [Batch, Rows, Cols].
type Grid struct {
	Data  []float64
	Batch int
	Rows  int
	Cols  int
}

// NewGrid allocates a zero-filled grid.
func NewGrid(batch, rows, cols int) Grid {
	return Grid{
		Data:  make([]float64, batch*rows*cols),
		Batch: batch,
		Rows:  rows,
		Cols:  cols,
	}
}

// Element returns the Rows×Cols block of batch element b (a view, not a copy).
func (g Grid) Element(b int) []float64 {
	size := g.Rows * g.Cols
	return g.Data[b*size : (b+1)*size : (b+1)*size]
}

// At returns entry (i, j) of batch element b.
func (g Grid) At(b, i, j int) float64 {
	return g.Data[(b*g.Rows+i)*g.Cols+j]
}

func (g Grid) validate() error {
	if g.Batch <= 0 || g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("%w: grid [%d, %d, %d]", ErrEmptySeries, g.Batch, g.Rows, g.Cols)
	}
	if !holds(len(g.Data), g.Batch, g.Rows, g.Cols) {
		return fmt.Errorf("%w: %d values for grid [%d, %d, %d]",
			ErrBadShape, len(g.Data), g.Batch, g.Rows, g.Cols)
	}
	return nil
}

// holds reports whether n == a*b*c for positive a, b, c. It divides rather
// than multiplies, so shapes whose product overflows int are rejected.
func holds(n, a, b, c int) bool {
	return n%c == 0 && n/c%b == 0 && n/c/b == a
}

package seriesio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Ivorforce/tslearn/internal/softdtw"
)

// document is the JSON layout: series → time step → feature.
type document struct {
	Series [][][]float64 `json:"series"`
}

// EncodeJSON writes ds as a JSON document, one entry per series.
func EncodeJSON(w io.Writer, ds Dataset) error {
	doc := document{Series: make([][][]float64, 0, ds.Count())}
	for i, s := range ds {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("series %d: %w", i, err)
		}
		for b := 0; b < s.Batch; b++ {
			e := s.Element(b)
			steps := make([][]float64, s.Len)
			for t := range steps {
				steps[t] = e[t*s.Dim : (t+1)*s.Dim]
			}
			doc.Series = append(doc.Series, steps)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// DecodeJSON reads a JSON document. Each entry becomes a batch-1 series;
// entries may differ in length but every time step of an entry must have
// the same dimension.
func DecodeJSON(r io.Reader) (Dataset, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(doc.Series) == 0 {
		return nil, fmt.Errorf("%w: no series", ErrEmpty)
	}

	ds := make(Dataset, 0, len(doc.Series))
	for i, steps := range doc.Series {
		if len(steps) == 0 || len(steps[0]) == 0 {
			return nil, fmt.Errorf("%w: series %d", ErrEmpty, i)
		}
		dim := len(steps[0])
		data := make([]float64, 0, len(steps)*dim)
		for t, step := range steps {
			if len(step) != dim {
				return nil, fmt.Errorf("%w: series %d step %d has %d values, want %d", ErrRagged, i, t, len(step), dim)
			}
			data = append(data, step...)
		}
		s, err := softdtw.NewSeries(data, 1, len(steps), dim)
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
		ds = append(ds, s)
	}
	return ds, nil
}

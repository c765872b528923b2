// Package seriesio reads and writes datasets of time series.
//
// Two formats are supported, chosen by file extension:
//
//	.json  {"series": [[[x00, x01], [x10, x11], ...], ...]}   one entry per series
//	.pb    protobuf wire format:
//
//	       message SeriesBatch {
//	         uint64 batch = 1;
//	         uint64 len   = 2;
//	         uint64 dim   = 3;
//	         repeated double data = 4 [packed = true];  // batch*len*dim values, row-major
//	       }
//	       message Dataset {
//	         repeated SeriesBatch series = 1;
//	       }
//
// Series in a dataset may have different lengths. Stack them with
// softdtw.Stack when a single equal-length batch is needed.
package seriesio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ivorforce/tslearn/internal/softdtw"
)

// Sentinel errors.
var (
	// ErrUnknownFormat indicates a file extension other than .json or .pb.
	ErrUnknownFormat = errors.New("seriesio: unknown format")

	// ErrMalformed indicates a payload that cannot be decoded.
	ErrMalformed = errors.New("seriesio: malformed payload")

	// ErrRagged indicates time steps of differing dimension within one series.
	ErrRagged = errors.New("seriesio: ragged series")

	// ErrEmpty indicates a dataset, series or time step with no values.
	ErrEmpty = errors.New("seriesio: empty")
)

// Format identifies an encoding.
type Format int

const (
	// JSON is the human-readable document format.
	JSON Format = iota
	// Proto is the protobuf wire format.
	Proto
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case Proto:
		return "pb"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".pb", ".binpb":
		return Proto, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Dataset is an ordered collection of series batches.
type Dataset []softdtw.Series

// Count returns the number of individual series.
func (d Dataset) Count() int {
	n := 0
	for _, s := range d {
		n += s.Batch
	}
	return n
}

// Split returns every series as its own batch-1 entry.
func (d Dataset) Split() Dataset {
	out := make(Dataset, 0, d.Count())
	for _, s := range d {
		for b := 0; b < s.Batch; b++ {
			out = append(out, s.Single(b))
		}
	}
	return out
}

// Stack concatenates the dataset into one batch. All series must share
// length and dimension.
func (d Dataset) Stack() (softdtw.Series, error) {
	return softdtw.Stack(d...)
}

// Encode writes ds to w.
func Encode(w io.Writer, f Format, ds Dataset) error {
	switch f {
	case JSON:
		return EncodeJSON(w, ds)
	case Proto:
		data, err := MarshalDataset(ds)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// Decode reads a dataset from r.
func Decode(r io.Reader, f Format) (Dataset, error) {
	switch f {
	case JSON:
		return DecodeJSON(r)
	case Proto:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return UnmarshalDataset(data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
}

// ReadFile decodes the dataset stored at path.
func ReadFile(path string) (Dataset, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	ds, err := Decode(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// WriteFile encodes ds to path, replacing any existing file.
func WriteFile(path string, ds Dataset) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(file, f, ds); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return file.Close()
}

package seriesio

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Ivorforce/tslearn/internal/softdtw"
)

// Field numbers.
const (
	fieldBatch protowire.Number = 1
	fieldLen   protowire.Number = 2
	fieldDim   protowire.Number = 3
	fieldData  protowire.Number = 4

	fieldSeries protowire.Number = 1
)

// MarshalBatch encodes one series batch as a SeriesBatch message.
func MarshalBatch(s softdtw.Series) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return appendBatch(nil, s), nil
}

func appendBatch(b []byte, s softdtw.Series) []byte {
	b = protowire.AppendTag(b, fieldBatch, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.Batch))
	b = protowire.AppendTag(b, fieldLen, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.Len))
	b = protowire.AppendTag(b, fieldDim, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.Dim))

	b = protowire.AppendTag(b, fieldData, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(8*len(s.Data)))
	for _, v := range s.Data {
		b = protowire.AppendFixed64(b, math.Float64bits(v))
	}
	return b
}

// UnmarshalBatch decodes a SeriesBatch message. Unknown fields are skipped;
// unpacked doubles are accepted as well as the packed form.
func UnmarshalBatch(b []byte) (softdtw.Series, error) {
	var (
		batch, length, dim uint64
		data               []float64
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return softdtw.Series{}, malformed(n)
		}
		b = b[n:]

		switch {
		case num == fieldBatch && typ == protowire.VarintType:
			batch, n = protowire.ConsumeVarint(b)
		case num == fieldLen && typ == protowire.VarintType:
			length, n = protowire.ConsumeVarint(b)
		case num == fieldDim && typ == protowire.VarintType:
			dim, n = protowire.ConsumeVarint(b)
		case num == fieldData && typ == protowire.BytesType:
			var packed []byte
			packed, n = protowire.ConsumeBytes(b)
			if n >= 0 {
				if len(packed)%8 != 0 {
					return softdtw.Series{}, fmt.Errorf("%w: packed data of %d bytes", ErrMalformed, len(packed))
				}
				for len(packed) > 0 {
					v, m := protowire.ConsumeFixed64(packed)
					data = append(data, math.Float64frombits(v))
					packed = packed[m:]
				}
			}
		case num == fieldData && typ == protowire.Fixed64Type:
			var v uint64
			v, n = protowire.ConsumeFixed64(b)
			data = append(data, math.Float64frombits(v))
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return softdtw.Series{}, malformed(n)
		}
		b = b[n:]
	}

	if batch == 0 || length == 0 || dim == 0 {
		return softdtw.Series{}, fmt.Errorf("%w: shape [%d, %d, %d]", ErrEmpty, batch, length, dim)
	}
	if batch > math.MaxInt32 || length > math.MaxInt32 || dim > math.MaxInt32 {
		return softdtw.Series{}, fmt.Errorf("%w: shape [%d, %d, %d] out of range", ErrMalformed, batch, length, dim)
	}
	series, err := softdtw.NewSeries(data, int(batch), int(length), int(dim))
	if err != nil {
		return softdtw.Series{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return series, nil
}

// MarshalDataset encodes ds as a Dataset message.
func MarshalDataset(ds Dataset) ([]byte, error) {
	var b []byte
	for i, s := range ds {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
		b = protowire.AppendTag(b, fieldSeries, protowire.BytesType)
		b = protowire.AppendBytes(b, appendBatch(nil, s))
	}
	return b, nil
}

// UnmarshalDataset decodes a Dataset message.
func UnmarshalDataset(b []byte) (Dataset, error) {
	var ds Dataset
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed(n)
		}
		b = b[n:]

		if num != fieldSeries || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, malformed(n)
			}
			b = b[n:]
			continue
		}

		msg, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, malformed(n)
		}
		b = b[n:]
		s, err := UnmarshalBatch(msg)
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", len(ds), err)
		}
		ds = append(ds, s)
	}
	if len(ds) == 0 {
		return nil, fmt.Errorf("%w: no series", ErrEmpty)
	}
	return ds, nil
}

func malformed(n int) error {
	return fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
}

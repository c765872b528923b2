package seriesio

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Ivorforce/tslearn/internal/softdtw"
)

func mustSeries(t *testing.T, data []float64, batch, length, dim int) softdtw.Series {
	t.Helper()
	s, err := softdtw.NewSeries(data, batch, length, dim)
	require.NoError(t, err)
	return s
}

func sample(t *testing.T) Dataset {
	return Dataset{
		mustSeries(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, 2, 3, 2),
		mustSeries(t, []float64{-1.5, 2.25, math.Pi, 1e-300}, 1, 2, 2),
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"a.json", JSON, false},
		{"dir/B.JSON", JSON, false},
		{"a.pb", Proto, false},
		{"a.binpb", Proto, false},
		{"a.csv", 0, true},
		{"noext", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if tt.err {
			assert.ErrorIs(t, err, ErrUnknownFormat, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
	assert.Equal(t, "json", JSON.String())
	assert.Equal(t, "pb", Proto.String())
	assert.Equal(t, "Format(5)", Format(5).String())
}

func TestDataset_SplitStack(t *testing.T) {
	ds := sample(t)
	assert.Equal(t, 3, ds.Count())

	split := ds.Split()
	require.Len(t, split, 3)
	assert.Equal(t, []float64{6, 7, 8, 9, 10, 11}, split[1].Data)

	_, err := ds.Stack()
	assert.ErrorIs(t, err, softdtw.ErrShapeMismatch)

	stacked, err := split[:2].Stack()
	require.NoError(t, err)
	assert.Equal(t, 2, stacked.Batch)
	assert.Equal(t, ds[0].Data, stacked.Data)
}

func TestJSON_RoundTrip(t *testing.T) {
	ds := sample(t)

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, ds))
	assert.Contains(t, buf.String(), `"series"`)

	got, err := DecodeJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, ds.Split(), got)
}

func TestJSON_Ragged(t *testing.T) {
	doc := `{"series": [[[1, 2], [3, 4], [5, 6]], [[7, 8]]]}`
	ds, err := DecodeJSON(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, 3, ds[0].Len)
	assert.Equal(t, 1, ds[1].Len)
	assert.Equal(t, 2, ds[1].Dim)
}

func TestJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"syntax", `{"series": [`, ErrMalformed},
		{"type", `{"series": "x"}`, ErrMalformed},
		{"no series", `{}`, ErrEmpty},
		{"empty series", `{"series": [[]]}`, ErrEmpty},
		{"empty step", `{"series": [[[]]]}`, ErrEmpty},
		{"ragged step", `{"series": [[[1, 2], [3]]]}`, ErrRagged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestWire_BatchRoundTrip(t *testing.T) {
	s := sample(t)[0]
	data, err := MarshalBatch(s)
	require.NoError(t, err)

	got, err := UnmarshalBatch(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	_, err = MarshalBatch(softdtw.Series{Data: []float64{1}, Batch: 1, Len: 2, Dim: 1})
	assert.ErrorIs(t, err, softdtw.ErrBadShape)
}

func TestWire_DatasetRoundTrip(t *testing.T) {
	ds := sample(t)
	data, err := MarshalDataset(ds)
	require.NoError(t, err)

	got, err := UnmarshalDataset(data)
	require.NoError(t, err)
	assert.Equal(t, ds, got)
}

// TestWire_UnpackedAndUnknownFields decodes a message written field by field
// the way another protobuf encoder might.
func TestWire_UnpackedAndUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 9, protowire.BytesType) // unknown
	b = protowire.AppendString(b, "ignored")
	b = protowire.AppendTag(b, fieldDim, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)
	for _, v := range []float64{3, 4} {
		b = protowire.AppendTag(b, fieldData, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(v))
	}
	b = protowire.AppendTag(b, fieldLen, protowire.VarintType)
	b = protowire.AppendVarint(b, 2)
	b = protowire.AppendTag(b, fieldBatch, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)

	s, err := UnmarshalBatch(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, s.Data)
	assert.Equal(t, 2, s.Len)
}

func TestWire_Errors(t *testing.T) {
	full, err := MarshalBatch(sample(t)[1])
	require.NoError(t, err)

	_, err = UnmarshalBatch(full[:len(full)-3])
	assert.ErrorIs(t, err, ErrMalformed, "truncated")

	// Shape claims more values than are present; the last batch field wins.
	b := append([]byte(nil), full...)
	b = protowire.AppendTag(b, fieldBatch, protowire.VarintType)
	b = protowire.AppendVarint(b, 2)
	_, err = UnmarshalBatch(b)
	assert.ErrorIs(t, err, softdtw.ErrBadShape)

	assert.ErrorIs(t, err, ErrMalformed)

	// 2^21 * 2^21 * 2^22 wraps to zero in int, matching an empty data field.
	var wrap []byte
	for _, f := range []struct {
		num protowire.Number
		v   uint64
	}{{fieldBatch, 1 << 21}, {fieldLen, 1 << 21}, {fieldDim, 1 << 22}} {
		wrap = protowire.AppendTag(wrap, f.num, protowire.VarintType)
		wrap = protowire.AppendVarint(wrap, f.v)
	}
	_, err = UnmarshalBatch(wrap)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.ErrorIs(t, err, softdtw.ErrBadShape)
	_, err = UnmarshalBatch(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	var odd []byte
	odd = protowire.AppendTag(odd, fieldData, protowire.BytesType)
	odd = protowire.AppendBytes(odd, []byte{1, 2, 3})
	_, err = UnmarshalBatch(odd)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = UnmarshalDataset(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	ds, err := MarshalDataset(sample(t))
	require.NoError(t, err)
	_, err = UnmarshalDataset(ds[:len(ds)-1])
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFiles_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	ds := sample(t)

	for _, name := range []string{"data.json", "data.pb"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteFile(path, ds))

			got, err := ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, ds.Count(), got.Count())
			assert.Equal(t, ds.Split(), got.Split())
		})
	}

	assert.ErrorIs(t, WriteFile(filepath.Join(dir, "data.txt"), ds), ErrUnknownFormat)
	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestEncodeDecode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Encode(&buf, Format(3), sample(t)), ErrUnknownFormat)
	_, err := Decode(&buf, Format(3))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

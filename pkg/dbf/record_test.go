package dbf

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openOneRecord builds a single-record table and decodes it.
func openOneRecord(t *testing.T, version byte, fields []testField, values [][]byte, opts Options) *Record {
	t.Helper()
	raw := record(false, fields, values...)
	table, err := Open(buildDBF(version, fields, [][]byte{raw}), nil, opts)
	require.NoError(t, err)

	records, err := table.ReadBatch(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	return records[0]
}

func TestDecodeCharacter(t *testing.T) {
	fields := []testField{{name: "NAME", typ: 'C', size: 10}}

	rec := openOneRecord(t, 0x03, fields, [][]byte{text("  bob   ", 10)}, Options{})
	// Only trailing spaces are trimmed.
	assert.Equal(t, "  bob", rec.Fields["NAME"])

	rec = openOneRecord(t, 0x03, fields, [][]byte{text("", 10)}, Options{})
	assert.Equal(t, "", rec.Fields["NAME"])
}

func TestDecodeNumeric(t *testing.T) {
	testCases := []struct {
		name     string
		typ      byte
		decimals byte
		cell     []byte
		want     interface{}
	}{
		{name: "integer numeric", typ: 'N', cell: num("1234", 8), want: int64(1234)},
		{name: "negative numeric", typ: 'N', cell: num("-56", 8), want: int64(-56)},
		{name: "decimal numeric", typ: 'N', decimals: 2, cell: num("12.50", 8), want: 12.50},
		{name: "float type acts like numeric", typ: 'F', decimals: 2, cell: num("3.14", 8), want: 3.14},
		{name: "empty is zero", typ: 'N', cell: num("", 8), want: int64(0)},
		{name: "garbage is zero", typ: 'N', cell: num("x?y", 8), want: int64(0)},
		{name: "undeclared decimal point", typ: 'N', cell: num("7.25", 8), want: 7.25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fields := []testField{{name: "VAL", typ: tc.typ, size: 8, decimals: tc.decimals}}
			rec := openOneRecord(t, 0x03, fields, [][]byte{tc.cell}, Options{})
			assert.Equal(t, tc.want, rec.Fields["VAL"])
		})
	}
}

func TestDecodeLogical(t *testing.T) {
	testCases := []struct {
		cell byte
		want interface{}
	}{
		{'T', true}, {'t', true}, {'Y', true}, {'y', true},
		{'F', false}, {'f', false}, {'N', false}, {'n', false},
		{'?', nil}, {' ', nil},
	}

	fields := []testField{{name: "OK", typ: 'L', size: 1}}
	for _, tc := range testCases {
		rec := openOneRecord(t, 0x03, fields, [][]byte{{tc.cell}}, Options{})
		assert.Equal(t, tc.want, rec.Fields["OK"], "cell %q", tc.cell)
	}
}

func TestDecodeDate(t *testing.T) {
	fields := []testField{{name: "BORN", typ: 'D', size: 8}}

	rec := openOneRecord(t, 0x03, fields, [][]byte{text("19830412", 8)}, Options{})
	assert.Equal(t, time.Date(1983, 4, 12, 0, 0, 0, 0, time.UTC), rec.Fields["BORN"])

	rec = openOneRecord(t, 0x03, fields, [][]byte{text("", 8)}, Options{})
	assert.Nil(t, rec.Fields["BORN"])
}

func TestDecodeDateTime(t *testing.T) {
	fields := []testField{{name: "TS", typ: 'T', size: 8}}

	cell := make([]byte, 8)
	binary.LittleEndian.PutUint32(cell[0:4], 2451545)  // Julian day of 2000-01-01
	binary.LittleEndian.PutUint32(cell[4:8], 43200000) // noon
	rec := openOneRecord(t, 0x30, fields, [][]byte{cell}, Options{})
	assert.Equal(t, time.Date(2000, 1, 1, 12, 0, 0, int(time.Millisecond), time.UTC), rec.Fields["TS"])

	rec = openOneRecord(t, 0x30, fields, [][]byte{text("", 8)}, Options{})
	assert.Nil(t, rec.Fields["TS"])
}

func TestDecodeBinaryTypes(t *testing.T) {
	fields := []testField{
		{name: "DBL", typ: 'B', size: 8},
		{name: "INT", typ: 'I', size: 4},
		{name: "CUR", typ: 'Y', size: 8},
	}

	dbl := make([]byte, 8)
	binary.LittleEndian.PutUint64(dbl, math.Float64bits(-2.75))
	ival := make([]byte, 4)
	ivalSigned := int32(-42)
	binary.LittleEndian.PutUint32(ival, uint32(ivalSigned))
	cur := make([]byte, 8)
	binary.LittleEndian.PutUint64(cur, uint64(int64(12345678)))

	rec := openOneRecord(t, 0x30, fields, [][]byte{dbl, ival, cur}, Options{})
	assert.Equal(t, -2.75, rec.Fields["DBL"])
	assert.Equal(t, int32(-42), rec.Fields["INT"])
	assert.Equal(t, 1234.5678, rec.Fields["CUR"])
}

func TestDecodeUnsupportedType(t *testing.T) {
	fields := []testField{
		{name: "NAME", typ: 'C', size: 5},
		{name: "WEIRD", typ: 'Q', size: 3},
	}
	raw := record(false, fields, text("bob", 5), text("xyz", 3))
	data := buildDBF(0x03, fields, [][]byte{raw})

	// Strict mode rejects the descriptor at open time.
	var formatErr *FormatError
	_, err := Open(data, nil, Options{})
	require.ErrorAs(t, err, &formatErr)

	// Loose mode opens, decodes the rest and omits the field.
	table, err := Open(data, nil, Options{Mode: ModeLoose})
	require.NoError(t, err)
	records, err := table.ReadBatch(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "bob", records[0].Fields["NAME"])
	_, present := records[0].Fields["WEIRD"]
	assert.False(t, present)
}

func TestDecodeFieldUnsupportedTypeStrict(t *testing.T) {
	// The decoder's own default arm, for descriptors that slip past open
	// (strict validation covers only known dialects).
	d := &recordDecoder{mode: ModeStrict}
	_, err := d.decodeField(FieldDescriptor{Name: "X", Type: 'Q', Size: 3}, []byte("abc"))

	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "X", typeErr.Field)
}

func TestDecodeMemoWithoutBuffer(t *testing.T) {
	fields := []testField{{name: "NOTES", typ: 'M', size: 10}}
	raw := record(false, fields, num("1", 10))
	data := buildDBF(0x83, fields, [][]byte{raw})

	table, err := Open(data, nil, Options{})
	require.NoError(t, err)
	var memoErr *MemoError
	_, err = table.ReadBatch(1)
	require.ErrorAs(t, err, &memoErr)

	table, err = Open(data, nil, Options{Mode: ModeLoose})
	require.NoError(t, err)
	records, err := table.ReadBatch(1)
	require.NoError(t, err)
	assert.Nil(t, records[0].Fields["NOTES"])
}

func TestDecodeMemoNullPointers(t *testing.T) {
	fields := []testField{{name: "NOTES", typ: 'M', size: 10}}
	memo := buildDBase3Memo(map[int][]byte{1: []byte("hello")})

	for _, cell := range [][]byte{num("0", 10), text("", 10), text("abc", 10)} {
		raw := record(false, fields, cell)
		table, err := Open(buildDBF(0x83, fields, [][]byte{raw}), memo, Options{})
		require.NoError(t, err)
		records, err := table.ReadBatch(1)
		require.NoError(t, err)
		assert.Nil(t, records[0].Fields["NOTES"], "cell %q", cell)
	}
}

func TestDeletedMarkerIsOutOfBand(t *testing.T) {
	// A real field named "Deleted" must not collide with the marker.
	fields := []testField{{name: "Deleted", typ: 'C', size: 5}}
	raw := record(true, fields, text("yes", 5))
	table, err := Open(buildDBF(0x03, fields, [][]byte{raw}), nil, Options{IncludeDeleted: true})
	require.NoError(t, err)

	records, err := table.ReadBatch(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Deleted)
	assert.Equal(t, "yes", records[0].Fields["Deleted"])
}

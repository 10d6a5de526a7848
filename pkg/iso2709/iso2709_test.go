package iso2709

import (
	"testing"

	"github.com/bgrewell/marc-kit/pkg/encoding"
	"github.com/bgrewell/marc-kit/pkg/options"
	"github.com/bgrewell/marc-kit/pkg/record"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *record.Record {
	return &record.Record{
		Leader: record.NewLeader(),
		ControlFields: []record.ControlField{
			{Tag: "001", Value: "ocn123"},
		},
		DataFields: []record.DataField{
			{
				Tag: "245", Ind1: '1', Ind2: '0',
				Subfields: []record.Subfield{
					{Code: 'a', Value: "Hello "},
					{Code: 'b', Value: "world"},
				},
			},
		},
	}
}

func TestSerializeMatchesDirectoryAndDataAreaLayout(t *testing.T) {
	out, err := serializeOne(sampleRecord(), encoding.Utf8)
	require.NoError(t, err)
	require.Equal(t, 75, len(out))

	directory := out[24:49]
	require.Equal(t, "001000700000", string(directory[0:12]))
	require.Equal(t, "245001800007", string(directory[12:24]))
	require.Equal(t, byte(0x1E), directory[24])

	dataArea := out[49:]
	require.Equal(t, "ocn123\x1e10\x1faHello \x1fbworld\x1e\x1d", string(dataArea))
}

func TestSerializeParseRoundTrip(t *testing.T) {
	rec := sampleRecord()
	out, err := Serialize([]*record.Record{rec}, encoding.Utf8, options.Default())
	require.NoError(t, err)

	parsed, err := Parse(out, encoding.Utf8, options.Default())
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	require.Equal(t, rec.ControlFields, parsed[0].ControlFields)
	require.Equal(t, rec.DataFields, parsed[0].DataFields)
	require.Equal(t, 75, parsed[0].Leader.RecordLength)
	require.Equal(t, 49, parsed[0].Leader.BaseAddressOfData)
}

func TestParseStopsOnTrailingShortPadding(t *testing.T) {
	out, err := Serialize([]*record.Record{sampleRecord()}, encoding.Utf8, options.Default())
	require.NoError(t, err)
	out = append(out, 0, 0, 0) // fewer than 24 trailing bytes

	parsed, err := Parse(out, encoding.Utf8, options.Default())
	require.NoError(t, err)
	require.Len(t, parsed, 1)
}

func TestParseRejectsBaseAddressEscapingRecordImage(t *testing.T) {
	out, err := Serialize([]*record.Record{sampleRecord()}, encoding.Utf8, options.Default())
	require.NoError(t, err)

	// Claim a base address of data that lands past the end of the record image.
	corrupted := append([]byte(nil), out...)
	copy(corrupted[12:17], []byte("99999"))

	_, err = Parse(corrupted, encoding.Utf8, options.Default())
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "unexpected_end", pe.Kind)
}

func TestParseRejectsFieldEscapingDataArea(t *testing.T) {
	out, err := Serialize([]*record.Record{sampleRecord()}, encoding.Utf8, options.Default())
	require.NoError(t, err)

	// Corrupt the 001 directory entry's length to claim more bytes than exist.
	corrupted := append([]byte(nil), out...)
	copy(corrupted[24+3:24+7], []byte("9999"))

	_, err = Parse(corrupted, encoding.Utf8, options.Default())
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestSerializeRejectsOverlongTag(t *testing.T) {
	rec := &record.Record{
		Leader:        record.NewLeader(),
		ControlFields: []record.ControlField{{Tag: "0001", Value: "x"}},
	}
	_, err := Serialize([]*record.Record{rec}, encoding.Utf8, options.Default())
	require.Error(t, err)
	var se *SerializeError
	require.ErrorAs(t, err, &se)
}

func TestSerializeRejectsUnprintableSubfieldCode(t *testing.T) {
	rec := &record.Record{
		Leader: record.NewLeader(),
		DataFields: []record.DataField{
			{Tag: "245", Ind1: ' ', Ind2: ' ', Subfields: []record.Subfield{{Code: 0x01, Value: "x"}}},
		},
	}
	_, err := Serialize([]*record.Record{rec}, encoding.Utf8, options.Default())
	require.Error(t, err)
	var se *SerializeError
	require.ErrorAs(t, err, &se)
}

func TestEmptyFieldImageIsSkipped(t *testing.T) {
	// A directory entry with a zero length points at an empty field image,
	// which spec.md §4.3 says must be silently skipped, not stored.
	rec := &record.Record{Leader: record.NewLeader(), ControlFields: []record.ControlField{{Tag: "001", Value: "x"}}}
	out, err := Serialize([]*record.Record{rec}, encoding.Utf8, options.Default())
	require.NoError(t, err)

	corrupted := append([]byte(nil), out...)
	copy(corrupted[24+3:24+7], []byte("0000")) // zero out the 001 entry's length

	parsed, err := Parse(corrupted, encoding.Utf8, options.Default())
	require.NoError(t, err)
	require.Empty(t, parsed[0].ControlFields)
}

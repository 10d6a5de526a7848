package marc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func scenarioS1Record() *Record {
	return &Record{
		Leader: NewLeader(),
		ControlFields: []ControlField{
			{Tag: "001", Value: "ocn123"},
		},
		DataFields: []DataField{
			{
				Tag: "245", Ind1: '1', Ind2: '0',
				Subfields: []Subfield{
					{Code: 'a', Value: "Hello "},
					{Code: 'b', Value: "world"},
				},
			},
		},
	}
}

// TestScenarioS1 exercises the worked binary example from spec.md §8.
func TestScenarioS1(t *testing.T) {
	out, err := EncodeOne(scenarioS1Record(), Dialect{Family: Marc21Binary, Encoding: Utf8})
	require.NoError(t, err)
	require.Equal(t, 75, len(out))
	require.Equal(t, "ocn123\x1e10\x1faHello \x1fbworld\x1e\x1d", string(out[49:]))

	rec, err := DecodeOne(out, Dialect{Family: Marc21Binary, Encoding: Utf8})
	require.NoError(t, err)
	require.Equal(t, scenarioS1Record().ControlFields, rec.ControlFields)
	require.Equal(t, scenarioS1Record().DataFields, rec.DataFields)
}

// TestScenarioS3 encodes S1's record to marcxml.
func TestScenarioS3(t *testing.T) {
	xml, err := EncodeXML([]*Record{scenarioS1Record()})
	require.NoError(t, err)
	require.Contains(t, xml, `<controlfield tag="001">ocn123</controlfield>`)
	require.Contains(t, xml, `<datafield tag="245" ind1="1" ind2="0">`)
	require.Contains(t, xml, `<subfield code="a">Hello </subfield>`)
	require.Contains(t, xml, `<subfield code="b">world</subfield>`)
}

func TestUnimarcAndMarc21ShareTheBinaryCodec(t *testing.T) {
	rec := scenarioS1Record()
	marc21, err := EncodeOne(rec, Dialect{Family: Marc21Binary, Encoding: Utf8})
	require.NoError(t, err)
	unimarc, err := EncodeOne(rec, Dialect{Family: UnimarcBinary, Encoding: Utf8})
	require.NoError(t, err)
	require.Equal(t, marc21, unimarc)
}

func TestDecodeFromReaderReadsToEnd(t *testing.T) {
	out, err := EncodeOne(scenarioS1Record(), Dialect{Family: Marc21Binary, Encoding: Utf8})
	require.NoError(t, err)

	recs, err := DecodeFromReader(bytes.NewReader(out), Dialect{Family: Marc21Binary, Encoding: Utf8})
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestEncodeToWriter(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeToWriter(&buf, []*Record{scenarioS1Record()}, Dialect{Family: Marc21Binary, Encoding: Utf8})
	require.NoError(t, err)
	require.Equal(t, 75, buf.Len())
}

func TestBadLeaderErrorType(t *testing.T) {
	_, err := DecodeOne(make([]byte, 10), Marc21Default())
	require.Error(t, err)
	var bl *BadLeader
	require.ErrorAs(t, err, &bl)
}

func TestUnexpectedEndErrorType(t *testing.T) {
	out, err := EncodeOne(scenarioS1Record(), Marc21Default())
	require.NoError(t, err)

	// Claim a base address of data that lands past the end of the record image.
	corrupted := append([]byte(nil), out...)
	copy(corrupted[12:17], []byte("99999"))

	_, err = DecodeOne(corrupted, Marc21Default())
	require.Error(t, err)
	var ue *UnexpectedEnd
	require.ErrorAs(t, err, &ue)
}

func TestParseFamilyAndEncodingFallbacks(t *testing.T) {
	require.Equal(t, UnimarcBinary, ParseFamily("UNIMARC-Binary"))
	require.Equal(t, Marc21Binary, ParseFamily("not-a-real-family"))
	require.Equal(t, Iso8859_5, ParseEncoding("ISO8859-5"))
	require.Equal(t, Utf8, ParseEncoding("not-a-real-encoding"))
}

package record

import (
	"fmt"

	"github.com/bgrewell/marc-kit/pkg/helpers"
	"github.com/bgrewell/marc-kit/pkg/validation"
)

const leaderLength = 24

// BadLeader indicates a 24-byte leader that is malformed: wrong length or
// a non-digit byte in a digit-only position. The root package translates
// this into *marc.BadLeader at the façade boundary.
type BadLeader struct {
	Reason string
}

func (e *BadLeader) Error() string {
	return fmt.Sprintf("record: bad leader: %s", e.Reason)
}

// Leader is the fixed 24-byte MARC record header described in spec.md §3.
// Digit-packed positions are stored as ints; single-character positions are
// stored as bytes so that round-tripping preserves whatever value the
// producer put there, per spec.md §9 ("store single-char positions as
// characters, digit positions as integers").
type Leader struct {
	RecordLength                  int
	RecordStatus                  byte
	RecordType                    byte
	BibliographicLevel            byte
	TypeOfControl                 byte
	CharacterCodingScheme         byte
	IndicatorCount                int
	SubfieldCodeCount             int
	BaseAddressOfData             int
	EncodingLevel                 byte
	DescriptiveCatalogingForm     byte
	MultipartResourceRecordLevel  byte
	LengthOfLengthOfFieldPortion  int
	LengthOfStartCharPosPortion   int
	LengthOfImplementationDefined int
	Undefined                     byte
}

// NewLeader returns a Leader with the canonical values spec.md §3
// describes: indicator and subfield-code counts of 2, a four-digit
// field-length portion and a five-digit starting-position portion, and no
// implementation-defined portion.
func NewLeader() Leader {
	return Leader{
		RecordStatus:                  ' ',
		RecordType:                    ' ',
		BibliographicLevel:            ' ',
		TypeOfControl:                 ' ',
		CharacterCodingScheme:         ' ',
		IndicatorCount:                2,
		SubfieldCodeCount:             2,
		EncodingLevel:                 ' ',
		DescriptiveCatalogingForm:     ' ',
		MultipartResourceRecordLevel:  ' ',
		LengthOfLengthOfFieldPortion:  4,
		LengthOfStartCharPosPortion:   5,
		LengthOfImplementationDefined: 0,
		Undefined:                     ' ',
	}
}

// LeaderFromBytes parses a 24-byte leader. It fails with *BadLeader if the
// slice is not exactly 24 bytes or if any digit-only position holds a
// non-digit byte.
func LeaderFromBytes(data []byte) (Leader, error) {
	if len(data) != leaderLength {
		return Leader{}, &BadLeader{Reason: "leader must be 24 bytes"}
	}

	recordLength := string(data[0:5])
	if !validation.AllDigits(recordLength) {
		return Leader{}, &BadLeader{Reason: "record length is not all digits"}
	}
	baseAddress := string(data[12:17])
	if !validation.AllDigits(baseAddress) {
		return Leader{}, &BadLeader{Reason: "base address of data is not all digits"}
	}
	for _, pos := range []int{10, 11, 20, 21, 22} {
		if data[pos] < '0' || data[pos] > '9' {
			return Leader{}, &BadLeader{Reason: "digit position is not a digit"}
		}
	}

	return Leader{
		RecordLength:                  decodeDecimal(recordLength),
		RecordStatus:                  data[5],
		RecordType:                    data[6],
		BibliographicLevel:            data[7],
		TypeOfControl:                 data[8],
		CharacterCodingScheme:         data[9],
		IndicatorCount:                int(data[10] - '0'),
		SubfieldCodeCount:             int(data[11] - '0'),
		BaseAddressOfData:             decodeDecimal(baseAddress),
		EncodingLevel:                 data[17],
		DescriptiveCatalogingForm:     data[18],
		MultipartResourceRecordLevel:  data[19],
		LengthOfLengthOfFieldPortion:  int(data[20] - '0'),
		LengthOfStartCharPosPortion:   int(data[21] - '0'),
		LengthOfImplementationDefined: int(data[22] - '0'),
		Undefined:                     data[23],
	}, nil
}

// Bytes serializes the leader back to its 24-byte wire form, zero-padding
// the record-length and base-address positions to five digits each.
func (l Leader) Bytes() []byte {
	b := make([]byte, leaderLength)
	copy(b[0:5], helpers.PadDigits(l.RecordLength, 5))
	b[5] = l.RecordStatus
	b[6] = l.RecordType
	b[7] = l.BibliographicLevel
	b[8] = l.TypeOfControl
	b[9] = l.CharacterCodingScheme
	b[10] = '0' + byte(l.IndicatorCount)
	b[11] = '0' + byte(l.SubfieldCodeCount)
	copy(b[12:17], helpers.PadDigits(l.BaseAddressOfData, 5))
	b[17] = l.EncodingLevel
	b[18] = l.DescriptiveCatalogingForm
	b[19] = l.MultipartResourceRecordLevel
	b[20] = '0' + byte(l.LengthOfLengthOfFieldPortion)
	b[21] = '0' + byte(l.LengthOfStartCharPosPortion)
	b[22] = '0' + byte(l.LengthOfImplementationDefined)
	b[23] = l.Undefined
	return b
}

func decodeDecimal(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// Package iso2709 implements the binary MARC envelope (C3/C4 in the design):
// the packed, self-referential format where a leader, a directory of
// (tag, length, start) triples, and a data area must all agree bit-exactly.
// MARC21 and UNIMARC binary route through this package identically; only
// the encoding varies, never the family.
package iso2709

import (
	"fmt"

	"github.com/bgrewell/marc-kit/pkg/encoding"
	"github.com/bgrewell/marc-kit/pkg/helpers"
	"github.com/bgrewell/marc-kit/pkg/options"
	"github.com/bgrewell/marc-kit/pkg/record"
	"github.com/bgrewell/marc-kit/pkg/validation"
)

const (
	leaderLength      = 24
	directoryEntryLen = 12
	fieldTerminator   = 0x1E
	subfieldDelim     = 0x1F
	recordTerminator  = 0x1D
)

// ParseError is the iso2709 package's own error taxonomy, translated by the
// root façade into the public *marc.BadLeader / *marc.BadRecordLength /
// *marc.BadField types so this package never imports the root package.
type ParseError struct {
	Kind      string // "leader", "record_length", "unexpected_end", "field"
	Tag       string
	Reason    string
	Declared  int
	Available int
}

func (e *ParseError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("iso2709: %s: %q: %s", e.Kind, e.Tag, e.Reason)
	}
	return fmt.Sprintf("iso2709: %s: %s", e.Kind, e.Reason)
}

// SerializeError indicates a record that cannot be encoded: a tag whose
// length is not three characters, or a computed length/offset that escapes
// the digit width the directory reserves for it.
type SerializeError struct {
	Tag    string
	Reason string
}

func (e *SerializeError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("iso2709: bad record, tag %q: %s", e.Tag, e.Reason)
	}
	return fmt.Sprintf("iso2709: bad record: %s", e.Reason)
}

// Parse decodes a byte buffer holding one or more concatenated binary
// records into an ordered slice, per spec.md §4.3.
func Parse(data []byte, enc encoding.Encoding, opts options.Options) ([]*record.Record, error) {
	var records []*record.Record
	offset := 0
	for {
		remaining := len(data) - offset
		if remaining < leaderLength {
			opts.Logger.Debug("trailing bytes shorter than a leader, stopping", "remaining", remaining)
			break
		}

		leader, err := record.LeaderFromBytes(data[offset : offset+leaderLength])
		if err != nil {
			return nil, &ParseError{Kind: "leader", Reason: err.Error()}
		}

		L := leader.RecordLength
		if L == 0 || L > remaining {
			return nil, &ParseError{Kind: "record_length", Reason: fmt.Sprintf("declared %d, %d bytes available", L, remaining), Declared: L, Available: remaining}
		}

		image := data[offset : offset+L]
		rec, err := parseRecordImage(image, leader, enc, opts)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		offset += L
	}
	return records, nil
}

// ParseOne decodes exactly the first record in data and ignores any bytes
// that follow it.
func ParseOne(data []byte, enc encoding.Encoding, opts options.Options) (*record.Record, error) {
	if len(data) < leaderLength {
		return nil, &ParseError{Kind: "leader", Reason: "fewer than 24 bytes available"}
	}
	leader, err := record.LeaderFromBytes(data[:leaderLength])
	if err != nil {
		return nil, &ParseError{Kind: "leader", Reason: err.Error()}
	}
	L := leader.RecordLength
	if L == 0 || L > len(data) {
		return nil, &ParseError{Kind: "record_length", Reason: fmt.Sprintf("declared %d, %d bytes available", L, len(data)), Declared: L, Available: len(data)}
	}
	return parseRecordImage(data[:L], leader, enc, opts)
}

func parseRecordImage(image []byte, leader record.Leader, enc encoding.Encoding, opts options.Options) (*record.Record, error) {
	B := leader.BaseAddressOfData
	if B < leaderLength || B > len(image) {
		return nil, &ParseError{Kind: "unexpected_end", Reason: "base address of data escapes the record image"}
	}
	directory := image[leaderLength:B]
	dataArea := image[B:]

	entryCount := len(directory) / directoryEntryLen
	if len(directory) > 0 {
		last := directory[len(directory)-1]
		if last == fieldTerminator {
			entryCount = (len(directory) - 1) / directoryEntryLen
		} else if !opts.LenientDirectory {
			return nil, &ParseError{Kind: "field", Reason: "directory missing field terminator before data area"}
		}
	}

	rec := &record.Record{Leader: leader}
	for i := 0; i < entryCount; i++ {
		entry := directory[i*directoryEntryLen : (i+1)*directoryEntryLen]
		tag := string(entry[0:3])
		lengthStr := string(entry[3:7])
		startStr := string(entry[7:12])
		if !validation.AllDigits(lengthStr) || !validation.AllDigits(startStr) {
			return nil, &ParseError{Kind: "field", Tag: tag, Reason: "directory length/start is not all digits"}
		}
		length := decodeDecimal(lengthStr)
		start := decodeDecimal(startStr)

		if start < 0 || length < 0 || start+length > len(dataArea) {
			return nil, &ParseError{Kind: "field", Tag: tag, Reason: "field image escapes the data area"}
		}
		if length == 0 {
			continue // empty field images are skipped, per spec.md §4.3 edge cases
		}

		fieldImage := dataArea[start : start+length]
		if fieldImage[len(fieldImage)-1] != fieldTerminator {
			return nil, &ParseError{Kind: "field", Tag: tag, Reason: "field image does not end in a field terminator"}
		}
		fieldImage = fieldImage[:len(fieldImage)-1]

		if validation.IsControlFieldTag(tag) {
			value, err := encoding.DecodeBytes(fieldImage, enc)
			if err != nil {
				return nil, err
			}
			rec.ControlFields = append(rec.ControlFields, record.ControlField{Tag: tag, Value: value})
			continue
		}

		if len(fieldImage) < 2 {
			return nil, &ParseError{Kind: "field", Tag: tag, Reason: "data field shorter than its two indicators"}
		}
		df := record.DataField{Tag: tag, Ind1: fieldImage[0], Ind2: fieldImage[1]}
		rest := fieldImage[2:]
		for len(rest) > 0 {
			if rest[0] != subfieldDelim {
				return nil, &ParseError{Kind: "field", Tag: tag, Reason: "subfield stream does not start with a delimiter"}
			}
			if len(rest) < 2 {
				return nil, &ParseError{Kind: "field", Tag: tag, Reason: "subfield delimiter with no code byte"}
			}
			code := rest[1]
			rest = rest[2:]
			end := indexByte(rest, subfieldDelim)
			var valueBytes []byte
			if end == -1 {
				valueBytes = rest
				rest = nil
			} else {
				valueBytes = rest[:end]
				rest = rest[end:]
			}
			value, err := encoding.DecodeBytes(valueBytes, enc)
			if err != nil {
				return nil, err
			}
			df.Subfields = append(df.Subfields, record.Subfield{Code: code, Value: value})
		}
		rec.DataFields = append(rec.DataFields, df)
	}

	opts.Logger.Trace("parsed record", "control_fields", len(rec.ControlFields), "data_fields", len(rec.DataFields))
	return rec, nil
}

// Serialize encodes a sequence of records into the binary envelope with a
// consistent directory and leader, per spec.md §4.4.
func Serialize(records []*record.Record, enc encoding.Encoding, opts options.Options) ([]byte, error) {
	var out []byte
	for i, rec := range records {
		image, err := serializeOne(rec, enc)
		if err != nil {
			opts.Logger.Error(err, "failed to serialize record", "index", i)
			return nil, err
		}
		opts.Logger.Trace("serialized record", "index", i, "bytes", len(image))
		out = append(out, image...)
	}
	return out, nil
}

type directoryTriple struct {
	tag    string
	start  int
	length int
}

func serializeOne(rec *record.Record, enc encoding.Encoding) ([]byte, error) {
	var dataArea []byte
	var triples []directoryTriple

	for _, cf := range rec.ControlFields {
		if !validation.ValidTag(cf.Tag) {
			return nil, &SerializeError{Tag: cf.Tag, Reason: "tag must be exactly 3 ASCII characters"}
		}
		start := len(dataArea)
		valueBytes, err := encoding.EncodeText(cf.Value, enc)
		if err != nil {
			return nil, err
		}
		dataArea = append(dataArea, valueBytes...)
		dataArea = append(dataArea, fieldTerminator)
		triples = append(triples, directoryTriple{tag: cf.Tag, start: start, length: len(dataArea) - start})
	}

	for _, df := range rec.DataFields {
		if !validation.ValidTag(df.Tag) {
			return nil, &SerializeError{Tag: df.Tag, Reason: "tag must be exactly 3 ASCII characters"}
		}
		start := len(dataArea)
		dataArea = append(dataArea, df.Ind1, df.Ind2)
		for _, sf := range df.Subfields {
			if !validation.ValidSubfieldCode(sf.Code) {
				return nil, &SerializeError{Tag: df.Tag, Reason: fmt.Sprintf("subfield code 0x%02x is not printable ASCII", sf.Code)}
			}
			valueBytes, err := encoding.EncodeText(sf.Value, enc)
			if err != nil {
				return nil, err
			}
			dataArea = append(dataArea, subfieldDelim, sf.Code)
			dataArea = append(dataArea, valueBytes...)
		}
		dataArea = append(dataArea, fieldTerminator)
		triples = append(triples, directoryTriple{tag: df.Tag, start: start, length: len(dataArea) - start})
	}

	dataArea = append(dataArea, recordTerminator)

	var directory []byte
	for _, t := range triples {
		if !helpers.FitsDigits(t.length, 4) {
			return nil, &SerializeError{Tag: t.tag, Reason: fmt.Sprintf("field length %d does not fit in 4 digits", t.length)}
		}
		if !helpers.FitsDigits(t.start, 5) {
			return nil, &SerializeError{Tag: t.tag, Reason: fmt.Sprintf("field start %d does not fit in 5 digits", t.start)}
		}
		directory = append(directory, []byte(t.tag)...)
		directory = append(directory, []byte(helpers.PadDigits(t.length, 4))...)
		directory = append(directory, []byte(helpers.PadDigits(t.start, 5))...)
	}
	directory = append(directory, fieldTerminator)

	base := leaderLength + len(directory)
	total := base + len(dataArea)
	if !helpers.FitsDigits(total, 5) {
		return nil, &SerializeError{Reason: fmt.Sprintf("total record length %d does not fit in 5 digits", total)}
	}
	if !helpers.FitsDigits(base, 5) {
		return nil, &SerializeError{Reason: fmt.Sprintf("base address %d does not fit in 5 digits", base)}
	}

	leader := rec.Leader
	leader.RecordLength = total
	leader.BaseAddressOfData = base

	out := make([]byte, 0, total)
	out = append(out, leader.Bytes()...)
	out = append(out, directory...)
	out = append(out, dataArea...)
	return out, nil
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

func decodeDecimal(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}


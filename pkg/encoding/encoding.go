// Package encoding is the bridge between the legacy 8-bit byte encodings a
// MARC field payload may declare and Unicode text (C1 in the design). It
// never touches the record model; it converts raw byte runs to and from
// Go strings.
package encoding

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Encoding selects the byte encoding a MARC field payload is declared to
// use. MARCXML payloads are always Utf8.
type Encoding int

const (
	Utf8 Encoding = iota
	Marc8
	Iso8859_1
	Iso8859_2
	Iso8859_5
	Iso8859_7
	Iso8859_15
	Iso5426
)

// String returns the canonical lower-case name of the encoding.
func (e Encoding) String() string {
	switch e {
	case Utf8:
		return "utf8"
	case Marc8:
		return "marc8"
	case Iso8859_1:
		return "iso8859-1"
	case Iso8859_2:
		return "iso8859-2"
	case Iso8859_5:
		return "iso8859-5"
	case Iso8859_7:
		return "iso8859-7"
	case Iso8859_15:
		return "iso8859-15"
	case Iso5426:
		return "iso5426"
	default:
		return "unknown"
	}
}

// Failure is returned when a byte or code point cannot be mapped under the
// declared encoding. The codec wraps it as *marc.BadEncoding.
type Failure struct {
	Encoding Encoding
	Position int
	Reason   string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("encoding: %s: position %d: %s", f.Encoding, f.Position, f.Reason)
}

// charmaps pairs each ISO-8859 Encoding with the golang.org/x/text charmap
// that implements it, the same charmap.*-backed approach the pack's DICOM
// character-set and terminal-encoding examples use for legacy 8-bit
// character sets (see DESIGN.md).
var charmaps = map[Encoding]*charmap.Charmap{
	Iso8859_1:  charmap.ISO8859_1,
	Iso8859_2:  charmap.ISO8859_2,
	Iso8859_5:  charmap.ISO8859_5,
	Iso8859_7:  charmap.ISO8859_7,
	Iso8859_15: charmap.ISO8859_15,
}

// DecodeBytes converts a byte run, assumed to be the payload of a field
// value, into Unicode text under the declared encoding.
func DecodeBytes(data []byte, enc Encoding) (string, error) {
	switch enc {
	case Utf8:
		return string(data), nil
	case Marc8:
		// Falls back to ISO-8859-1, a documented loss of fidelity for
		// records using the MARC-8 graphical extensions, per spec.md §4.1.
		return decodeCharmap(data, charmap.ISO8859_1, Marc8)
	case Iso5426:
		return decodeIso5426(data)
	default:
		cm, ok := charmaps[enc]
		if !ok {
			return "", &Failure{Encoding: enc, Position: 0, Reason: "unknown encoding"}
		}
		return decodeCharmap(data, cm, enc)
	}
}

// EncodeText converts Unicode text into bytes under the declared encoding.
func EncodeText(text string, enc Encoding) ([]byte, error) {
	switch enc {
	case Utf8:
		return []byte(text), nil
	case Marc8:
		return encodeCharmap(text, charmap.ISO8859_1, Marc8)
	case Iso5426:
		return encodeIso5426(text)
	default:
		cm, ok := charmaps[enc]
		if !ok {
			return nil, &Failure{Encoding: enc, Position: 0, Reason: "unknown encoding"}
		}
		return encodeCharmap(text, cm, enc)
	}
}

// decodeCharmap decodes one byte at a time so that an unmappable byte can
// be reported with its exact position, rather than only a bulk transform
// error. The charmap decoder turns an unassigned byte into U+FFFD instead
// of failing, so that output is treated as unmappable too.
func decodeCharmap(data []byte, cm *charmap.Charmap, enc Encoding) (string, error) {
	var sb strings.Builder
	dec := cm.NewDecoder()
	for i, b := range data {
		s, err := dec.Bytes([]byte{b})
		if err != nil || string(s) == "�" {
			return "", &Failure{Encoding: enc, Position: i, Reason: fmt.Sprintf("unmappable byte 0x%02x", b)}
		}
		sb.Write(s)
	}
	return sb.String(), nil
}

// encodeCharmap encodes one rune at a time so that an unmappable code
// point can be reported with its byte position in text.
func encodeCharmap(text string, cm *charmap.Charmap, enc Encoding) ([]byte, error) {
	out := make([]byte, 0, len(text))
	enco := cm.NewEncoder()
	for i, r := range text {
		b, err := enco.Bytes([]byte(string(r)))
		if err != nil {
			return nil, &Failure{Encoding: enc, Position: i, Reason: fmt.Sprintf("unmappable rune %U", r)}
		}
		out = append(out, b...)
	}
	return out, nil
}

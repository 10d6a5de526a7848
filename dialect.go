package marc

import (
	"strings"

	"github.com/bgrewell/marc-kit/pkg/encoding"
)

// Family selects the wire format: the two ISO 2709 binary dialects, or
// MARCXML.
type Family int

const (
	Marc21Binary Family = iota
	UnimarcBinary
	MarcXML
)

// String returns the canonical lower-case family name.
func (f Family) String() string {
	switch f {
	case Marc21Binary:
		return "marc21-binary"
	case UnimarcBinary:
		return "unimarc-binary"
	case MarcXML:
		return "marcxml"
	default:
		return "unknown"
	}
}

// ParseFamily parses a family name case-insensitively. An unrecognized
// name falls back to Marc21Binary, mirroring the permissive From<&str>
// conversions in the original Rust source's format module.
func ParseFamily(s string) Family {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unimarc-binary", "unimarc":
		return UnimarcBinary
	case "marcxml", "marc-xml":
		return MarcXML
	default:
		return Marc21Binary
	}
}

// Encoding re-exports pkg/encoding.Encoding so callers never need to import
// the subpackage directly.
type Encoding = encoding.Encoding

const (
	Utf8       = encoding.Utf8
	Marc8      = encoding.Marc8
	Iso8859_1  = encoding.Iso8859_1
	Iso8859_2  = encoding.Iso8859_2
	Iso8859_5  = encoding.Iso8859_5
	Iso8859_7  = encoding.Iso8859_7
	Iso8859_15 = encoding.Iso8859_15
	Iso5426    = encoding.Iso5426
)

// ParseEncoding parses an encoding name case-insensitively, falling back to
// Utf8 for an unrecognized name.
func ParseEncoding(s string) Encoding {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "marc8", "marc-8":
		return Marc8
	case "iso8859-1", "iso-8859-1":
		return Iso8859_1
	case "iso8859-2", "iso-8859-2":
		return Iso8859_2
	case "iso8859-5", "iso-8859-5":
		return Iso8859_5
	case "iso8859-7", "iso-8859-7":
		return Iso8859_7
	case "iso8859-15", "iso-8859-15":
		return Iso8859_15
	case "iso5426":
		return Iso5426
	default:
		return Utf8
	}
}

// Dialect pairs a wire format with a text encoding. MARCXML always carries
// Utf8; marc21-binary defaults to Marc8 and unimarc-binary defaults to
// Utf8 when built with the Default constructors below, per spec.md §3.
type Dialect struct {
	Family   Family
	Encoding Encoding
}

// Marc21Default returns the (marc21-binary, marc8) dialect.
func Marc21Default() Dialect {
	return Dialect{Family: Marc21Binary, Encoding: Marc8}
}

// UnimarcDefault returns the (unimarc-binary, utf8) dialect.
func UnimarcDefault() Dialect {
	return Dialect{Family: UnimarcBinary, Encoding: Utf8}
}

// MarcXMLDialect returns the (marcxml, utf8) dialect. MARCXML's encoding is
// always utf8; any Encoding passed elsewhere is ignored for this family.
func MarcXMLDialect() Dialect {
	return Dialect{Family: MarcXML, Encoding: Utf8}
}

package marc

import (
	"io"

	"github.com/bgrewell/marc-kit/pkg/iso2709"
	"github.com/bgrewell/marc-kit/pkg/marcxml"
	"github.com/bgrewell/marc-kit/pkg/options"
)

// Encode serializes records under dialect into the wire format, per
// spec.md §4.4 (binary families) or §4.6 (marcxml).
func Encode(records []*Record, dialect Dialect, opts ...Option) ([]byte, error) {
	o := options.Apply(opts...)
	switch dialect.Family {
	case MarcXML:
		b, err := marcxml.Serialize(records)
		return b, translateError(err)
	default:
		b, err := iso2709.Serialize(records, dialect.Encoding, o)
		return b, translateError(err)
	}
}

// EncodeOne serializes a single record.
func EncodeOne(rec *Record, dialect Dialect, opts ...Option) ([]byte, error) {
	return Encode([]*Record{rec}, dialect, opts...)
}

// EncodeToWriter serializes records and writes the result to w.
func EncodeToWriter(w io.Writer, records []*Record, dialect Dialect, opts ...Option) error {
	b, err := Encode(records, dialect, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// EncodeXML is the MARCXML string convenience form, re-exported from
// pkg/marcxml for callers who never need a Dialect.
func EncodeXML(records []*Record, opts ...Option) (string, error) {
	return marcxml.EncodeXML(records)
}

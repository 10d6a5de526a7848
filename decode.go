package marc

import (
	"io"

	"github.com/bgrewell/marc-kit/pkg/encoding"
	"github.com/bgrewell/marc-kit/pkg/iso2709"
	"github.com/bgrewell/marc-kit/pkg/marcxml"
	"github.com/bgrewell/marc-kit/pkg/options"
	"github.com/bgrewell/marc-kit/pkg/record"
)

// Option configures a Decode or Encode call: the logger used for
// diagnostics, and whether the ISO 2709 parser tolerates a missing
// directory field terminator.
type Option = options.Option

// WithLogger sets the logr.Logger a Decode/Encode call uses for Trace and
// Debug diagnostics as it walks a record.
var WithLogger = options.WithLogger

// WithLenientDirectory allows the ISO 2709 parser to accept a directory
// missing its field-terminator byte immediately before the data area.
var WithLenientDirectory = options.WithLenientDirectory

// Decode parses data under dialect into an ordered slice of records. Both
// binary families (marc21-binary, unimarc-binary) route to the identical
// ISO 2709 codec; only Dialect.Encoding affects how field payloads decode.
func Decode(data []byte, dialect Dialect, opts ...Option) ([]*Record, error) {
	o := options.Apply(opts...)
	switch dialect.Family {
	case MarcXML:
		recs, err := marcxml.Parse(data)
		return recs, translateError(err)
	default:
		recs, err := iso2709.Parse(data, dialect.Encoding, o)
		return recs, translateError(err)
	}
}

// DecodeOne parses the first record in data and ignores any bytes that
// follow it. For marcxml, this is the first <record> in document order.
func DecodeOne(data []byte, dialect Dialect, opts ...Option) (*Record, error) {
	o := options.Apply(opts...)
	switch dialect.Family {
	case MarcXML:
		recs, err := marcxml.Parse(data)
		if err != nil {
			return nil, translateError(err)
		}
		if len(recs) == 0 {
			return nil, &BadXml{Reason: "no <record> element found"}
		}
		return recs[0], nil
	default:
		rec, err := iso2709.ParseOne(data, dialect.Encoding, o)
		return rec, translateError(err)
	}
}

// DecodeFromReader reads r to end and decodes the result, per spec.md §6's
// streaming convenience form.
func DecodeFromReader(r io.Reader, dialect Dialect, opts ...Option) ([]*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &UnexpectedEnd{Reason: err.Error()}
	}
	return Decode(data, dialect, opts...)
}

// DecodeXML is the MARCXML string convenience form, re-exported from
// pkg/marcxml for callers who never need a Dialect.
func DecodeXML(s string, opts ...Option) ([]*Record, error) {
	return marcxml.DecodeXML(s)
}

// translateError maps the subpackages' internal error taxonomy onto the
// root package's public *BadLeader / *BadRecordLength / *BadField /
// *BadEncoding / *BadXml / *UnexpectedEnd types, so callers only ever see
// the taxonomy spec.md §7 describes regardless of which codec raised it.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *record.BadLeader:
		return &BadLeader{Reason: e.Reason}
	case *iso2709.ParseError:
		switch e.Kind {
		case "leader":
			return &BadLeader{Reason: e.Reason}
		case "record_length":
			return &BadRecordLength{Declared: e.Declared, Available: e.Available}
		case "unexpected_end":
			return &UnexpectedEnd{Reason: e.Reason}
		default:
			return &BadField{Tag: e.Tag, Reason: e.Reason}
		}
	case *iso2709.SerializeError:
		return &BadRecord{Tag: e.Tag, Reason: e.Reason}
	case *marcxml.Error:
		return &BadXml{Reason: e.Reason}
	case *encoding.Failure:
		return newBadEncoding(e)
	default:
		return err
	}
}

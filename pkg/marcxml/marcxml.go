// Package marcxml implements the MARCXML slim-schema XML serialization
// (C5/C6 in the design): an event-driven reader and writer built on
// encoding/xml, mirroring the start/text/end event loop the reference
// source runs over quick_xml.
package marcxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bgrewell/marc-kit/pkg/record"
)

const namespace = "http://www.loc.gov/MARC21/slim"

// Error indicates malformed MARCXML or a missing required attribute.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("marcxml: %s", e.Reason)
}

// localName strips any namespace prefix the decoder reports separately,
// leaving just the element's bare name, so the parser accepts the slim
// namespace with or without an explicit prefix.
func localName(n xml.Name) string {
	return n.Local
}

func attr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Parse decodes one or more <record> elements, optionally wrapped in a
// <collection>, into an ordered slice of records, per spec.md §4.5.
func Parse(data []byte) ([]*record.Record, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var records []*record.Record
	var current *record.Record
	var currentField *record.DataField
	var currentSubfieldCode byte
	var haveSubfield bool
	var text strings.Builder
	var currentTag string

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &Error{Reason: fmt.Sprintf("xml decode error: %s", err)}
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch localName(el.Name) {
			case "collection":
				// wrapper only; no state to track beyond its children.
			case "record":
				l := record.NewLeader()
				current = &record.Record{Leader: l}
			case "leader":
				text.Reset()
			case "controlfield":
				tag, ok := attr(el, "tag")
				if !ok {
					return nil, &Error{Reason: "controlfield missing tag attribute"}
				}
				currentTag = tag
				text.Reset()
			case "datafield":
				tag, ok := attr(el, "tag")
				if !ok {
					return nil, &Error{Reason: "datafield missing tag attribute"}
				}
				ind1, ok1 := attr(el, "ind1")
				ind2, ok2 := attr(el, "ind2")
				df := &record.DataField{Tag: tag, Ind1: ' ', Ind2: ' '}
				if ok1 && len(ind1) > 0 {
					df.Ind1 = ind1[0]
				}
				if ok2 && len(ind2) > 0 {
					df.Ind2 = ind2[0]
				}
				currentField = df
			case "subfield":
				code, ok := attr(el, "code")
				if !ok || len(code) == 0 {
					return nil, &Error{Reason: "subfield missing code attribute"}
				}
				currentSubfieldCode = code[0]
				haveSubfield = true
				text.Reset()
			}
		case xml.CharData:
			text.Write(el)
		case xml.EndElement:
			switch localName(el.Name) {
			case "record":
				if current != nil {
					records = append(records, current)
					current = nil
				}
			case "leader":
				if current == nil {
					break
				}
				s := text.String()
				if len(s) < 24 {
					return nil, &record.BadLeader{Reason: "leader element shorter than 24 characters"}
				}
				l, err := record.LeaderFromBytes([]byte(s[:24]))
				if err != nil {
					return nil, err
				}
				current.Leader = l
			case "controlfield":
				if current != nil {
					current.ControlFields = append(current.ControlFields, record.ControlField{Tag: currentTag, Value: text.String()})
				}
				currentTag = ""
			case "datafield":
				if current != nil && currentField != nil {
					current.DataFields = append(current.DataFields, *currentField)
				}
				currentField = nil
			case "subfield":
				if currentField != nil && haveSubfield {
					currentField.Subfields = append(currentField.Subfields, record.Subfield{Code: currentSubfieldCode, Value: text.String()})
				}
				haveSubfield = false
			}
		}
	}

	return records, nil
}

// Serialize emits MARCXML for one or more records. A single record becomes
// a bare <record> element; more than one is wrapped in <collection>, per
// spec.md §4.6.
func Serialize(records []*record.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")

	wrap := len(records) != 1
	if wrap {
		fmt.Fprintf(&buf, `<collection xmlns="%s">`, namespace)
	}

	for _, rec := range records {
		writeRecord(&buf, rec, wrap)
	}

	if wrap {
		buf.WriteString(`</collection>`)
	}
	return buf.Bytes(), nil
}

func writeRecord(buf *bytes.Buffer, rec *record.Record, wrapped bool) {
	if wrapped {
		buf.WriteString(`<record>`)
	} else {
		fmt.Fprintf(buf, `<record xmlns="%s">`, namespace)
	}

	fmt.Fprintf(buf, `<leader>%s</leader>`, escape(string(rec.Leader.Bytes())))

	for _, cf := range rec.ControlFields {
		fmt.Fprintf(buf, `<controlfield tag="%s">%s</controlfield>`, escape(cf.Tag), escape(cf.Value))
	}

	for _, df := range rec.DataFields {
		fmt.Fprintf(buf, `<datafield tag="%s" ind1="%s" ind2="%s">`, escape(df.Tag), escape(string(df.Ind1)), escape(string(df.Ind2)))
		for _, sf := range df.Subfields {
			fmt.Fprintf(buf, `<subfield code="%s">%s</subfield>`, escape(string(sf.Code)), escape(sf.Value))
		}
		buf.WriteString(`</datafield>`)
	}

	buf.WriteString(`</record>`)
}

// DecodeXML is the string convenience form of Parse, for callers holding
// MARCXML as text rather than bytes.
func DecodeXML(s string) ([]*record.Record, error) {
	return Parse([]byte(s))
}

// EncodeXML is the string convenience form of Serialize.
func EncodeXML(records []*record.Record) (string, error) {
	b, err := Serialize(records)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

package marc

import (
	"fmt"

	"github.com/bgrewell/marc-kit/pkg/encoding"
)

// BadLeader indicates a 24-byte leader that is malformed: wrong length or
// a non-digit byte in a digit-only position.
type BadLeader struct {
	Reason string
}

func (e *BadLeader) Error() string {
	return fmt.Sprintf("marc: bad leader: %s", e.Reason)
}

// BadRecordLength indicates the leader's record-length position claims a
// length that is zero or extends beyond the available bytes.
type BadRecordLength struct {
	Declared  int
	Available int
}

func (e *BadRecordLength) Error() string {
	return fmt.Sprintf("marc: bad record length: declared %d, %d bytes available", e.Declared, e.Available)
}

// BadField indicates a directory entry that could not be parsed, or whose
// (start, length) escapes the data area.
type BadField struct {
	Tag    string
	Reason string
}

func (e *BadField) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("marc: bad field %q: %s", e.Tag, e.Reason)
	}
	return fmt.Sprintf("marc: bad field: %s", e.Reason)
}

// BadEncoding indicates C1 could not map a byte or code point under the
// declared encoding. It wraps the *encoding.Failure the codec package
// raised, preserving the offending position for diagnostics.
type BadEncoding struct {
	Encoding string
	Position int
	Reason   string
	Err      error
}

func (e *BadEncoding) Error() string {
	return fmt.Sprintf("marc: bad encoding %s at position %d: %s", e.Encoding, e.Position, e.Reason)
}

func (e *BadEncoding) Unwrap() error {
	return e.Err
}

// newBadEncoding wraps a *encoding.Failure as *BadEncoding at the façade
// boundary, keeping pkg/encoding ignorant of the root error taxonomy.
func newBadEncoding(err error) *BadEncoding {
	if f, ok := err.(*encoding.Failure); ok {
		return &BadEncoding{Encoding: f.Encoding.String(), Position: f.Position, Reason: f.Reason, Err: f}
	}
	return &BadEncoding{Reason: err.Error(), Err: err}
}

// UnexpectedEnd indicates the buffer ended mid-structure, e.g. before the
// data area promised by the leader's base address.
type UnexpectedEnd struct {
	Reason string
}

func (e *UnexpectedEnd) Error() string {
	return fmt.Sprintf("marc: unexpected end of input: %s", e.Reason)
}

// BadXml indicates malformed MARCXML or a missing required attribute.
type BadXml struct {
	Reason string
}

func (e *BadXml) Error() string {
	return fmt.Sprintf("marc: bad xml: %s", e.Reason)
}

// BadRecord indicates a record that cannot be serialized: a tag whose
// length is not exactly three characters, or a computed length/offset that
// exceeds the digit width the directory reserves for it.
type BadRecord struct {
	Tag    string
	Reason string
}

func (e *BadRecord) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("marc: bad record, tag %q: %s", e.Tag, e.Reason)
	}
	return fmt.Sprintf("marc: bad record: %s", e.Reason)
}

package marc

import "github.com/bgrewell/marc-kit/pkg/record"

// Record, Leader, ControlField, DataField, and Subfield are re-exported
// from pkg/record so that callers never need to import the subpackage
// directly, the same way the teacher's root package re-exports its
// descriptor types for its callers.
type (
	Record       = record.Record
	Leader       = record.Leader
	ControlField = record.ControlField
	DataField    = record.DataField
	Subfield     = record.Subfield
)

// NewLeader returns a Leader with the canonical field widths spec.md §3
// describes.
func NewLeader() Leader {
	return record.NewLeader()
}

// LeaderFromBytes parses a 24-byte leader, translating a malformed leader
// into *BadLeader.
func LeaderFromBytes(data []byte) (Leader, error) {
	l, err := record.LeaderFromBytes(data)
	if err != nil {
		if bl, ok := err.(*record.BadLeader); ok {
			return Leader{}, &BadLeader{Reason: bl.Reason}
		}
		return Leader{}, err
	}
	return l, nil
}

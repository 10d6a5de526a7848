package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeaderRoundTrip(t *testing.T) {
	t.Run("canonical defaults round-trip through bytes", func(t *testing.T) {
		l := NewLeader()
		l.RecordLength = 75
		l.BaseAddressOfData = 49
		l.RecordStatus = 'n'
		l.RecordType = 'a'

		b := l.Bytes()
		require.Len(t, b, leaderLength)

		parsed, err := LeaderFromBytes(b)
		require.NoError(t, err)
		require.Equal(t, l, parsed)
	})

	t.Run("zero-pads record length and base address to five digits", func(t *testing.T) {
		l := NewLeader()
		l.RecordLength = 75
		l.BaseAddressOfData = 49
		b := l.Bytes()
		require.Equal(t, "00075", string(b[0:5]))
		require.Equal(t, "00049", string(b[12:17]))
	})

	t.Run("rejects a leader that is not 24 bytes", func(t *testing.T) {
		_, err := LeaderFromBytes(make([]byte, 23))
		require.Error(t, err)
		var bl *BadLeader
		require.ErrorAs(t, err, &bl)
	})

	t.Run("rejects a non-digit byte in a digit-only position", func(t *testing.T) {
		l := NewLeader()
		b := l.Bytes()
		b[10] = 'x' // indicator count position
		_, err := LeaderFromBytes(b)
		require.Error(t, err)
	})
}

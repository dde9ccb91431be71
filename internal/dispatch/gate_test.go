package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateBoundaryInclusive(t *testing.T) {
	gate, err := NewGate("America/New_York", 8)
	require.NoError(t, err)

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	before := time.Date(2025, 6, 10, 7, 59, 59, 0, loc)
	at := time.Date(2025, 6, 10, 8, 0, 0, 0, loc)

	assert.False(t, gate.DispatchAllowed(before))
	assert.True(t, gate.DispatchAllowed(at))
}

func TestGateTracksCivilTimeAcrossDST(t *testing.T) {
	gate, err := NewGate("America/New_York", 8)
	require.NoError(t, err)

	// US Eastern switches to daylight time on 2025-03-09. The threshold
	// is a civil hour, so the allowed boundary moves with local time:
	// 13:00 UTC the day before the transition, 12:00 UTC the day after.
	estBefore := time.Date(2025, 3, 8, 12, 59, 59, 0, time.UTC) // 07:59:59 EST
	estAt := time.Date(2025, 3, 8, 13, 0, 0, 0, time.UTC)       // 08:00:00 EST
	assert.False(t, gate.DispatchAllowed(estBefore))
	assert.True(t, gate.DispatchAllowed(estAt))

	edtBefore := time.Date(2025, 3, 10, 11, 59, 59, 0, time.UTC) // 07:59:59 EDT
	edtAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)       // 08:00:00 EDT
	assert.False(t, gate.DispatchAllowed(edtBefore))
	assert.True(t, gate.DispatchAllowed(edtAt))
}

func TestGateCallerZoneIrrelevant(t *testing.T) {
	gate, err := NewGate("America/New_York", 8)
	require.NoError(t, err)

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 21:00 in Tokyo is 07:00 in New York (EST): denied even though the
	// caller's local evening is well past the threshold.
	assert.False(t, gate.DispatchAllowed(time.Date(2025, 1, 15, 21, 0, 0, 0, tokyo)))
}

func TestNewGateRejectsBadInputs(t *testing.T) {
	_, err := NewGate("Not/AZone", 8)
	assert.Error(t, err)

	_, err = NewGate("America/New_York", 24)
	assert.Error(t, err)
}

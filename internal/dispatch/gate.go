package dispatch

import (
	"fmt"
	"time"
)

// Gate is the organization-wide quiet-hours embargo. It is a pure
// predicate over wall-clock time and applies to the whole batch, not to
// individual messages.
type Gate struct {
	loc           *time.Location
	thresholdHour int
}

// NewGate loads the reference IANA zone. The threshold is a civil hour in
// that zone, so daylight-saving shifts move the embargo with local time.
func NewGate(zone string, thresholdHour int) (*Gate, error) {
	if thresholdHour < 0 || thresholdHour > 23 {
		return nil, fmt.Errorf("threshold hour must be between 0 and 23, got %d", thresholdHour)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", zone, err)
	}
	return &Gate{loc: loc, thresholdHour: thresholdHour}, nil
}

// DispatchAllowed reports whether outbound sending is permitted at now.
// The boundary is inclusive: at exactly the threshold hour dispatch is
// allowed.
func (g *Gate) DispatchAllowed(now time.Time) bool {
	return now.In(g.loc).Hour() >= g.thresholdHour
}

// Zone returns the embargo's reference zone name, for log and summary
// output.
func (g *Gate) Zone() string {
	return g.loc.String()
}

// Location returns the reference zone itself, shared with components that
// must agree on civil time (usage periods roll over in the same zone).
func (g *Gate) Location() *time.Location {
	return g.loc
}

// ThresholdHour returns the civil hour before which dispatch is denied.
func (g *Gate) ThresholdHour() int {
	return g.thresholdHour
}

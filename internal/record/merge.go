package record

import (
	"fmt"
	"strings"
)

// Placement decides where an imported log goes relative to the current one.
type Placement int

const (
	// PlacementAuto picks front or back by comparing the boundary records.
	PlacementAuto Placement = iota
	// PlacementFront makes the imported records the newest.
	PlacementFront
	// PlacementBack makes the imported records the oldest.
	PlacementBack
)

func (p Placement) String() string {
	switch p {
	case PlacementFront:
		return "front"
	case PlacementBack:
		return "back"
	}
	return "auto"
}

// ParsePlacement accepts "front", "back" and "auto".
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front":
		return PlacementFront, nil
	case "back":
		return PlacementBack, nil
	case "auto", "", "decide":
		return PlacementAuto, nil
	}
	return 0, fmt.Errorf("unknown placement %q (want front, back or auto)", s)
}

// Merge joins two newest-first logs. An empty existing log yields incoming
// unchanged. PlacementAuto only compares the oldest existing check-in with
// the newest incoming check-in: if the existing log starts later, incoming
// is older and goes to the back, otherwise to the front. The two logs are
// assumed not to interleave. The result never aliases either input.
func Merge(existing, incoming []Record, p Placement) []Record {
	if len(existing) == 0 {
		return concat(incoming)
	}
	if len(incoming) == 0 {
		return concat(existing)
	}

	switch p {
	case PlacementFront:
		return concat(incoming, existing)
	case PlacementBack:
		return concat(existing, incoming)
	}

	if existing[len(existing)-1].CheckIn > incoming[0].CheckIn {
		return concat(existing, incoming)
	}
	return concat(incoming, existing)
}

func concat(logs ...[]Record) []Record {
	n := 0
	for _, l := range logs {
		n += len(l)
	}
	out := make([]Record, 0, n)
	for _, l := range logs {
		out = append(out, l...)
	}
	return out
}

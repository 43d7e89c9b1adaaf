package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Zone is one of the fixed parking pricing tiers.
type Zone int

const (
	ZoneA Zone = iota
	ZoneB
	ZoneC
)

// Zones lists every defined zone in tier order.
func Zones() []Zone {
	return []Zone{ZoneA, ZoneB, ZoneC}
}

// Valid reports whether z is one of the defined tiers.
func (z Zone) Valid() bool {
	return z >= ZoneA && z <= ZoneC
}

func (z Zone) String() string {
	switch z {
	case ZoneA:
		return "A"
	case ZoneB:
		return "B"
	case ZoneC:
		return "C"
	default:
		return fmt.Sprintf("Zone(%d)", int(z))
	}
}

// ParseZone accepts a tier letter ("A", "b") or its numeric value ("0").
func ParseZone(s string) (Zone, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return ZoneA, nil
	case "B":
		return ZoneB, nil
	case "C":
		return ZoneC, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !Zone(n).Valid() {
		return 0, ErrInvalidZone
	}
	return Zone(n), nil
}

// ZonePrice is the current per-minute rate for a zone, in the smallest
// currency unit.
type ZonePrice struct {
	Zone           Zone
	PricePerMinute int64
}

// Package zone tracks which workspace zones the cursor occupies.
package zone

import (
	"errors"
	"fmt"
)

// Zone is a named region of the workspace. Zones may overlap; Home sits
// inside HomeArea.
type Zone int

const (
	Target Zone = iota
	Home
	HomeArea
)

// All lists every zone in evaluation order.
var All = []Zone{Target, Home, HomeArea}

// ErrUnknownZone is returned for tags that name no zone.
var ErrUnknownZone = errors.New("unknown zone tag")

var names = map[Zone]string{
	Target:   "Target",
	Home:     "Home",
	HomeArea: "HomeArea",
}

func (z Zone) String() string {
	if n, ok := names[z]; ok {
		return n
	}
	return fmt.Sprintf("Zone(%d)", int(z))
}

// ParseZone maps a collider tag onto a Zone. Tags are case-sensitive.
func ParseZone(tag string) (Zone, error) {
	for z, n := range names {
		if n == tag {
			return z, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownZone, tag)
}

// Flags is the occupancy of each zone.
type Flags struct {
	InTarget   bool
	InHome     bool
	InHomeArea bool
}

// In reports the occupancy of z.
func (f Flags) In(z Zone) bool {
	switch z {
	case Target:
		return f.InTarget
	case Home:
		return f.InHome
	case HomeArea:
		return f.InHomeArea
	}
	return false
}

func (f *Flags) set(z Zone, v bool) {
	switch z {
	case Target:
		f.InTarget = v
	case Home:
		f.InHome = v
	case HomeArea:
		f.InHomeArea = v
	}
}

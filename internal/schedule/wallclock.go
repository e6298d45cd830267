package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// WallClock is a minute-resolution time of day: minutes since midnight,
// 0..1439. Times are shop-local; there is no date or timezone component.
type WallClock int

const MinutesPerDay = 1440

// ParseWallClock parses an "HH:MM" string.
func ParseWallClock(s string) (WallClock, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	w := WallClock(h*60 + m)
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return w, nil
}

func (w WallClock) Valid() bool {
	return w >= 0 && w < MinutesPerDay
}

// String formats the value as "HH:MM".
func (w WallClock) String() string {
	return fmt.Sprintf("%02d:%02d", int(w)/60, int(w)%60)
}

// MarshalJSON encodes the value as its "HH:MM" form, matching the wire
// format used by the booking page.
func (w WallClock) MarshalJSON() ([]byte, error) {
	return []byte(`"` + w.String() + `"`), nil
}

func (w *WallClock) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseWallClock(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

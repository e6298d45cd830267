package slots

import (
	"reflect"
	"testing"

	"github.com/Jojo-brz/saas-barbearia/internal/interval"
	"github.com/Jojo-brz/saas-barbearia/internal/schedule"
)

func wc(s string) schedule.WallClock {
	w, err := schedule.ParseWallClock(s)
	if err != nil {
		panic(err)
	}
	return w
}

func wcp(s string) *schedule.WallClock {
	w := wc(s)
	return &w
}

func openDay(open, close string) schedule.DayRule {
	return schedule.DayRule{Active: true, Open: wc(open), Close: wc(close)}
}

func booked(pairs ...string) []interval.Interval {
	if len(pairs)%2 != 0 {
		panic("booked wants start/end pairs")
	}
	var set []interval.Interval
	for i := 0; i < len(pairs); i += 2 {
		set = append(set, interval.Interval{Start: wc(pairs[i]), End: wc(pairs[i+1])})
	}
	return set
}

func availability(grid []Slot) map[string]bool {
	m := make(map[string]bool, len(grid))
	for _, s := range grid {
		m[s.Time.String()] = s.Available
	}
	return m
}

func TestGenerateClosedDay(t *testing.T) {
	grid := Generate(schedule.DayRule{Active: false}, 30, 30, nil)
	if len(grid) != 0 {
		t.Errorf("closed day should yield no slots, got %d", len(grid))
	}
}

func TestGenerateEmptyDayFullyAvailable(t *testing.T) {
	grid := Generate(openDay("10:00", "12:00"), 30, 30, nil)

	if len(grid) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(grid))
	}
	for _, s := range grid {
		if !s.Available {
			t.Errorf("slot %s should be available on an empty day", s.Time)
		}
	}
}

func TestGenerateClosingTimeSpillover(t *testing.T) {
	// 60-minute service, shop closes 18:00: 17:00 is the last candidate
	// offered, 17:30 is excluded entirely rather than shown disabled.
	grid := Generate(openDay("09:00", "18:00"), 60, 30, nil)

	last := grid[len(grid)-1]
	if last.Time != wc("17:00") {
		t.Errorf("last slot should be 17:00, got %s", last.Time)
	}
	for _, s := range grid {
		if int(s.Time)+60 > int(wc("18:00")) {
			t.Errorf("slot %s spills past closing time", s.Time)
		}
	}
}

func TestGenerateDurationLongerThanDay(t *testing.T) {
	grid := Generate(openDay("09:00", "10:00"), 90, 30, nil)
	if len(grid) != 0 {
		t.Errorf("service longer than the open window should yield no slots, got %d", len(grid))
	}
}

func TestGenerateWithExistingBooking(t *testing.T) {
	// Monday 09:00-18:00, no break, 30-minute grid, 60-minute service,
	// one booking 10:00-11:00.
	grid := Generate(openDay("09:00", "18:00"), 60, 30, booked("10:00", "11:00"))

	if len(grid) != 17 {
		t.Fatalf("expected 17 slots (09:00..17:00), got %d", len(grid))
	}

	avail := availability(grid)
	expect := map[string]bool{
		"09:00": true,  // ends 10:00, touching the booking: no overlap
		"09:30": false, // ends 10:30, overlaps
		"10:00": false,
		"10:30": false, // ends 11:30, overlaps
		"11:00": true,  // booking freed the grid again
		"17:00": true,  // ends exactly at close
	}
	for timeStr, want := range expect {
		got, ok := avail[timeStr]
		if !ok {
			t.Fatalf("slot %s missing from grid", timeStr)
		}
		if got != want {
			t.Errorf("slot %s: available=%v, want %v", timeStr, got, want)
		}
	}
}

func TestGenerateBreakWindow(t *testing.T) {
	rule := openDay("09:00", "18:00")
	rule.BreakStart = wcp("12:00")
	rule.BreakEnd = wcp("13:00")

	grid := Generate(rule, 30, 30, nil)
	avail := availability(grid)

	// Touching the break boundary is fine; landing inside it is not.
	expect := map[string]bool{
		"11:30": true,  // ends 12:00
		"12:00": false, // inside the break
		"12:30": false,
		"13:00": true, // break is half-open
	}
	for timeStr, want := range expect {
		if avail[timeStr] != want {
			t.Errorf("slot %s: available=%v, want %v", timeStr, avail[timeStr], want)
		}
	}

	// Break slots are shown disabled, not dropped.
	if _, ok := avail["12:00"]; !ok {
		t.Error("break slot should be present in the grid")
	}
}

func TestGenerateAscendingAndPure(t *testing.T) {
	set := booked("10:00", "10:45")
	first := Generate(openDay("09:00", "12:00"), 45, 15, set)
	second := Generate(openDay("09:00", "12:00"), 45, 15, set)

	for i := 1; i < len(first); i++ {
		if first[i].Time <= first[i-1].Time {
			t.Errorf("grid out of order at index %d", i)
		}
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must yield identical grids")
	}
}

func TestGenerateStepGranularity(t *testing.T) {
	for _, step := range []int{10, 15, 30} {
		grid := Generate(openDay("09:00", "10:00"), 10, step, nil)
		want := 0
		for m := 540; m < 600; m += step {
			if m+10 <= 600 {
				want++
			}
		}
		if len(grid) != want {
			t.Errorf("step %d: expected %d slots, got %d", step, want, len(grid))
		}
	}
}

func TestGenerateDefaultsStep(t *testing.T) {
	grid := Generate(openDay("09:00", "12:00"), 30, 0, nil)
	if len(grid) != 6 {
		t.Errorf("zero step should fall back to %d minutes, got %d slots", DefaultStepMinutes, len(grid))
	}
}

package usecase

import (
	"strconv"
	"strings"
	"time"
)

// clockRange is a daily time-of-day interval in minutes since midnight.
type clockRange struct {
	start int
	end   int
}

// parseTimeslots parses a comma-separated "HH:MM-HH:MM" list. Malformed
// entries are skipped silently; doctors edit this field free-form and a bad
// fragment must not take their valid ranges down with it.
func parseTimeslots(s string) []clockRange {
	var ranges []clockRange
	for _, slot := range strings.Split(s, ",") {
		parts := strings.SplitN(slot, "-", 2)
		if len(parts) != 2 {
			continue
		}
		start, okStart := parseClock(strings.TrimSpace(parts[0]))
		end, okEnd := parseClock(strings.TrimSpace(parts[1]))
		if !okStart || !okEnd {
			continue
		}
		ranges = append(ranges, clockRange{start: start, end: end})
	}
	return ranges
}

func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// isWithinTimeslots converts the candidate instant to civil time in loc and
// tests time-of-day membership in any declared range. Bounds are inclusive on
// both ends.
func isWithinTimeslots(timeslots string, at time.Time, loc *time.Location) bool {
	local := at.In(loc)
	minutes := local.Hour()*60 + local.Minute()

	for _, r := range parseTimeslots(timeslots) {
		if r.start <= minutes && minutes <= r.end {
			return true
		}
	}
	return false
}

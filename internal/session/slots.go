package session

import (
	"strings"
	"time"
)

// TimeSlots is the fixed catalog of bookable intervals. Labels are stored
// verbatim on session rows and in slot counters.
var TimeSlots = []string{
	"7:30 AM - 8:30 AM",
	"9:00 AM - 10:00 AM",
	"10:30 AM - 11:30 AM",
	"2:30 PM - 3:30 PM",
	"4:00 PM - 5:00 PM",
	"7:30 PM - 8:30 PM",
}

func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotStartTime combines the slot's start-of-interval clock time with the
// given calendar date.
func SlotStartTime(slot string, date time.Time) (time.Time, error) {
	startLabel, _, _ := strings.Cut(slot, " - ")
	start, err := time.Parse("3:04 PM", strings.TrimSpace(startLabel))
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		start.Hour(), start.Minute(), 0, 0,
		date.Location(),
	), nil
}

// IsTimeSlotPast reports whether the slot's start has already elapsed for the
// given date relative to now. Unparseable labels are treated as past so they
// can never be booked.
func IsTimeSlotPast(slot string, date, now time.Time) bool {
	start, err := SlotStartTime(slot, date)
	if err != nil {
		return true
	}
	return start.Before(now)
}

// WorkoutTypeFor maps a weekday to the gym's rotating workout program. Total
// over time.Weekday; the label is informational only.
func WorkoutTypeFor(day time.Weekday) string {
	switch day {
	case time.Monday:
		return "Chest"
	case time.Tuesday:
		return "Back"
	case time.Wednesday:
		return "Legs"
	case time.Thursday:
		return "Shoulders"
	case time.Friday:
		return "Arms"
	case time.Saturday:
		return "Core"
	default:
		return "Full Body"
	}
}

// DayBounds returns the inclusive start and end of the calendar day holding t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

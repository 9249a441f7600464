package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidTimeSlot(t *testing.T) {
	for _, slot := range TimeSlots {
		assert.True(t, IsValidTimeSlot(slot), slot)
	}

	assert.False(t, IsValidTimeSlot("8:00 AM - 9:00 AM"))
	assert.False(t, IsValidTimeSlot(""))
	assert.False(t, IsValidTimeSlot("7:30 AM"))
}

func TestSlotStartTime(t *testing.T) {
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	start, err := SlotStartTime("7:30 AM - 8:30 AM", date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 16, 7, 30, 0, 0, time.UTC), start)

	start, err = SlotStartTime("7:30 PM - 8:30 PM", date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 16, 19, 30, 0, 0, time.UTC), start)

	_, err = SlotStartTime("not a slot", date)
	assert.Error(t, err)
}

func TestIsTimeSlotPast(t *testing.T) {
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		slot string
		now  time.Time
		past bool
	}{
		{
			name: "before slot start",
			slot: "9:00 AM - 10:00 AM",
			now:  time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC),
			past: false,
		},
		{
			name: "after slot start",
			slot: "9:00 AM - 10:00 AM",
			now:  time.Date(2025, 6, 16, 9, 1, 0, 0, time.UTC),
			past: true,
		},
		{
			name: "previous day already over",
			slot: "7:30 PM - 8:30 PM",
			now:  time.Date(2025, 6, 17, 6, 0, 0, 0, time.UTC),
			past: true,
		},
		{
			name: "next day not started",
			slot: "7:30 AM - 8:30 AM",
			now:  time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC),
			past: false,
		},
		{
			name: "garbage label treated as past",
			slot: "lunch break",
			now:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			past: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.past, IsTimeSlotPast(tt.slot, date, tt.now))
		})
	}
}

func TestWorkoutTypeFor(t *testing.T) {
	assert.Equal(t, "Chest", WorkoutTypeFor(time.Monday))
	assert.Equal(t, "Back", WorkoutTypeFor(time.Tuesday))
	assert.Equal(t, "Legs", WorkoutTypeFor(time.Wednesday))
	assert.Equal(t, "Shoulders", WorkoutTypeFor(time.Thursday))
	assert.Equal(t, "Arms", WorkoutTypeFor(time.Friday))
	assert.Equal(t, "Core", WorkoutTypeFor(time.Saturday))
	assert.Equal(t, "Full Body", WorkoutTypeFor(time.Sunday))
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(time.Date(2025, 6, 16, 14, 45, 12, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 16, 23, 59, 59, 999000000, time.UTC), end)
}

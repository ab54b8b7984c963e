package schedule

import (
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testPolicy = Policy{
	SlotDuration:    30 * time.Minute,
	MinimumLeadTime: time.Hour,
	NoShowLock:      10 * time.Minute,
}

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func appointment(status string, start, end time.Time) models.Appointment {
	return models.Appointment{
		StartDateTime: start,
		EndDateTime:   end,
		Status:        status,
	}
}

func TestResolveDaySlots(t *testing.T) {
	loc := newYork(t)
	// 2024-06-10 is a Monday.
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)

	t.Run("expands template entries for the matching weekday", func(t *testing.T) {
		template := map[string][]string{
			"Monday":  {"09:00", "09:30", "14:00"},
			"Tuesday": {"10:00"},
		}

		slots := ResolveDaySlots(template, monday, loc, testPolicy.SlotDuration)

		require.Len(t, slots, 3)
		assert.Equal(t, time.Date(2024, 6, 10, 9, 0, 0, 0, loc), slots[0].Start)
		assert.Equal(t, time.Date(2024, 6, 10, 9, 30, 0, 0, loc), slots[0].End)
		assert.Equal(t, time.Date(2024, 6, 10, 9, 30, 0, 0, loc), slots[1].Start)
		assert.Equal(t, time.Date(2024, 6, 10, 14, 0, 0, 0, loc), slots[2].Start)
	})

	t.Run("empty weekday yields no slots", func(t *testing.T) {
		template := map[string][]string{"Monday": {}}
		assert.Empty(t, ResolveDaySlots(template, monday, loc, testPolicy.SlotDuration))
	})

	t.Run("missing weekday yields no slots", func(t *testing.T) {
		template := map[string][]string{"Tuesday": {"09:00"}}
		assert.Empty(t, ResolveDaySlots(template, monday, loc, testPolicy.SlotDuration))
	})

	t.Run("skips malformed entries", func(t *testing.T) {
		template := map[string][]string{
			"Monday": {"9:00", "25:00", "09:70", "banana", "", "10:00"},
		}

		slots := ResolveDaySlots(template, monday, loc, testPolicy.SlotDuration)

		require.Len(t, slots, 1)
		assert.Equal(t, time.Date(2024, 6, 10, 10, 0, 0, 0, loc), slots[0].Start)
	})

	t.Run("collapses duplicates and sorts ascending", func(t *testing.T) {
		template := map[string][]string{
			"Monday": {"14:00", "09:00", "14:00", "09:30"},
		}

		slots := ResolveDaySlots(template, monday, loc, testPolicy.SlotDuration)

		require.Len(t, slots, 3)
		assert.True(t, slots[0].Start.Before(slots[1].Start))
		assert.True(t, slots[1].Start.Before(slots[2].Start))
	})

	t.Run("keeps slot ending exactly at midnight, drops one crossing it", func(t *testing.T) {
		template := map[string][]string{
			"Monday": {"23:30", "23:45"},
		}

		slots := ResolveDaySlots(template, monday, loc, testPolicy.SlotDuration)

		require.Len(t, slots, 1)
		assert.Equal(t, time.Date(2024, 6, 10, 23, 30, 0, 0, loc), slots[0].Start)
		assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, loc), slots[0].End)
	})

	t.Run("resolving twice yields identical output", func(t *testing.T) {
		template := map[string][]string{"Monday": {"11:00", "09:00", "10:00"}}

		first := ResolveDaySlots(template, monday, loc, testPolicy.SlotDuration)
		second := ResolveDaySlots(template, monday, loc, testPolicy.SlotDuration)

		assert.Equal(t, first, second)
	})
}

func TestResolveDaySlotsDST(t *testing.T) {
	loc := newYork(t)

	t.Run("spring forward keeps wall-clock times", func(t *testing.T) {
		// 2024-03-10: 02:00 EST jumps to 03:00 EDT, a 23-hour day.
		springForward := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)
		template := map[string][]string{"Sunday": {"01:30", "09:00"}}

		slots := ResolveDaySlots(template, springForward, loc, testPolicy.SlotDuration)

		require.Len(t, slots, 2)
		assert.Equal(t, "01:30", slots[0].Start.Format(constvars.TimeFormatHHMM))
		assert.Equal(t, "09:00", slots[1].Start.Format(constvars.TimeFormatHHMM))
		_, offset := slots[1].Start.Zone()
		assert.Equal(t, -4*3600, offset)
	})

	t.Run("fall back collapses entries normalized to the same instant", func(t *testing.T) {
		// 2024-11-03: 02:00 EDT falls back to 01:00 EST, a 25-hour day.
		fallBack := time.Date(2024, 11, 3, 0, 0, 0, 0, loc)
		template := map[string][]string{"Sunday": {"01:30", "09:00"}}

		slots := ResolveDaySlots(template, fallBack, loc, testPolicy.SlotDuration)

		require.Len(t, slots, 2)
		for _, slot := range slots {
			assert.Equal(t, 30*time.Minute, slot.End.Sub(slot.Start))
		}
	})
}

func TestOverlaps(t *testing.T) {
	loc := newYork(t)
	at := func(hour, minute int) time.Time {
		return time.Date(2024, 6, 10, hour, minute, 0, 0, loc)
	}

	testCases := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{"identical intervals", at(9, 0), at(9, 30), at(9, 0), at(9, 30), true},
		{"partial overlap", at(9, 0), at(9, 30), at(9, 15), at(9, 45), true},
		{"containment", at(9, 0), at(10, 0), at(9, 15), at(9, 45), true},
		{"a ends where b starts", at(9, 0), at(9, 30), at(9, 30), at(10, 0), false},
		{"b ends where a starts", at(9, 30), at(10, 0), at(9, 0), at(9, 30), false},
		{"disjoint", at(9, 0), at(9, 30), at(11, 0), at(11, 30), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
		})
	}
}

func TestAnnotate(t *testing.T) {
	loc := newYork(t)
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)
	template := map[string][]string{
		"Monday": {"09:00", "09:30", "10:00", "10:30"},
	}
	// Well before the working day so lead time never interferes.
	now := time.Date(2024, 6, 9, 12, 0, 0, 0, loc)

	resolve := func() []Slot {
		return ResolveDaySlots(template, day, loc, testPolicy.SlotDuration)
	}
	at := func(hour, minute int) time.Time {
		return time.Date(2024, 6, 10, hour, minute, 0, 0, loc)
	}

	t.Run("all free when no appointments", func(t *testing.T) {
		slots := Annotate(resolve(), nil, nil, now, testPolicy)
		for _, slot := range slots {
			assert.True(t, slot.Available)
		}
	})

	t.Run("doctor booking blocks only the overlapping slot", func(t *testing.T) {
		booked := []models.Appointment{
			appointment(constvars.AppointmentStatusUpcoming, at(9, 30), at(10, 0)),
		}

		slots := Annotate(resolve(), booked, nil, now, testPolicy)

		assert.True(t, slots[0].Available)
		assert.False(t, slots[1].Available)
		assert.True(t, slots[2].Available)
		assert.True(t, slots[3].Available)
	})

	t.Run("cancelled appointments do not block", func(t *testing.T) {
		cancelled := []models.Appointment{
			appointment(constvars.AppointmentStatusCancelled, at(9, 30), at(10, 0)),
		}

		slots := Annotate(resolve(), cancelled, nil, now, testPolicy)

		for _, slot := range slots {
			assert.True(t, slot.Available)
		}
	})

	t.Run("patient's own booking elsewhere blocks the overlapping slot", func(t *testing.T) {
		patientBooked := []models.Appointment{
			appointment(constvars.AppointmentStatusUpcoming, at(10, 0), at(10, 30)),
		}

		slots := Annotate(resolve(), nil, patientBooked, now, testPolicy)

		assert.True(t, slots[0].Available)
		assert.True(t, slots[1].Available)
		assert.False(t, slots[2].Available)
		assert.True(t, slots[3].Available)
	})

	t.Run("lead time hides slots starting within the next hour", func(t *testing.T) {
		// 61 minutes out is bookable, 45 minutes out is not.
		nearNow := at(9, 0).Add(-45 * time.Minute)

		slots := Annotate(resolve(), nil, nil, nearNow, testPolicy)

		assert.False(t, slots[0].Available)
		assert.True(t, slots[1].Available)
	})

	t.Run("slot starting exactly at the lead time boundary is hidden", func(t *testing.T) {
		boundaryNow := at(9, 0).Add(-time.Hour)

		slots := Annotate(resolve(), nil, nil, boundaryNow, testPolicy)

		assert.False(t, slots[0].Available)
	})

	t.Run("no-show lock holds for ten minutes then releases", func(t *testing.T) {
		// Marking happens the evening before, so lead time never interferes
		// with the slot being tested.
		markedAt := time.Date(2024, 6, 9, 18, 0, 0, 0, loc)
		noShow := appointment(constvars.AppointmentStatusNoShow, at(9, 0), at(9, 30))
		noShow.NoShowMarkedAt = &markedAt

		// Five minutes after marking: still locked.
		slots := Annotate(resolve(), []models.Appointment{noShow}, nil, markedAt.Add(5*time.Minute), testPolicy)
		assert.False(t, slots[0].Available)
		assert.True(t, slots[1].Available)

		// Eleven minutes after marking the lock has lapsed; the slot is free
		// again because no-show appointments do not block by themselves.
		slots = Annotate(resolve(), []models.Appointment{noShow}, nil, markedAt.Add(11*time.Minute), testPolicy)
		assert.True(t, slots[0].Available)
	})

	t.Run("no-show without marked time never locks", func(t *testing.T) {
		noShow := appointment(constvars.AppointmentStatusNoShow, at(9, 0), at(9, 30))

		slots := Annotate(resolve(), []models.Appointment{noShow}, nil, now, testPolicy)

		assert.True(t, slots[0].Available)
	})
}

func TestHasConflict(t *testing.T) {
	loc := newYork(t)
	at := func(hour, minute int) time.Time {
		return time.Date(2024, 6, 10, hour, minute, 0, 0, loc)
	}

	existing := appointment(constvars.AppointmentStatusUpcoming, at(9, 0), at(9, 30))

	t.Run("overlapping upcoming appointment conflicts", func(t *testing.T) {
		assert.True(t, HasConflict([]models.Appointment{existing}, at(9, 0), at(9, 30), ""))
	})

	t.Run("adjacent appointment does not conflict", func(t *testing.T) {
		assert.False(t, HasConflict([]models.Appointment{existing}, at(9, 30), at(10, 0), ""))
	})

	t.Run("cancelled appointment does not conflict", func(t *testing.T) {
		cancelled := appointment(constvars.AppointmentStatusCancelled, at(9, 0), at(9, 30))
		assert.False(t, HasConflict([]models.Appointment{cancelled}, at(9, 0), at(9, 30), ""))
	})

	t.Run("no-show appointment does not conflict outside its lock window", func(t *testing.T) {
		markedAt := at(9, 2)
		noShow := appointment(constvars.AppointmentStatusNoShow, at(9, 0), at(9, 30))
		noShow.NoShowMarkedAt = &markedAt

		assert.False(t, HasConflict([]models.Appointment{noShow}, at(9, 0), at(9, 30), ""))
		assert.True(t, NoShowLocked([]models.Appointment{noShow}, at(9, 0), at(9, 30), markedAt.Add(5*time.Minute), 10*time.Minute))
		assert.False(t, NoShowLocked([]models.Appointment{noShow}, at(9, 0), at(9, 30), markedAt.Add(11*time.Minute), 10*time.Minute))
	})

	t.Run("excluded appointment is ignored on reschedule", func(t *testing.T) {
		withID := existing
		withID.ID = primitive.NewObjectID()

		assert.False(t, HasConflict([]models.Appointment{withID}, at(9, 0), at(9, 30), withID.ID.Hex()))
		assert.True(t, HasConflict([]models.Appointment{withID}, at(9, 0), at(9, 30), ""))
	})
}

func TestSlotOffered(t *testing.T) {
	loc := newYork(t)
	template := map[string][]string{"Monday": {"09:00", "09:30"}}
	at := func(hour, minute int) time.Time {
		return time.Date(2024, 6, 10, hour, minute, 0, 0, loc)
	}

	t.Run("exact template slot is offered", func(t *testing.T) {
		assert.True(t, SlotOffered(template, at(9, 0), at(9, 30), loc, testPolicy.SlotDuration))
	})

	t.Run("misaligned interval is not offered", func(t *testing.T) {
		assert.False(t, SlotOffered(template, at(9, 15), at(9, 45), loc, testPolicy.SlotDuration))
	})

	t.Run("time outside the template is not offered", func(t *testing.T) {
		assert.False(t, SlotOffered(template, at(11, 0), at(11, 30), loc, testPolicy.SlotDuration))
	})
}

func TestHumanLabel(t *testing.T) {
	loc := newYork(t)

	assert.Equal(t, "9:00 AM", HumanLabel(time.Date(2024, 6, 10, 9, 0, 0, 0, loc), loc))
	assert.Equal(t, "2:30 PM", HumanLabel(time.Date(2024, 6, 10, 14, 30, 0, 0, loc), loc))
	assert.Equal(t, "12:00 AM", HumanLabel(time.Date(2024, 6, 10, 0, 0, 0, 0, loc), loc))
}

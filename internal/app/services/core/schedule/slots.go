package schedule

import (
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Policy is the clinic-wide scheduling policy applied when deriving slots.
type Policy struct {
	SlotDuration    time.Duration
	MinimumLeadTime time.Duration
	NoShowLock      time.Duration
}

// Slot is a candidate booking interval [Start, End) derived from a doctor's
// weekly template for one calendar date. Never persisted.
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

var timeOfDayRegex = regexp.MustCompile(constvars.RegexTimeHHMM)

// ResolveDaySlots expands a weekly availability template into the candidate
// slots of one calendar date. The weekday is the one observed in loc, and each
// "HH:MM" entry is anchored at that wall-clock time in loc, so slots stay at
// the template's local time across DST transitions. Malformed entries are
// skipped, duplicates collapsed, and anything escaping the day's local bounds
// dropped. Output is ascending by start instant.
func ResolveDaySlots(template map[string][]string, date time.Time, loc *time.Location, slotDuration time.Duration) []Slot {
	local := date.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	nextDay := dayStart.AddDate(0, 0, 1)

	times := template[dayStart.Weekday().String()]

	slots := make([]Slot, 0, len(times))
	seen := make(map[int64]bool, len(times))
	for _, timeOfDay := range times {
		if !timeOfDayRegex.MatchString(timeOfDay) {
			continue
		}
		parts := strings.SplitN(timeOfDay, ":", 2)
		hour, _ := strconv.Atoi(parts[0])
		minute, _ := strconv.Atoi(parts[1])

		start := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
		end := start.Add(slotDuration)
		if start.Before(dayStart) || !start.Before(nextDay) || end.After(nextDay) {
			continue
		}
		if seen[start.Unix()] {
			continue
		}
		seen[start.Unix()] = true

		slots = append(slots, Slot{Start: start, End: end})
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots
}

// Overlaps reports half-open interval overlap: touching endpoints never conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Annotate sets each slot's availability from the booking state at "now".
// A slot is unavailable when an active appointment of the doctor or of the
// requesting patient overlaps it, when it sits inside the no-show lock window
// of an overlapping no-show appointment, or when it starts within the minimum
// lead time.
func Annotate(slots []Slot, doctorAppointments, patientAppointments []models.Appointment, now time.Time, policy Policy) []Slot {
	for i := range slots {
		slot := &slots[i]

		isDoctorBooked := anyOverlap(doctorAppointments, slot.Start, slot.End)
		isPatientBooked := anyOverlap(patientAppointments, slot.Start, slot.End)
		isLocked := noShowLocked(doctorAppointments, slot.Start, slot.End, now, policy.NoShowLock)
		leadTimeViolation := !slot.Start.After(now.Add(policy.MinimumLeadTime))

		slot.Available = !isDoctorBooked && !isPatientBooked && !isLocked && !leadTimeViolation
	}
	return slots
}

// HasConflict reports whether any active appointment overlaps [start, end),
// optionally excluding one appointment by ID. The same predicate the conflict
// filter uses, re-applied at write time.
func HasConflict(appointments []models.Appointment, start, end time.Time, excludeID string) bool {
	for _, appointment := range appointments {
		if appointment.Status != constvars.AppointmentStatusUpcoming {
			continue
		}
		if excludeID != "" && appointment.ID.Hex() == excludeID {
			continue
		}
		if Overlaps(start, end, appointment.StartDateTime, appointment.EndDateTime) {
			return true
		}
	}
	return false
}

// NoShowLocked reports whether [start, end) falls inside the hold window of an
// overlapping no-show appointment. The freed slot stays off the market for the
// lock duration in case the patient turns up late.
func NoShowLocked(appointments []models.Appointment, start, end, now time.Time, lockWindow time.Duration) bool {
	return noShowLocked(appointments, start, end, now, lockWindow)
}

// SlotOffered reports whether [start, end) coincides exactly with one of the
// slots the template resolves to on start's calendar date in loc.
func SlotOffered(template map[string][]string, start, end time.Time, loc *time.Location, slotDuration time.Duration) bool {
	for _, slot := range ResolveDaySlots(template, start, loc, slotDuration) {
		if slot.Start.Equal(start) && slot.End.Equal(end) {
			return true
		}
	}
	return false
}

// HumanLabel renders the slot start as the clinic-local label shown to users,
// e.g. "9:00 AM".
func HumanLabel(start time.Time, loc *time.Location) string {
	return start.In(loc).Format(constvars.TimeFormatHumanLabel)
}

// Only active appointments occupy their interval. Cancelled ones free the
// slot immediately, and no-show ones hold it only through the lock window
// handled separately.
func anyOverlap(appointments []models.Appointment, start, end time.Time) bool {
	for _, appointment := range appointments {
		if appointment.Status != constvars.AppointmentStatusUpcoming {
			continue
		}
		if Overlaps(start, end, appointment.StartDateTime, appointment.EndDateTime) {
			return true
		}
	}
	return false
}

func noShowLocked(appointments []models.Appointment, start, end, now time.Time, lockWindow time.Duration) bool {
	for _, appointment := range appointments {
		if appointment.Status != constvars.AppointmentStatusNoShow || appointment.NoShowMarkedAt == nil {
			continue
		}
		if !Overlaps(start, end, appointment.StartDateTime, appointment.EndDateTime) {
			continue
		}
		if now.Sub(*appointment.NoShowMarkedAt) < lockWindow {
			return true
		}
	}
	return false
}

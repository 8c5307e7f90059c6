package scheduling

import (
	"sort"
	"time"

	"coachhub/models"
)

// overlaps applies the half-open interval rule: [s1,e1) and [s2,e2) overlap
// iff s1 < e2 and e1 > s2. An interval starting exactly when another ends is
// not a conflict.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// windowLocation resolves a window's timezone label. Wall-clock minutes are
// interpreted in this location before conversion to UTC instants; an empty or
// unknown label falls back to UTC.
func windowLocation(label string) *time.Location {
	if label == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(label)
	if err != nil {
		return time.UTC
	}
	return loc
}

// expandWindow emits consecutive non-overlapping slots of exactly duration
// minutes from the window's start. A trailing slot that would cross the
// window's end is not emitted.
func expandWindow(date time.Time, window models.WeeklyAvailabilityWindow, durationMinutes int) []models.Slot {
	loc := windowLocation(window.Timezone)
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	windowStart := midnight.Add(time.Duration(window.StartMinute) * time.Minute)
	windowEnd := midnight.Add(time.Duration(window.EndMinute) * time.Minute)
	step := time.Duration(durationMinutes) * time.Minute

	var slots []models.Slot
	for start := windowStart; !start.Add(step).After(windowEnd); start = start.Add(step) {
		slots = append(slots, models.Slot{
			StartAt: start.UTC(),
			EndAt:   start.Add(step).UTC(),
		})
	}
	return slots
}

// normalizeDaySlots sorts a day's slots chronologically and drops any slot
// that overlaps the one before it, so the day list never contains overlapping
// intervals. Same-day window overlap is rejected at write time; this also
// covers rows that predate that check, and windows whose timezone labels make
// them interleave in UTC.
func normalizeDaySlots(slots []models.Slot) []models.Slot {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartAt.Before(slots[j].StartAt)
	})
	kept := slots[:0]
	for _, s := range slots {
		if len(kept) > 0 && s.StartAt.Before(kept[len(kept)-1].EndAt) {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

// classifySlot tags a slot with at most one reason, in priority order:
// booked, then blocked, then past. Anything else is available.
func classifySlot(slot *models.Slot, sessions []models.Session, blocks []models.BlockedTimeRange, now time.Time) {
	for _, s := range sessions {
		if s.Status == models.SessionScheduled && overlaps(slot.StartAt, slot.EndAt, s.ScheduledAt, s.EndsAt) {
			slot.IsAvailable = false
			slot.Reason = models.SlotReasonBooked
			return
		}
	}
	for _, b := range blocks {
		if overlaps(slot.StartAt, slot.EndAt, b.StartAt, b.EndAt) {
			slot.IsAvailable = false
			slot.Reason = models.SlotReasonBlocked
			return
		}
	}
	if !slot.StartAt.After(now) {
		slot.IsAvailable = false
		slot.Reason = models.SlotReasonPast
		return
	}
	slot.IsAvailable = true
}

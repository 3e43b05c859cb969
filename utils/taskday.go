package utils

import "time"

// TaskDayZone is the single civil timezone the whole system counts days in
// (IST, UTC+05:30). Cooldown checks and the daily submission window must
// agree on day boundaries no matter where the process runs, so nothing in
// this package ever consults the host's local zone.
var TaskDayZone = time.FixedZone("IST", 5*3600+1800)

// TaskDayKey returns the civil date key for an instant, e.g. "2026-09-01".
func TaskDayKey(t time.Time) string {
	return t.In(TaskDayZone).Format("2006-01-02")
}

// TodayKey returns the current task-day key.
func TodayKey() string {
	return TaskDayKey(time.Now())
}

// StartOfTaskDay returns the instant the task day containing t begins.
func StartOfTaskDay(t time.Time) time.Time {
	local := t.In(TaskDayZone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, TaskDayZone)
}

// StartOfToday returns the instant the current task day began.
func StartOfToday() time.Time {
	return StartOfTaskDay(time.Now())
}

// SameTaskDay reports whether two instants fall on the same civil date in
// the task timezone.
func SameTaskDay(a, b time.Time) bool {
	return TaskDayKey(a) == TaskDayKey(b)
}

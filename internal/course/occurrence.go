package course

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DefaultOccurrenceCount = 4

// NextOccurrences returns the next count dates whose weekday matches the
// given weekday, starting from the day of "from" (inclusive) and spaced
// exactly seven days apart. Times are truncated to midnight in from's
// location; the course start time is applied separately via SessionTime.
func NextOccurrences(from time.Time, weekday, count int) []time.Time {
	if count < 1 {
		return nil
	}

	diff := (weekday - int(from.Weekday()) + 7) % 7
	first := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location()).
		AddDate(0, 0, diff)

	dates := make([]time.Time, 0, count)
	current := first
	for i := 0; i < count; i++ {
		dates = append(dates, current)
		current = current.AddDate(0, 0, 7)
	}
	return dates
}

// SessionTime combines an occurrence date with the course's "HH:MM" start
// time into the session instant.
func SessionTime(date time.Time, courseTime string) (time.Time, error) {
	parts := strings.SplitN(courseTime, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid course time %q", courseTime)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid course time %q", courseTime)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid course time %q", courseTime)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hours, minutes, 0, 0, date.Location()), nil
}

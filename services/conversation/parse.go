package conversation

import (
	"strconv"
	"strings"
	"time"

	"calbot/models"
)

// ParseDateTime combines a DD-MM-YYYY date string and a 12-hour HH:MM AM/PM
// clock string into a single wall-clock timestamp. Only the syntax is
// checked: the fields are not range-validated against the calendar, so
// "31-02-2024" parses to a DateTime with day=31, month=2 and the calendar
// provider is left to reject the impossible date. Callers rely on this
// looseness; tighten it only together with the flow's validation stages.
func ParseDateTime(dateStr, timeStr string) (models.DateTime, error) {
	day, month, year, err := parseDate(dateStr)
	if err != nil {
		return models.DateTime{}, err
	}
	hour, minute, err := parseClock(timeStr)
	if err != nil {
		return models.DateTime{}, err
	}
	return models.DateTime{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
	}, nil
}

// parseDate splits a DD-MM-YYYY string into its numeric components.
func parseDate(dateStr string) (day, month, year int, err error) {
	parts := strings.Split(strings.TrimSpace(dateStr), "-")
	if len(parts) != 3 {
		return 0, 0, 0, &FormatError{Message: dateFormatMsg}
	}
	nums := make([]int, 3)
	for i, part := range parts {
		if !allDigits(part) {
			return 0, 0, 0, &FormatError{Message: dateFormatMsg}
		}
		n, convErr := strconv.Atoi(part)
		if convErr != nil {
			return 0, 0, 0, &FormatError{Message: dateFormatMsg}
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

// parseClock reads a 12-hour clock value with a required AM/PM marker,
// case-insensitive and tolerant of surrounding whitespace.
func parseClock(timeStr string) (hour, minute int, err error) {
	t, perr := time.Parse("3:04 PM", strings.ToUpper(strings.TrimSpace(timeStr)))
	if perr != nil {
		return 0, 0, &FormatError{Message: timeFormatMsg}
	}
	return t.Hour(), t.Minute(), nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package importer

import (
	"strconv"
	"strings"
	"time"
)

// ParseDate parses a dd-mm-yyyy or dd/mm/yyyy date into UTC midnight of that calendar day.
// The year must have four digits. Calendar-invalid dates such as 30-02-2024 or 29-02-2023 are rejected.
func ParseDate(s string) (time.Time, bool) {
	parts := strings.Split(strings.ReplaceAll(strings.TrimSpace(s), "/", "-"), "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	if len(strings.TrimSpace(parts[2])) != 4 {
		return time.Time{}, false
	}

	var nums [3]int

	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}

		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1000 || year > 9999 {
		return time.Time{}, false
	}

	// time.Date normalises overflow (31-04 becomes 01-05), so a changed day exposes an invalid date.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}

	return t, true
}

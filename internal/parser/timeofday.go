package parser

import (
	"strconv"
	"strings"
	"time"
)

// resolveTimestamp combines the date component of now with an explicit
// time token when one was found. Without a token the current wall-clock
// time is used unchanged.
func resolveTimestamp(now time.Time, timeSpan string) time.Time {
	if timeSpan == "" {
		return now
	}

	m := timePattern.FindStringSubmatch(timeSpan)
	if m == nil {
		return now
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	marker := strings.ToLower(m[3])

	switch marker {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	default:
		// Bare hour. A jump of more than six hours from the current
		// hour usually means the speaker dropped the PM marker, so bias
		// toward the afternoon when the clock has already passed noon.
		if abs(now.Hour()-hour) > 6 && now.Hour() >= 12 && hour < 12 {
			hour += 12
		}
	}

	// Out-of-range minutes are not validated here; time.Date carries
	// the overflow into the next hour.
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

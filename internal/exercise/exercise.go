// Package exercise holds the parity and minutes-conversion exercises.
package exercise

import "fmt"

// IsEven reports whether n is even.
func IsEven(n int) bool {
	return n%2 == 0
}

// ConvertMinutes formats a number of minutes as hours and minutes.
//
// Hours are floor(minutes/60). For a negative input the minutes are taken from
// the absolute value, so -30 gives "-1 heure(s) et 30 minute(s)" and -50 gives
// "-1 heure(s) et 50 minute(s)".
func ConvertMinutes(minutes int) string {
	hours, mins := minutes/60, minutes%60
	if mins < 0 {
		hours--
		mins = -minutes % 60
	}
	return fmt.Sprintf("%d heure(s) et %d minute(s)", hours, mins)
}

// ConvertMinutesList applies ConvertMinutes to every element.
func ConvertMinutesList(minutes []int) []string {
	out := make([]string, 0, len(minutes))
	for _, m := range minutes {
		out = append(out, ConvertMinutes(m))
	}
	return out
}

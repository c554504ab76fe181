package timeutil

import "time"

// StampLayout is the compact UTC timestamp used in artifact keys.
const StampLayout = "20060102T150405Z"

// FormatStamp formats t in UTC using StampLayout.
func FormatStamp(t time.Time) string {
	return t.UTC().Format(StampLayout)
}

// ParseStamp parses a StampLayout timestamp as UTC.
func ParseStamp(value string) (time.Time, error) {
	return time.Parse(StampLayout, value)
}

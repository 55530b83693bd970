package presenter

import (
	"fmt"
	"time"
)

// FormatTimeSince formats the time elapsed between t and now as a human-readable "X ago" string.
// Returns formats like "just now", "5 minutes ago", "2.5 hours ago", or "3 days ago".
func FormatTimeSince(t, now time.Time) string {
	duration := now.Sub(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		return fmt.Sprintf("%.0f minutes ago", duration.Minutes())
	case duration < 24*time.Hour:
		return fmt.Sprintf("%.1f hours ago", duration.Hours())
	default:
		return fmt.Sprintf("%.0f days ago", duration.Hours()/24)
	}
}

// FormatTimeSinceCompact is the table-friendly form of FormatTimeSince, e.g. "5m ago" or "3d ago".
func FormatTimeSinceCompact(t, now time.Time) string {
	duration := now.Sub(t)

	switch {
	case duration < time.Minute:
		return "now"
	case duration < time.Hour:
		return fmt.Sprintf("%.0fm ago", duration.Minutes())
	case duration < 24*time.Hour:
		return fmt.Sprintf("%.1fh ago", duration.Hours())
	default:
		return fmt.Sprintf("%.0fd ago", duration.Hours()/24)
	}
}

// TruncateString truncates s to at most maxLen runes, marking the cut with an ellipsis
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

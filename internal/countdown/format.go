// Package countdown renders and drives the confirmation countdown attached
// to orders whose status started a timer.
package countdown

import (
	"fmt"
	"strings"
	"time"
)

// Expired is rendered once the deadline passes.
const Expired = "expired"

// FormatRemaining renders a remaining duration as "Nd Nh Nm Ns". Leading
// zero-valued units are omitted, seconds are always shown.
func FormatRemaining(remaining time.Duration) string {
	if remaining <= 0 {
		return Expired
	}

	total := int64(remaining.Round(time.Second) / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}

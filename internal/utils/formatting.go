package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatNaira formats an amount string or number for display with the
// currency sign and comma separators.
func FormatNaira(amount string) string {
	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return "₦" + amount
	}
	return FormatNairaValue(value)
}

func FormatNairaValue(value float64) string {
	whole := int64(value)
	fraction := value - float64(whole)

	intPart := addCommas(strconv.FormatInt(whole, 10))
	if fraction > 0.004 {
		return fmt.Sprintf("₦%s.%02d", intPart, int(fraction*100+0.5))
	}
	return "₦" + intPart
}

func addCommas(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	if len(s) > 3 {
		var result strings.Builder
		for i, digit := range s {
			if i > 0 && (len(s)-i)%3 == 0 {
				result.WriteString(",")
			}
			result.WriteRune(digit)
		}
		s = result.String()
	}

	if neg {
		return "-" + s
	}
	return s
}

// FormatPhone groups a Nigerian phone number as 0801 234 5678.
func FormatPhone(phone string) string {
	if len(phone) != 11 {
		return phone
	}
	return phone[:4] + " " + phone[4:7] + " " + phone[7:]
}

// FormatReference truncates a long transaction reference for display.
func FormatReference(ref string) string {
	if len(ref) <= 16 {
		return ref
	}
	return ref[:8] + "..." + ref[len(ref)-8:]
}

// FormatValidity renders a product validity like "30 days" or "1 month".
func FormatValidity(duration int, durationType string) string {
	if duration <= 0 || durationType == "" {
		return ""
	}

	unit := strings.TrimSuffix(strings.ToLower(durationType), "s")
	if duration == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", duration, unit)
}

// FormatDuration formats a duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	} else if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	} else {
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// TruncateString truncates a string to a maximum length with ellipsis
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}

// PadString pads a string to a specific width
func PadString(s string, width int, padChar rune) string {
	if len(s) >= width {
		return s
	}

	padding := strings.Repeat(string(padChar), width-len(s))
	return s + padding
}

// FormatStepIndicator creates a step indicator string
func FormatStepIndicator(currentStep, totalSteps int, stepNames []string) string {
	var result strings.Builder

	for i := 0; i < totalSteps; i++ {
		if i > 0 {
			result.WriteString(" > ")
		}

		stepName := strconv.Itoa(i + 1)
		if i < len(stepNames) {
			stepName = stepNames[i]
		}

		if i == currentStep {
			result.WriteString("[" + stepName + "]")
		} else if i < currentStep {
			result.WriteString("✓")
		} else {
			result.WriteString(stepName)
		}
	}

	return result.String()
}

// FormatTimeAgo formats a time as "X ago" string
func FormatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		minutes := int(diff.Minutes())
		if minutes == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d mins ago", minutes)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	} else if diff < 30*24*time.Hour {
		weeks := int(diff.Hours() / (24 * 7))
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	} else {
		months := int(diff.Hours() / (24 * 30))
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	}
}

package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Countdown timers are rendered client-side as time remaining until the
// deadline, so the only way to recover the end date is now + offset. The
// result is only as fresh as the page capture; a drift of seconds to minutes
// is accepted.

// labeledCountdownPattern matches "2d:10h:30m", "2 days 10 hours 30 m" and
// similar. The day group is required; hour and minute groups are optional.
var labeledCountdownPattern = regexp.MustCompile(
	`(\d+)\s*d(?:ays?)?[^0-9]*(\d+)?\s*h(?:ours?)?[^0-9]*(\d+)?\s*m`)

var digitRuns = regexp.MustCompile(`\d+`)

// ParseCountdown converts a countdown expression into an absolute date
// relative to the current instant. It tries the labeled "Nd:Nh:Nm" form
// first, then a bare numeric triple ("00 DAYS 12 HOURS 30 MINUTES" widgets
// strip down to "00 12 30"). Returns "" if text holds no countdown.
func ParseCountdown(text string) string {
	return ParseCountdownAt(text, time.Now())
}

// ParseCountdownAt is ParseCountdown with an explicit reference instant, for
// deterministic tests.
func ParseCountdownAt(text string, now time.Time) string {
	if d := parseLabeledCountdownAt(text, now); d != "" {
		return d
	}
	return parseCountdownDigitsAt(text, now)
}

// parseLabeledCountdownAt handles the explicit "Nd:Nh:Nm" style. This is the
// only countdown form safe to run against arbitrary body text, so the
// extraction cascade uses it directly.
func parseLabeledCountdownAt(text string, now time.Time) string {
	lowered := strings.ToLower(normalizeWhitespace(text))
	m := labeledCountdownPattern.FindStringSubmatch(lowered)
	if m == nil {
		return ""
	}
	days := atoiOrZero(m[1])
	hours := atoiOrZero(m[2])
	minutes := atoiOrZero(m[3])
	end := now.Add(time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute)
	return formatCanonical(end)
}

// parseCountdownDigitsAt handles countdown widgets that render bare numbers
// under DAYS/HOURS/MINUTES labels. At least three numbers are required; the
// first three map positionally to days, hours, minutes. Callers should only
// feed it text captured from a dedicated countdown element, never whole
// pages.
func parseCountdownDigitsAt(text string, now time.Time) string {
	nums := digitRuns.FindAllString(text, 4)
	if len(nums) < 3 {
		return ""
	}
	end := now.Add(time.Duration(atoiOrZero(nums[0]))*24*time.Hour +
		time.Duration(atoiOrZero(nums[1]))*time.Hour +
		time.Duration(atoiOrZero(nums[2]))*time.Minute)
	return formatCanonical(end)
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

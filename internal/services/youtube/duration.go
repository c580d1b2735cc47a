package youtube

import (
	"regexp"
	"strings"
)

// durationRegex matches the PT#H#M#S form YouTube uses in contentDetails.
// Only the prefix must match; day components ("P1DT...") are not supported.
var durationRegex = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDuration turns "PT1H30M45S" into "1h 30m".
//
// Zero components are omitted and seconds are dropped when hours are
// present. A duration with no non-zero component is "0m"; input that is not
// a PT duration at all is "Unknown".
func ParseDuration(iso string) string {
	m := durationRegex.FindStringSubmatch(iso)
	if m == nil {
		return "Unknown"
	}
	hours, minutes, seconds := nonZero(m[1]), nonZero(m[2]), nonZero(m[3])

	var parts []string
	if hours != "" {
		parts = append(parts, hours+"h")
	}
	if minutes != "" {
		parts = append(parts, minutes+"m")
	}
	if seconds != "" && hours == "" {
		parts = append(parts, seconds+"s")
	}

	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, " ")
}

// nonZero strips leading zeros and returns "" for an absent or zero component.
func nonZero(digits string) string {
	return strings.TrimLeft(digits, "0")
}

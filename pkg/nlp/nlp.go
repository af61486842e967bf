// Package nlp parses free-form stream commands like
// "stream 50 KAS to kaspatest:qz0... over 30 minutes every 15s".
package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

// Field is one extracted value with the text it was matched from and a
// per-field confidence.
type Field struct {
	Value      float64 `json:"value"`
	Found      bool    `json:"found"`
	Raw        string  `json:"raw"`
	Confidence float64 `json:"confidence"`
}

// Command is the parsed form of a stream instruction. Amount is in KAS,
// Duration in minutes, Interval in seconds. Interval is optional; the other
// three are required for IsValid.
type Command struct {
	Amount     Field   `json:"amount"`
	Recipient  string  `json:"recipient"`
	Duration   Field   `json:"duration"`
	Interval   Field   `json:"interval"`
	Confidence float64 `json:"confidence"`
	IsValid    bool    `json:"is_valid"`
	Suggestion string  `json:"suggestion,omitempty"`

	recipientConfidence float64
}

var (
	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+\.?\d*)\s*kas`),
		regexp.MustCompile(`(?i)(?:send|stream|pay|transfer)\s+(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:to|→|->)`),
	}

	durationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:over|for|in|during|within)\s+(\d+\.?\d*)\s*(minutes?|mins?|m(?:in)?|hours?|hrs?|h|seconds?|secs?|s)\b`),
		regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(minutes?|mins?|hours?|hrs?|seconds?|secs?)\s*(?:stream|duration)?`),
		regexp.MustCompile(`(?i)(\d+)\s*(m(?:in)?)\b`),
		regexp.MustCompile(`(?i)(\d+)\s*(h(?:r|our)?s?)\b`),
	}

	addressPattern = regexp.MustCompile(`(?i)kaspa(?:test)?:[a-z0-9]{10,}`)

	intervalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)every\s+(\d+)\s*(?:seconds?|secs?|s)\b`),
		regexp.MustCompile(`(?i)interval\s+(\d+)\s*(?:seconds?|secs?|s)?\b`),
		regexp.MustCompile(`(?i)(\d+)\s*s\s+intervals?`),
	}
)

// durationToMinutes normalizes a matched duration value by its unit.
func durationToMinutes(value float64, unit string) float64 {
	u := strings.TrimSuffix(strings.ToLower(unit), "s")
	switch {
	case strings.HasPrefix(u, "hour"), strings.HasPrefix(u, "hr"), u == "h":
		return value * 60
	case strings.HasPrefix(u, "sec"), u == "":
		// bare "s" loses its suffix in the trim above
		return value / 60
	default:
		return value
	}
}

// Parse extracts a stream command from input. It never errors: missing or
// unparseable fields lower the confidence and produce a Suggestion instead.
func Parse(input string) Command {
	trimmed := strings.TrimSpace(input)
	var cmd Command

	for _, pattern := range amountPatterns {
		m := pattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		cmd.Amount = Field{Value: value, Found: true, Raw: m[0]}
		if value > 0 {
			cmd.Amount.Confidence = 1
		}
		break
	}

	if m := addressPattern.FindString(trimmed); m != "" {
		cmd.Recipient = m
		cmd.recipientConfidence = 0.5
		if len(m) > 20 {
			cmd.recipientConfidence = 1
		}
	}

	for _, pattern := range durationPatterns {
		m := pattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		unit := "minutes"
		if len(m) > 2 && m[2] != "" {
			unit = m[2]
		}
		minutes := durationToMinutes(value, unit)
		cmd.Duration = Field{Value: minutes, Found: true, Raw: m[0]}
		if minutes > 0 {
			cmd.Duration.Confidence = 1
		}
		break
	}

	for _, pattern := range intervalPatterns {
		m := pattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		seconds, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		cmd.Interval = Field{Value: float64(seconds), Found: true, Raw: m[0]}
		if seconds > 0 {
			cmd.Interval.Confidence = 1
		}
		break
	}

	cmd.Confidence = (cmd.Amount.Confidence + cmd.recipientConfidence + cmd.Duration.Confidence) / 3
	cmd.IsValid = cmd.Amount.Found && cmd.Amount.Value > 0 &&
		cmd.Recipient != "" &&
		cmd.Duration.Found && cmd.Duration.Value > 0

	if !cmd.IsValid {
		var missing []string
		if !cmd.Amount.Found || cmd.Amount.Value <= 0 {
			missing = append(missing, `amount (e.g. "50 KAS")`)
		}
		if cmd.Recipient == "" {
			missing = append(missing, `address (e.g. "kaspatest:qz0...")`)
		}
		if !cmd.Duration.Found || cmd.Duration.Value <= 0 {
			missing = append(missing, `duration (e.g. "over 10 minutes")`)
		}
		cmd.Suggestion = "Missing: " + strings.Join(missing, ", ")
	}

	return cmd
}

package utils

import (
	"regexp"
	"strings"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]+`)
	spaceRuns    = regexp.MustCompile(`  +`)
)

// SanitizeInput normalizes user-entered expense text before it reaches
// the parser or the database. Control characters become a single space
// rather than vanishing, so tokens on adjacent lines of extracted
// receipt text stay separated; runs of spaces collapse afterwards.
func SanitizeInput(s string) string {
	s = controlChars.ReplaceAllString(s, " ")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

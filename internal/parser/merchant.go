package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// unknownMerchant is the fallback when nothing in the input looks like a
// merchant or description.
const unknownMerchant = "Unknown"

// knownMerchants are matched as case-insensitive substrings of the raw
// input when no prepositional cue is found.
var knownMerchants = []string{
	"starbucks", "mcdonalds", "walmart", "target", "amazon", "uber", "lyft",
	"shell", "exxon", "chevron", "costco", "whole foods", "trader joes",
	"home depot", "lowes", "best buy", "apple store", "netflix", "spotify",
}

// atFromPhrase captures the words following "at" or "from" up to a
// boundary word (for/on/in) or the end of the string.
var atFromPhrase = regexp.MustCompile(`(?i)\b(?:at|from)\s+([a-zA-Z0-9\s&'-]+?)(?:\s+(?:for|on|in)\b|\s*$)`)

// merchantRule is one step of the resolution cascade. Rules run in
// order; the first that produces a non-empty name wins.
type merchantRule func(residual, input string) (string, bool)

var merchantRules = []merchantRule{
	matchAtFromPhrase,
	matchKnownMerchant,
	matchWordAfterAt,
	matchResidual,
}

// resolveMerchant derives a display name from the residual text, falling
// back to "Unknown". The result is always non-empty and title-cased.
func resolveMerchant(residual, input string) string {
	for _, rule := range merchantRules {
		if name, ok := rule(residual, input); ok {
			return titleCase(name)
		}
	}
	return unknownMerchant
}

func matchAtFromPhrase(residual, _ string) (string, bool) {
	m := atFromPhrase.FindStringSubmatch(residual)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	return name, name != ""
}

func matchKnownMerchant(_, input string) (string, bool) {
	text := strings.ToLower(input)
	for _, merchant := range knownMerchants {
		if strings.Contains(text, merchant) {
			return merchant, true
		}
	}
	return "", false
}

// matchWordAfterAt scans word-by-word for a token directly following
// "at" or "from". Tokens of one or two characters are skipped as noise.
func matchWordAfterAt(_, input string) (string, bool) {
	words := strings.Fields(strings.ToLower(input))
	for i := 0; i < len(words)-1; i++ {
		if words[i] != "at" && words[i] != "from" {
			continue
		}
		if next := words[i+1]; len(next) > 2 {
			return next, true
		}
	}
	return "", false
}

func matchResidual(residual, _ string) (string, bool) {
	name := strings.TrimSpace(residual)
	return name, name != ""
}

// titleCase uppercases the first letter of each word and lowercases the
// remainder, word-by-word.
func titleCase(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

// slideCountPattern matches slide-count hints like "5 slides", "10-slide"
// anywhere in the prompt, case-insensitively.
var slideCountPattern = regexp.MustCompile(`(?i)(\d+)[- ]*slide[s]?`)

// whitespacePattern collapses runs of whitespace left behind after the
// slide-count fragment is removed.
var whitespacePattern = regexp.MustCompile(`\s+`)

// InterpretPrompt parses free-text user input into a deck request with a
// cleaned topic and a bounded slide count. It never fails: prompts
// without a slide-count hint get the default count, out-of-range counts
// are clamped to [1, entities.MaxSlideCount].
func InterpretPrompt(raw string) (topic string, slideCount int) {
	slideCount = entities.DefaultSlideCount

	if match := slideCountPattern.FindStringSubmatch(raw); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil {
			slideCount = entities.ClampSlideCount(n)
		}
	}

	topic = slideCountPattern.ReplaceAllString(raw, "")
	topic = strings.TrimSpace(whitespacePattern.ReplaceAllString(topic, " "))

	return topic, slideCount
}

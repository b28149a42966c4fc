// Package conversation provides intent parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple
// patterns. Inputs it cannot place come back as IntentUnknown so an LLM
// classifier can take a second look.
type KeywordParser struct {
	log      *logger.Logger
	commands []patternRule // bare command words
	phrases  []patternRule // "verb payload"; the first group is the payload
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.commands = []patternRule{
		{regexp.MustCompile(`(?i)^(next|n|continue|forward|onward)$`), domain.IntentNext},
		{regexp.MustCompile(`(?i)^(back|b|prev|previous)$`), domain.IntentBack},
		{regexp.MustCompile(`(?i)^(menu|foods|options|list)$`), domain.IntentMenu},
		{regexp.MustCompile(`(?i)^(reset|clear|start over)$`), domain.IntentReset},
		{regexp.MustCompile(`(?i)^(round|play|go|start round|math)$`), domain.IntentRound},
		{regexp.MustCompile(`(?i)^(ideas|meal ideas|suggest|suggestions)$`), domain.IntentMealIdeas},
		{regexp.MustCompile(`(?i)^(status|progress|rank|where am i)$`), domain.IntentStatus},
		{regexp.MustCompile(`(?i)^(repeat|again|r|say that again|come again)$`), domain.IntentRepeat},
		{regexp.MustCompile(`(?i)^(talk|listen|voice|mic)$`), domain.IntentListen},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|q|bye)$`), domain.IntentQuit},
	}
	p.phrases = []patternRule{
		{regexp.MustCompile(`(?i)^(?:name|my name is|call me)\s+(.+)$`), domain.IntentSetName},
		{regexp.MustCompile(`(?i)^(?:weight|i weigh)\s+([0-9]+(?:\.[0-9]+)?)\s*(?:lbs?|pounds)?$`), domain.IntentSetWeight},
		{regexp.MustCompile(`(?i)^(?:add|eat|ate|pick)\s+(.+)$`), domain.IntentAddFood},
		{regexp.MustCompile(`(?i)^(?:dose|take)\s+([0-9]+(?:\.[0-9]+)?)\s*(?:g|grams?)?$`), domain.IntentDose},
		{regexp.MustCompile(`(?i)^(?:unequip|remove|drop)\s+(.+)$`), domain.IntentUnequip},
		{regexp.MustCompile(`(?i)^(?:equip|quiz)\s+(.+)$`), domain.IntentEquip},
		{regexp.MustCompile(`(?i)^(?:answer|ans)\s+(.+)$`), domain.IntentAnswer},
		{regexp.MustCompile(`(?i)^(?:lookup|look up|find)\s+(.+)$`), domain.IntentLookupFood},
	}
	return p
}

// Parse converts user input into an intent. The slide decides what a bare
// number means: a weight on the dashboard, an answer anywhere else.
func (p *KeywordParser) Parse(_ context.Context, input string, slide domain.SlideID) (*domain.Intent, error) {
	trimmed := strings.Join(strings.Fields(input), " ")
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}
	p.log.Debug("parser: %q on %s", trimmed, slide)

	if isNumber(trimmed) {
		if slide == domain.SlideDashboard {
			return &domain.Intent{Type: domain.IntentSetWeight, Payload: trimmed}, nil
		}
		return &domain.Intent{Type: domain.IntentAnswer, Payload: trimmed}, nil
	}

	for _, rule := range p.commands {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("parser: matched %s", rule.intent)
			return &domain.Intent{Type: rule.intent}, nil
		}
	}

	for _, rule := range p.phrases {
		if m := rule.regex.FindStringSubmatch(trimmed); m != nil {
			p.log.Debug("parser: matched %s", rule.intent)
			return &domain.Intent{Type: rule.intent, Payload: strings.TrimSpace(m[1])}, nil
		}
	}

	if isQuestion(trimmed) {
		return &domain.Intent{Type: domain.IntentAskQuestion, Payload: trimmed}, nil
	}

	p.log.Debug("parser: no match")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

// questionPrefixes are common English question starters.
var questionPrefixes = []string{
	"how", "what", "why", "when", "where", "who", "which",
	"can", "could", "should", "would", "will", "do", "does", "is", "are",
	"am i", "tell me", "explain",
}

// isQuestion returns true if the input looks like a question.
func isQuestion(s string) bool {
	if strings.HasSuffix(s, "?") {
		return true
	}
	lower := strings.ToLower(s)
	for _, prefix := range questionPrefixes {
		if strings.HasPrefix(lower, prefix+" ") || lower == prefix {
			return true
		}
	}
	return false
}

var number = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

func isNumber(s string) bool {
	return number.MatchString(s)
}

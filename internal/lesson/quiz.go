package lesson

import "strings"

// Quiz is the question a learner answers to equip one habit.
type Quiz struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Question    string   `yaml:"question"`
	Hint        string   `yaml:"hint"`
	Keywords    []string `yaml:"keywords"`
}

// Matches reports whether the answer mentions any keyword, ignoring case.
func (q Quiz) Matches(answer string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	if a == "" {
		return false
	}
	for _, k := range q.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" && strings.Contains(a, k) {
			return true
		}
	}
	return false
}

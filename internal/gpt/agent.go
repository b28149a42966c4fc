package gpt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/lesson"
	"github.com/hammamikhairi/fuelquest/internal/logger"
	"github.com/hammamikhairi/fuelquest/internal/summary"
)

// AskFallback is shown when a question cannot be answered.
const AskFallback = "Oops! I couldn't answer that right now. Try asking again!"

// Agent wraps a ChatModel with nutrition-lesson context building. Every
// method has a local fallback, so callers never see model errors.
type Agent struct {
	model ChatModel
	log   *logger.Logger
}

// NewAgent creates a coach agent backed by the given model.
func NewAgent(model ChatModel, log *logger.Logger) *Agent {
	return &Agent{model: model, log: log}
}

// ── Public API ───────────────────────────────────────────────────

// Ask answers a free-form nutrition question with the current lesson
// script and the learner's progress as context.
func (a *Agent) Ask(ctx context.Context, question, lessonScript string, s domain.UserState) string {
	system := PromptNutrition
	if lessonScript != "" {
		system += "\n\nCurrent lesson context: " + lessonScript
	}

	reply, err := a.model.Chat(ctx, a.buildMessages(system, question, s))
	if err != nil {
		a.log.Warn("gpt: ask failed: %v", err)
		return AskFallback
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return AskFallback
	}
	return reply
}

// judgeResponse is the JSON the model returns for quiz grading.
type judgeResponse struct {
	IsCorrect bool   `json:"isCorrect"`
	Message   string `json:"message"`
}

// Judge grades a habit quiz answer. When the model is unavailable or
// replies with something unparseable (a timeout included), the quiz's
// keyword rule decides. A cancelled ctx yields a zero Verdict.
func (a *Agent) Judge(ctx context.Context, q lesson.Quiz, answer string) domain.Verdict {
	query := fmt.Sprintf("Question: %s\nAccepted ideas: %s\nKid's answer: %s",
		q.Question, strings.Join(q.Keywords, ", "), answer)

	raw, err := a.model.Chat(ctx, []Message{
		TextMessage(RoleSystem, PromptJudge),
		TextMessage(RoleUser, query),
	})
	if err != nil && errors.Is(ctx.Err(), context.Canceled) {
		// Superseded or shut down: the caller discards this verdict.
		a.log.Debug("gpt: judge abandoned")
		return domain.Verdict{}
	}
	if err != nil {
		a.log.Warn("gpt: judge failed, using keywords: %v", err)
		return KeywordVerdict(q, answer)
	}

	var resp judgeResponse
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &resp); err != nil {
		a.log.Error("gpt: failed to parse judge JSON: %v\nraw: %s", err, raw)
		return KeywordVerdict(q, answer)
	}

	v := domain.Verdict{Correct: resp.IsCorrect, Message: strings.TrimSpace(resp.Message)}
	if v.Message == "" {
		v.Message = KeywordVerdict(q, answer).Message
		if v.Correct {
			v.Message = "Correct! Habit equipped."
		}
	}
	a.log.Debug("gpt: judged %q -> %v", truncate(answer, 40), v.Correct)
	return v
}

// KeywordVerdict grades an answer with the quiz's keyword list only.
func KeywordVerdict(q lesson.Quiz, answer string) domain.Verdict {
	if q.Matches(answer) {
		return domain.Verdict{Correct: true, Message: "Correct! Habit equipped."}
	}
	msg := "Not quite. Try again!"
	if q.Hint != "" {
		msg = "Not quite. Hint: " + q.Hint
	}
	return domain.Verdict{Correct: false, Message: msg}
}

// foodResponse is the JSON the model returns for a food lookup.
type foodResponse struct {
	Name     string  `json:"name"`
	Emoji    string  `json:"emoji"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
}

// LookupFood asks the model for nutrition facts of a food that is not on
// the menu. The second return is false when nothing usable came back.
func (a *Agent) LookupFood(ctx context.Context, name string) (domain.FoodItem, bool) {
	raw, err := a.model.Chat(ctx, []Message{
		TextMessage(RoleSystem, PromptFoodLookup),
		TextMessage(RoleUser, name),
	})
	if err != nil {
		a.log.Warn("gpt: food lookup failed: %v", err)
		return domain.FoodItem{}, false
	}

	var resp foodResponse
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &resp); err != nil {
		a.log.Error("gpt: failed to parse food JSON: %v\nraw: %s", err, raw)
		return domain.FoodItem{}, false
	}
	if strings.TrimSpace(resp.Name) == "" || resp.Calories < 0 || resp.Protein < 0 || resp.Carbs < 0 {
		return domain.FoodItem{}, false
	}

	return domain.FoodItem{
		ID:       slug(resp.Name),
		Name:     resp.Name,
		Emoji:    resp.Emoji,
		Calories: resp.Calories,
		Protein:  resp.Protein,
		Carbs:    resp.Carbs,
	}, true
}

// MealIdeas suggests meals for the learner's progress, or returns the
// fallback list.
func (a *Agent) MealIdeas(ctx context.Context, s domain.UserState, fallback []string) []string {
	raw, err := a.model.Chat(ctx, a.buildMessages(PromptMealIdeas, "Suggest meal ideas for me.", s))
	if err != nil {
		a.log.Warn("gpt: meal ideas failed: %v", err)
		return fallback
	}

	var ideas []string
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &ideas); err != nil {
		a.log.Error("gpt: failed to parse meal ideas JSON: %v\nraw: %s", err, raw)
		return fallback
	}

	out := ideas[:0]
	for _, idea := range ideas {
		if idea = strings.TrimSpace(idea); idea != "" {
			out = append(out, idea)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// Celebrate writes the mission-complete cheer, or returns the fallback.
func (a *Agent) Celebrate(ctx context.Context, s domain.UserState, fallback string) string {
	reply, err := a.model.Chat(ctx, a.buildMessages(PromptCelebrate, "I finished every mission!", s))
	if err != nil {
		a.log.Warn("gpt: celebrate failed: %v", err)
		return fallback
	}
	if reply = strings.TrimSpace(reply); reply == "" {
		return fallback
	}
	return reply
}

// classifyResponse is the JSON the model returns for intent classification.
type classifyResponse struct {
	Intent  string `json:"intent"`
	Payload string `json:"payload"`
}

// Classify sends unrecognised input to the model for intent classification.
// Returns IntentAskQuestion carrying the input if the reply is unusable.
func (a *Agent) Classify(ctx context.Context, input string, slide domain.SlideID) (*domain.Intent, error) {
	raw, err := a.model.Chat(ctx, []Message{
		TextMessage(RoleSystem, PromptClassify),
		TextMessage(RoleUser, fmt.Sprintf("Current mission: %s\nInput: %s", slide.Title(), input)),
	})
	if err != nil {
		return nil, err
	}

	var resp classifyResponse
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &resp); err != nil {
		a.log.Error("gpt: failed to parse classify JSON: %v\nraw: %s", err, raw)
		return &domain.Intent{Type: domain.IntentAskQuestion, Payload: input}, nil
	}

	intentType := domain.IntentFromString(resp.Intent)
	if intentType == domain.IntentUnknown {
		intentType = domain.IntentAskQuestion
	}
	a.log.Debug("gpt: classified %q -> %s (payload=%q)", input, intentType, resp.Payload)

	payload := resp.Payload
	if payload == "" {
		payload = input
	}
	return &domain.Intent{Type: intentType, Payload: payload}, nil
}

// stripCodeFence removes ```json ... ``` wrappers that LLMs love to add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// Remove opening fence line.
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		// Remove closing fence.
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// ── Context building ─────────────────────────────────────────────

// buildMessages assembles the system prompt, the learner's progress as a
// context message and the actual query.
func (a *Agent) buildMessages(systemPrompt, userQuery string, s domain.UserState) []Message {
	msgs := []Message{
		TextMessage(RoleSystem, systemPrompt),
	}

	if ctxBlock := summary.Summarize(s); ctxBlock != summary.NoData {
		msgs = append(msgs, TextMessage(RoleUser, "[Learner Progress]\n"+ctxBlock))
		// Fake an ack so the model treats context as established.
		msgs = append(msgs, TextMessage(RoleAssistant, "Got it, I have the context."))
	}

	msgs = append(msgs, TextMessage(RoleUser, userQuery))
	return msgs
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

package gpt

import (
	"context"
	"fmt"
	"strings"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
	"github.com/hammamikhairi/fuelquest/internal/summary"
)

// ScriptSource provides base narration per slide.
type ScriptSource interface {
	Script(slide domain.SlideID) string
}

// Personalizer rewrites a slide's base script around the learner's data.
type Personalizer struct {
	model   ChatModel
	scripts ScriptSource
	log     *logger.Logger
}

// NewPersonalizer creates a script personalizer.
func NewPersonalizer(model ChatModel, scripts ScriptSource, log *logger.Logger) *Personalizer {
	return &Personalizer{model: model, scripts: scripts, log: log}
}

// Script returns the narration for the slide. It never fails: without
// relevant context, or when the model errors or replies with nothing, the
// base script comes back unchanged.
func (p *Personalizer) Script(ctx context.Context, slide domain.SlideID, s domain.UserState) string {
	base := p.scripts.Script(slide)
	if base == "" {
		return base
	}

	block := summary.ForSlide(slide, s)
	if block == "" {
		p.log.Debug("gpt: no context for %s, using base script", slide)
		return base
	}

	query := fmt.Sprintf("Base script: \"%s\"\n\nUser context:\n%s\n\n"+
		"Generate a personalized version of this script that incorporates the user's data. "+
		"Keep the same educational content but make it personal.", base, block)

	reply, err := p.model.Chat(ctx, []Message{
		TextMessage(RoleSystem, PromptScript),
		TextMessage(RoleUser, query),
	})
	if err != nil {
		p.log.Warn("gpt: personalize %s failed: %v", slide, err)
		return base
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return base
	}
	return reply
}

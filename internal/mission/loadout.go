package mission

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hammamikhairi/fuelquest/internal/completion"
	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/lesson"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// Quizzes looks up habit quizzes. lesson.Catalog satisfies it.
type Quizzes interface {
	Quiz(habit domain.HabitID) (lesson.Quiz, error)
}

// Judge grades quiz answers. gpt.Agent satisfies it.
type Judge interface {
	Judge(ctx context.Context, q lesson.Quiz, answer string) domain.Verdict
}

// Loadout is the strategy mission: earn each habit by answering its quiz.
type Loadout struct {
	store   Store
	quizzes Quizzes
	judge   Judge
	cues    domain.CuePlayer
	log     *logger.Logger
}

// NewLoadout creates the strategy mission.
func NewLoadout(store Store, quizzes Quizzes, judge Judge, cues domain.CuePlayer, log *logger.Logger) *Loadout {
	return &Loadout{store: store, quizzes: quizzes, judge: judge, cues: cues, log: log}
}

// Question returns the quiz for a habit.
func (l *Loadout) Question(habit domain.HabitID) (lesson.Quiz, error) {
	q, err := l.quizzes.Quiz(habit)
	if err != nil {
		return lesson.Quiz{}, fmt.Errorf("habit %q: %w", habit, err)
	}
	return q, nil
}

// Answer stores the learner's answer, grades it and equips the habit when
// it is correct. If ctx is cancelled while grading, the verdict is thrown
// away, nothing is equipped and context.Canceled is returned. A deadline
// still equips on the judge's fallback verdict.
func (l *Loadout) Answer(ctx context.Context, habit domain.HabitID, answer string) (domain.Verdict, error) {
	q, err := l.Question(habit)
	if err != nil {
		return domain.Verdict{}, err
	}
	answer = strings.TrimSpace(answer)

	if l.store.Snapshot().HasHabit(habit) {
		return domain.Verdict{Correct: true, Message: q.Title + " is already equipped."}, nil
	}

	l.store.SetHabitQuizAnswer(habit, answer)
	v := l.judge.Judge(ctx, q, answer)
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		l.log.Debug("mission: %s verdict dropped: %v", habit, err)
		return domain.Verdict{}, err
	}
	if !v.Correct {
		l.cues.Play(domain.CueError)
		l.log.Debug("mission: %s answer rejected", habit)
		return v, nil
	}

	l.commit(l.store.EquipHabit(habit))
	return v, nil
}

// Unequip removes a habit.
func (l *Loadout) Unequip(habit domain.HabitID) error {
	if !domain.IsHabit(habit) {
		return fmt.Errorf("habit %q: %w", habit, domain.ErrUnknownHabit)
	}
	l.commit(l.store.UnequipHabit(habit))
	return nil
}

// Equipped returns the equipped habits in equip order.
func (l *Loadout) Equipped() []domain.HabitID {
	return l.store.Snapshot().EquippedHabits
}

// commit plays the cues for a loadout change and refreshes the strategy
// flag from the live habit set.
func (l *Loadout) commit(before, after []domain.HabitID) {
	if len(before) == len(after) {
		return
	}
	l.cues.Play(domain.CueEquip)
	done := l.store.EvaluateSlide(domain.SlideStrategy, func(s domain.UserState) bool {
		return completion.Strategy(s.EquippedHabits)
	})
	if done && !completion.Strategy(before) {
		l.cues.Play(domain.CueLevelUp)
	}
}

// ParseHabit resolves a habit by id or quiz title prefix.
func ParseHabit(quizzes Quizzes, s string) (domain.HabitID, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	if id := domain.HabitID(s); domain.IsHabit(id) {
		return id, true
	}
	for _, h := range domain.Habits() {
		q, err := quizzes.Quiz(h)
		if err == nil && strings.HasPrefix(strings.ToLower(q.Title), s) {
			return h, true
		}
	}
	return "", false
}

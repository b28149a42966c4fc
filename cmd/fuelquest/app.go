package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/fuelquest/internal/coach"
	"github.com/hammamikhairi/fuelquest/internal/completion"
	"github.com/hammamikhairi/fuelquest/internal/display"
	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/engine"
	"github.com/hammamikhairi/fuelquest/internal/gpt"
	"github.com/hammamikhairi/fuelquest/internal/lesson"
	"github.com/hammamikhairi/fuelquest/internal/logger"
	"github.com/hammamikhairi/fuelquest/internal/mission"
	"github.com/hammamikhairi/fuelquest/internal/nudge"
	"github.com/hammamikhairi/fuelquest/internal/speech"
	"github.com/hammamikhairi/fuelquest/internal/state"
	"github.com/hammamikhairi/fuelquest/internal/summary"
)

type cliApp struct {
	engine   *engine.Engine
	store    *state.Store
	catalog  *lesson.Catalog
	agent    *gpt.Agent
	coach    *coach.Coach
	parser   domain.IntentParser
	notifier domain.Notifier
	cues     domain.CuePlayer
	voice    coach.Voice
	mouth    *speech.Mouth // nil when TTS is disabled
	listener domain.Listener
	voiceOn  bool
	voiceCh  chan string
	nudge    *nudge.Watcher
	ui       *display.UI
	timeout  time.Duration
	log      *logger.Logger

	dashboard *mission.Dashboard
	meal      *mission.MealBuilder
	battery   *mission.Battery
	sugar     *mission.SugarLab
	loadout   *mission.Loadout

	// Owned by the run goroutine.
	ctx       context.Context
	bestLevel int
	habit     domain.HabitID // quiz waiting for an answer
}

// say prints a coach line and queues it for speech.
func (a *cliApp) say(text string, priority speech.Priority) {
	a.ui.PrintCoach(text)
	a.voice.Say(text, priority)
}

// warn reports a failure on screen and through the voice.
func (a *cliApp) warn(text string) {
	if err := a.notifier.NotifyUrgent(a.ctx, text); err != nil {
		a.log.Warn("notify: %v", err)
	}
}

func (a *cliApp) run(ctx context.Context) {
	a.ctx = ctx
	a.bestLevel = a.engine.Rank(false).Level

	a.say(speech.LineWelcome(), speech.PriorityNormal)
	a.showMission(a.engine.Current())
	a.coach.Narrate(ctx, a.engine.Current())

	uiCh := a.ui.InputChan()
	for {
		var input string
		select {
		case <-ctx.Done():
			return
		case <-a.ui.QuitChan():
			return
		case input = <-uiCh:
		case input = <-a.voiceCh:
			a.ui.PrintVoice(input)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		a.nudge.Touch()

		intent, err := a.parser.Parse(ctx, input, a.engine.Current())
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}
		a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
		if !a.handleIntent(ctx, intent) {
			return
		}
	}
}

// handleIntent dispatches one intent. It returns false when the app should
// stop.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentUnknown, domain.IntentListen, domain.IntentHelp:
	default:
		a.voice.Interrupt()
	}

	switch intent.Type {
	case domain.IntentNext:
		a.next()
	case domain.IntentBack:
		if !a.engine.Prev() {
			a.say(speech.LineFirstSlide(), speech.PriorityLow)
		}
	case domain.IntentSetName:
		a.dashboard.SetName(intent.Payload)
		a.say(speech.LineNameSet(strings.TrimSpace(intent.Payload)), speech.PriorityNormal)
	case domain.IntentSetWeight:
		a.setWeight(intent.Payload)
	case domain.IntentAddFood:
		a.addFood(intent.Payload)
	case domain.IntentLookupFood:
		a.lookupFood(ctx, intent.Payload)
	case domain.IntentMenu:
		a.showMenu(a.engine.Current())
	case domain.IntentReset:
		a.reset()
	case domain.IntentDose:
		a.dose(intent.Payload)
	case domain.IntentRound:
		a.startRound()
	case domain.IntentAnswer:
		a.answer(ctx, intent.Payload)
	case domain.IntentEquip:
		a.equip(intent.Payload)
	case domain.IntentUnequip:
		a.unequip(intent.Payload)
	case domain.IntentMealIdeas:
		a.mealIdeas(ctx)
	case domain.IntentStatus:
		a.showStatus()
	case domain.IntentRepeat:
		a.repeat()
	case domain.IntentListen:
		a.listen(ctx)
	case domain.IntentAskQuestion:
		a.ui.PrintHint(speech.LineThinking())
		a.coach.Ask(ctx, intent.Payload)
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentQuit:
		a.say(speech.LineBye(), speech.PriorityHigh)
		return false
	case domain.IntentUnknown:
		return a.classifyAndDispatch(ctx, intent)
	}
	return true
}

// classifyAndDispatch asks the model to place input the keyword parser
// could not, then dispatches the result.
func (a *cliApp) classifyAndDispatch(ctx context.Context, original *domain.Intent) bool {
	if original.Payload == "" {
		return true
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	classified, err := a.agent.Classify(reqCtx, original.Payload, a.engine.Current())
	if err != nil {
		a.log.Debug("classify failed: %v", err)
		a.say(speech.LineUnknown(original.Payload), speech.PriorityLow)
		return true
	}
	if classified.Type == domain.IntentUnknown {
		a.say(speech.LineUnknown(original.Payload), speech.PriorityLow)
		return true
	}

	a.log.Info("classified %q -> %s", original.Payload, classified.Type)
	return a.handleIntent(ctx, classified)
}

// ── Navigation ───────────────────────────────────────────────────

// next moves forward. A blocked move plays no cue and speaks nothing; the
// locked hint is only printed.
func (a *cliApp) next() {
	if a.engine.Next() {
		return
	}
	if a.engine.IsLast() {
		a.say(speech.LineFinalSlide(), speech.PriorityLow)
		return
	}
	a.ui.PrintHint(speech.LineLocked(a.catalog.Hint(a.engine.Current())))
}

// onTransition runs on the run goroutine after every move.
func (a *cliApp) onTransition(from, to domain.SlideID, index int) {
	if from == domain.SlideCreatine && a.battery.InRound() {
		a.battery.Abort()
		a.ui.PrintHint("Math round cancelled.")
	}
	a.habit = ""

	a.showMission(to)
	a.coach.Narrate(a.ctx, to)

	rank := a.engine.Rank(completion.Strategy(a.store.Snapshot().EquippedHabits))
	if rank.Level > a.bestLevel {
		a.bestLevel = rank.Level
		a.cues.Play(domain.CueLevelUp)
		a.say(speech.LineRankUp(rank.Title, rank.Level), speech.PriorityLow)
	}
	a.log.Debug("mission %d: %s", index+1, to)
}

func (a *cliApp) showMission(slide domain.SlideID) {
	a.ui.Println("")
	a.ui.PrintMission(fmt.Sprintf("Mission %d/%d: %s", a.engine.Index()+1, a.engine.Len(), slide.Title()))
	a.showMenu(slide)
}

// ── Dashboard ────────────────────────────────────────────────────

func (a *cliApp) setWeight(payload string) {
	lbs, err := strconv.ParseFloat(payload, 64)
	if err != nil || lbs <= 0 {
		a.say(speech.LineUnknown(payload), speech.PriorityLow)
		return
	}
	a.dashboard.SetWeight(lbs)
	if t := a.store.Snapshot().ProteinTarget; t != nil {
		a.say(speech.LineWeightSet(lbs, *t), speech.PriorityNormal)
	}
}

func (a *cliApp) addFood(name string) {
	switch a.engine.Current() {
	case domain.SlideDashboard:
		f, err := a.dashboard.AddFood(name)
		if errors.Is(err, domain.ErrNotFound) {
			a.say(speech.LineFoodNotFound(name), speech.PriorityLow)
			return
		}
		a.sayFoodAdded(f)

	case domain.SlideProtein:
		m, err := a.meal.Add(name)
		if errors.Is(err, domain.ErrNotFound) {
			a.say(speech.LineFoodNotFound(name), speech.PriorityLow)
			return
		}
		a.say(speech.LineMeal(m.Protein, m.Fat, m.Carbs, m.Calories), speech.PriorityNormal)
		if completion.FatBlowout(m) {
			a.say(speech.LineFatBlowout(), speech.PriorityNormal)
		}

	case domain.SlideSugar:
		class, err := a.sugar.Add(name)
		if errors.Is(err, domain.ErrNotFound) {
			a.say(speech.LineFoodNotFound(name), speech.PriorityLow)
			return
		}
		a.ui.PrintHint("Plate: " + foodNames(a.store.Snapshot().SugarFoods))
		a.say(speech.LineCurve(class.String()), speech.PriorityNormal)

	default:
		a.say(speech.LineNothingToAdd(), speech.PriorityLow)
	}
}

func (a *cliApp) sayFoodAdded(f domain.FoodItem) {
	snap := a.store.Snapshot()
	a.say(speech.LineFoodAdded(f.Name, f.Protein, snap.DashboardTotals.Protein, snap.ProteinTarget), speech.PriorityNormal)
}

// lookupFood asks the model for a food that is not on the menu and adds it
// to the dashboard.
func (a *cliApp) lookupFood(ctx context.Context, name string) {
	if a.engine.Current() != domain.SlideDashboard {
		a.say(speech.LineNothingToAdd(), speech.PriorityLow)
		return
	}
	a.ui.PrintHint(speech.LineLookingUp(name))

	var found domain.FoodItem
	a.coach.Go(ctx, coach.PurposeLookup, func(ctx context.Context) string {
		f, ok := a.agent.LookupFood(ctx, name)
		if !ok {
			return speech.LineLookupFailed(name)
		}
		found = f
		return f.Name
	}, func(result string) {
		if found.Name == "" {
			a.say(result, speech.PriorityLow)
			return
		}
		a.dashboard.AddCustomFood(found)
		a.sayFoodAdded(found)
	})
}

func (a *cliApp) mealIdeas(ctx context.Context) {
	a.ui.PrintHint(speech.LineThinking())
	snap := a.store.Snapshot()
	fallback := a.catalog.MealIdeas()
	a.coach.Go(ctx, coach.PurposeIdeas, func(ctx context.Context) string {
		return strings.Join(a.agent.MealIdeas(ctx, snap, fallback), "\n")
	}, func(result string) {
		for _, idea := range strings.Split(result, "\n") {
			a.ui.PrintInfo("• " + idea)
		}
		a.voice.Say(strings.ReplaceAll(result, "\n", ". "), speech.PriorityNormal)
	})
}

// ── Missions ─────────────────────────────────────────────────────

func (a *cliApp) reset() {
	switch a.engine.Current() {
	case domain.SlideDashboard:
		a.dashboard.Reset()
	case domain.SlideProtein:
		a.meal.Reset()
	case domain.SlideSugar:
		a.sugar.Reset()
	case domain.SlideCreatine:
		a.battery.Abort()
		a.battery.SetDose(0)
	default:
		a.ui.PrintHint("Use unequip to drop a habit.")
		return
	}
	a.ui.PrintHint("Mission reset.")
}

func (a *cliApp) dose(payload string) {
	grams, err := strconv.ParseFloat(payload, 64)
	if err != nil {
		a.say(speech.LineUnknown(payload), speech.PriorityLow)
		return
	}
	grams = min(max(grams, 0), mission.MaxDoseGrams)
	level := a.battery.SetDose(grams)
	a.say(speech.LineDose(grams, level), speech.PriorityNormal)
}

func (a *cliApp) startRound() {
	r, err := a.battery.StartRound()
	if errors.Is(err, mission.ErrRoundActive) {
		a.ui.PrintHint("A round is already running. Answer the problem!")
		return
	}
	if err != nil {
		a.warn(err.Error())
		return
	}
	a.say(speech.LineRoundStart(r.Battery, r.PerProblem, r.First().Text), speech.PriorityHigh)
}

// answer routes an answer to the math round when one is running, else to
// the pending habit quiz.
func (a *cliApp) answer(ctx context.Context, payload string) {
	if a.battery.InRound() {
		a.answerProblem(payload)
		return
	}
	if a.engine.Current() != domain.SlideStrategy || a.habit == "" {
		a.say(speech.LinePickHabit(), speech.PriorityLow)
		return
	}
	a.judge(ctx, a.habit, payload)
}

func (a *cliApp) answerProblem(payload string) {
	value, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		a.ui.PrintHint("Type the number.")
		return
	}
	out, err := a.battery.Answer(value)
	if err != nil {
		a.log.Warn("answer: %v", err)
		return
	}

	switch {
	case out.Late:
		a.ui.PrintHint(speech.LineAnswerLate(out.Expected))
	case !out.Correct:
		a.ui.PrintHint(speech.LineAnswerWrong(out.Expected))
	}
	if out.Done {
		a.say(speech.LineRoundDone(out.Score, mission.RoundLength), speech.PriorityNormal)
		return
	}
	a.say(speech.LineProblem(out.Next.Text), speech.PriorityHigh)
}

func (a *cliApp) equip(payload string) {
	habit, ok := mission.ParseHabit(a.catalog, payload)
	if !ok {
		a.say(speech.LinePickHabit(), speech.PriorityLow)
		return
	}
	q, err := a.loadout.Question(habit)
	if err != nil {
		a.warn(err.Error())
		return
	}
	if a.store.Snapshot().HasHabit(habit) {
		a.say(q.Title+" is already equipped.", speech.PriorityLow)
		return
	}
	a.habit = habit
	a.say(speech.LineQuestion(q.Title, q.Question), speech.PriorityNormal)
	a.ui.PrintHint("Reply with: answer <your answer>")
}

// judge grades a quiz answer in the background; the model may be slow.
func (a *cliApp) judge(ctx context.Context, habit domain.HabitID, text string) {
	a.ui.PrintHint(speech.LineThinking())
	a.coach.Go(ctx, coach.PurposeJudge, func(ctx context.Context) string {
		v, err := a.loadout.Answer(ctx, habit, text)
		if errors.Is(err, context.Canceled) {
			return ""
		}
		if err != nil {
			a.log.Error("judge %s: %v", habit, err)
			return speech.LineAIError()
		}
		if !v.Correct || !completion.Strategy(a.store.Snapshot().EquippedHabits) {
			return v.Message
		}
		cheer := a.agent.Celebrate(ctx, a.store.Snapshot(), a.catalog.Celebration())
		return strings.TrimSpace(v.Message + " " + speech.LineAllEquipped() + " " + cheer)
	}, func(result string) {
		a.say(result, speech.PriorityHigh)
	})
}

func (a *cliApp) unequip(payload string) {
	habit, ok := mission.ParseHabit(a.catalog, payload)
	if !ok {
		a.say(speech.LinePickHabit(), speech.PriorityLow)
		return
	}
	if err := a.loadout.Unequip(habit); err != nil {
		a.warn(err.Error())
		return
	}
	a.ui.PrintHint(fmt.Sprintf("Unequipped %s.", habit))
}

// ── Global ───────────────────────────────────────────────────────

func (a *cliApp) repeat() {
	last := ""
	if a.mouth != nil {
		last = a.mouth.LastSpoken()
	}
	if last == "" {
		last = a.coach.Script()
	}
	if last == "" {
		a.say(speech.LineNothingToRepeat(), speech.PriorityLow)
		return
	}
	a.say(last, speech.PriorityNormal)
}

// listen records one push-to-talk window off the run goroutine and feeds
// the transcript back into the input loop.
func (a *cliApp) listen(ctx context.Context) {
	if !a.voiceOn {
		a.ui.PrintHint(speech.LineVoiceOff())
		return
	}
	a.ui.PrintHint(speech.LineListening())
	go func() {
		text, err := a.listener.Listen(ctx)
		switch {
		case errors.Is(err, speech.ErrNothingHeard):
			a.ui.PrintHint(speech.LineNothingHeard())
		case err != nil:
			a.log.Error("listen: %v", err)
		default:
			select {
			case a.voiceCh <- text:
			case <-ctx.Done():
			}
		}
	}()
}

func (a *cliApp) showStatus() {
	rank := a.engine.Rank(completion.Strategy(a.store.Snapshot().EquippedHabits))
	a.ui.PrintMission(fmt.Sprintf("Level %d %s", rank.Level, rank.Title))
	for _, line := range strings.Split(summary.Summarize(a.store.Snapshot()), "\n") {
		a.ui.PrintInfo(line)
	}
}

func (a *cliApp) showMenu(slide domain.SlideID) {
	switch slide {
	case domain.SlideDashboard:
		a.ui.PrintHint("name <you>, weight <lbs>, add <food>, lookup <food>")
		for _, f := range a.catalog.DashboardFoods() {
			a.ui.PrintInfo(fmt.Sprintf("%s %-16s %4.0f cal  %3.0fg protein", f.Emoji, f.Name, f.Calories, f.Protein))
		}
	case domain.SlideProtein:
		a.ui.PrintHint("add <food> to build one meal: 30g+ protein, 30g+ carbs, 25g fat or less")
		for _, f := range a.catalog.MealFoods() {
			a.ui.PrintInfo(fmt.Sprintf("%s %-16s P%-3.0f F%-3.0f C%-3.0f", f.Emoji, f.Name, f.Protein, f.Fat, f.Carbs))
		}
	case domain.SlideCreatine:
		a.ui.PrintHint("dose <0-5 g> to charge the battery, round to start the math challenge")
	case domain.SlideSugar:
		a.ui.PrintHint("add <food> to build a plate with steady energy")
		for _, f := range a.catalog.SugarFoods() {
			a.ui.PrintInfo(fmt.Sprintf("%s %s (%s)", f.Emoji, f.Name, f.Category))
		}
	case domain.SlideStrategy:
		a.ui.PrintHint("equip <habit> to answer its quiz, unequip <habit> to drop it")
		snap := a.store.Snapshot()
		for _, h := range domain.Habits() {
			q, err := a.catalog.Quiz(h)
			if err != nil {
				continue
			}
			mark := " "
			if snap.HasHabit(h) {
				mark = "✓"
			}
			a.ui.PrintInfo(fmt.Sprintf("[%s] %-9s %s", mark, h, q.Title))
		}
	}
}

func (a *cliApp) showHelp() {
	a.ui.PrintMission("Commands")
	for _, line := range []string{
		"next / back          move between missions",
		"menu                 show this mission's options",
		"name, weight, add    fill in the fuel dashboard",
		"lookup <food>        ask the coach about any food",
		"ideas                meal ideas for you",
		"dose <g>, round      charge the brain battery and test it",
		"equip / answer       earn a habit on the final mission",
		"reset                clear this mission",
		"status               your progress so far",
		"repeat               hear the last line again",
		"talk                 speak a command (voice mode)",
		"quit                 leave",
		"Anything ending in ? goes to the coach.",
	} {
		a.ui.PrintInfo(line)
	}
}

// status feeds the mission bar. A slide is locked while any earlier slide
// is incomplete.
func (a *cliApp) status() display.Status {
	snap := a.store.Snapshot()
	rank := a.engine.Rank(completion.Strategy(snap.EquippedHabits))
	st := display.Status{
		Level:     rank.Level,
		Title:     rank.Title,
		Equipment: rank.Equipment,
		Current:   a.engine.Index(),
	}
	locked := false
	for _, id := range domain.Slides() {
		done := snap.SlideCompletion[id]
		st.Slides = append(st.Slides, display.SlideStatus{Title: id.Title(), Complete: done, Locked: locked})
		if !done {
			locked = true
		}
	}
	return st
}

func foodNames(foods []domain.FoodItem) string {
	names := make([]string, len(foods))
	for i, f := range foods {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}

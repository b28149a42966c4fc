// lines.go centralises every fixed spoken string. Keep lines short; the
// TTS engine handles inflection.

package speech

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// ── Global ───────────────────────────────────────────────────────

func LineWelcome() string {
	return "Welcome to FuelQuest. Five missions stand between you and legend status. Let's fuel up."
}

func LineBye() string {
	return "Good game. Keep fueling."
}

func LineNothingToRepeat() string {
	return "I haven't said anything yet."
}

func LineUnknown(input string) string {
	return fmt.Sprintf("I didn't catch %q. Type help to see what you can do.", input)
}

func LineAIError() string {
	return "My coach brain is offline. Try again in a moment."
}

// ── Navigation ───────────────────────────────────────────────────

func LineLocked(hint string) string {
	if hint == "" {
		return "Finish this mission to unlock the next one."
	}
	return "Locked. " + hint
}

func LineFirstSlide() string {
	return "This is the first mission."
}

func LineFinalSlide() string {
	return "This is the final mission. Equip every habit to become a legend."
}

func LineRankUp(title string, level int) string {
	return fmt.Sprintf("Level up! You are now a level %d %s.", level, title)
}

// ── Dashboard ────────────────────────────────────────────────────

func LineNameSet(name string) string {
	return fmt.Sprintf("Nice to meet you, %s.", name)
}

func LineWeightSet(lbs float64, target int) string {
	return fmt.Sprintf("Got it, %s pounds. Your daily protein goal is %d grams.", trimFloat(lbs), target)
}

func LineFoodAdded(name string, protein, total float64, target *int) string {
	line := fmt.Sprintf("Added %s, %s grams of protein. Total today: %s grams.", name, trimFloat(protein), trimFloat(total))
	if target != nil && total < float64(*target) {
		line += fmt.Sprintf(" %s to go.", trimFloat(float64(*target)-total))
	} else if target != nil {
		line += " Goal reached!"
	}
	return line
}

func LineFoodNotFound(name string) string {
	return fmt.Sprintf("%s isn't on the menu. Try lookup %s to ask the coach.", name, name)
}

func LineLookingUp(name string) string {
	return fmt.Sprintf("Looking up %s.", name)
}

func LineLookupFailed(name string) string {
	return fmt.Sprintf("I couldn't find nutrition facts for %s.", name)
}

func LineNothingToAdd() string {
	return "There's nothing to add on this mission."
}

// ── Protein meal ─────────────────────────────────────────────────

func LineMeal(protein, fat, carbs, calories float64) string {
	return fmt.Sprintf("Meal: %s protein, %s fat, %s carbs, %s calories.",
		trimFloat(protein), trimFloat(fat), trimFloat(carbs), trimFloat(calories))
}

func LineFatBlowout() string {
	return "Whoa, too much fat! Reset and try leaner picks."
}

// ── Creatine ─────────────────────────────────────────────────────

func LineDose(grams, level float64) string {
	if level >= 100 {
		return fmt.Sprintf("%s grams. Brain battery fully charged!", trimFloat(grams))
	}
	return fmt.Sprintf("%s grams. Brain battery at %s percent.", trimFloat(grams), trimFloat(level))
}

func LineRoundStart(level float64, per time.Duration, first string) string {
	return fmt.Sprintf("Math round at %s percent battery. %s seconds each. First: %s",
		trimFloat(level), trimFloat(per.Seconds()), first)
}

func LineProblem(text string) string {
	return "Next: " + text
}

func LineAnswerLate(expected int) string {
	return fmt.Sprintf("Too slow! It was %d.", expected)
}

func LineAnswerWrong(expected int) string {
	return fmt.Sprintf("Nope, %d.", expected)
}

func LineRoundDone(correct, total int) string {
	if correct == total {
		return fmt.Sprintf("Perfect round! %d out of %d.", correct, total)
	}
	return fmt.Sprintf("Round over. %d out of %d.", correct, total)
}

// ── Sugar ────────────────────────────────────────────────────────

func LineCurve(class string) string {
	switch class {
	case "good":
		return "Steady energy. That's how champions fuel."
	case "crash":
		return "Spike then crash. You'll be tired by third period."
	case "danger":
		return "Danger zone! Way too much sugar."
	case "overload":
		return "Sugar overload. Swap something for protein."
	default:
		return "Not bad, but you can do better. Add some protein."
	}
}

// ── Strategy ─────────────────────────────────────────────────────

func LineQuestion(title, question string) string {
	return fmt.Sprintf("%s. %s", title, question)
}

func LinePickHabit() string {
	return "Pick a habit first, like equip yogurt."
}

func LineAllEquipped() string {
	return "All habits equipped. You're a legend!"
}

// ── Thinking / listening fillers ─────────────────────────────────

var thinkingFillers = []string{
	"Let me think.",
	"Good question.",
	"Hmm, one sec.",
	"Checking my playbook.",
}

var listeningFillers = []string{
	"I'm listening.",
	"Go ahead.",
	"Talk to me.",
}

func LineThinking() string {
	return thinkingFillers[rand.IntN(len(thinkingFillers))]
}

func LineListening() string {
	return listeningFillers[rand.IntN(len(listeningFillers))]
}

func LineNothingHeard() string {
	return "I didn't hear anything."
}

func LineVoiceOff() string {
	return "Voice input is off. Start FuelQuest with --voice to talk to me."
}

// Fillers returns every filler line, for cache prefetching.
func Fillers() []string {
	out := append([]string(nil), thinkingFillers...)
	return append(out, listeningFillers...)
}

// trimFloat prints 12 as "12" and 12.5 as "12.5".
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	return strings.TrimSuffix(s, ".0")
}

package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentNext
	IntentBack
	IntentSetName
	IntentSetWeight
	IntentAddFood
	IntentMenu
	IntentReset
	IntentDose
	IntentRound
	IntentEquip
	IntentAnswer
	IntentUnequip
	IntentLookupFood // ask the AI for nutrition facts of an unlisted food
	IntentMealIdeas  // ask the AI for meal suggestions
	IntentStatus
	IntentRepeat      // replay the last thing the coach said
	IntentListen      // push-to-talk voice input
	IntentAskQuestion // free-form question sent to the coach
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentNext:
		return "next"
	case IntentBack:
		return "back"
	case IntentSetName:
		return "set_name"
	case IntentSetWeight:
		return "set_weight"
	case IntentAddFood:
		return "add_food"
	case IntentMenu:
		return "menu"
	case IntentReset:
		return "reset"
	case IntentDose:
		return "dose"
	case IntentRound:
		return "round"
	case IntentEquip:
		return "equip"
	case IntentAnswer:
		return "answer"
	case IntentUnequip:
		return "unequip"
	case IntentLookupFood:
		return "lookup_food"
	case IntentMealIdeas:
		return "meal_ideas"
	case IntentStatus:
		return "status"
	case IntentRepeat:
		return "repeat"
	case IntentListen:
		return "listen"
	case IntentAskQuestion:
		return "ask_question"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent is a parsed user command.
type Intent struct {
	Type    IntentType
	Payload string
}

// IntentFromString parses the snake-case name produced by String. Unknown
// names map to IntentUnknown.
func IntentFromString(s string) IntentType {
	for t := IntentNext; t <= IntentQuit; t++ {
		if t.String() == s {
			return t
		}
	}
	return IntentUnknown
}

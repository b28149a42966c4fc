package domain

// Cue is a named short sound effect.
type Cue int

const (
	CueClick Cue = iota
	CueSuccess
	CueError
	CueLevelUp
	CueEquip
	CueTransition
	CueAlarm
)

// String returns a human-readable cue name.
func (c Cue) String() string {
	switch c {
	case CueClick:
		return "click"
	case CueSuccess:
		return "success"
	case CueError:
		return "error"
	case CueLevelUp:
		return "level_up"
	case CueEquip:
		return "equip"
	case CueTransition:
		return "transition"
	case CueAlarm:
		return "alarm"
	default:
		return "unknown"
	}
}

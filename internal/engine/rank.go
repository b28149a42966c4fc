package engine

// MaxLevel is the LEGEND rank, reserved for the last slide with every habit
// equipped.
const MaxLevel = 5

var rankTitles = [...]string{"Recruit", "Trainee", "Warrior", "Champion", "LEGEND"}

var equipment = [...]string{"boots", "armor", "sword", "shield"}

// Rank is the character shown in the HUD.
type Rank struct {
	Level     int
	Title     string
	Equipment []string
}

// RankFor derives the HUD rank from the slide index. Each slide unlocks one
// piece of equipment; the fifth level needs the final loadout.
func RankFor(index int, lastSlide, allEquipped bool) Rank {
	level := index + 1
	if level > 4 {
		level = 4
	}
	if level < 1 {
		level = 1
	}
	if lastSlide && allEquipped {
		level = MaxLevel
	}

	gear := len(equipment)
	if level < gear {
		gear = level
	}
	return Rank{
		Level:     level,
		Title:     rankTitles[level-1],
		Equipment: append([]string(nil), equipment[:gear]...),
	}
}

// Rank returns the HUD rank for the current position.
func (e *Engine) Rank(allEquipped bool) Rank {
	e.mu.Lock()
	defer e.mu.Unlock()
	return RankFor(e.index, e.index == len(e.slides)-1, allEquipped)
}

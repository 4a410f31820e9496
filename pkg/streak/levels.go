package streak

// Level is a named tier reached once the streak meets Threshold.
type Level struct {
	Threshold int    `json:"threshold"`
	Name      string `json:"name"`
}

// levels is ascending by threshold.
var levels = []Level{
	{Threshold: 0, Name: "Unknown"},
	{Threshold: 1, Name: "Beginner"},
	{Threshold: 7, Name: "Explorer"},
	{Threshold: 15, Name: "Adventurer"},
	{Threshold: 30, Name: "Warrior"},
	{Threshold: 50, Name: "Champion"},
	{Threshold: 75, Name: "Legend"},
	{Threshold: 100, Name: "Mystic"},
	{Threshold: 150, Name: "God"},
}

// Levels returns a copy of the level table.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}

// LevelFor returns the highest level whose threshold is <= streak.
func LevelFor(streak int) Level {
	lvl := levels[0]
	for _, l := range levels {
		if streak < l.Threshold {
			break
		}
		lvl = l
	}
	return lvl
}

// NextLevel returns the first level above streak, or false at the top tier.
func NextLevel(streak int) (Level, bool) {
	for _, l := range levels {
		if l.Threshold > streak {
			return l, true
		}
	}
	return Level{}, false
}

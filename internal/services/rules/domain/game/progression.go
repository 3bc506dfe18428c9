package game

// fameThresholds[i] is the fame needed to reach level i+1.
var fameThresholds = []int{0, 3, 8, 15, 24, 35, 48, 63, 80, 99}

// MaxLevel is the highest reachable level.
const MaxLevel = 10

// LevelForFame returns the level a fame total reaches.
func LevelForFame(fame int) int {
	level := 1
	for i, threshold := range fameThresholds {
		if fame >= threshold {
			level = i + 1
		}
	}
	return level
}

// LevelReward is what a player gains on reaching a level.
type LevelReward struct {
	Armor         int
	HandLimit     int
	CommandTokens int
	Skill         bool
	// AdvancedAction grants the top card of the advanced action deck.
	AdvancedAction bool
}

// RewardForLevel returns the reward for entering level. Even levels grant a
// skill. Odd levels grant an advanced action and a command token, plus armor
// at levels 3 and 7 or hand limit otherwise.
func RewardForLevel(level int) LevelReward {
	if level <= 1 {
		return LevelReward{}
	}
	if level%2 == 0 {
		return LevelReward{Skill: true}
	}
	switch level {
	case 3, 7:
		return LevelReward{Armor: 1, CommandTokens: 1, AdvancedAction: true}
	default:
		return LevelReward{HandLimit: 1, CommandTokens: 1, AdvancedAction: true}
	}
}

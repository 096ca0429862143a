package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStat(t *testing.T) {
	require.Equal(t, StatStrength, ParseStat("Strength"))
	require.Equal(t, StatSense, ParseStat(" sense "))
	require.Equal(t, DefaultStat, ParseStat("charisma"))
	require.Equal(t, DefaultStat, ParseStat(""))
}

func TestClampDifficulty(t *testing.T) {
	require.Equal(t, Difficulty(1), ClampDifficulty(1))
	require.Equal(t, Difficulty(6), ClampDifficulty(6))
	require.Equal(t, DefaultDifficulty, ClampDifficulty(0))
	require.Equal(t, DefaultDifficulty, ClampDifficulty(7))
	require.Equal(t, DefaultDifficulty, ClampDifficulty(-3))
}

func TestDifficultyXPRanges(t *testing.T) {
	for d := Difficulty(1); d <= 6; d++ {
		lo, hi := d.XPRange()
		require.Greater(t, lo, 0)
		require.Greater(t, hi, lo)
		require.NotEmpty(t, d.Name())
	}
}

func TestParseCategory(t *testing.T) {
	require.Equal(t, Category("fitness"), ParseCategory("Fitness"))
	require.Equal(t, DefaultCategory, ParseCategory("underwater basket weaving"))
}

func TestTierForLevel(t *testing.T) {
	require.Equal(t, "Novice Adventurer", TierForLevel(1).Name)
	require.Equal(t, "Novice Adventurer", TierForLevel(10).Name)
	require.Equal(t, "Skilled Warrior", TierForLevel(11).Name)
	require.Equal(t, "Elite Champion", TierForLevel(26).Name)
	require.Equal(t, "Master Guardian", TierForLevel(51).Name)
	require.Equal(t, "Legendary Hero", TierForLevel(76).Name)
	require.Equal(t, "Shadow Monarch", TierForLevel(100).Name)
	require.Equal(t, "Shadow Monarch", TierForLevel(5000).Name)
}

func TestClampXPReward(t *testing.T) {
	require.Equal(t, 150, ClampXPReward(150, DefaultHabitXP))
	require.Equal(t, DefaultHabitXP, ClampXPReward(0, DefaultHabitXP))
	require.Equal(t, DefaultGoalXP, ClampXPReward(-100, DefaultGoalXP))
}

package services

// Derived progress view: everything here is a pure function of the
// claimed-badge set and the chosen class. Nothing is persisted; the
// client recomputes this from the server-reported badge list on every
// render, so same inputs must always produce same outputs.

type MilestoneTier string

const (
	MilestoneNone   MilestoneTier = "none"
	MilestoneBronze MilestoneTier = "bronze"
	MilestoneSilver MilestoneTier = "silver"
	MilestoneGold   MilestoneTier = "gold"
)

const bronzeThreshold = 3

// Level is simply badge count + 1 (a fresh device starts at level 1).
func Level(claimedCount int) int {
	if claimedCount < 0 {
		claimedCount = 0
	}
	return claimedCount + 1
}

// Milestone buckets progress into monotonic, cumulative tiers:
// bronze at 3 badges, silver at half the catalog, gold at the full set.
func Milestone(claimedCount, catalogSize int) MilestoneTier {
	if catalogSize <= 0 {
		return MilestoneNone
	}
	switch {
	case claimedCount >= catalogSize:
		return MilestoneGold
	case claimedCount >= (catalogSize+1)/2:
		return MilestoneSilver
	case claimedCount >= bronzeThreshold:
		return MilestoneBronze
	default:
		return MilestoneNone
	}
}

// ClassStats are the per-avatar base stats. The four classes line up with
// the four selectable avatars.
type ClassStats struct {
	Name    string
	BaseHP  int
	BaseATK int
	BaseDEF int
}

var avatarClasses = map[int]ClassStats{
	1: {Name: "Ranger", BaseHP: 50, BaseATK: 14, BaseDEF: 8},
	2: {Name: "Mage", BaseHP: 40, BaseATK: 18, BaseDEF: 5},
	3: {Name: "Knight", BaseHP: 60, BaseATK: 10, BaseDEF: 14},
	4: {Name: "Monk", BaseHP: 55, BaseATK: 12, BaseDEF: 10},
}

// milestoneBonus is a flat stat bump per tier, added on top of level scaling.
var milestoneBonus = map[MilestoneTier]int{
	MilestoneNone:   0,
	MilestoneBronze: 2,
	MilestoneSilver: 5,
	MilestoneGold:   10,
}

// BattleStats is the derived combat sheet for the battle minigame.
type BattleStats struct {
	ClassName string        `json:"className"`
	Level     int           `json:"level"`
	HP        int           `json:"hp"`
	ATK       int           `json:"atk"`
	DEF       int           `json:"def"`
	Milestone MilestoneTier `json:"milestone"`
}

// DeriveStats computes the combat sheet from badge count and class.
// Growth mirrors the enemy scaling curve: +10 HP, +2 ATK, +1 DEF per
// level past the first. Unknown avatar ids fall back to class 1.
func DeriveStats(claimedCount, avatarID, catalogSize int) BattleStats {
	class, ok := avatarClasses[avatarID]
	if !ok {
		class = avatarClasses[1]
	}

	level := Level(claimedCount)
	tier := Milestone(claimedCount, catalogSize)
	bonus := milestoneBonus[tier]

	return BattleStats{
		ClassName: class.Name,
		Level:     level,
		HP:        class.BaseHP + (level-1)*10 + bonus*5,
		ATK:       class.BaseATK + (level-1)*2 + bonus,
		DEF:       class.BaseDEF + (level - 1) + bonus,
		Milestone: tier,
	}
}

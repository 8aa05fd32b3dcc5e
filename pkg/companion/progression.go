package companion

import (
	"fmt"
	"math"
	"time"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
)

// ActionKind names a discrete user action that earns bonus XP.
type ActionKind string

const (
	ActionRefresh  ActionKind = "refresh"
	ActionNavigate ActionKind = "navigate"
)

// Rules are the tunable progression constants.
type Rules struct {
	XPPerTick      int
	PointsPerLevel int
	// CurveBase sets xp_to_next(level) = CurveBase * level.
	CurveBase     int
	ActionXP      map[ActionKind]int
	ContentWithin time.Duration
	NeutralWithin time.Duration
}

// DefaultRules returns the stock progression.
func DefaultRules() Rules {
	return Rules{
		XPPerTick:      1,
		PointsPerLevel: 1,
		CurveBase:      100,
		ActionXP:       map[ActionKind]int{ActionRefresh: 5, ActionNavigate: 1},
		ContentWithin:  24 * time.Hour,
		NeutralWithin:  72 * time.Hour,
	}
}

// RulesFromConfig overlays the [companion] section on DefaultRules.
func RulesFromConfig(cc config.CompanionConfig) Rules {
	r := DefaultRules()
	if cc.XPPerTick > 0 {
		r.XPPerTick = cc.XPPerTick
	}
	if cc.PointsPerLevel > 0 {
		r.PointsPerLevel = cc.PointsPerLevel
	}
	if cc.XPCurveBase > 0 {
		r.CurveBase = cc.XPCurveBase
	}
	r.ContentWithin = cc.ContentWithin.Or(r.ContentWithin)
	r.NeutralWithin = cc.NeutralWithin.Or(r.NeutralWithin)
	return r
}

// XPToNext is the XP needed to leave level. It is never below 1, so a
// zero-value Rules cannot stall Credit.
func (r Rules) XPToNext(level int) int {
	return max(r.CurveBase*max(level, 1), 1)
}

// normalized fills unset or invalid fields from DefaultRules.
func (r Rules) normalized() Rules {
	d := DefaultRules()
	if r.CurveBase <= 0 {
		r.CurveBase = d.CurveBase
	}
	if r.PointsPerLevel <= 0 {
		r.PointsPerLevel = d.PointsPerLevel
	}
	if r.XPPerTick < 0 {
		r.XPPerTick = 0
	}
	if r.ActionXP == nil {
		r.ActionXP = d.ActionXP
	}
	if r.ContentWithin <= 0 {
		r.ContentWithin = d.ContentWithin
	}
	if r.NeutralWithin < r.ContentWithin {
		r.NeutralWithin = max(d.NeutralWithin, r.ContentWithin)
	}
	return r
}

// Progress is the fraction of the current level completed, in [0, 1).
func (r Rules) Progress(c Companion) float64 {
	need := r.XPToNext(c.Level)
	if need <= 0 {
		return 0
	}
	return min(float64(c.XP)/float64(need), 1)
}

// Boost applies the companion's multiplier to base, rounding down.
func Boost(base int, c Companion) int {
	if base <= 0 {
		return 0
	}
	// The epsilon keeps 10 * 1.1 from landing just under 11.
	return int(math.Floor(float64(base)*c.Multiplier() + 1e-9))
}

// Credit adds xp and levels up as many times as the total allows, carrying
// the remainder. It returns the number of levels gained.
func (r Rules) Credit(c *Companion, xp int) int {
	if xp <= 0 {
		return 0
	}
	c.XP += xp
	c.TotalXP += int64(xp)

	levels := 0
	for c.XP >= r.XPToNext(c.Level) {
		c.XP -= r.XPToNext(c.Level)
		c.Level++
		c.SkillPoints += r.PointsPerLevel
		levels++
	}
	return levels
}

// Purchase unlocks skill id. Purchases are irreversible.
func Purchase(c *Companion, id string) error {
	s, ok := SkillByID(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSkill, id)
	}
	if c.HasSkill(id) {
		return fmt.Errorf("%w: %s", ErrAlreadyUnlocked, s.Name)
	}
	if c.SkillPoints < s.Cost {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientPoints, s.Name, s.Cost, c.SkillPoints)
	}
	c.SkillPoints -= s.Cost
	c.PointsSpent += s.Cost
	c.Skills = append(c.Skills, id)
	return nil
}

// Equip sets the outfit if the current level unlocks it.
func Equip(c *Companion, id string) error {
	o, ok := OutfitByID(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOutfit, id)
	}
	if o.UnlockLevel > c.Level {
		return fmt.Errorf("%w: %s unlocks at level %d", ErrLocked, o.Name, o.UnlockLevel)
	}
	c.Outfit = id
	return nil
}

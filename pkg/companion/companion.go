// Package companion implements Tui, the persistent companion whose level,
// skills, outfit and mood evolve as the dashboard is used.
//
// Companion is a plain value. Progression rules live on Rules, the Engine
// applies events and persists after every change, and FileStore keeps the
// record on disk with atomic replace semantics.
package companion

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecordVersion is written into every saved record.
const RecordVersion = 1

// DefaultName is the companion's display name.
const DefaultName = "Tui"

// Species is fixed when the companion is created.
type Species string

const (
	Blob    Species = "blob"
	Bird    Species = "bird"
	Cat     Species = "cat"
	Dragon  Species = "dragon"
	Fox     Species = "fox"
	Owl     Species = "owl"
	Penguin Species = "penguin"
	Robot   Species = "robot"
	Spirit  Species = "spirit"
	Octopus Species = "octopus"
)

// AllSpecies lists the species enumeration.
var AllSpecies = []Species{Blob, Bird, Cat, Dragon, Fox, Owl, Penguin, Robot, Spirit, Octopus}

// ParseSpecies returns the species named s, or Blob and false.
func ParseSpecies(s string) (Species, bool) {
	sp := Species(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(AllSpecies, sp) {
		return sp, true
	}
	return Blob, false
}

// Title returns the capitalized species name.
func (s Species) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Companion is the persisted record.
type Companion struct {
	Version       int       `json:"version"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Species       Species   `json:"species"`
	Level         int       `json:"level"`
	XP            int       `json:"xp"`
	SkillPoints   int       `json:"skill_points"`
	Skills        []string  `json:"unlocked_skills"`
	Outfit        string    `json:"equipped_outfit"`
	LastVisit     time.Time `json:"last_visit"`
	Visits        int       `json:"visit_count"`
	ActiveSeconds int64     `json:"active_seconds"`
	TotalXP       int64     `json:"total_xp"`
	PointsSpent   int       `json:"points_spent"`
	CreatedAt     time.Time `json:"created_at"`
}

// New returns a fresh level 1 companion. Greeting costs nothing and starts
// unlocked.
func New(species Species, now time.Time) Companion {
	if !slices.Contains(AllSpecies, species) {
		species = Blob
	}
	return Companion{
		Version:   RecordVersion,
		ID:        uuid.NewString(),
		Name:      DefaultName,
		Species:   species,
		Level:     1,
		Skills:    []string{"greeting"},
		Outfit:    DefaultOutfit,
		CreatedAt: now.UTC(),
	}
}

// Clone returns a deep copy.
func (c Companion) Clone() Companion {
	c.Skills = slices.Clone(c.Skills)
	return c
}

// HasSkill reports whether id is unlocked.
func (c Companion) HasSkill(id string) bool {
	return slices.Contains(c.Skills, id)
}

// HasEffect reports whether any unlocked skill carries e.
func (c Companion) HasEffect(e Effect) bool {
	for _, id := range c.Skills {
		if s, ok := SkillByID(id); ok && s.Effect == e {
			return true
		}
	}
	return false
}

// Multiplier is the product of every unlocked XP multiplier, 1 when none.
func (c Companion) Multiplier() float64 {
	m := 1.0
	for _, id := range c.Skills {
		if s, ok := SkillByID(id); ok && s.Multiplier > 0 {
			m *= s.Multiplier
		}
	}
	return m
}

// RefreshScale is the factor applied to widget refresh intervals.
func (c Companion) RefreshScale() float64 {
	if c.HasEffect(EffectRefreshSpeed) {
		return RefreshScale
	}
	return 1
}

// OutfitUnlocked reports whether id is available at the current level.
func (c Companion) OutfitUnlocked(id string) bool {
	o, ok := OutfitByID(id)
	return ok && o.UnlockLevel <= c.Level
}

// repair brings a loaded record back within its invariants: counters are
// clamped, unknown skills dropped, and a locked or unknown outfit is
// replaced with the default.
func (c *Companion) repair(now time.Time) {
	c.Version = RecordVersion
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Name == "" {
		c.Name = DefaultName
	}
	if !slices.Contains(AllSpecies, c.Species) {
		c.Species = Blob
	}
	c.Level = max(c.Level, 1)
	c.XP = max(c.XP, 0)
	c.SkillPoints = max(c.SkillPoints, 0)
	c.Visits = max(c.Visits, 0)
	c.ActiveSeconds = max(c.ActiveSeconds, 0)

	skills := make([]string, 0, len(c.Skills))
	for _, id := range c.Skills {
		if _, ok := SkillByID(id); ok && !slices.Contains(skills, id) {
			skills = append(skills, id)
		}
	}
	c.Skills = skills

	if !c.OutfitUnlocked(c.Outfit) {
		c.Outfit = DefaultOutfit
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now.UTC()
	}
}

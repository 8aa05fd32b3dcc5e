package companion

import "time"

// Summary is the printable view of a companion used by the status command.
type Summary struct {
	Name        string   `json:"name" yaml:"name"`
	Species     Species  `json:"species" yaml:"species"`
	Level       int      `json:"level" yaml:"level"`
	XP          int      `json:"xp" yaml:"xp"`
	XPToNext    int      `json:"xp_to_next" yaml:"xp_to_next"`
	SkillPoints int      `json:"skill_points" yaml:"skill_points"`
	Skills      []string `json:"skills" yaml:"skills"`
	Outfit      string   `json:"outfit" yaml:"outfit"`
	Outfits     []string `json:"unlocked_outfits" yaml:"unlocked_outfits"`
	Multiplier  float64  `json:"xp_multiplier" yaml:"xp_multiplier"`
	Mood        Mood     `json:"mood" yaml:"mood"`
	Visits      int      `json:"visits" yaml:"visits"`
	ActiveTime  string   `json:"active_time" yaml:"active_time"`
	LastVisit   string   `json:"last_visit,omitempty" yaml:"last_visit,omitempty"`
}

// Summarize builds a Summary as of now.
func (r Rules) Summarize(c Companion, now time.Time) Summary {
	s := Summary{
		Name:        c.Name,
		Species:     c.Species,
		Level:       c.Level,
		XP:          c.XP,
		XPToNext:    r.XPToNext(c.Level),
		SkillPoints: c.SkillPoints,
		Skills:      c.Clone().Skills,
		Outfit:      c.Outfit,
		Multiplier:  c.Multiplier(),
		Mood:        r.MoodFor(c.LastVisit, now),
		Visits:      c.Visits,
		ActiveTime:  (time.Duration(c.ActiveSeconds) * time.Second).String(),
	}
	for _, o := range UnlockedOutfits(c.Level) {
		s.Outfits = append(s.Outfits, o.ID)
	}
	if !c.LastVisit.IsZero() {
		s.LastVisit = c.LastVisit.Format(time.RFC3339)
	}
	return s
}

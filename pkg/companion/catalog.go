package companion

// Effect tags what an unlocked skill does.
type Effect string

const (
	EffectGreeting     Effect = "greeting"
	EffectNewsDigest   Effect = "news-digest"
	EffectStockAlert   Effect = "stock-alert"
	EffectXPSmall      Effect = "xp-multiplier-small"
	EffectRefreshSpeed Effect = "refresh-speed"
	EffectXPMedium     Effect = "xp-multiplier-medium"
	EffectTrendInsight Effect = "trend-insight"
	EffectCosmetic     Effect = "cosmetic"
	EffectXPMax        Effect = "xp-multiplier-max"
)

// RefreshScale is the interval multiplier applied by the refresh-speed
// effect.
const RefreshScale = 0.75

// StockAlertPercent is the move that the stock-alert effect highlights.
const StockAlertPercent = 3.0

// Skill is an entry in the fixed skill catalog. Multiplier is only set for
// the xp-multiplier effects.
type Skill struct {
	ID          string
	Name        string
	Description string
	Cost        int
	Effect      Effect
	Multiplier  float64
}

// Outfit is a level-gated cosmetic.
type Outfit struct {
	ID          string
	Name        string
	Description string
	UnlockLevel int
}

// DefaultOutfit is always unlocked.
const DefaultOutfit = "default"

// Skills is the skill catalog in menu order.
var Skills = []Skill{
	{ID: "greeting", Name: "Greeting", Description: "Greets you when a session starts", Cost: 0, Effect: EffectGreeting},
	{ID: "news_digest", Name: "News Digest", Description: "Highlights the top story", Cost: 10, Effect: EffectNewsDigest},
	{ID: "stock_alert", Name: "Stock Alert", Description: "Flags big stock moves", Cost: 15, Effect: EffectStockAlert},
	{ID: "xp_boost_1", Name: "Quick Learner", Description: "Gain 10% more XP", Cost: 15, Effect: EffectXPSmall, Multiplier: 1.1},
	{ID: "speed_read", Name: "Speed Read", Description: "Feeds refresh faster", Cost: 20, Effect: EffectRefreshSpeed},
	{ID: "xp_boost_2", Name: "Fast Learner", Description: "Gain 25% more XP", Cost: 30, Effect: EffectXPMedium, Multiplier: 1.25},
	{ID: "fire_breath", Name: "Fire Breath", Description: "Breathes fire when excited", Cost: 40, Effect: EffectCosmetic},
	{ID: "cosmic_insight", Name: "Cosmic Insight", Description: "Shares the trending headline", Cost: 50, Effect: EffectTrendInsight},
	{ID: "omniscience", Name: "Omniscience", Description: "Gain 50% more XP", Cost: 100, Effect: EffectXPMax, Multiplier: 1.5},
}

// Outfits is the outfit catalog ordered by unlock level.
var Outfits = []Outfit{
	{ID: DefaultOutfit, Name: "Default", Description: "The classic look", UnlockLevel: 1},
	{ID: "hacker", Name: "Hacker", Description: "Hoodie and shades", UnlockLevel: 5},
	{ID: "wizard", Name: "Wizard", Description: "Robes and a pointy hat", UnlockLevel: 10},
	{ID: "ninja", Name: "Ninja", Description: "Stealthy and swift", UnlockLevel: 15},
	{ID: "astronaut", Name: "Astronaut", Description: "Ready for orbit", UnlockLevel: 20},
	{ID: "robot", Name: "Robot", Description: "Mechanical suit", UnlockLevel: 25},
	{ID: "dragon", Name: "Dragon", Description: "Scales and wings", UnlockLevel: 30},
	{ID: "legendary", Name: "Legendary", Description: "Pure energy", UnlockLevel: 50},
}

// SkillByID looks up a catalog skill.
func SkillByID(id string) (Skill, bool) {
	for _, s := range Skills {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// OutfitByID looks up a catalog outfit.
func OutfitByID(id string) (Outfit, bool) {
	for _, o := range Outfits {
		if o.ID == id {
			return o, true
		}
	}
	return Outfit{}, false
}

// UnlockedOutfits returns the outfits available at level.
func UnlockedOutfits(level int) []Outfit {
	var out []Outfit
	for _, o := range Outfits {
		if o.UnlockLevel <= level {
			out = append(out, o)
		}
	}
	return out
}

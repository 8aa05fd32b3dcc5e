package companion

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type memSaver struct {
	saved []Companion
	err   error
}

func (m *memSaver) Save(c Companion) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, c.Clone())
	return nil
}

type fakeRecorder struct {
	level      int
	xp         int
	saveFailed int
}

func (r *fakeRecorder) SetCompanionLevel(l int) { r.level = l }
func (r *fakeRecorder) AddCompanionXP(xp int)   { r.xp += xp }
func (r *fakeRecorder) CompanionSaveFailed()    { r.saveFailed++ }

func at(level, xp, points int) Companion {
	c := New(Blob, t0)
	c.Level, c.XP, c.SkillPoints = level, xp, points
	return c
}

func TestNewCompanionDefaults(t *testing.T) {
	c := New("", t0)
	assert.Equal(t, Blob, c.Species)
	assert.Equal(t, 1, c.Level)
	assert.Zero(t, c.XP)
	assert.Zero(t, c.SkillPoints)
	assert.Equal(t, []string{"greeting"}, c.Skills)
	assert.Equal(t, DefaultOutfit, c.Outfit)
	assert.NotEmpty(t, c.ID)
	assert.InDelta(t, 1.0, c.Multiplier(), 1e-12)
}

func TestCreditLevelFourScenario(t *testing.T) {
	c := at(4, 350, 2)
	r := DefaultRules()
	require.Equal(t, 400, r.XPToNext(4))

	levels := r.Credit(&c, 80)
	assert.Equal(t, 1, levels)
	assert.Equal(t, 5, c.Level)
	assert.Equal(t, 30, c.XP)
	assert.Equal(t, 3, c.SkillPoints)
}

func TestCreditCrossesSeveralThresholds(t *testing.T) {
	c := at(1, 50, 0)
	r := DefaultRules()

	// 50 + 600 = 650: -100 (L1) -200 (L2) -300 (L3) leaves 50 at L4.
	levels := r.Credit(&c, 600)
	assert.Equal(t, 3, levels)
	assert.Equal(t, 4, c.Level)
	assert.Equal(t, 50, c.XP)
	assert.Equal(t, 3, c.SkillPoints)
	assert.EqualValues(t, 600, c.TotalXP)
}

func TestCreditExactThreshold(t *testing.T) {
	c := at(2, 150, 0)
	assert.Equal(t, 1, DefaultRules().Credit(&c, 50))
	assert.Equal(t, 3, c.Level)
	assert.Zero(t, c.XP)
}

func TestCreditNonPositiveIsNoop(t *testing.T) {
	c := at(3, 10, 1)
	before := c.Clone()
	DefaultRules().Credit(&c, 0)
	DefaultRules().Credit(&c, -5)
	assert.Equal(t, before, c)
}

func TestCreditWithZeroRulesTerminates(t *testing.T) {
	done := make(chan int, 1)
	go func() {
		c := at(1, 0, 0)
		done <- Rules{}.Credit(&c, 5)
	}()
	select {
	case levels := <-done:
		assert.Equal(t, 5, levels, "a curve clamped to 1 XP per level")
	case <-time.After(2 * time.Second):
		t.Fatal("Credit did not return with zero-value Rules")
	}
}

func TestWithRulesFillsDefaults(t *testing.T) {
	e := NewEngine(at(1, 0, 0), nil, WithRules(Rules{XPPerTick: 2}))
	r := e.Rules()
	assert.Equal(t, 100, r.CurveBase)
	assert.Equal(t, 1, r.PointsPerLevel)
	assert.Equal(t, 2, r.XPPerTick)

	out := e.Credit(150)
	assert.Equal(t, 1, out.LevelsGained)
	assert.Equal(t, 50, e.Companion().XP)
}

func TestPurchaseStockAlertScenario(t *testing.T) {
	c := at(16, 0, 15)

	require.NoError(t, Purchase(&c, "stock_alert"))
	assert.Zero(t, c.SkillPoints)
	assert.True(t, c.HasSkill("stock_alert"))
	assert.Equal(t, 15, c.PointsSpent)

	before := c.Clone()
	err := Purchase(&c, "stock_alert")
	assert.ErrorIs(t, err, ErrAlreadyUnlocked)
	assert.Equal(t, before, c, "state is unchanged on rejection")
}

func TestPurchaseInsufficientPoints(t *testing.T) {
	c := at(5, 0, 9)
	before := c.Clone()

	err := Purchase(&c, "news_digest")
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, before, c)
}

func TestPurchaseUnknownSkill(t *testing.T) {
	c := at(5, 0, 100)
	assert.ErrorIs(t, Purchase(&c, "teleport"), ErrUnknownSkill)
}

func TestEquipOutfit(t *testing.T) {
	c := at(9, 0, 0)

	assert.ErrorIs(t, Equip(&c, "wizard"), ErrLocked)
	assert.Equal(t, DefaultOutfit, c.Outfit)

	require.NoError(t, Equip(&c, "hacker"))
	assert.Equal(t, "hacker", c.Outfit)

	assert.ErrorIs(t, Equip(&c, "tuxedo"), ErrUnknownOutfit)

	c.Level = 10
	require.NoError(t, Equip(&c, "wizard"))
}

func TestUnlockedOutfitsDerivedFromLevel(t *testing.T) {
	ids := func(level int) []string {
		var out []string
		for _, o := range UnlockedOutfits(level) {
			out = append(out, o.ID)
		}
		return out
	}
	assert.Equal(t, []string{"default"}, ids(1))
	assert.Equal(t, []string{"default", "hacker"}, ids(5))
	assert.Len(t, ids(49), 7)
	assert.Len(t, ids(50), len(Outfits))
}

func TestMultipliersStackMultiplicatively(t *testing.T) {
	c := at(1, 0, 0)
	c.Skills = append(c.Skills, "xp_boost_1", "xp_boost_2", "omniscience")
	assert.InDelta(t, 1.1*1.25*1.5, c.Multiplier(), 1e-9)

	assert.Equal(t, 20, Boost(10, c))
	assert.Equal(t, 0, Boost(0, c))

	c.Skills = []string{"xp_boost_1"}
	assert.Equal(t, 11, Boost(10, c), "10 * 1.1 must not round down to 10")
}

func TestRefreshScale(t *testing.T) {
	c := at(1, 0, 0)
	assert.InDelta(t, 1.0, c.RefreshScale(), 1e-12)
	c.Skills = append(c.Skills, "speed_read")
	assert.InDelta(t, 0.75, c.RefreshScale(), 1e-12)
}

func TestMoodBuckets(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		gap  time.Duration
		want Mood
	}{
		{time.Hour, Content},
		{23 * time.Hour, Content},
		{24 * time.Hour, Neutral},
		{71 * time.Hour, Neutral},
		{72 * time.Hour, Lonely},
		{30 * 24 * time.Hour, Lonely},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.MoodFor(t0, t0.Add(tt.gap)), tt.gap.String())
	}
	assert.Equal(t, Content, r.MoodFor(time.Time{}, t0), "first visit")
}

func TestRulesFromConfig(t *testing.T) {
	r := RulesFromConfig(config.CompanionConfig{
		XPPerTick:      3,
		PointsPerLevel: 2,
		XPCurveBase:    50,
		ContentWithin:  config.Duration{Duration: time.Hour},
	})
	assert.Equal(t, 3, r.XPPerTick)
	assert.Equal(t, 2, r.PointsPerLevel)
	assert.Equal(t, 150, r.XPToNext(3))
	assert.Equal(t, time.Hour, r.ContentWithin)
	assert.Equal(t, 72*time.Hour, r.NeutralWithin)
}

func TestEngineTickPersistsAndRecords(t *testing.T) {
	saver := &memSaver{}
	rec := &fakeRecorder{}
	e := NewEngine(at(1, 99, 0), saver, WithRecorder(rec))

	out := e.Tick(10 * time.Second)
	assert.Equal(t, 1, out.XP)
	assert.Equal(t, 1, out.LevelsGained)
	assert.Equal(t, 2, out.Level)
	assert.NoError(t, out.SaveErr)

	c := e.Companion()
	assert.EqualValues(t, 10, c.ActiveSeconds)
	require.Len(t, saver.saved, 1)
	assert.Equal(t, 2, saver.saved[0].Level)
	assert.Equal(t, 2, rec.level)
	assert.Equal(t, 1, rec.xp)
}

func TestEngineActionUsesMultiplier(t *testing.T) {
	c := at(1, 0, 0)
	c.Skills = append(c.Skills, "xp_boost_2")
	e := NewEngine(c, nil)

	assert.Equal(t, 6, e.Action(ActionRefresh).XP)
	assert.Equal(t, 1, e.Action(ActionNavigate).XP)
	assert.Zero(t, e.Action("dance").XP)
}

func TestEngineCreditIgnoresMultiplier(t *testing.T) {
	c := at(4, 350, 0)
	c.Skills = append(c.Skills, "omniscience")
	e := NewEngine(c, nil)

	out := e.Credit(80)
	assert.Equal(t, 80, out.XP)
	assert.Equal(t, 5, e.Companion().Level)
	assert.Equal(t, 30, e.Companion().XP)
}

func TestEnginePurchaseFailureDoesNotPersist(t *testing.T) {
	saver := &memSaver{}
	e := NewEngine(at(2, 0, 1), saver)

	_, err := e.PurchaseSkill("omniscience")
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Empty(t, saver.saved)

	_, err = e.EquipOutfit("legendary")
	assert.ErrorIs(t, err, ErrLocked)
	assert.Empty(t, saver.saved)
}

func TestEnginePurchaseSuccessPersists(t *testing.T) {
	saver := &memSaver{}
	e := NewEngine(at(20, 0, 15), saver)

	_, err := e.PurchaseSkill("xp_boost_1")
	require.NoError(t, err)
	require.Len(t, saver.saved, 1)
	assert.True(t, saver.saved[0].HasSkill("xp_boost_1"))
	assert.Zero(t, saver.saved[0].SkillPoints)
}

func TestEngineSaveFailureKeepsMemoryState(t *testing.T) {
	saver := &memSaver{err: errors.New("disk full")}
	rec := &fakeRecorder{}
	e := NewEngine(at(1, 0, 0), saver, WithRecorder(rec))

	out := e.Credit(150)
	assert.Error(t, out.SaveErr)
	assert.Equal(t, 2, e.Companion().Level, "in-memory state stays authoritative")
	assert.Error(t, e.LastSaveError())
	assert.Equal(t, 1, rec.saveFailed)

	saver.err = nil
	require.NoError(t, e.Save())
	assert.NoError(t, e.LastSaveError())
}

func TestEngineVisitStarted(t *testing.T) {
	c := at(3, 0, 0)
	c.LastVisit = t0
	c.Visits = 4
	e := NewEngine(c, nil)

	out := e.VisitStarted(t0.Add(4 * 24 * time.Hour))
	assert.Equal(t, Lonely, out.Mood)
	assert.Contains(t, out.Greeting, "missed you")

	got := e.Companion()
	assert.Equal(t, 5, got.Visits)
	assert.Equal(t, t0.Add(4*24*time.Hour), got.LastVisit)
	assert.Equal(t, Lonely, e.Mood(t0.Add(4*24*time.Hour+time.Minute)), "session keeps the mood found at the visit")
}

func TestEngineVisitWithoutGreetingSkill(t *testing.T) {
	c := at(1, 0, 0)
	c.Skills = nil
	e := NewEngine(c, nil)
	assert.Empty(t, e.VisitStarted(t0).Greeting)
}

func TestEngineCompanionIsCopy(t *testing.T) {
	e := NewEngine(at(1, 0, 0), nil)
	c := e.Companion()
	c.Skills[0] = "mutated"
	assert.True(t, e.Companion().HasSkill("greeting"))
}

func TestArtVariesWithOutfitAndSkill(t *testing.T) {
	c := at(50, 0, 0)
	base := Art(c, Content, 0)
	assert.Contains(t, base[2], "^_^")

	c.Outfit = "legendary"
	withHat := Art(c, Content, 0)
	assert.Equal(t, len(base)+2, len(withHat))

	c.Skills = append(c.Skills, "fire_breath")
	assert.Equal(t, len(withHat)+1, len(Art(c, Content, 1)))

	for _, s := range AllSpecies {
		c := New(s, t0)
		assert.NotEmpty(t, Art(c, Lonely, 1), s)
	}
}

func TestXPBar(t *testing.T) {
	assert.Equal(t, "[=====     ]", XPBar(0.5, 10))
	assert.Equal(t, "[==========]", XPBar(3, 10))
	assert.Equal(t, "[    ]", XPBar(-1, 4))
}

func TestParseSpecies(t *testing.T) {
	s, ok := ParseSpecies(" Octopus ")
	assert.True(t, ok)
	assert.Equal(t, Octopus, s)

	s, ok = ParseSpecies("unicorn")
	assert.False(t, ok)
	assert.Equal(t, Blob, s)
	assert.Equal(t, "Octopus", Octopus.Title())
}

func TestSummarize(t *testing.T) {
	c := at(6, 40, 2)
	c.LastVisit = t0
	s := DefaultRules().Summarize(c, t0.Add(time.Hour))
	assert.Equal(t, 600, s.XPToNext)
	assert.Equal(t, []string{"default", "hacker"}, s.Outfits)
	assert.Equal(t, Content, s.Mood)
	assert.Equal(t, t0.Format(time.RFC3339), s.LastVisit)
}

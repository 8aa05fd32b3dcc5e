package companion

import (
	"io"
	"log/slog"
	"time"
)

// Saver persists a companion. *FileStore implements it.
type Saver interface {
	Save(c Companion) error
}

// Recorder receives progression observations. *metrics.Metrics implements
// it.
type Recorder interface {
	SetCompanionLevel(level int)
	AddCompanionXP(xp int)
	CompanionSaveFailed()
}

// Outcome describes what an event did.
type Outcome struct {
	XP           int
	LevelsGained int
	Level        int
	Mood         Mood
	Greeting     string
	// SaveErr is set when the change was applied in memory but could not
	// be written. The in-memory companion stays authoritative.
	SaveErr error
}

// Changed reports whether the event altered the companion in a way worth
// telling the user about.
func (o Outcome) Changed() bool { return o.XP > 0 || o.LevelsGained > 0 }

// Engine applies progression events to one companion and persists after
// each mutation. It is owned by the event loop and not safe for concurrent
// use.
type Engine struct {
	c        Companion
	rules    Rules
	store    Saver
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
	lastErr  error
	// mood is fixed at VisitStarted for the rest of the session.
	mood    Mood
	visited bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRules replaces DefaultRules. Unset or non-positive curve and
// point values fall back to the defaults.
func WithRules(r Rules) EngineOption {
	return func(e *Engine) { e.rules = r.normalized() }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) EngineOption {
	return func(e *Engine) { e.recorder = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine wraps c. A nil store keeps the companion in memory only.
func NewEngine(c Companion, store Saver, opts ...EngineOption) *Engine {
	e := &Engine{
		c:      c.Clone(),
		rules:  DefaultRules(),
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.c.repair(e.now())
	if e.recorder != nil {
		e.recorder.SetCompanionLevel(e.c.Level)
	}
	return e
}

// Companion returns a copy of the current state.
func (e *Engine) Companion() Companion { return e.c.Clone() }

// Rules returns the progression rules in effect.
func (e *Engine) Rules() Rules { return e.rules }

// LastSaveError returns the most recent persistence failure, cleared by
// the next successful save.
func (e *Engine) LastSaveError() error { return e.lastErr }

// Tick credits usage XP for one tick of elapsed active time.
func (e *Engine) Tick(elapsed time.Duration) Outcome {
	if elapsed > 0 {
		e.c.ActiveSeconds += int64(elapsed / time.Second)
	}
	return e.grant(Boost(e.rules.XPPerTick, e.c))
}

// Action credits the bonus XP for a discrete action. Unknown kinds earn
// nothing and do not persist.
func (e *Engine) Action(kind ActionKind) Outcome {
	base := e.rules.ActionXP[kind]
	if base <= 0 {
		return Outcome{Level: e.c.Level}
	}
	return e.grant(Boost(base, e.c))
}

// Credit grants raw XP with no multiplier applied.
func (e *Engine) Credit(xp int) Outcome {
	if xp <= 0 {
		return Outcome{Level: e.c.Level}
	}
	return e.grant(xp)
}

func (e *Engine) grant(xp int) Outcome {
	levels := e.rules.Credit(&e.c, xp)
	out := Outcome{XP: xp, LevelsGained: levels, Level: e.c.Level}
	if e.recorder != nil {
		e.recorder.AddCompanionXP(xp)
		if levels > 0 {
			e.recorder.SetCompanionLevel(e.c.Level)
		}
	}
	if levels > 0 {
		e.logger.Info("companion leveled up", "level", e.c.Level, "skill_points", e.c.SkillPoints)
	}
	out.SaveErr = e.persist()
	return out
}

// PurchaseSkill unlocks a skill. On failure nothing changes.
func (e *Engine) PurchaseSkill(id string) (Outcome, error) {
	if err := Purchase(&e.c, id); err != nil {
		return Outcome{Level: e.c.Level}, err
	}
	e.logger.Info("skill unlocked", "skill", id, "skill_points", e.c.SkillPoints)
	return Outcome{Level: e.c.Level, SaveErr: e.persist()}, nil
}

// EquipOutfit changes the equipped outfit. On failure nothing changes.
func (e *Engine) EquipOutfit(id string) (Outcome, error) {
	if err := Equip(&e.c, id); err != nil {
		return Outcome{Level: e.c.Level}, err
	}
	return Outcome{Level: e.c.Level, SaveErr: e.persist()}, nil
}

// VisitStarted records a session start at now. The mood reflects the gap
// since the previous visit; the greeting is only set when the greeting
// skill is unlocked.
func (e *Engine) VisitStarted(now time.Time) Outcome {
	mood := e.rules.MoodFor(e.c.LastVisit, now)
	e.c.Visits++
	e.c.LastVisit = now.UTC()
	e.mood, e.visited = mood, true

	out := Outcome{Level: e.c.Level, Mood: mood}
	if e.c.HasEffect(EffectGreeting) {
		out.Greeting = mood.Greeting(e.c.Name)
	}
	out.SaveErr = e.persist()
	return out
}

// Mood returns the session mood set by VisitStarted. Before any visit it
// is derived from the gap between the stored last visit and now.
func (e *Engine) Mood(now time.Time) Mood {
	if e.visited {
		return e.mood
	}
	return e.rules.MoodFor(e.c.LastVisit, now)
}

// Save writes the companion synchronously. Used on clean shutdown.
func (e *Engine) Save() error { return e.persist() }

func (e *Engine) persist() error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Save(e.c); err != nil {
		e.lastErr = err
		e.logger.Error("companion save failed", "error", err)
		if e.recorder != nil {
			e.recorder.CompanionSaveFailed()
		}
		return err
	}
	e.lastErr = nil
	return nil
}

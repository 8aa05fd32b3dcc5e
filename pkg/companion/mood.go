package companion

import (
	"fmt"
	"time"
)

// Mood is derived from the gap since the previous visit; it is never
// stored.
type Mood string

const (
	Content Mood = "content"
	Neutral Mood = "neutral"
	Lonely  Mood = "lonely"
)

// MoodFor buckets the time since the last visit. A companion that has
// never been visited is content.
func (r Rules) MoodFor(lastVisit, now time.Time) Mood {
	if lastVisit.IsZero() {
		return Content
	}
	gap := now.Sub(lastVisit)
	switch {
	case gap < r.ContentWithin:
		return Content
	case gap < r.NeutralWithin:
		return Neutral
	default:
		return Lonely
	}
}

// Face is the mood's ASCII face.
func (m Mood) Face() string {
	switch m {
	case Neutral:
		return "-_-"
	case Lonely:
		return ";_;"
	default:
		return "^_^"
	}
}

// Greeting is what the companion says at session start.
func (m Mood) Greeting(name string) string {
	switch m {
	case Neutral:
		return fmt.Sprintf("%s: Oh, hey. Good to see you again.", name)
	case Lonely:
		return fmt.Sprintf("%s: I missed you! Where were you?", name)
	default:
		return fmt.Sprintf("%s: Hi there! Ready to browse?", name)
	}
}

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/feedtui/pkg/companion"
	"gitlab.com/tinyland/lab/feedtui/pkg/state"
)

// CompanionView is the state the companion pane draws from.
type CompanionView struct {
	Companion companion.Companion
	Rules     companion.Rules
	Mood      companion.Mood
	Frame     int

	// Greeting is shown until dismissed by the first key press.
	Greeting string
	// Headline is the top story, shown when trend-insight is unlocked.
	Headline string

	MenuOpen bool
	Tab      state.Tab
	Cursor   int
}

// MenuSize is the number of selectable rows on tab.
func MenuSize(tab state.Tab) int {
	switch tab {
	case state.TabSkills:
		return len(companion.Skills)
	case state.TabOutfits:
		return len(companion.Outfits)
	default:
		return 0
	}
}

// RenderCompanion draws the companion pane content.
func RenderCompanion(v CompanionView, ctx Context) string {
	if ctx.Width <= 0 || ctx.Height <= 0 {
		return ""
	}
	if v.MenuOpen {
		return block(renderMenu(v, ctx), ctx.Width, ctx.Height)
	}

	s := ctx.Styles
	c := v.Companion
	lines := append([]string{}, companion.Art(c, v.Mood, v.Frame)...)
	for i := range lines {
		lines[i] = s.Accent.Render(lines[i])
	}
	lines = append(lines,
		fmt.Sprintf("%s the %s  %s", s.Title.Render(c.Name), c.Species.Title(), s.Dim.Render(string(v.Mood))),
		fmt.Sprintf("Lv %d %s", c.Level, xpBar(v, ctx)),
	)
	if c.SkillPoints > 0 {
		lines = append(lines, s.Highlight.Render(fmt.Sprintf("%d skill points to spend (t)", c.SkillPoints)))
	}
	if v.Greeting != "" {
		lines = append(lines, wrap(v.Greeting, ctx.Width)...)
	}
	if v.Headline != "" && c.HasEffect(companion.EffectTrendInsight) {
		lines = append(lines, s.Dim.Render("Trending: ")+v.Headline)
	}
	return block(lines, ctx.Width, ctx.Height)
}

func xpBar(v CompanionView, ctx Context) string {
	s := ctx.Styles
	need := v.Rules.XPToNext(v.Companion.Level)
	label := fmt.Sprintf(" %d/%d", v.Companion.XP, need)
	width := max(ctx.Width-lipgloss.Width(fmt.Sprintf("Lv %d ", v.Companion.Level))-len(label)-2, 4)

	bar := companion.XPBar(v.Rules.Progress(v.Companion), width)
	inner := bar[1 : len(bar)-1]
	filled := strings.Count(inner, "=")
	return "[" + s.XPFilled.Render(inner[:filled]) + s.XPEmpty.Render(strings.Repeat("-", len(inner)-filled)) + "]" + s.Dim.Render(label)
}

func renderMenu(v CompanionView, ctx Context) []string {
	s := ctx.Styles
	tabs := make([]string, 0, len(state.Tabs))
	for _, t := range state.Tabs {
		name := t.String()
		if t == v.Tab {
			tabs = append(tabs, s.Selected.Render("["+name+"]"))
		} else {
			tabs = append(tabs, s.Dim.Render(" "+name+" "))
		}
	}
	lines := []string{strings.Join(tabs, " "), ""}
	body := ctx
	body.Height = ctx.Height - len(lines)

	switch v.Tab {
	case state.TabSkills:
		lines = append(lines, skillRows(v, body)...)
	case state.TabOutfits:
		lines = append(lines, outfitRows(v, body)...)
	default:
		lines = append(lines, statsRows(v, body)...)
	}
	return lines
}

func statsRows(v CompanionView, ctx Context) []string {
	s := ctx.Styles
	c := v.Companion
	sum := v.Rules.Summarize(c, ctx.Now)
	kv := func(k, val string) string { return s.Dim.Render(fmt.Sprintf("%-14s", k)) + val }
	return []string{
		kv("Name", c.Name),
		kv("Species", c.Species.Title()),
		kv("Level", fmt.Sprintf("%d", c.Level)),
		kv("XP", fmt.Sprintf("%d / %d", c.XP, sum.XPToNext)),
		kv("Skill points", fmt.Sprintf("%d", c.SkillPoints)),
		kv("XP multiplier", fmt.Sprintf("x%.2f", sum.Multiplier)),
		kv("Mood", string(v.Mood)),
		kv("Visits", fmt.Sprintf("%d", c.Visits)),
		kv("Active time", sum.ActiveTime),
		kv("Outfit", c.Outfit),
	}
}

func skillRows(v CompanionView, ctx Context) []string {
	s := ctx.Styles
	c := v.Companion
	rows := make([]row, 0, len(companion.Skills))
	for i, sk := range companion.Skills {
		var mark, cost string
		switch {
		case c.HasSkill(sk.ID):
			mark, cost = s.OK.Render("✓"), s.Dim.Render("owned")
		case c.SkillPoints >= sk.Cost:
			mark, cost = " ", s.Highlight.Render(fmt.Sprintf("%d pts", sk.Cost))
		default:
			mark, cost = " ", s.Dim.Render(fmt.Sprintf("%d pts", sk.Cost))
		}
		rows = append(rows, row{text: fmt.Sprintf("%s %-14s %s %s", mark, sk.Name, cost, s.Dim.Render(sk.Description)), index: i})
	}
	return window(rows, v.Cursor, ctx.Height, ctx)
}

func outfitRows(v CompanionView, ctx Context) []string {
	s := ctx.Styles
	c := v.Companion
	rows := make([]row, 0, len(companion.Outfits))
	for i, o := range companion.Outfits {
		var mark, note string
		switch {
		case c.Outfit == o.ID:
			mark, note = s.OK.Render("●"), s.Dim.Render("equipped")
		case c.OutfitUnlocked(o.ID):
			mark, note = " ", s.Dim.Render(o.Description)
		default:
			mark, note = " ", s.Dim.Render(fmt.Sprintf("unlocks at Lv %d", o.UnlockLevel))
		}
		rows = append(rows, row{text: fmt.Sprintf("%s %-10s %s", mark, o.Name, note), index: i})
	}
	return window(rows, v.Cursor, ctx.Height, ctx)
}

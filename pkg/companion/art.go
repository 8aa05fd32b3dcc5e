package companion

import (
	"fmt"
	"strings"
)

// Art returns the companion drawing for a frame. Frames alternate to give
// a two-step idle animation.
func Art(c Companion, mood Mood, frame int) []string {
	lines := speciesArt(c.Species, mood.Face(), frame)
	if hat := outfitArt[c.Outfit]; len(hat) > 0 {
		lines = append(append([]string{}, hat...), lines...)
	}
	if c.HasEffect(EffectCosmetic) {
		flame := "  ~*~"
		if frame%2 == 1 {
			flame = "  *~*"
		}
		lines = append(lines, flame)
	}
	return lines
}

var outfitArt = map[string][]string{
	"hacker":    {"  [===]"},
	"wizard":    {"   /\\", "  /  \\", "  ----"},
	"ninja":     {"  ~~~~~"},
	"astronaut": {"  /===\\", " |     |"},
	"robot":     {"  [|||]"},
	"dragon":    {"  ^^^"},
	"legendary": {"  *****", "  *   *"},
}

func speciesArt(s Species, face string, frame int) []string {
	alt := frame%2 == 1
	pick := func(a, b string) string {
		if alt {
			return b
		}
		return a
	}
	switch s {
	case Bird:
		return []string{"   __", fmt.Sprintf("  (%s)", face), pick(" >(  )>", " <(  )<"), "   ^^"}
	case Cat:
		return []string{"  /\\_/\\", fmt.Sprintf(" ( %s )", face), "  > ^ <", pick(" /|   |\\", "  |   |"), pick("(_|   |_)", " (_   _)")}
	case Dragon:
		return []string{"    ____", fmt.Sprintf("   ( %s )%s", face, pick("", "~")), " /\\/    \\/\\", "<<  ~~~~  >>", "   \\    /", "    ^^^^"}
	case Fox:
		return []string{"  /\\   /\\", " /  \\ /  \\", fmt.Sprintf("|   %s   |", face), " \\  w  /", "  \\___/", pick("   | |", "  |   |")}
	case Owl:
		return []string{"  ,___,", pick(" (o   o)", " (O   O)"), fmt.Sprintf("  ( %s )", face), "  /| |\\", " (_| |_)"}
	case Penguin:
		return []string{"   __", "  /  \\", fmt.Sprintf(" | %s |", face), " /|  |\\", pick("(_|  |_)", "(_|__|_)")}
	case Robot:
		return []string{pick("  ___", "  _*_"), " [___]", fmt.Sprintf(" |%s|", face), " |___|", " /| |\\", "/_| |_\\"}
	case Spirit:
		return []string{pick("    *", "   *"), "  .oOo.", fmt.Sprintf(" ( %s )", face), pick("  '~'~'", "  '~~~'"), "   ~~~"}
	case Octopus:
		return []string{"   ___", "  /   \\", fmt.Sprintf(" ( %s )", face), pick("  /|\\|\\", "  \\|/|/"), pick(" / | | \\", "   | |")}
	default:
		return []string{pick("  .-~~~-.", "  .~~~~~."), " /       \\", fmt.Sprintf("|   %s   |", face), " \\       /", pick("  '~---~'", "  '-----'")}
	}
}

// XPBar draws a progress bar of the given inner width.
func XPBar(progress float64, width int) string {
	if width <= 0 {
		return "[]"
	}
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

package theme

import (
	"io"
	"strconv"

	"github.com/muesli/termenv"
)

// Detect returns the color profile of w, honoring NO_COLOR and
// CLICOLOR_FORCE.
func Detect(w io.Writer) termenv.Profile {
	return termenv.NewOutput(w).EnvColorProfile()
}

// Adapt degrades every color in t to what profile can show. TrueColor
// keeps the hex values, ANSI256 and ANSI map them to the nearest palette
// index, and Ascii drops color entirely.
func Adapt(t Theme, profile termenv.Profile) Theme {
	if profile == termenv.TrueColor {
		return t
	}
	for _, c := range t.colors() {
		*c = thDegrade(*c, profile)
	}
	return t
}

// thDegrade converts a hex color to a palette index string for profile.
// Returns "" when the profile has no colors or hex does not parse.
func thDegrade(hex string, profile termenv.Profile) string {
	if !thHexColorRegex.MatchString(hex) {
		return ""
	}
	switch c := profile.Color(hex).(type) {
	case termenv.ANSI256Color:
		return strconv.Itoa(int(c))
	case termenv.ANSIColor:
		return strconv.Itoa(int(c))
	case termenv.RGBColor:
		return string(c)
	default:
		return ""
	}
}

package theme

// thRegisterBuiltins registers all built-in themes in the registry.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		thDarkTheme(),
		thLightTheme(),
		thGruvboxTheme(),
		thNordTheme(),
		thCatppuccinTheme(),
	} {
		Register(t)
	}
}

// thDarkTheme is the default: neutral greys with a purple accent.
func thDarkTheme() Theme {
	return Theme{
		Name:       "dark",
		Background: "#1e1e1e",
		Foreground: "#d4d4d4",
		Dim:        "#6b6b6b",
		Accent:     "#7C3AED",

		Border:      "#3e3e3e",
		BorderFocus: "#7C3AED",
		Title:       "#d4d4d4",

		StatusOK:      "#4ec970",
		StatusWarn:    "#e5c07b",
		StatusError:   "#e06c75",
		StatusUnknown: "#6b6b6b",

		Gain: "#4ec970",
		Loss: "#e06c75",

		Highlight: "#f9e2af",
		XPFilled:  "#7C3AED",
		XPEmpty:   "#3e3e3e",

		HelpKey:  "#7C3AED",
		HelpDesc: "#6b6b6b",
	}
}

func thLightTheme() Theme {
	return Theme{
		Name:       "light",
		Background: "#fafafa",
		Foreground: "#383a42",
		Dim:        "#a0a1a7",
		Accent:     "#4078f2",

		Border:      "#d3d3d3",
		BorderFocus: "#4078f2",
		Title:       "#383a42",

		StatusOK:      "#50a14f",
		StatusWarn:    "#c18401",
		StatusError:   "#e45649",
		StatusUnknown: "#a0a1a7",

		Gain: "#50a14f",
		Loss: "#e45649",

		Highlight: "#986801",
		XPFilled:  "#4078f2",
		XPEmpty:   "#d3d3d3",

		HelpKey:  "#4078f2",
		HelpDesc: "#a0a1a7",
	}
}

// thGruvboxTheme returns the warm retro Gruvbox theme.
func thGruvboxTheme() Theme {
	return Theme{
		Name:       "gruvbox",
		Background: "#282828",
		Foreground: "#ebdbb2",
		Dim:        "#928374",
		Accent:     "#fe8019",

		Border:      "#504945",
		BorderFocus: "#fe8019",
		Title:       "#ebdbb2",

		StatusOK:      "#b8bb26",
		StatusWarn:    "#fabd2f",
		StatusError:   "#fb4934",
		StatusUnknown: "#928374",

		Gain: "#b8bb26",
		Loss: "#fb4934",

		Highlight: "#fabd2f",
		XPFilled:  "#fe8019",
		XPEmpty:   "#504945",

		HelpKey:  "#fe8019",
		HelpDesc: "#928374",
	}
}

// thNordTheme returns the arctic blue Nord theme.
func thNordTheme() Theme {
	return Theme{
		Name:       "nord",
		Background: "#2e3440",
		Foreground: "#eceff4",
		Dim:        "#4c566a",
		Accent:     "#88c0d0",

		Border:      "#3b4252",
		BorderFocus: "#88c0d0",
		Title:       "#eceff4",

		StatusOK:      "#a3be8c",
		StatusWarn:    "#ebcb8b",
		StatusError:   "#bf616a",
		StatusUnknown: "#4c566a",

		Gain: "#a3be8c",
		Loss: "#bf616a",

		Highlight: "#ebcb8b",
		XPFilled:  "#88c0d0",
		XPEmpty:   "#3b4252",

		HelpKey:  "#88c0d0",
		HelpDesc: "#4c566a",
	}
}

// thCatppuccinTheme returns the pastel Catppuccin Mocha theme.
func thCatppuccinTheme() Theme {
	return Theme{
		Name:       "catppuccin",
		Background: "#1e1e2e",
		Foreground: "#cdd6f4",
		Dim:        "#6c7086",
		Accent:     "#cba6f7",

		Border:      "#313244",
		BorderFocus: "#cba6f7",
		Title:       "#cdd6f4",

		StatusOK:      "#a6e3a1",
		StatusWarn:    "#f9e2af",
		StatusError:   "#f38ba8",
		StatusUnknown: "#6c7086",

		Gain: "#a6e3a1",
		Loss: "#f38ba8",

		Highlight: "#f9e2af",
		XPFilled:  "#cba6f7",
		XPEmpty:   "#313244",

		HelpKey:  "#cba6f7",
		HelpDesc: "#6c7086",
	}
}

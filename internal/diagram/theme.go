// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package diagram

// palette holds the Mermaid theme variables for one color scheme.
type palette struct {
	primaryColor       string
	primaryTextColor   string
	primaryBorderColor string
	lineColor          string
	secondaryColor     string
	tertiaryColor      string
}

var lightPalette = palette{
	primaryColor:       "#fafbfc",
	primaryTextColor:   "#444",
	primaryBorderColor: "#e1e4e8",
	lineColor:          "#a0aec0",
	secondaryColor:     "#f5fbff",
	tertiaryColor:      "#fff8f8",
}

var defaultPalette = palette{
	primaryColor:       "#f5f5f5",
	primaryTextColor:   "#333",
	primaryBorderColor: "#999",
	lineColor:          "#666",
	secondaryColor:     "#f0f8ff",
	tertiaryColor:      "#fff5f5",
}

func themePalette(lightColors bool) palette {
	if lightColors {
		return lightPalette
	}
	return defaultPalette
}

// sectionColor returns the background tint for a titled section. Unrecognized
// titles get a neutral gray.
func sectionColor(title string, lightColors bool) string {
	if lightColors {
		switch title {
		case "User Interactions":
			return "rgb(252, 252, 255)"
		case "Contract-to-Contract Interactions":
			return "rgb(248, 252, 255)"
		case "Event Definitions":
			return "rgb(255, 252, 252)"
		case "Contract Relationships":
			return "rgb(252, 255, 252)"
		default:
			return "rgb(250, 250, 250)"
		}
	}
	switch title {
	case "User Interactions":
		return "rgb(245, 245, 245)"
	case "Contract-to-Contract Interactions":
		return "rgb(240, 248, 255)"
	case "Event Definitions":
		return "rgb(255, 245, 245)"
	case "Contract Relationships":
		return "rgb(245, 255, 245)"
	default:
		return "rgb(240, 240, 240)"
	}
}

func legendColor(lightColors bool) string {
	if lightColors {
		return "rgb(248, 252, 255)"
	}
	return "rgb(240, 240, 255)"
}

// Package theme holds the colour themes, the injected theme context and the
// key-value stores that persist the user's choice.
package theme

import "strings"

// Name identifies a theme.
type Name string

const (
	Light   Name = "light"
	Eclipse Name = "eclipse"
	Dark    Name = "dark"
)

// Default is used when no valid preference has been saved.
const Default = Dark

// Names returns the theme names in registry order.
func Names() []Name {
	return []Name{Light, Eclipse, Dark}
}

// ParseName returns the theme named s, case-insensitively.
func ParseName(s string) (Name, bool) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	_, ok := palettes[n]
	return n, ok
}

// Palette is the set of colour tokens a theme defines.
type Palette struct {
	Primary01   string `json:"primary01"`
	Primary02   string `json:"primary02"`
	Secondary01 string `json:"secondary01"`
	Secondary02 string `json:"secondary02"`
	Background  string `json:"background"`
	Shadow      string `json:"shadow"`
	Icons01     string `json:"icons01"`
	Icons02     string `json:"icons02"`
	Text01      string `json:"text01"`
	Text02      string `json:"text02"`
}

// Token returns the colour for a token name such as "primary01".
func (p Palette) Token(token string) (string, bool) {
	switch token {
	case "primary01":
		return p.Primary01, true
	case "primary02":
		return p.Primary02, true
	case "secondary01":
		return p.Secondary01, true
	case "secondary02":
		return p.Secondary02, true
	case "background":
		return p.Background, true
	case "shadow":
		return p.Shadow, true
	case "icons01":
		return p.Icons01, true
	case "icons02":
		return p.Icons02, true
	case "text01":
		return p.Text01, true
	case "text02":
		return p.Text02, true
	}
	return "", false
}

var palettes = map[Name]Palette{
	Light: {
		Primary01:   "#ff8a69",
		Primary02:   "#ffb19e",
		Secondary01: "#f0e1dd",
		Secondary02: "#cfaea7",
		Background:  "#fff8f5",
		Shadow:      "#d3d3d3",
		Icons01:     "#333645",
		Icons02:     "#8b6d89",
		Text01:      "#333645",
		Text02:      "#8b6d89",
	},
	Eclipse: {
		Primary01:   "#9e98e0",
		Primary02:   "#b3afff",
		Secondary01: "#d1cfff",
		Secondary02: "#a89ff5",
		Background:  "#e8e6ff",
		Shadow:      "#b3afff",
		Icons01:     "#333645",
		Icons02:     "#8b6d89",
		Text01:      "#333645",
		Text02:      "#8b6d89",
	},
	Dark: {
		Primary01:   "#7469dd",
		Primary02:   "#9e98e0",
		Secondary01: "#333645",
		Secondary02: "#8b6d89",
		Background:  "#1c202b",
		Shadow:      "#000000",
		Icons01:     "#ffffff",
		Icons02:     "#bababa",
		Text01:      "#ffffff",
		Text02:      "#bababa",
	},
}

// PaletteFor returns the palette of n, falling back to Default.
func PaletteFor(n Name) Palette {
	if p, ok := palettes[n]; ok {
		return p
	}
	return palettes[Default]
}

// Entry is a theme's registry listing as shown in the theme picker.
type Entry struct {
	Name      Name      `json:"name"`
	Label     string    `json:"label"`
	Gradients [2]string `json:"gradients"`
	Glow      string    `json:"glow"`
}

// Registry returns the picker entries in display order.
func Registry() []Entry {
	return []Entry{
		{Name: Light, Label: "Light", Gradients: [2]string{"rgba(243,219,206,0.95)", "rgba(255,240,230,0.85)"}, Glow: "rgba(255,140,105,0.6)"},
		{Name: Eclipse, Label: "Eclipse", Gradients: [2]string{"rgba(200,190,255,0.95)", "rgba(220,215,255,0.85)"}, Glow: "rgba(158,152,224,0.6)"},
		{Name: Dark, Label: "Dark", Gradients: [2]string{"rgba(20,20,20,0.95)", "rgba(40,40,40,0.85)"}, Glow: "rgba(116,105,221,0.6)"},
	}
}

// Gradients bundles the background treatments of one theme.
type Gradients struct {
	Explore [4]string `json:"explore"`
	Card    [2]string `json:"card"`
	Overlay [2]string `json:"overlay"`
	Accent  string    `json:"accent"`
	Glow    string    `json:"glow"`
}

// GradientsFor returns the gradients of n. Unknown names get Dark's.
func GradientsFor(n Name) Gradients {
	switch n {
	case Light:
		return Gradients{
			Explore: [4]string{"#fff8f5", "#ffe4da", "#ffb19e", "#ff8a69"},
			Card:    [2]string{"rgba(255,138,105,0.15)", "rgba(255,248,245,0.95)"},
			Overlay: [2]string{"transparent", "rgba(255,138,105,0.85)"},
			Accent:  "#ff8a69",
			Glow:    "rgba(255,138,105,0.4)",
		}
	case Eclipse:
		return Gradients{
			Explore: [4]string{"#e8e6ff", "#d1cfff", "#b3afff", "#9e98e0"},
			Card:    [2]string{"rgba(158,152,224,0.15)", "rgba(232,230,255,0.95)"},
			Overlay: [2]string{"transparent", "rgba(116,111,210,0.85)"},
			Accent:  "#9e98e0",
			Glow:    "rgba(158,152,224,0.4)",
		}
	default:
		return Gradients{
			Explore: [4]string{"#1c202b", "#12151f", "#0d0f18", "#0a0c14"},
			Card:    [2]string{"rgba(116,105,221,0.2)", "rgba(28,32,43,0.97)"},
			Overlay: [2]string{"transparent", "rgba(10,12,20,0.92)"},
			Accent:  "#7469dd",
			Glow:    "rgba(116,105,221,0.5)",
		}
	}
}

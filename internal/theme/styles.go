package theme

import "github.com/charmbracelet/lipgloss"

// Palette defines the semantic color slots for one effective theme.
//
// Components should depend on these semantic roles rather than theme-specific
// color literals.
type Palette struct {
	Background string
	Surface    string
	Text       string
	Subtle     string
	Accent     string
	Border     string
	Warning    string
}

var palettes = map[Effective]Palette{
	EffectiveLight: {
		Background: "#FAF7F0",
		Surface:    "#F0EBE0",
		Text:       "#2B2520",
		Subtle:     "#8A8275",
		Accent:     "#7A4A21",
		Border:     "#C9C0AE",
		Warning:    "#8A3B2A",
	},
	EffectiveDark: {
		Background: "#15130F",
		Surface:    "#221F19",
		Text:       "#E8E2D4",
		Subtle:     "#8F8878",
		Accent:     "#D8A868",
		Border:     "#4A443A",
		Warning:    "#E08A6E",
	},
}

// PaletteFor returns the semantic palette for an effective theme.
func PaletteFor(e Effective) Palette {
	if p, ok := palettes[e]; ok {
		return p
	}
	return palettes[EffectiveLight]
}

// BackgroundColor returns the base background hex applied to the terminal
// alongside the theme marker.
func BackgroundColor(e Effective) string {
	return PaletteFor(e).Background
}

// Styles provides renderer-bound styles for the primary reader UI surfaces.
type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Body     lipgloss.Style
	TOC      lipgloss.Style
	TOCItem  lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
	Warning  lipgloss.Style
}

// NewStyles builds the style bundle for an effective theme against the
// session's renderer, so color degradation follows the terminal's profile.
func NewStyles(r *lipgloss.Renderer, e Effective) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := PaletteFor(e)

	return Styles{
		Header: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Accent)).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color(p.Border)),
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Text)),
		Item: r.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color(p.Text)),
		Selected: r.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(lipgloss.Color(p.Accent)).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color(p.Accent)),
		Body: r.NewStyle().
			Foreground(lipgloss.Color(p.Text)),
		TOC: r.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color(p.Border)).
			PaddingLeft(1),
		TOCItem: r.NewStyle().
			Foreground(lipgloss.Color(p.Subtle)),
		Status: r.NewStyle().
			Foreground(lipgloss.Color(p.Subtle)),
		Help: r.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color(p.Subtle)),
		Warning: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Warning)),
	}
}

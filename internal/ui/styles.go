package ui

import "github.com/charmbracelet/lipgloss"

// panelWidth is the fixed width of the side panel next to the dial.
const panelWidth = 36

// Styles holds every lipgloss style the view needs, swapped wholesale
// when the theme toggles.
type Styles struct {
	Title   lipgloss.Style
	Worked  lipgloss.Style
	Hovered lipgloss.Style
	Past    lipgloss.Style
	Future  lipgloss.Style
	Tick    lipgloss.Style
	Center  lipgloss.Style

	Panel   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Badge   lipgloss.Style
	Status  lipgloss.Style
	Help    lipgloss.Style
	Warn    lipgloss.Style
}

// NewStyles builds the palette for the given theme name. Anything that is
// not "light" renders as the dark palette.
func NewStyles(theme string) Styles {
	if theme == "light" {
		return Styles{
			Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("166")),
			Worked:  lipgloss.NewStyle().Foreground(lipgloss.Color("166")),
			Hovered: lipgloss.NewStyle().Foreground(lipgloss.Color("202")).Bold(true),
			Past:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Future:  lipgloss.NewStyle().Foreground(lipgloss.Color("253")),
			Tick:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Center:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
			Panel:   lipgloss.NewStyle().Width(panelWidth).PaddingLeft(1),
			Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
			Running: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("28")),
			Paused:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Badge:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
			Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("248")),
			Warn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
		}
	}
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Worked:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Hovered: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		Past:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Future:  lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Tick:    lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		Center:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Panel:   lipgloss.NewStyle().Width(panelWidth).PaddingLeft(1),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Running: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		Paused:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Badge:   lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Warn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

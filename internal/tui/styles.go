package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles of the browser.
type Styles struct {
	Title    lipgloss.Style
	Info     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Prompt   lipgloss.Style
	Search   lipgloss.Style
	Focused  lipgloss.Style
	Detail   lipgloss.Style
	Label    lipgloss.Style
	Selected lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#005f87", Dark: "#5fafff"}
	border := lipgloss.AdaptiveColor{Light: "#bcbcbc", Dark: "#585858"}
	muted := lipgloss.AdaptiveColor{Light: "#767676", Dark: "#8a8a8a"}

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(primary).Padding(0, 1),
		Info:     lipgloss.NewStyle().Foreground(primary),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#d70000")).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00af00")),
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("#d78700")).Bold(true),
		Search:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		Focused:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primary).Padding(0, 1),
		Detail:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primary).Padding(0, 1),
		Label:    lipgloss.NewStyle().Bold(true).Width(12),
		Selected: lipgloss.NewStyle().Foreground(primary).Bold(true),
	}
}

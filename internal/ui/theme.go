package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles, symbols and the panel border.
// All helpers pull from current.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Selected, Editing lipgloss.Style

	Border lipgloss.Border
	Bullet string
	Cursor string
	Check  string
	Cross  string
}

var current = classic()

// SetTheme switches the active theme. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:     "neon",
			Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Editing:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Border:   lipgloss.RoundedBorder(),
			Bullet:   "◻", Cursor: "▸", Check: "✔", Cross: "✖",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain,
			Selected: plain.Reverse(true),
			Editing:  plain.Underline(true),
			Border:   lipgloss.ASCIIBorder(),
			Bullet:   "-", Cursor: ">", Check: "ok", Cross: "x",
		}
	default:
		current = classic()
	}
}

func classic() Theme {
	return Theme{
		Name:     "classic",
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Editing:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Border:   lipgloss.NormalBorder(),
		Bullet:   "•", Cursor: ">", Check: "✔", Cross: "✖",
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }

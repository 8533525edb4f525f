// Package ui holds terminal styling shared by the one-shot commands and the TUI.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/model"
)

// OK prints a success line.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render(current.Check+" "+msg))
}

// Fail prints an error line.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render(current.Cross+" "+msg))
}

// Panel frames lines with the theme border.
func Panel(lines []string) string {
	return lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Header is the title line with the item count.
func Header(count int) string {
	return fmt.Sprintf("%s  %s %d", current.Title.Render("Todos"), current.Accent.Render("Total"), count)
}

// ItemLines renders one line per item: id then name, in the given order.
func ItemLines(items []model.Item) []string {
	if len(items) == 0 {
		return []string{current.Muted.Render("no items")}
	}
	width := 0
	for _, it := range items {
		if n := len(it.ID.String()); n > width {
			width = n
		}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		name := it.Name
		if len([]rune(name)) > 80 {
			name = string([]rune(name)[:77]) + "..."
		}
		id := fmt.Sprintf("%*s", width, it.ID)
		out = append(out, fmt.Sprintf("%s %s %s", current.Muted.Render(id), current.Bullet, name))
	}
	return out
}

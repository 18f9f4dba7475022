// Package ui renders terminal output for the CLI commands.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is one line of a two-column listing.
type Row struct {
	Key   string
	Value string
	Note  string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	noteStyle   = lipgloss.NewStyle().Faint(true)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Table writes rows under title. With color false the output is plain,
// tab-separated text suitable for pipes.
func Table(w io.Writer, title string, rows []Row, color bool) error {
	if !color {
		for _, r := range rows {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", r.Key, r.Value, r.Note); err != nil {
				return err
			}
		}
		return nil
	}

	keyWidth, valueWidth := 0, 0
	for _, r := range rows {
		keyWidth = max(keyWidth, lipgloss.Width(r.Key))
		valueWidth = max(valueWidth, lipgloss.Width(r.Value))
	}

	lines := []string{headerStyle.Render(title), ""}
	for _, r := range rows {
		line := keyStyle.Render(pad(r.Key, keyWidth)) + "  " + pad(r.Value, valueWidth)
		if r.Note != "" {
			line += "  " + noteStyle.Render(r.Note)
		}
		lines = append(lines, line)
	}

	_, err := fmt.Fprintln(w, boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	return err
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

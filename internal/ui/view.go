package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	path     lipgloss.Style
	bar      lipgloss.Style
	track    lipgloss.Style
	button   lipgloss.Style
	selected lipgloss.Style
	help     lipgloss.Style
	frame    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		path:     lipgloss.NewStyle().Bold(true),
		bar:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		track:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		button:   lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("7")),
		selected: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")),
		help:     lipgloss.NewStyle().Faint(true),
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	header := m.opts.Title
	if m.opts.Icon != "" {
		header = m.opts.Icon + "  " + header
	}
	if header != "" {
		b.WriteString(m.styles.title.Render(header))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.label.Render("Waiting for file:"))
	b.WriteByte(' ')
	b.WriteString(m.styles.path.Render(m.opts.Path))
	b.WriteString("\n\n")
	b.WriteString(m.renderBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderButtons())
	b.WriteString("\n\n")
	b.WriteString(m.styles.help.Render("tab switch · enter select · esc cancel"))

	return m.styles.frame.Render(b.String())
}

// renderBar draws a block that sweeps back and forth across the track.
func (m Model) renderBar() string {
	const block = 6
	span := barWidth - block
	pos := m.pulse % (2 * span)
	if pos > span {
		pos = 2*span - pos
	}
	return m.styles.track.Render(strings.Repeat("─", pos)) +
		m.styles.bar.Render(strings.Repeat("█", block)) +
		m.styles.track.Render(strings.Repeat("─", span-pos))
}

func (m Model) renderButtons() string {
	var buttons []string
	if m.hasAuxiliary() {
		buttons = append(buttons, m.button(m.opts.AuxiliaryLabel, m.focus == focusAuxiliary))
	}
	buttons = append(buttons, m.button("Cancel", m.focus == focusCancel))
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(buttons, "  "))
}

func (m Model) button(label string, focused bool) string {
	text := "[" + label + "]"
	if focused {
		return m.styles.selected.Render(text)
	}
	return m.styles.button.Render(text)
}

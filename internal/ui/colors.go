package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#C026D3", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	disabled lipgloss.Style
	button   lipgloss.Style
	header   lipgloss.Style
	footer   lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:    NewBold(t).MarginBottom(1),
		ok:       NewBold(s),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		label:    NewStyle(h).Width(26),
		focused:  NewBold(t).Width(26),
		disabled: NewStyle(h).Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(h)),
		button:   NewBold(s).Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(s)),
		header:   NewBold("#FFFFFF").Background(lipgloss.Color(t)).Padding(0, 2),
		footer:   NewEm(h).MarginTop(1),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

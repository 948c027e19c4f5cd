package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/japaniel/wordchallenge/pkg/practice"
)

// Styles groups every style the practice screen renders with.
type Styles struct {
	Title   lipgloss.Style
	Card    lipgloss.Style
	Word    lipgloss.Style
	Meaning lipgloss.Style
	Muted   lipgloss.Style
	Hint    lipgloss.Style
	Key     lipgloss.Style
	Alert   lipgloss.Style

	badges   map[practice.Color]lipgloss.Style
	feedback map[practice.FeedbackLevel]lipgloss.Style
}

// NewStyles returns the default palette.
func NewStyles() Styles {
	badge := func(bg, fg string) lipgloss.Style {
		return lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color(fg)).
			Padding(0, 2).
			Bold(true)
	}
	score := func(fg string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Bold(true)
	}
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1f2937")).
			Bold(true).
			MarginBottom(1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#e5e7eb")).
			Padding(1, 2),
		Word: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2563eb")).
			Bold(true),
		Meaning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#374151")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280")),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ca8a04")).
			Italic(true),
		Key: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2563eb")).
			Bold(true),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#dc2626")).
			Padding(1, 3),

		badges: map[practice.Color]lipgloss.Style{
			practice.Green:  badge("#bbf7d0", "#166534"),
			practice.Yellow: badge("#fef08a", "#854d0e"),
			practice.Red:    badge("#fecaca", "#991b1b"),
			practice.Gray:   badge("#e5e7eb", "#1f2937"),
		},
		feedback: map[practice.FeedbackLevel]lipgloss.Style{
			practice.Neutral: score("#374151"),
			practice.Success: score("#16a34a"),
			practice.Warning: score("#ca8a04"),
			practice.Danger:  score("#dc2626"),
		},
	}
}

// Badge returns the difficulty badge style.
func (s Styles) Badge(d practice.Difficulty) lipgloss.Style {
	return s.badges[practice.DifficultyColor(d)]
}

// Score returns the style for a feedback level.
func (s Styles) Score(level practice.FeedbackLevel) lipgloss.Style {
	if st, ok := s.feedback[level]; ok {
		return st
	}
	return s.feedback[practice.Neutral]
}

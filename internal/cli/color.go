package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/glovebox/glovebox/backend/go-services/internal/expiry"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	silentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))

	badgeStyles = map[expiry.Status]lipgloss.Style{
		expiry.StatusExpired:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		expiry.StatusExpiring: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EAB308")),
		expiry.StatusValid:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E")),
		expiry.StatusNone:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#64748B")),
	}
)

func Error(text string) string  { return errorStyle.Render(text) }
func Silent(text string) string { return silentStyle.Render(text) }

// Badge renders the upper-case status label in its band colour.
func Badge(s expiry.Status) string {
	label := "N/A"
	if s != expiry.StatusNone {
		label = string(s)
	}
	return badgeStyles[s].Render(strings.ToUpper(label))
}


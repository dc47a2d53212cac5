package style

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary = lipgloss.Color("#0EA5E9")
	Green   = lipgloss.Color("#10B981")
	Red     = lipgloss.Color("#EF4444")
	Yellow  = lipgloss.Color("#F59E0B")
	Cyan    = lipgloss.Color("#06B6D4")
	Dim     = lipgloss.Color("#6B7280")
	White   = lipgloss.Color("#F9FAFB")

	// Text styles
	Bold = lipgloss.NewStyle().Bold(true).Foreground(White)

	Up      = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Down    = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Warning = lipgloss.NewStyle().Foreground(Yellow)

	DimText = lipgloss.NewStyle().Foreground(Dim)

	// Status indicators
	DotUp      = Up.Render("●")
	DotDown    = Down.Render("●")
	DotWarning = Warning.Render("●")
	DotDim     = DimText.Render("●")

	// Header / banner
	Banner = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Dim).
			Italic(true)

	// Table
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Dim).
			PaddingRight(2)

	// Error box
	ErrorBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1).
			MarginTop(1)

	// Success box
	SuccessBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1).
			MarginTop(1)

	// Key-value
	Key = lipgloss.NewStyle().Foreground(Dim).Width(12)
	Val = lipgloss.NewStyle().Foreground(White)
)

// StateDot maps a Nagios current_state attribute to a colored dot:
// 0 up/ok, 1 down/warning, 2+ critical.
func StateDot(state string) string {
	switch state {
	case "0":
		return DotUp
	case "1":
		return DotWarning
	case "":
		return DotDim
	default:
		return DotDown
	}
}

// CheckDot maps a health check status string to a colored dot.
func CheckDot(status string) string {
	switch status {
	case "up":
		return DotUp
	case "down":
		return DotDown
	case "stale":
		return DotWarning
	default:
		return DotDim
	}
}

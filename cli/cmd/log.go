package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"nagapi/cli/style"
)

var (
	logLines int
	logPlain bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the daemon's recent log lines",
	RunE:  runLog,
}

func init() {
	logCmd.Flags().IntVarP(&logLines, "lines", "n", 0, "number of lines (default: everything buffered)")
	logCmd.Flags().BoolVar(&logPlain, "plain", false, "print to stdout instead of the pager")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	lines, err := client.Log(logLines)
	if err != nil {
		return fmt.Errorf("failed to fetch log: %w", err)
	}
	if len(lines) == 0 {
		fmt.Println(style.DimText.Render("Log buffer is empty."))
		return nil
	}

	if logPlain {
		for _, l := range lines {
			fmt.Println(l)
		}
		return nil
	}

	p := tea.NewProgram(newLogModel(lines), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// --- Model ---

type logModel struct {
	viewport viewport.Model
	lines    []string
	ready    bool
}

func newLogModel(lines []string) logModel {
	return logModel{lines: lines}
}

func (m logModel) Init() tea.Cmd {
	return nil
}

func (m logModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		headerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.viewport.SetContent(strings.Join(m.lines, "\n"))
			m.viewport.GotoBottom()
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m logModel) View() string {
	if !m.ready {
		return "loading..."
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(style.Primary).
		Render(fmt.Sprintf("daemon log — %d line(s)", len(m.lines)))
	help := style.DimText.Render("  ↑/↓ scroll · q quit")
	return title + help + "\n\n" + m.viewport.View()
}

package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"nagapi/cli/api"
	"nagapi/cli/style"
)

var statusCmd = &cobra.Command{
	Use:     "status [host]",
	Short:   "Show state of all hosts or one host in detail",
	Aliases: []string{"s", "ls"},
	Args:    cobra.MaximumNArgs(1),
	RunE:    runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return showHostDetail(args[0])
	}
	return showAllHosts()
}

func showAllHosts() error {
	state, err := client.State()
	if err != nil {
		return fmt.Errorf("failed to fetch state: %w", err)
	}

	if len(state.Hosts) == 0 {
		fmt.Println(style.DimText.Render("No hosts in the current snapshot. Is the daemon writing its status file?"))
		return nil
	}

	fmt.Println(style.Banner.Render("NAGAPI") + style.Subtitle.Render(fmt.Sprintf("  %d host(s)", len(state.Hosts))))
	fmt.Println()

	header := fmt.Sprintf("  %-2s  %-24s %-10s %-10s %s", "", "HOST", "SERVICES", "DOWNTIMES", "OUTPUT")
	fmt.Println(style.TableHeader.Render(header))

	names := make([]string, 0, len(state.Hosts))
	for name := range state.Hosts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		printHostRow(state.Hosts[name])
	}
	fmt.Println()

	return nil
}

func printHostRow(h *api.Host) {
	dot := style.StateDot(h.Attrs["current_state"])
	name := style.Bold.Render(padRight(h.Name, 24))
	services := padRight(fmt.Sprintf("%d", len(h.Services)), 10)

	downtimes := padRight("—", 10)
	if n := len(h.Downtimes); n > 0 {
		downtimes = style.Warning.Render(padRight(fmt.Sprintf("%d", n), 10))
	}

	output := style.DimText.Render(truncate(h.Attrs["plugin_output"], 40))

	fmt.Printf("  %s  %s %s %s %s\n", dot, name, services, downtimes, output)
}

func showHostDetail(name string) error {
	h, err := client.Host(name)
	if err != nil {
		return fmt.Errorf("failed to fetch host %s: %w", name, err)
	}

	fmt.Println(style.Banner.Render(h.Name))

	if v := h.Attrs["plugin_output"]; v != "" {
		fmt.Printf("  %s %s\n", style.Key.Render("Output"), style.Val.Render(v))
	}
	fmt.Printf("  %s %s\n", style.Key.Render("State"), style.StateDot(h.Attrs["current_state"]))
	fmt.Println()

	if len(h.Services) > 0 {
		fmt.Println(style.TableHeader.Render(fmt.Sprintf("  %-2s  %-28s %s", "", "SERVICE", "OUTPUT")))
		svcNames := make([]string, 0, len(h.Services))
		for s := range h.Services {
			svcNames = append(svcNames, s)
		}
		sort.Strings(svcNames)
		for _, s := range svcNames {
			svc := h.Services[s]
			fmt.Printf("  %s  %s %s\n",
				style.StateDot(svc.Attrs["current_state"]),
				padRight(s, 28),
				style.DimText.Render(truncate(svc.Attrs["plugin_output"], 48)))
		}
		fmt.Println()
	}

	for _, d := range h.Downtimes {
		printDowntime(d)
	}
	for _, svc := range h.Services {
		for _, d := range svc.Downtimes {
			printDowntime(d)
		}
	}

	return nil
}

func printDowntime(d api.Downtime) {
	scope := d.HostName
	if d.Service != "" {
		scope = d.HostName + "/" + d.Service
	}
	until := time.Unix(d.EndTime, 0).Format("2006-01-02 15:04")
	fmt.Printf("  %s  downtime %d on %s until %s %s\n",
		style.DotWarning,
		d.ID,
		style.Bold.Render(scope),
		until,
		style.DimText.Render(fmt.Sprintf("(%s: %s)", d.Author, d.Comment)))
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	for len(s) < n {
		s += " "
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

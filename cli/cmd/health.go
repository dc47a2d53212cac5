package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nagapi/cli/style"
)

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check whether the daemon's shared files look alive",
	Aliases: []string{"doctor"},
	RunE:    runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	h, err := client.Health()
	if err != nil {
		fmt.Println(style.ErrorBox.Render("Cannot reach nagapi at " + apiURL))
		return err
	}

	fmt.Println(style.Banner.Render("NAGAPI HEALTH"))
	fmt.Println()

	for _, c := range h.Checks {
		line := fmt.Sprintf("  %s  %s", style.CheckDot(c.Status), padRight(c.Name, 16))
		if c.Details != "" {
			line += style.DimText.Render(c.Details)
		}
		fmt.Println(line)
	}
	fmt.Println()

	if h.Status == "healthy" {
		fmt.Println(style.Up.Render("  daemon looks healthy"))
	} else {
		fmt.Println(style.Warning.Render("  daemon looks " + h.Status))
	}
	fmt.Println()

	return nil
}

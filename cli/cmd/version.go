package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nagapi/cli/style"
)

var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print client and server version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("  %s %s\n", style.Key.Render("Client"), style.Val.Render(Version))

		if v, err := client.Version(); err == nil {
			fmt.Printf("  %s %s\n", style.Key.Render("Server"), style.Val.Render(v))
		} else {
			fmt.Printf("  %s %s\n", style.Key.Render("Server"), style.DimText.Render("unreachable"))
		}
		fmt.Printf("  %s %s\n", style.Key.Render("API"), style.Val.Render(apiURL))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"nagapi/cli/api"
	"nagapi/cli/style"
)

var downtimeCmd = &cobra.Command{
	Use:     "downtime",
	Short:   "List, schedule, and cancel downtimes",
	Aliases: []string{"dt"},
	RunE:    runDowntimeList,
}

var (
	dtService  string
	dtDuration time.Duration
	dtAuthor   string
	dtComment  string
	dtID       int
	dtHost     string
)

var downtimeScheduleCmd = &cobra.Command{
	Use:   "schedule <host>",
	Short: "Schedule a fixed downtime for a host or one of its services",
	Args:  cobra.ExactArgs(1),
	RunE:  runDowntimeSchedule,
}

var downtimeCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a downtime by ID, or all downtimes on a host/service",
	RunE:  runDowntimeCancel,
}

func init() {
	downtimeScheduleCmd.Flags().StringVar(&dtService, "service", "", "service on the host (default: whole host)")
	downtimeScheduleCmd.Flags().DurationVar(&dtDuration, "for", 2*time.Hour, "downtime length (60s minimum, 7 days maximum)")
	downtimeScheduleCmd.Flags().StringVar(&dtAuthor, "author", "", "downtime author")
	downtimeScheduleCmd.Flags().StringVar(&dtComment, "comment", "", "downtime comment")

	downtimeCancelCmd.Flags().IntVar(&dtID, "id", 0, "downtime ID to cancel")
	downtimeCancelCmd.Flags().StringVar(&dtHost, "host", "", "cancel every downtime on this host")
	downtimeCancelCmd.Flags().StringVar(&dtService, "service", "", "restrict --host to one service")

	downtimeCmd.AddCommand(downtimeScheduleCmd)
	downtimeCmd.AddCommand(downtimeCancelCmd)
	rootCmd.AddCommand(downtimeCmd)
}

func runDowntimeList(cmd *cobra.Command, args []string) error {
	downtimes, err := client.Downtimes()
	if err != nil {
		return fmt.Errorf("failed to fetch downtimes: %w", err)
	}
	if len(downtimes) == 0 {
		fmt.Println(style.DimText.Render("No downtimes scheduled."))
		return nil
	}

	sort.Slice(downtimes, func(i, j int) bool { return downtimes[i].ID < downtimes[j].ID })

	fmt.Println(style.TableHeader.Render(fmt.Sprintf("  %-6s %-32s %-18s %-12s %s", "ID", "TARGET", "UNTIL", "AUTHOR", "COMMENT")))
	for _, d := range downtimes {
		target := d.HostName
		if d.Service != "" {
			target = d.HostName + "/" + d.Service
		}
		fmt.Printf("  %-6d %s %-18s %-12s %s\n",
			d.ID,
			style.Bold.Render(padRight(target, 32)),
			time.Unix(d.EndTime, 0).Format("2006-01-02 15:04"),
			d.Author,
			style.DimText.Render(d.Comment))
	}
	return nil
}

func runDowntimeSchedule(cmd *cobra.Command, args []string) error {
	msg, err := client.ScheduleDowntime(api.ScheduleRequest{
		Host:     args[0],
		Service:  dtService,
		Duration: int64(dtDuration.Seconds()),
		Author:   dtAuthor,
		Comment:  dtComment,
	})
	if err != nil {
		fmt.Println(style.ErrorBox.Render(err.Error()))
		return err
	}
	fmt.Println(style.SuccessBox.Render(msg))
	return nil
}

func runDowntimeCancel(cmd *cobra.Command, args []string) error {
	if dtID == 0 && dtHost == "" {
		return fmt.Errorf("either --id or --host is required")
	}

	msg, err := client.CancelDowntime(api.CancelRequest{
		DowntimeID: dtID,
		Host:       dtHost,
		Service:    dtService,
	})
	if err != nil {
		fmt.Println(style.ErrorBox.Render(err.Error()))
		return err
	}
	fmt.Println(style.SuccessBox.Render(msg))
	return nil
}

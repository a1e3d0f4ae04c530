package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fieldline/dayboard/core/model"
	"github.com/fieldline/dayboard/core/rebuild"
)

var timelineCrew string

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Reconstruct technician timelines from the published schedule",
	RunE:  runTimeline,
}

func init() {
	timelineCmd.Flags().StringVar(&timelineCrew, "crew", "", "limit to one crew")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := context.Background()
	date := scheduleDate()

	if timelineCrew != "" {
		stops, err := svc.Timeline(ctx, date, timelineCrew)
		if err != nil {
			return err
		}
		printStops(timelineCrew, stops)
		return nil
	}

	byCrew, err := svc.Timelines(ctx, date)
	if err != nil {
		return err
	}
	if len(byCrew) == 0 {
		fmt.Printf("no schedule published for %s\n", date)
		return nil
	}
	ids := make([]string, 0, len(byCrew))
	for id := range byCrew {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		printStops(id, byCrew[id])
	}
	return nil
}

func printStops(crewID string, stops []rebuild.Stop) {
	crewColor.Printf("%s\n", crewID)
	if len(stops) == 0 {
		dimColor.Println("  (no route)")
		return
	}
	for _, s := range stops {
		fmt.Printf("  %d. %s  %-12s %-20s drive %dm\n",
			s.RouteOrder,
			model.FormatClock(s.StartHours),
			s.Entry.JobType,
			s.Entry.Customer,
			s.DriveTimeMinutes,
		)
	}
}

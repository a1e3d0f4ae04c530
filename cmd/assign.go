package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var assignSave bool

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Auto-assign every pooled job against crew capacity and zones",
	RunE:  runAssign,
}

func init() {
	assignCmd.Flags().BoolVar(&assignSave, "save", false, "persist the board after assignment")
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := context.Background()
	date := scheduleDate()
	b, err := svc.Board(ctx, date)
	if err != nil {
		return err
	}

	res := svc.AutoAssign(b)
	for _, p := range res.Placements {
		match := ""
		if p.ZoneMatch {
			match = " (zone match)"
		}
		fmt.Printf("placed %-12s %.1fh -> %s%s\n", p.Entry.JobType, p.Entry.Duration(), p.CrewID, match)
	}
	fmt.Printf("assigned %d, unassigned %d\n", res.Assigned, res.Unassigned)

	if assignSave {
		if _, err := svc.Publish(ctx, b, nil); err != nil {
			return err
		}
	}
	return nil
}

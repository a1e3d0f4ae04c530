package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var legsPath string

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Finalize the board into a persisted schedule document",
	Long: `Finalize serializes the in-memory board into the schedule document for
the date, stores it, and pushes it to technician devices when a publisher
is configured. Drive-time legs (seconds, one per job, aligned to queue
order) may be supplied as a JSON file mapping crew id to a legs array.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&legsPath, "legs", "", "JSON file with drive-time legs per crew")
	rootCmd.AddCommand(publishCmd)
}

func loadLegs(path string) (map[string][]int, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read legs file: %w", err)
	}
	var legs map[string][]int
	if err := json.Unmarshal(data, &legs); err != nil {
		return nil, fmt.Errorf("decode legs file: %w", err)
	}
	return legs, nil
}

func runPublish(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	legs, err := loadLegs(legsPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	date := scheduleDate()
	b, err := svc.Board(ctx, date)
	if err != nil {
		return err
	}
	doc, err := svc.Publish(ctx, b, legs)
	if err != nil {
		return err
	}
	jobs := 0
	for _, q := range doc.Schedule {
		jobs += len(q)
	}
	fmt.Printf("published %s: %d lane(s), %d job(s)\n", date, len(doc.Lanes), jobs)
	return nil
}

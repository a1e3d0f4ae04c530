package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fieldline/dayboard/app"
	"github.com/fieldline/dayboard/config"
	"github.com/fieldline/dayboard/core/board"
	"github.com/fieldline/dayboard/core/model"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Render the schedule board for a date",
	RunE:  runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func scheduleDate() string {
	if dateArg != "" {
		return dateArg
	}
	return time.Now().Format("2006-01-02")
}

func newService() (*app.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(cfg)
}

var (
	statusColors = map[board.Status]*color.Color{
		board.StatusOpen:    color.New(color.FgGreen),
		board.StatusLimited: color.New(color.FgYellow),
		board.StatusFull:    color.New(color.FgRed),
	}
	gapColor  = color.New(color.FgYellow)
	dimColor  = color.New(color.Faint)
	crewColor = color.New(color.Bold)
)

func runBoard(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	date := scheduleDate()
	b, err := svc.Board(context.Background(), date)
	if err != nil {
		return err
	}

	fmt.Printf("Schedule board for %s\n\n", date)
	for _, crew := range svc.Registry().All() {
		printLane(b, crew)
	}
	printPool(b)
	printFooter(b.Report())
	return nil
}

func printLane(b *board.Board, crew model.Crew) {
	load := board.Load(crew, b.Queue(crew.ID))
	header := fmt.Sprintf("%s (%s)", crew.Name, crew.Zone)
	crewColor.Print(header)
	statusColors[load.Status].Printf("  [%s: %.1fh free]\n", load.Status, load.Available)

	tl, err := b.CrewTimeline(crew.ID)
	if err != nil || len(tl) == 0 {
		dimColor.Println("  (no jobs)")
		return
	}
	for i, te := range tl {
		if te.HasGap {
			gapColor.Printf("  -- %s gap --\n", model.FormatClock(te.GapHours))
		}
		custom := ""
		if te.Entry.CustomStart != "" {
			custom = " *"
		}
		fmt.Printf("  %2d. %s-%s  %-12s %-20s #%s%s\n",
			i+1,
			model.FormatClock(te.Slot.Start),
			model.FormatClock(te.Slot.End),
			te.Entry.JobType,
			te.Entry.Customer,
			te.Entry.JobNumber,
			custom,
		)
	}
}

func printPool(b *board.Board) {
	pool := b.Pool()
	if len(pool) == 0 {
		return
	}
	crewColor.Println("\nUnassigned")
	for i, e := range pool {
		hint := e.ZoneHint
		if hint == "" {
			hint = "-"
		}
		fmt.Printf("  %2d. %-12s %.1fh  %-20s zone:%s\n", i+1, e.JobType, e.Duration(), e.Customer, hint)
	}
}

func printFooter(rep board.Report) {
	fmt.Printf("\nUtilization: mean %.0f%%, spread %.0f%%\n",
		rep.MeanUtilization*100, rep.UtilizationStd*100)
}

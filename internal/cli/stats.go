package cli

import (
	"context"
	"fmt"

	"github.com/calvinalkan/shelf/internal/book"
	"github.com/calvinalkan/shelf/internal/library"

	flag "github.com/spf13/pflag"
)

const noStatsMessage = "Add some books to see statistics!"

// StatsCmd returns the stats command.
func StatsCmd(s *session) *Command {
	return &Command{
		Flags: flag.NewFlagSet("stats", flag.ContinueOnError),
		Usage: "stats",
		Short: "Show library statistics",
		Long:  "Show book counts by genre and reading status, and the average rating per genre.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			store, err := s.open()
			if err != nil {
				return err
			}

			if store.Len() == 0 {
				io.Println(noStatsMessage)

				return nil
			}

			printStats(io, store.Stats())

			return nil
		},
	}
}

func printStats(io *IO, st library.Stats) {
	total := float64(st.Total)

	io.Printf("Books: %d  Average rating: %.1f\n", st.Total, st.AverageRating)
	io.Println()
	io.Println("Books by genre")

	for _, g := range book.Genres() {
		if n := st.ByGenre[g]; n > 0 {
			io.Println(statLine(string(g), n, total))
		}
	}

	io.Println()
	io.Println("Reading status")

	for _, status := range book.Statuses() {
		if n := st.ByStatus[status]; n > 0 {
			io.Println(statLine(string(status), n, total))
		}
	}

	io.Println()
	io.Println("Average rating by genre")

	for _, g := range book.Genres() {
		if avg, ok := st.RatingByGenre[g]; ok {
			io.Printf("  %s  %.2f  %s\n", cell(string(g), labelWidth), avg, bar(avg, book.MaxRating))
		}
	}
}

// labelWidth fits the longest genre or status name.
const labelWidth = len(book.StatusCurrentlyReading)

func statLine(label string, n int, total float64) string {
	pct := float64(n) / total * 100

	return fmt.Sprintf("  %s  %3d  %5.1f%%  %s", cell(label, labelWidth), n, pct, bar(float64(n), total))
}

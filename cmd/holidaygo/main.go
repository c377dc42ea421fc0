// Command holidaygo prints the team vacation report for one period from the
// configured backend, optionally with an AI-generated executive summary.
//
// Flags:
//
//	--month    1-indexed month to report on (default: current month)
//	--year     year to report on (default: current year)
//	--summary  also generate the AI team summary
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/OlosLive/holidayGo/internal/app"
	"github.com/OlosLive/holidayGo/internal/config"
	"github.com/OlosLive/holidayGo/internal/store"
	"github.com/OlosLive/holidayGo/internal/summary"
	"github.com/OlosLive/holidayGo/internal/view"
)

func main() {
	now := time.Now()
	monthFlag := flag.Int("month", int(now.Month()), "1-indexed month to report on")
	yearFlag := flag.Int("year", now.Year(), "year to report on")
	summaryFlag := flag.Bool("summary", false, "also generate the AI team summary")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("holidaygo starting", slog.String("version", app.BuildVersion()))

	if *monthFlag < 1 || *monthFlag > 12 {
		logger.Error("month must be between 1 and 12", slog.Int("month", *monthFlag))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := run(ctx, cfg, logger, *yearFlag, *monthFlag, *summaryFlag); err != nil {
		logger.Error("report failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, year, month int, withSummary bool) error {
	profileStore, err := store.Profiles(ctx, cfg, logger)
	if err != nil {
		return err
	}
	vacationStore, err := store.Vacations(ctx, cfg, logger)
	if err != nil {
		return err
	}

	profiles := view.NewProfiles(logger, profileStore)
	vacations := view.NewVacations(logger, vacationStore)
	if err := profiles.Load(ctx); err != nil {
		return err
	}
	if err := vacations.Load(ctx); err != nil {
		return err
	}

	members := profiles.Snapshot()
	fmt.Printf("Vacation report for %04d-%02d (%d team members)\n\n", year, month, len(members))

	snap := summary.Snapshot{Mode: summary.ModeMonthly, Year: year, Month: month}
	for _, member := range members {
		days := vacations.DaysFor(member.ID, year, month)

		planned := "none"
		if len(days) > 0 {
			parts := make([]string, len(days))
			for i, d := range days {
				parts[i] = fmt.Sprintf("%d", d)
			}
			planned = strings.Join(parts, ", ")
		}

		role := "-"
		if member.Role != nil {
			role = *member.Role
		}
		fmt.Printf("  %-24s %-12s balance %2d, used %2d, days: %s\n",
			member.Name, member.Status, member.VacationBalance, member.VacationUsed, planned)

		snap.Members = append(snap.Members, summary.Member{
			Name:        member.Name,
			Role:        role,
			Status:      member.Status,
			DaysByMonth: map[int][]int{month: days},
		})
	}

	if withSummary {
		svc := summary.NewService(logger, cfg.Summary)
		fmt.Printf("\n%s\n", svc.Generate(ctx, snap))
	}
	return nil
}

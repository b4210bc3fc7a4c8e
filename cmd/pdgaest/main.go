/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mikeb26/pdga-ratingest/internal/config"
	"github.com/mikeb26/pdga-ratingest/internal/logger"
	"github.com/mikeb26/pdga-ratingest/internal/service"
	"github.com/mikeb26/pdga-ratingest/internal/web"
	"github.com/mikeb26/pdga-ratingest/pdga"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":     handleHelp,
	"estimate": handleEstimate,
	"rounds":   handleRounds,
	"calendar": handleCalendar,
	"history":  handleHistory,
	"serve":    handleServe,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// loadConfig parses fs and then loads the config named by its --config
// flag.
func loadConfig(fs *flag.FlagSet, args []string) (config.Config,
	*logrus.Logger) {

	cfgPath := fs.String("config", "", "Path to a TOML config file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg, logger.New(cfg.Log.Level)
}

func requirePdga(fs *flag.FlagSet, num int) pdga.PdgaNum {
	if num <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --pdga number.")
		fs.Usage()
		os.Exit(1)
	}
	return pdga.PdgaNum(num)
}

func openService(ctx context.Context, cfg config.Config,
	opts service.Options, log *logrus.Logger) (*service.Service, func()) {

	svc, closer, err := service.FromConfig(ctx, cfg, opts, log)
	if err != nil {
		log.Fatalf("pdgaest: %v", err)
	}
	return svc, closer
}

func handleEstimate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	num := fs.Int("pdga", 0, "PDGA number")
	add := fs.String("add", "", "Comma separated ratings not yet on pdga.com")
	showRounds := fs.Bool("rounds", false, "Print every round")
	legacy := fs.Bool("legacy-recency", false,
		"Double weight the oldest rounds instead of the newest")
	cfg, log := loadConfig(fs, args)
	pdgaNum := requirePdga(fs, *num)

	manual, err := pdga.ParseManualRatings(*add)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid --add: %v\n", err)
		os.Exit(1)
	}

	svc, closer := openService(ctx, cfg,
		service.Options{LegacyRecency: *legacy}, log)
	defer closer()

	rep, err := svc.Estimate(ctx, pdgaNum, manual)
	if err != nil {
		if rep != nil && *showRounds {
			fmt.Print(pdga.BuildRoundsOutput(rep.Result))
		}
		closer()
		log.Fatalf("Error estimating rating for %v: %v", pdgaNum, err)
	}

	fmt.Print(rep.Summary())
	if *showRounds {
		fmt.Println()
		fmt.Print(pdga.BuildRoundsOutput(rep.Result))
	}
}

func handleRounds(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("rounds", flag.ExitOnError)
	num := fs.Int("pdga", 0, "PDGA number")
	cfg, log := loadConfig(fs, args)
	pdgaNum := requirePdga(fs, *num)

	svc, closer := openService(ctx, cfg, service.Options{NoHistory: true}, log)
	defer closer()

	rep, err := svc.Estimate(ctx, pdgaNum, nil)
	if rep != nil {
		fmt.Print(pdga.BuildRoundsOutput(rep.Result))
	}
	if err != nil {
		closer()
		log.Fatalf("Error estimating rounds for %v: %v", pdgaNum, err)
	}
}

func handleCalendar(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("calendar", flag.ExitOnError)
	date := fs.String("date", "", "Date to compute from (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	now := time.Now()
	if *date != "" {
		t, err := time.Parse("2006-01-02", *date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --date %q; expected YYYY-MM-DD\n",
				*date)
			os.Exit(1)
		}
		now = t
	}

	fmt.Print(pdga.BuildCalendarOutput(now))
}

func handleHistory(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	num := fs.Int("pdga", 0, "PDGA number")
	limit := fs.Int("limit", 10, "Number of estimates to show")
	cfg, log := loadConfig(fs, args)
	pdgaNum := requirePdga(fs, *num)

	svc, closer := openService(ctx, cfg, service.Options{}, log)
	defer closer()

	recs, err := svc.History(ctx, pdgaNum, *limit)
	if err != nil {
		closer()
		log.Fatalf("Error reading history for %v: %v", pdgaNum, err)
	}
	if len(recs) == 0 {
		fmt.Printf("No saved estimates for %v.\n", pdgaNum)
		return
	}

	fmt.Printf("%-19v %7v %9v %7v %6v\n", "When", "Current", "Estimated",
		"Counted", "Manual")
	for _, r := range recs {
		fmt.Printf("%-19v %7v %9v %7v %6v\n",
			r.EstimatedAt.Local().Format(time.DateTime), r.CurrentRating,
			r.EstimatedRating, r.Counted, r.Manual)
	}
}

func handleServe(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg, log := loadConfig(fs, args)

	svc, closer := openService(ctx, cfg, service.Options{}, log)
	defer closer()

	srv := web.New(svc, log)
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			log.Warnf("pdgaest.serve: shutdown: %v", err)
		}
	}()

	if err := srv.Serve(cfg.Web.Listen); err != nil {
		log.Errorf("pdgaest.serve: %v", err)
	}
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/mikeb26/pdga-ratingest/internal/config"
	"github.com/mikeb26/pdga-ratingest/internal/logger"
	"github.com/mikeb26/pdga-ratingest/internal/service"
	"github.com/mikeb26/pdga-ratingest/pdga"
)

// this program exists just to seed the http cache for a list of players

func main() {
	cfgPath := flag.String("config", "", "Path to a TOML config file")
	listPath := flag.String("players", "",
		"File of PDGA numbers, one per line (default stdin)")
	pause := flag.Duration("pause", 2*time.Second,
		"Delay between players to avoid pegging pdga.com")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level)

	in := io.Reader(os.Stdin)
	if *listPath != "" {
		f, err := os.Open(*listPath)
		if err != nil {
			log.Fatalf("cacheseed: %v", err)
		}
		defer f.Close()
		in = f
	}
	nums, err := readPdgaNums(in)
	if err != nil {
		log.Fatalf("cacheseed: %v", err)
	}

	ctx := context.Background()
	svc, closer, err := service.FromConfig(ctx, cfg,
		service.Options{NoHistory: true}, log)
	if err != nil {
		log.Fatalf("cacheseed: %v", err)
	}
	defer closer()

	for i, num := range nums {
		if i > 0 {
			time.Sleep(*pause)
		}
		_, err := svc.Estimate(ctx, num, nil)
		if err != nil && !errors.Is(err, pdga.ErrEmptyInput) {
			// best effort
			log.Warnf("cacheseed: %v: %v", num, err)
			continue
		}

		fmt.Printf("seeded %v\n", num)
	}
}

// readPdgaNums reads one PDGA number per line, skipping blank lines, lines
// starting with '#' and duplicates.
func readPdgaNums(r io.Reader) ([]pdga.PdgaNum, error) {
	var nums []pdga.PdgaNum
	seen := mapset.NewThreadUnsafeSet[pdga.PdgaNum]()

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if len(text) == 0 || text[0] == '#' {
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("line %v: invalid PDGA number %q", line,
				text)
		}
		if !seen.Add(pdga.PdgaNum(n)) {
			continue
		}
		nums = append(nums, pdga.PdgaNum(n))
	}
	return nums, scanner.Err()
}

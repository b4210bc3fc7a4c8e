/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"
)

// Collection is everything needed to estimate a player's next rating.
type Collection struct {
	PdgaNum       PdgaNum
	CurrentRating int
	// evaluated rounds followed by rounds from NewEvents
	Rounds []Round
	// events not yet reflected in the evaluated rounds
	NewEvents []EventRef
}

// CollectRounds gathers the player's current rating, the rounds already
// evaluated by PDGA, and the rounds from any event not yet evaluated. At most
// concurrency event pages are fetched at once. Any source failure aborts the
// whole collection.
func CollectRounds(ctx context.Context, src RoundSource, num PdgaNum,
	concurrency int) (*Collection, error) {

	if concurrency < 1 {
		concurrency = 1
	}

	col := &Collection{PdgaNum: num}
	var events []EventRef
	var evaluated []Round

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := src.CurrentRating(gctx, num)
		if err != nil {
			return fmt.Errorf("current rating: %w", err)
		}
		col.CurrentRating = r
		return nil
	})
	g.Go(func() error {
		evs, err := src.ListRatedEvents(gctx, num)
		if err != nil {
			return fmt.Errorf("listing events: %w", err)
		}
		events = evs
		return nil
	})
	g.Go(func() error {
		rounds, err := src.AlreadyEvaluatedRounds(gctx, num)
		if err != nil {
			return fmt.Errorf("evaluated rounds: %w", err)
		}
		evaluated = rounds
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	evaluatedNames := mapset.NewThreadUnsafeSet[string]()
	for _, r := range evaluated {
		evaluatedNames.Add(r.Tournament)
	}
	for _, ev := range events {
		if !evaluatedNames.Contains(ev.Name) {
			col.NewEvents = append(col.NewEvents, ev)
		}
	}

	perEvent := make([][]Round, len(col.NewEvents))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, ev := range col.NewEvents {
		i, ev := i, ev
		g.Go(func() error {
			rounds, err := src.RoundsForEvent(gctx, num, ev)
			if err != nil {
				return err
			}
			perEvent[i] = rounds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	col.Rounds = append(col.Rounds, evaluated...)
	for _, rounds := range perEvent {
		col.Rounds = append(col.Rounds, rounds...)
	}
	return col, nil
}

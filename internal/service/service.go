/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mikeb26/pdga-ratingest/internal/config"
	"github.com/mikeb26/pdga-ratingest/pdga"
	"github.com/mikeb26/pdga-ratingest/storage"
)

// ErrHistoryDisabled is returned by History when no store is configured.
var ErrHistoryDisabled = errors.New("estimate history is not enabled")

// Report is the outcome of estimating one player's rating.
type Report struct {
	PdgaNum       pdga.PdgaNum
	CurrentRating int
	Result        *pdga.EstimateResult
	NewEvents     []pdga.EventRef
}

// Summary renders the report header.
func (r *Report) Summary() string {
	return pdga.BuildEstimateOutput(r.PdgaNum, r.CurrentRating, r.Result)
}

// Service estimates ratings from a RoundSource and keeps a history of
// estimates.
type Service struct {
	src         pdga.RoundSource
	est         *pdga.Estimator
	store       storage.HistoryStore
	concurrency int
	log         logrus.FieldLogger
}

// New returns a Service. store may be nil, in which case history is not
// kept.
func New(src pdga.RoundSource, est *pdga.Estimator,
	store storage.HistoryStore, concurrency int,
	log logrus.FieldLogger) *Service {

	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		src:         src,
		est:         est,
		store:       store,
		concurrency: concurrency,
		log:         log,
	}
}

// EstimatorFromConfig builds an Estimator from the [estimate] section.
func EstimatorFromConfig(cfg config.Estimate) *pdga.Estimator {
	est := pdga.DefaultEstimator()
	est.Exclusion = pdga.ExclusionRule{
		MeanMargin:   cfg.MeanMargin,
		StdDevFactor: cfg.StdDevFactor,
	}
	if cfg.Recency == "oldest" {
		est.Recency = pdga.RecencyOldest
	}
	return est
}

func (s *Service) now() time.Time {
	if s.est.Now != nil {
		return s.est.Now()
	}
	return time.Now()
}

// Estimate collects the player's rounds, appends any manually entered
// ratings, and estimates the next rating. When no round counts the Report is
// returned along with an error wrapping pdga.ErrEmptyInput; it is not saved.
func (s *Service) Estimate(ctx context.Context, num pdga.PdgaNum,
	manual []int) (*Report, error) {

	col, err := pdga.CollectRounds(ctx, s.src, num, s.concurrency)
	if err != nil {
		return nil, fmt.Errorf("collecting rounds for %v: %w", num, err)
	}

	rounds := append(col.Rounds, pdga.ManualRounds(manual, s.now())...)
	res, err := s.est.Estimate(rounds, col.CurrentRating)
	if err != nil {
		err = fmt.Errorf("estimating %v: %w", num, err)
		if res == nil {
			return nil, err
		}
		// nothing counted; hand back the annotated rounds with the error
		return &Report{
			PdgaNum:       num,
			CurrentRating: col.CurrentRating,
			Result:        res,
			NewEvents:     col.NewEvents,
		}, err
	}
	s.log.WithFields(logrus.Fields{
		"pdga":      num,
		"current":   col.CurrentRating,
		"estimate":  res.Rating,
		"counted":   res.Counted,
		"newEvents": len(col.NewEvents),
	}).Info("service.estimate: done")

	s.record(ctx, num, col.CurrentRating, res, len(manual))

	return &Report{
		PdgaNum:       num,
		CurrentRating: col.CurrentRating,
		Result:        res,
		NewEvents:     col.NewEvents,
	}, nil
}

// record saves the estimate; failures are logged, not returned.
func (s *Service) record(ctx context.Context, num pdga.PdgaNum, current int,
	res *pdga.EstimateResult, manual int) {

	if s.store == nil {
		return
	}
	_, err := s.store.Save(ctx, storage.Record{
		PdgaNum:         int(num),
		EstimatedAt:     s.now(),
		CurrentRating:   current,
		EstimatedRating: res.Rating,
		Counted:         res.Counted,
		Manual:          manual,
	})
	if err != nil {
		s.log.Warnf("service.record: %v", err)
	}
}

// History returns saved estimates for the player, newest first.
func (s *Service) History(ctx context.Context, num pdga.PdgaNum,
	limit int) ([]storage.Record, error) {

	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.List(ctx, int(num), limit)
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mikeb26/pdga-ratingest/internal/config"
	"github.com/mikeb26/pdga-ratingest/internal/httpcache"
	"github.com/mikeb26/pdga-ratingest/pdga"
	"github.com/mikeb26/pdga-ratingest/storage"
	"github.com/mikeb26/pdga-ratingest/storage/sqlite"
)

// Options tweaks FromConfig for callers that do not need every piece.
type Options struct {
	// skip opening the history database
	NoHistory bool
	// force the oldest-weighted recency rule
	LegacyRecency bool
}

// FromConfig opens the pdga.com source, the http cache and the history
// store described by cfg. The returned closer releases all of them.
func FromConfig(ctx context.Context, cfg config.Config, opts Options,
	log logrus.FieldLogger) (*Service, func(), error) {

	httpClient := httpcache.NewCachedHttpClient(ctx, httpcache.CacheOptions{
		Bucket: cfg.Cache.Bucket,
		Gzip:   cfg.Cache.Gzip,
		MaxAge: cfg.Cache.MaxAge.Duration,
	}, log)
	httpClient.Timeout = cfg.Source.Timeout.Duration

	src, err := pdga.Open(ctx, pdga.Options{
		BaseURL:       cfg.Source.BaseURL,
		Render:        cfg.Source.Render,
		ExcludedTiers: cfg.Source.ExcludedTiers,
		HTTPClient:    httpClient,
		Log:           log,
	})
	if err != nil {
		return nil, nil, err
	}

	var store storage.HistoryStore
	if !opts.NoHistory && cfg.Storage.Path != "" {
		db, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			src.Close()
			return nil, nil, fmt.Errorf("opening history %v: %w",
				cfg.Storage.Path, err)
		}
		store = db
	}

	est := EstimatorFromConfig(cfg.Estimate)
	if opts.LegacyRecency {
		est.Recency = pdga.RecencyOldest
	}

	closer := func() {
		if store != nil {
			if err := store.Close(); err != nil {
				log.Warnf("service.close: history: %v", err)
			}
		}
		if err := src.Close(); err != nil {
			log.Warnf("service.close: source: %v", err)
		}
	}

	return New(src, est, store, cfg.Source.Concurrency, log), closer, nil
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package httpcache

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/pdga-ratingest/s3cache"
	"github.com/sirupsen/logrus"
)

// CacheOptions controls the http response cache.
type CacheOptions struct {
	// S3 bucket; empty selects an in-memory cache
	Bucket string
	Gzip   bool
	MaxAge time.Duration
}

// NewCachedHttpClient returns an http.Client that caches via S3-backed
// httpcache. If the S3 cache cannot be initialized it falls back to an
// in-memory cache. It also enforces a client-side TTL by rewriting origin
// cache headers.
func NewCachedHttpClient(ctx context.Context, opts CacheOptions,
	log logrus.FieldLogger) *http.Client {

	if log == nil {
		log = logrus.StandardLogger()
	}

	var cache httpcache.Cache
	if opts.Bucket != "" {
		s3c := s3cache.New(ctx, opts.Bucket, opts.Gzip, log)
		if err := s3c.Init(); err != nil {
			log.Warnf("httpcache: failed to init S3 cache: %v; falling back to memory cache",
				err)
		} else {
			cache = s3c
		}
	}
	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}

	return newCachingClient(cache, http.DefaultTransport, opts.MaxAge)
}

func newCachingClient(cache httpcache.Cache, rt http.RoundTripper,
	maxAge time.Duration) *http.Client {

	hc := httpcache.NewTransport(cache)
	// pdga.com marks its pages uncacheable; inject our own headers so that
	// httpcache honors maxAge instead
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: rt,
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Del("Set-Cookie")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don’t stomp on the caller’s original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}

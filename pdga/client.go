/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mikeb26/pdga-ratingest/internal"
	"github.com/sirupsen/logrus"
)

// RoundSource supplies the rounds and current rating for a player. Callers
// own the source and must Close it when done.
type RoundSource interface {
	// ListRatedEvents returns the player's events, newest first, excluding
	// events from tiers that are not rated.
	ListRatedEvents(ctx context.Context, num PdgaNum) ([]EventRef, error)
	CurrentRating(ctx context.Context, num PdgaNum) (int, error)
	// AlreadyEvaluatedRounds returns the rounds factored into the current
	// rating, with their current inclusion flag.
	AlreadyEvaluatedRounds(ctx context.Context, num PdgaNum) ([]Round, error)
	RoundsForEvent(ctx context.Context, num PdgaNum, ev EventRef) ([]Round, error)
	Close() error
}

// Options configures a pdga.com Client.
type Options struct {
	// defaults to https://www.pdga.com
	BaseURL string
	// Render fetches pages with headless chrome rather than plain http.
	Render        bool
	ExcludedTiers []string
	// HTTPClient is used when Render is false; defaults to http.DefaultClient
	HTTPClient *http.Client
	Log        logrus.FieldLogger
}

// Client reads player and event pages from pdga.com.
type Client struct {
	baseURL       *url.URL
	fetcher       pageFetcher
	excludedTiers mapset.Set[string]
	log           logrus.FieldLogger
}

var _ RoundSource = (*Client)(nil)

// Open returns a Client. When opts.Render is set a headless browser is
// started; it is shut down by Close.
func Open(ctx context.Context, opts Options) (*Client, error) {
	base := opts.BaseURL
	if base == "" {
		base = internal.PdgaBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("pdga.open: bad base url %q: %w", base, err)
	}

	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	tiers := mapset.NewSet[string]()
	for _, t := range opts.ExcludedTiers {
		tiers.Add(strings.ToUpper(strings.TrimSpace(t)))
	}

	c := &Client{
		baseURL:       baseURL,
		excludedTiers: tiers,
		log:           log,
	}
	if opts.Render {
		c.fetcher, err = newBrowserFetcher(ctx, log)
		if err != nil {
			return nil, err
		}
	} else {
		hc := opts.HTTPClient
		if hc == nil {
			hc = http.DefaultClient
		}
		c.fetcher = &httpFetcher{client: hc}
	}

	return c, nil
}

// Close releases the resources held by the client.
func (c *Client) Close() error {
	return c.fetcher.close()
}

func (c *Client) playerURL(num PdgaNum) string {
	return c.baseURL.ResolveReference(&url.URL{
		Path: fmt.Sprintf("/player/%v", num),
	}).String()
}

func (c *Client) detailsURL(num PdgaNum) string {
	return c.baseURL.ResolveReference(&url.URL{
		Path: fmt.Sprintf("/player/%v/details", num),
	}).String()
}

// resolve turns an href found on a page into an absolute url.
func (c *Client) resolve(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return c.baseURL.ResolveReference(ref).String()
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

const testPdgaNum PdgaNum = 12345

const playerPageHTML = `<html><body>
<div class="current-rating"><strong>Current Rating:</strong> 860
  <small class="rating-date">(as of 08-Oct-2024)</small></div>
<table><tbody>
<tr><td class="division">MA3</td><td class="points">120</td></tr>
</tbody></table>
<table><tbody>
<tr><td class="place">3</td><td class="tournament"><a href="/tour/event/80001">Fall Classic</a></td><td class="tier">C</td><td class="dates">01-Nov-2024</td></tr>
<tr><td class="place">5</td><td class="tournament"><a href="/tour/event/80002">Summer Open</a></td><td class="tier">B</td><td class="dates">01-Jun-2024</td></tr>
<tr><td class="place">1</td><td class="tournament"><a href="/tour/event/80003">Glow Doubles</a></td><td class="tier">XM</td><td class="dates">15-May-2024</td></tr>
</tbody></table>
<table><tbody>
<tr><td class="place">2</td><td class="tournament"><a href="/tour/event/80002">Summer Open</a></td><td class="tier">B</td></tr>
</tbody></table>
</body></html>`

const detailsPageHTML = `<html><body><table>
<thead><tr><th>Tournament</th><th>Date</th><th>Rating</th><th>Included</th></tr></thead>
<tbody>
<tr><td class="tournament"><a href="/tour/event/80002">Summer Open</a></td><td class="tier">B</td><td class="date">01-Jun-2024</td><td class="round">1</td><td class="round-rating">850</td><td class="evaluated">Yes</td><td class="included">Yes</td></tr>
<tr><td class="tournament"><a href="/tour/event/70002">Ice Bowl</a></td><td class="tier">C</td><td class="date">05-Feb-2024</td><td class="round">1</td><td class="round-rating">880</td><td class="evaluated">Yes</td><td class="included">Yes</td></tr>
<tr><td class="tournament"><a href="/tour/event/70001">Winter Chill</a></td><td class="tier">C</td><td class="date">09-Jan to 10-Jan-2024</td><td class="round">2</td><td class="round-rating">900</td><td class="evaluated">Yes</td><td class="included">No</td></tr>
</tbody></table></body></html>`

const eventPageHTML = `<html><body>
<div class="tournament-date"><strong>Date</strong>: 01-Nov-2024</div>
<a class="tour-show-round-ratings-link" href="#">Show Round Ratings</a>
<table><tbody><tr><td>Course info</td></tr></tbody></table>
<table><tbody>
<tr><td class="player">Someone Else</td><td class="pdga-number">54321</td><td class="round-rating">990</td><td class="round-rating">1000</td></tr>
<tr><td class="player">Test Player</td><td class="pdga-number">12345</td><td class="round-rating">820</td><td class="round-rating"></td></tr>
</tbody></table>
</body></html>`

type rewriteHostRoundTripper struct {
	base *url.URL
	up   http.RoundTripper
}

func (rt rewriteHostRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone request and rewrite the destination to the test server.
	req2 := req.Clone(req.Context())
	u := *req.URL
	u.Scheme = rt.base.Scheme
	u.Host = rt.base.Host
	req2.URL = &u
	return rt.up.RoundTrip(req2)
}

// newTestClient returns a Client whose requests for www.pdga.com are served
// from pages. Paths not in pages get a 404.
func newTestClient(t *testing.T, pages map[string]string) *Client {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	base, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("parsing test server url: %v", err)
	}
	hc := &http.Client{Transport: rewriteHostRoundTripper{base: base,
		up: http.DefaultTransport}}

	c, err := Open(context.Background(), Options{
		ExcludedTiers: []string{"xm"},
		HTTPClient:    hc,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func defaultTestPages() map[string]string {
	return map[string]string{
		"/player/12345":         playerPageHTML,
		"/player/12345/details": detailsPageHTML,
		"/tour/event/80001":     eventPageHTML,
	}
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/mikeb26/pdga-ratingest/internal"
	"github.com/sirupsen/logrus"
)

type pageFetcher interface {
	fetchDoc(ctx context.Context, url string) (*goquery.Document, error)
	close() error
}

type httpFetcher struct {
	client *http.Client
}

// fetchDoc gets the HTML document at the given URL using the configured
// User-Agent.
func (f *httpFetcher) fetchDoc(ctx context.Context,
	url string) (*goquery.Document, error) {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, &SourceUnavailableError{Op: "new request", URL: url, Err: err}
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &SourceUnavailableError{Op: "GET", URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SourceUnavailableError{Op: "GET", URL: url,
			StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &SourceUnavailableError{Op: "parse", URL: url, Err: err}
	}
	return doc, nil
}

func (f *httpFetcher) close() error {
	return nil
}

// event pages hide round ratings until this link is clicked
const showRoundRatingsJS = `(() => {
	const a = document.querySelector('.tour-show-round-ratings-link');
	if (!a) { return false; }
	a.click();
	return true;
})()`

// browserFetcher renders pages in headless chrome so that content inserted by
// javascript is present.
type browserFetcher struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	browserCtx  context.Context
	cancel      context.CancelFunc
	log         logrus.FieldLogger
}

func newBrowserFetcher(ctx context.Context,
	log logrus.FieldLogger) (*browserFetcher, error) {

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(internal.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)
	// the browser must outlive ctx's request scope, only Close stops it
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.WithoutCancel(ctx), opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(log.Errorf))

	// start the browser now so a missing chrome is reported by Open
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, &SourceUnavailableError{Op: "start browser", URL: "", Err: err}
	}

	return &browserFetcher{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		browserCtx:  browserCtx,
		cancel:      cancel,
		log:         log,
	}, nil
}

func (f *browserFetcher) fetchDoc(ctx context.Context,
	url string) (*goquery.Document, error) {

	tabCtx, cancel := chromedp.NewContext(f.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var clicked bool
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(showRoundRatingsJS, &clicked),
	)
	if err != nil {
		return nil, &SourceUnavailableError{Op: "render", URL: url, Err: err}
	}
	if clicked {
		f.log.Debugf("pdga.render: expanded round ratings on %v", url)
		if err := chromedp.Run(tabCtx, chromedp.Sleep(2*time.Second)); err != nil {
			return nil, &SourceUnavailableError{Op: "render", URL: url, Err: err}
		}
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html,
		chromedp.ByQuery)); err != nil {
		return nil, &SourceUnavailableError{Op: "render", URL: url, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &SourceUnavailableError{Op: "parse", URL: url, Err: err}
	}
	return doc, nil
}

func (f *browserFetcher) close() error {
	f.cancel()
	f.allocCancel()
	return nil
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pdga

import (
	"context"
	"fmt"
)

// ListRatedEvents returns the events on the player's page.
func (c *Client) ListRatedEvents(ctx context.Context,
	num PdgaNum) ([]EventRef, error) {

	doc, err := c.fetcher.fetchDoc(ctx, c.playerURL(num))
	if err != nil {
		return nil, err
	}
	return c.parseEvents(doc), nil
}

// CurrentRating returns the player's published rating.
func (c *Client) CurrentRating(ctx context.Context, num PdgaNum) (int, error) {
	doc, err := c.fetcher.fetchDoc(ctx, c.playerURL(num))
	if err != nil {
		return 0, err
	}
	return parseCurrentRating(num, doc)
}

// AlreadyEvaluatedRounds returns the rounds on the player's ratings detail
// page.
func (c *Client) AlreadyEvaluatedRounds(ctx context.Context,
	num PdgaNum) ([]Round, error) {

	doc, err := c.fetcher.fetchDoc(ctx, c.detailsURL(num))
	if err != nil {
		return nil, err
	}
	rounds, err := parseEvaluatedRounds(doc)
	if err != nil {
		return nil, fmt.Errorf("player %v details: %w", num, err)
	}
	return rounds, nil
}

// RoundsForEvent returns the player's rated rounds at ev.
func (c *Client) RoundsForEvent(ctx context.Context, num PdgaNum,
	ev EventRef) ([]Round, error) {

	doc, err := c.fetcher.fetchDoc(ctx, ev.URL)
	if err != nil {
		return nil, err
	}
	rounds, err := parseEventRounds(num, ev, doc)
	if err != nil {
		return nil, fmt.Errorf("event %q: %w", ev.Name, err)
	}
	c.log.Debugf("pdga.event: %v rated rounds for %v at %v", len(rounds), num,
		ev.Name)
	return rounds, nil
}

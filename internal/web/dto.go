/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package web

import (
	"time"

	"github.com/mikeb26/pdga-ratingest/internal/service"
	"github.com/mikeb26/pdga-ratingest/pdga"
	"github.com/mikeb26/pdga-ratingest/storage"
)

type roundDTO struct {
	Tournament string `json:"tournament"`
	Date       string `json:"date"`
	Rating     int    `json:"rating"`
	Source     string `json:"source"`
	Included   string `json:"pdgaIncluded"`
	WillCount  bool   `json:"willCount"`
	Weight     int    `json:"weight"`
	Reason     string `json:"reason,omitempty"`
}

type estimateDTO struct {
	PdgaNum         int        `json:"pdgaNumber"`
	CurrentRating   int        `json:"currentRating"`
	EstimatedRating int        `json:"estimatedRating"`
	Change          int        `json:"change"`
	Counted         int        `json:"counted"`
	Doubled         int        `json:"doubled"`
	Mean            float64    `json:"mean"`
	StdDev          float64    `json:"stdDev"`
	EligibleAfter   string     `json:"eligibleAfter"`
	NewEvents       []string   `json:"newEvents"`
	Rounds          []roundDTO `json:"rounds"`
}

type historyDTO struct {
	EstimatedAt     time.Time `json:"estimatedAt"`
	CurrentRating   int       `json:"currentRating"`
	EstimatedRating int       `json:"estimatedRating"`
	Counted         int       `json:"counted"`
	Manual          int       `json:"manual"`
}

type calendarDTO struct {
	Date          string `json:"date"`
	NextUpdate    string `json:"nextUpdate"`
	EligibleAfter string `json:"eligibleAfter"`
}

type errorDTO struct {
	Error string `json:"error"`
}

func convertReport(rep *service.Report) estimateDTO {
	res := rep.Result
	out := estimateDTO{
		PdgaNum:         int(rep.PdgaNum),
		CurrentRating:   rep.CurrentRating,
		EstimatedRating: res.Rating,
		Change:          res.Rating - rep.CurrentRating,
		Counted:         res.Counted,
		Doubled:         res.Doubled,
		Mean:            res.Mean,
		StdDev:          res.StdDev,
		EligibleAfter:   res.Cutoff.Format(dateQueryLayout),
		NewEvents:       make([]string, 0, len(rep.NewEvents)),
		Rounds:          make([]roundDTO, 0, len(res.Rounds)),
	}
	for _, ev := range rep.NewEvents {
		out.NewEvents = append(out.NewEvents, ev.Name)
	}
	for _, rr := range res.Rounds {
		out.Rounds = append(out.Rounds, convertRound(rr))
	}
	return out
}

func convertRound(rr pdga.RatedRound) roundDTO {
	return roundDTO{
		Tournament: rr.Tournament,
		Date:       rr.Date.Format(dateQueryLayout),
		Rating:     rr.Rating,
		Source:     rr.Source.String(),
		Included:   rr.Included.String(),
		WillCount:  rr.WillCount,
		Weight:     rr.Weight,
		Reason:     rr.Reason.String(),
	}
}

func convertHistory(recs []storage.Record) []historyDTO {
	out := make([]historyDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, historyDTO{
			EstimatedAt:     r.EstimatedAt,
			CurrentRating:   r.CurrentRating,
			EstimatedRating: r.EstimatedRating,
			Counted:         r.Counted,
			Manual:          r.Manual,
		})
	}
	return out
}

/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package web

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/mikeb26/pdga-ratingest/internal/service"
	"github.com/mikeb26/pdga-ratingest/pdga"
)

type Server struct {
	svc *service.Service
	app *fiber.App
	now func() time.Time
	log logrus.FieldLogger
}

func New(svc *service.Service, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{
		svc: svc,
		now: time.Now,
		log: log,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	app.Get(routeEstimate, s.handleEstimate)
	app.Get(routeHistory, s.handleHistory)
	app.Get(routeCalendar, s.handleCalendar)
	s.app = app

	return s
}

// Serve listens on addr until Shutdown is called.
func (s *Server) Serve(addr string) error {
	s.log.Infof("web.serve: listening on %v", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func pdgaNumParam(c *fiber.Ctx) (pdga.PdgaNum, error) {
	n, err := strconv.Atoi(c.Params(pdgaParam))
	if err != nil || n <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest,
			"pdga number must be a positive integer")
	}
	return pdga.PdgaNum(n), nil
}

func (s *Server) handleEstimate(c *fiber.Ctx) error {
	num, err := pdgaNumParam(c)
	if err != nil {
		return err
	}
	manual, err := pdga.ParseManualRatings(c.Query("add"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rep, err := s.svc.Estimate(c.UserContext(), num, manual)
	if err != nil {
		return err
	}
	return c.JSON(convertReport(rep))
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	num, err := pdgaNumParam(c)
	if err != nil {
		return err
	}
	limit := 10
	if l := c.Query("limit"); l != "" {
		limit, err = strconv.Atoi(l)
		if err != nil || limit <= 0 {
			return fiber.NewError(fiber.StatusBadRequest,
				"limit must be a positive integer")
		}
	}

	recs, err := s.svc.History(c.UserContext(), num, limit)
	if err != nil {
		return err
	}
	return c.JSON(convertHistory(recs))
}

func (s *Server) handleCalendar(c *fiber.Ctx) error {
	when := s.now()
	if d := c.Query("date"); d != "" {
		t, err := time.Parse(dateQueryLayout, d)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest,
				"date must be YYYY-MM-DD")
		}
		when = t
	}
	return c.JSON(calendarDTO{
		Date:          when.Format(dateQueryLayout),
		NextUpdate:    pdga.NextUpdate(when).Format(dateQueryLayout),
		EligibleAfter: pdga.EligibilityCutoff(when).Format(dateQueryLayout),
	})
}

// handleError maps estimator and source errors to http status codes.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	var sue *pdga.SourceUnavailableError
	var mre *pdga.MalformedRecordError
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, service.ErrHistoryDisabled):
		code = fiber.StatusNotFound
	case errors.Is(err, pdga.ErrEmptyInput):
		code = fiber.StatusUnprocessableEntity
	case errors.As(err, &sue):
		code = fiber.StatusBadGateway
	case errors.As(err, &mre):
		code = fiber.StatusBadGateway
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Warnf("web.%v: %v", c.Path(), err)
	}

	return c.Status(code).JSON(errorDTO{Error: err.Error()})
}

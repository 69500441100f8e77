// Package server exposes the calculation engine over HTTP: one POST
// /calculate endpoint taking the case-file shape as JSON and returning the
// full summary. Each request gets its own engine, so sessions never share
// mutable state.
package server

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/previdcalc/previdcalc/internal/calculation"
	"github.com/previdcalc/previdcalc/internal/config"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// CalculationRequest is the wire shape of one calculation: a case file plus
// an optional as-of date (defaults to the server's current date).
type CalculationRequest struct {
	config.CaseFile
	AsOf string `json:"as_of,omitempty"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Server handles calculation requests.
type Server struct {
	parser *config.InputParser
	log    zerolog.Logger
	// now is the clock the as-of default comes from; injectable for tests.
	now func() time.Time
}

// New creates a server.
func New(log zerolog.Logger) *Server {
	return &Server{
		parser: config.NewInputParser(),
		log:    log,
		now:    time.Now,
	}
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info().Str("addr", addr).Msg("listening")
	return fasthttp.ListenAndServe(addr, s.Handle)
}

// Handle routes the request.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	switch {
	case string(ctx.Path()) == "/calculate" && ctx.IsPost():
		s.handleCalculate(ctx)
	case string(ctx.Path()) == "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) handleCalculate(ctx *fasthttp.RequestCtx) {
	started := time.Now()

	var req CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	asOf := s.now()
	if req.AsOf != "" {
		parsed, err := time.Parse("2006-01-02", req.AsOf)
		if err != nil {
			s.writeError(ctx, fasthttp.StatusBadRequest, "as_of must be YYYY-MM-DD: "+err.Error())
			return
		}
		asOf = parsed
	}

	if err := s.parser.Validate(&req.CaseFile); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	tables, err := req.Tables()
	if err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	engine, err := calculation.NewEngine(tables, asOf)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	for i, c := range req.Contributions {
		if err := engine.AddContribution(c); err != nil {
			s.writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("contribution %d: %v", i, err))
			return
		}
	}
	for i, p := range req.SpecialPeriods {
		if err := engine.AddSpecialPeriod(p); err != nil {
			s.writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("special period %d: %v", i, err))
			return
		}
	}

	summary, err := engine.Evaluate(req.Insured)
	if err != nil {
		status := fasthttp.StatusInternalServerError
		if calculation.IsValidation(err) {
			status = fasthttp.StatusBadRequest
		}
		s.writeError(ctx, status, err.Error())
		return
	}

	body, err := json.Marshal(summary)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)

	s.log.Info().
		Int("contributions", len(req.Contributions)).
		Int("special_periods", len(req.SpecialPeriods)).
		Dur("elapsed", time.Since(started)).
		Msg("calculation served")
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)

	s.log.Warn().Int("status", status).Str("message", message).Msg("request rejected")
}

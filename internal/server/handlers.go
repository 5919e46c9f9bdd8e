package server

import (
	"errors"
	"net/http"

	"github.com/wealthpeek/feescope/internal/models"
	"github.com/wealthpeek/feescope/internal/services/lookup"
	"github.com/wealthpeek/feescope/internal/services/report"
)

// genericFailureMessage hides provider configuration details from callers.
const genericFailureMessage = "Unable to process request. Please try again later."

func (s *Server) handleFundLookup(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.FundLookupRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	resp, err := s.app.LookupService.Lookup(r.Context(), req.FundCode)
	if err != nil {
		var vErr *lookup.ValidationError
		if errors.As(err, &vErr) {
			WriteJSON(w, http.StatusBadRequest, models.FundLookupResponse{
				Success:  false,
				FundCode: vErr.FundCode,
				Error:    vErr.Error(),
			})
			return
		}

		var cErr *lookup.ConfigurationError
		if errors.As(err, &cErr) {
			s.logger.Error().Err(err).Msg("Fund lookup misconfigured")
		} else {
			s.logger.Error().Err(err).Str("fund_code", req.FundCode).Msg("Fund lookup failed")
		}
		WriteJSON(w, http.StatusInternalServerError, models.FundLookupResponse{
			Success: false,
			Error:   genericFailureMessage,
		})
		return
	}

	// Not-found is a successful response with success=false and a
	// user-facing message, not an HTTP error.
	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFundSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.FundSearchRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	resp, err := s.app.FundSearchService.Search(r.Context(), req.Query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", req.Query).Msg("Fund search failed")
		WriteJSON(w, http.StatusInternalServerError, models.FundSearchResponse{
			Success: false,
			Error:   genericFailureMessage,
		})
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReportEmail(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ReportEmailRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	resp, err := s.app.ReportService.SendReport(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrInvalidEmail):
			WriteJSON(w, http.StatusBadRequest, models.ReportEmailResponse{
				Success: false,
				Error:   "Valid email address is required",
			})
		case errors.Is(err, report.ErrNotConfigured):
			s.logger.Error().Msg("Report email requested but no mail provider configured")
			WriteJSON(w, http.StatusInternalServerError, models.ReportEmailResponse{
				Success: false,
				Error:   genericFailureMessage,
			})
		default:
			s.logger.Error().Err(err).Str("email", req.Email).Msg("Report email failed")
			WriteJSON(w, http.StatusInternalServerError, models.ReportEmailResponse{
				Success: false,
				Error:   "Failed to send report email",
			})
		}
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

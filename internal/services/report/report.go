// Package report renders the fee-report email and dispatches it through a
// transactional mailer.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wealthpeek/feescope/internal/common"
	"github.com/wealthpeek/feescope/internal/interfaces"
	"github.com/wealthpeek/feescope/internal/models"
	"github.com/wealthpeek/feescope/internal/services/fees"
)

// ErrInvalidEmail rejects report requests without a usable destination
// address.
var ErrInvalidEmail = errors.New("valid email address is required")

// ErrNotConfigured is returned when no mail provider key was supplied.
var ErrNotConfigured = errors.New("email service not configured")

// Service renders and sends fee reports.
type Service struct {
	mailer       interfaces.Mailer
	ctaThreshold float64
	logger       *common.Logger
}

// NewService builds the report service. The mailer may be nil when the
// provider key is absent; SendReport then fails with ErrNotConfigured.
// ctaThreshold is the annual-fee level above which the report includes a
// consultation call-to-action.
func NewService(mailer interfaces.Mailer, ctaThreshold float64, logger *common.Logger) *Service {
	return &Service{
		mailer:       mailer,
		ctaThreshold: ctaThreshold,
		logger:       logger,
	}
}

// SendReport renders the HTML fee report for the request and emails it.
func (s *Service) SendReport(ctx context.Context, req *models.ReportEmailRequest) (*models.ReportEmailResponse, error) {
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, ErrInvalidEmail
	}
	if s.mailer == nil {
		return nil, ErrNotConfigured
	}

	html, err := renderReport(req, s.ctaThreshold)
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	subject := fmt.Sprintf("Your WealthPeek Fee Report - %s/year", fees.FormatCAD(req.TotalFees))
	id, err := s.mailer.Send(ctx, req.Email, subject, html)
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("report email dispatch failed")
		return nil, fmt.Errorf("sending report email: %w", err)
	}

	s.logger.Info().Str("email", req.Email).Str("id", id).Msg("report email sent")
	return &models.ReportEmailResponse{Success: true, ID: id}, nil
}

var _ interfaces.ReportService = (*Service)(nil)

package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/MKhiriev/go-acme-cse/internal/adapter"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
	"github.com/MKhiriev/go-acme-cse/models"
)

type executionStateService struct {
	cse       adapter.CSEAdapter
	container string

	logger *logger.Logger
}

// NewExecutionStateService returns an [ExecutionStateService] writing content
// instances into container.
func NewExecutionStateService(cse adapter.CSEAdapter, container string, logger *logger.Logger) ExecutionStateService {
	return &executionStateService{
		cse:       cse,
		container: container,
		logger:    logger,
	}
}

// SetState creates a content instance carrying state. Anything but 201 is
// reported with the answer of the CSE.
func (s *executionStateService) SetState(ctx context.Context, state models.ExecutionState) error {
	body, err := json.Marshal(map[string]map[string]string{
		models.TypeContentInst.ShortName(): {"con": string(state)},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutionStateWrite, err)
	}

	resp, err := s.cse.Do(ctx, adapter.RawRequest{
		Method:       http.MethodPost,
		Path:         s.container,
		RequestID:    utils.RandomString(10),
		ResourceType: models.TypeContentInst,
		Body:         body,
	})
	if err != nil {
		s.logger.Err(err).
			Str("state", string(state)).
			Str("container", s.container).
			Msg("execution state request failed")
		return fmt.Errorf("%w: %w", ErrExecutionStateWrite, err)
	}

	if resp.StatusCode != http.StatusCreated {
		s.logger.Error().
			Str("state", string(state)).
			Str("container", s.container).
			Int("status", resp.StatusCode).
			Str("rsc", resp.RSC).
			Str("body", string(resp.Body)).
			Msg("execution state was not created")
		return fmt.Errorf("%w: unexpected status %d", ErrExecutionStateWrite, resp.StatusCode)
	}

	s.logger.Info().
		Str("state", string(state)).
		Str("container", s.container).
		Str("rqi", resp.RequestID).
		Msg("execution state written")
	return nil
}

package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/MKhiriev/go-acme-cse/internal/adapter"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
	"github.com/MKhiriev/go-acme-cse/internal/validators"
	"github.com/MKhiriev/go-acme-cse/models"
)

type provisionService struct {
	cse       adapter.CSEAdapter
	validator validators.Validator

	logger *logger.Logger
}

// NewProvisionService returns a [ProvisionService] sending collection
// requests through cse.
func NewProvisionService(cse adapter.CSEAdapter, logger *logger.Logger) ProvisionService {
	return &provisionService{
		cse:       cse,
		validator: validators.NewCollectionValidator(),
		logger:    logger,
	}
}

// Run executes col request by request. Values extracted from a response are
// visible to every following request. The returned run is complete up to and
// including the first failed request, whose error is also returned.
func (s *provisionService) Run(ctx context.Context, col models.Collection, overrides map[string]string) (models.CollectionRun, error) {
	if err := s.validator.Validate(ctx, col); err != nil {
		return models.CollectionRun{Collection: col.Name}, fmt.Errorf("invalid collection %q: %w", col.Name, err)
	}

	vars := utils.NewTemplateVars(col.Vars)
	for k, v := range overrides {
		vars.Set(k, v)
	}

	run := models.CollectionRun{Collection: col.Name}
	for _, req := range col.Requests {
		result := s.execute(ctx, vars, req)
		run.Results = append(run.Results, result)

		if result.Err != nil {
			s.logger.Err(result.Err).
				Str("collection", col.Name).
				Str("request", req.Name).
				Int("status", result.StatusCode).
				Msg("collection request failed")
			run.Vars = vars.Vars()
			return run, fmt.Errorf("%s: %w", req.Name, result.Err)
		}

		for k, v := range result.Extracted {
			vars.Set(k, v)
		}

		s.logger.Info().
			Str("collection", col.Name).
			Str("request", req.Name).
			Int("status", result.StatusCode).
			Str("rsc", result.RSC).
			Dur("duration", result.Duration).
			Msg("collection request done")
	}

	run.Vars = vars.Vars()
	return run, nil
}

func (s *provisionService) execute(ctx context.Context, vars *utils.TemplateVars, req models.CollectionRequest) models.CollectionResult {
	result := models.CollectionResult{Name: req.Name, Method: req.Method}

	raw, err := render(vars, req)
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrRequestFailed, err)
		return result
	}
	result.URL = raw.Path

	started := time.Now()
	resp, err := s.cse.Do(ctx, raw)
	result.Duration = time.Since(started)
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrRequestFailed, err)
		return result
	}
	result.StatusCode = resp.StatusCode
	result.RSC = resp.RSC

	if !expected(req.ExpectStatus, resp.StatusCode) {
		result.Err = fmt.Errorf("%w: got %d (rsc %s): %s", ErrExpectationFailed, resp.StatusCode, resp.RSC, string(resp.Body))
		return result
	}

	extracted, err := utils.ExtractJSONPath(resp.Body, req.Extract)
	result.Extracted = extracted
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	return result
}

// render resolves the placeholders of req into a raw CSE request.
func render(vars *utils.TemplateVars, req models.CollectionRequest) (adapter.RawRequest, error) {
	path, err := vars.Render(req.Path)
	if err != nil {
		return adapter.RawRequest{}, fmt.Errorf("path: %w", err)
	}
	originator, err := vars.Render(req.Originator)
	if err != nil {
		return adapter.RawRequest{}, fmt.Errorf("originator: %w", err)
	}

	headers := make(map[string]string, len(req.Headers))
	for k, v := range req.Headers {
		if headers[k], err = vars.Render(v); err != nil {
			return adapter.RawRequest{}, fmt.Errorf("header %s: %w", k, err)
		}
	}

	var body []byte
	if req.Body != nil {
		rendered, err := vars.RenderValue(req.Body)
		if err != nil {
			return adapter.RawRequest{}, fmt.Errorf("body: %w", err)
		}
		if body, err = json.Marshal(rendered); err != nil {
			return adapter.RawRequest{}, fmt.Errorf("body: %w", err)
		}
	}

	return adapter.RawRequest{
		Method:       req.Method,
		Path:         path,
		Originator:   originator,
		RequestID:    utils.RandomString(10),
		ResourceType: req.ResourceType,
		Headers:      headers,
		Body:         body,
	}, nil
}

func expected(statuses []int, got int) bool {
	if len(statuses) == 0 {
		return got >= http.StatusOK && got < http.StatusMultipleChoices
	}
	for _, s := range statuses {
		if s == got {
			return true
		}
	}
	return false
}

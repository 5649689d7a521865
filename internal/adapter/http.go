package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
	"github.com/MKhiriev/go-acme-cse/models"
)

// requestIDLength is the length of generated X-M2M-RI values.
const requestIDLength = 10

// CSEAdapterConfig configures [NewHTTPCSEAdapter].
type CSEAdapterConfig struct {
	BaseURL        string
	Originator     string
	ReleaseVersion string
	// Token is sent as a bearer token when set.
	Token   string
	Timeout time.Duration
}

type httpCSEAdapter struct {
	client *utils.HTTPClient

	originator     string
	releaseVersion string
	token          string

	logger *logger.Logger
}

// NewHTTPCSEAdapter constructs the HTTP implementation of [CSEAdapter].
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a URL.
func NewHTTPCSEAdapter(cfg CSEAdapterConfig, logger *logger.Logger) (CSEAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid cse address: %w", err)
	}
	if cfg.Originator == "" {
		return nil, fmt.Errorf("originator is required")
	}

	client := utils.NewHTTPClient(cfg.Timeout)
	client.SetBaseURL(baseURL)

	return &httpCSEAdapter{
		client:         client,
		originator:     cfg.Originator,
		releaseVersion: cfg.ReleaseVersion,
		token:          strings.TrimSpace(cfg.Token),
		logger:         logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpCSEAdapter) Create(ctx context.Context, parentPath string, res models.Resource) (models.Resource, error) {
	body, err := res.MarshalWrapped()
	if err != nil {
		return models.Resource{}, fmt.Errorf("encode %s: %w", res.Type, err)
	}

	resp, err := h.request(ctx, "").
		SetHeader("Content-Type", models.ContentTypeFor(res.Type)).
		SetBody(body).
		Post(cleanPath(parentPath))
	if err != nil {
		return models.Resource{}, fmt.Errorf("create request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Resource{}, err
	}

	return decodeResource(resp, res.Type)
}

func (h *httpCSEAdapter) Retrieve(ctx context.Context, path string) (models.Resource, error) {
	resp, err := h.request(ctx, "").Get(cleanPath(path))
	if err != nil {
		return models.Resource{}, fmt.Errorf("retrieve request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Resource{}, err
	}

	return decodeResource(resp, models.TypeUnknown)
}

func (h *httpCSEAdapter) RetrieveLatest(ctx context.Context, containerPath string) (models.Resource, error) {
	return h.Retrieve(ctx, strings.TrimRight(cleanPath(containerPath), "/")+"/la")
}

func (h *httpCSEAdapter) Update(ctx context.Context, path string, res models.Resource) (models.Resource, error) {
	body, err := res.MarshalWrapped()
	if err != nil {
		return models.Resource{}, fmt.Errorf("encode %s: %w", res.Type, err)
	}

	resp, err := h.request(ctx, "").
		SetHeader("Content-Type", models.MediaTypeJSON).
		SetBody(body).
		Put(cleanPath(path))
	if err != nil {
		return models.Resource{}, fmt.Errorf("update request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Resource{}, err
	}

	return decodeResource(resp, res.Type)
}

func (h *httpCSEAdapter) Delete(ctx context.Context, path string) error {
	resp, err := h.request(ctx, "").Delete(cleanPath(path))
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpCSEAdapter) Do(ctx context.Context, raw RawRequest) (RawResponse, error) {
	req := h.request(ctx, raw.Originator)
	if raw.RequestID != "" {
		req.SetHeader(models.HeaderRequestID, raw.RequestID)
	}
	if len(raw.Body) > 0 || raw.ResourceType != models.TypeUnknown {
		req.SetHeader("Content-Type", models.ContentTypeFor(raw.ResourceType))
	}
	for k, v := range raw.Headers {
		req.SetHeader(k, v)
	}
	if len(raw.Body) > 0 {
		req.SetBody(raw.Body)
	}

	resp, err := req.Execute(strings.ToUpper(raw.Method), cleanPath(raw.Path))
	if err != nil {
		return RawResponse{}, fmt.Errorf("%s %s: %w", raw.Method, raw.Path, err)
	}

	return RawResponse{
		StatusCode: resp.StatusCode(),
		RSC:        resp.Header().Get(models.HeaderRSC),
		RequestID:  resp.Header().Get(models.HeaderRequestID),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

// request prepares a request with the oneM2M headers. An empty originator
// selects the adapter default.
func (h *httpCSEAdapter) request(ctx context.Context, originator string) *resty.Request {
	if originator == "" {
		originator = h.originator
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader(models.HeaderOrigin, originator).
		SetHeader(models.HeaderRequestID, utils.RandomString(requestIDLength))
	if h.releaseVersion != "" {
		req.SetHeader(models.HeaderReleaseVersion, h.releaseVersion)
	}
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req
}

func decodeResource(resp *resty.Response, expected models.ResourceType) (models.Resource, error) {
	if resp.StatusCode() == http.StatusNoContent || len(resp.Body()) == 0 {
		return models.Resource{}, fmt.Errorf("%w: empty body", ErrInvalidResponse)
	}
	res, err := models.DecodeWrapped(resp.Body(), expected)
	if err != nil {
		return models.Resource{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return res, nil
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

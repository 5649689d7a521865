package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/service"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
	"github.com/MKhiriev/go-acme-cse/models"
)

func rcn(v models.ResultContent) *models.ResultContent { return &v }

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name        string
		root        string
		method      string
		target      string
		contentType string
		body        string
		want        models.Request
	}{
		{
			name:        "create content instance",
			root:        "/",
			method:      http.MethodPost,
			target:      "/cse-in/NoiseCancellationSystem/ExecutionState",
			contentType: "application/json;ty=4",
			body:        `{"m2m:cin":{"con":"On"}}`,
			want: models.Request{
				Operation:    models.OperationCreate,
				To:           "cse-in/NoiseCancellationSystem/ExecutionState",
				ResourceType: models.TypeContentInst,
				Content:      []byte(`{"m2m:cin":{"con":"On"}}`),
			},
		},
		{
			name:        "onem2m media type with ty",
			root:        "/",
			method:      http.MethodPost,
			target:      "/cse-in",
			contentType: "application/vnd.onem2m-res+json; ty=2",
			body:        `{"m2m:ae":{}}`,
			want: models.Request{
				Operation:    models.OperationCreate,
				To:           "cse-in",
				ResourceType: models.TypeAE,
				Content:      []byte(`{"m2m:ae":{}}`),
			},
		},
		{
			name:        "post without ty is a notification",
			root:        "/",
			method:      http.MethodPost,
			target:      "/cse-in/CNoise",
			contentType: "application/json",
			body:        `{"m2m:sgn":{"sur":"/id-in/sub0000001","vrq":true}}`,
			want: models.Request{
				Operation: models.OperationNotify,
				To:        "cse-in/CNoise",
				Content:   []byte(`{"m2m:sgn":{"sur":"/id-in/sub0000001","vrq":true}}`),
			},
		},
		{
			name:   "retrieve latest under root",
			root:   "/onem2m",
			method: http.MethodGet,
			target: "/onem2m/cse-in/NoiseCancellationSystem/Schedule/la?rcn=1",
			want: models.Request{
				Operation:     models.OperationRetrieve,
				To:            "cse-in/NoiseCancellationSystem/Schedule/la",
				ResultContent: rcn(models.ResultContentAttributes),
			},
		},
		{
			name:   "discovery filters",
			root:   "/",
			method: http.MethodGet,
			target: "/cse-in?fu=1&ty=3+4&lbl=noise&lbl=office+floor2&lim=5&lvl=2",
			want: models.Request{
				Operation: models.OperationRetrieve,
				To:        "cse-in",
				FilterCriteria: models.FilterCriteria{
					FilterUsage:   1,
					ResourceTypes: []models.ResourceType{models.TypeContainer, models.TypeContentInst},
					Labels:        []string{"noise", "office", "floor2"},
					Limit:         5,
					Level:         2,
				},
			},
		},
		{
			name:   "sp-relative target",
			root:   "/",
			method: http.MethodDelete,
			target: "/~/id-in/cse-in/NoiseCancellationSystem",
			want: models.Request{
				Operation: models.OperationDelete,
				To:        "~/id-in/cse-in/NoiseCancellationSystem",
			},
		},
		{
			name:        "update ignores ty",
			root:        "/",
			method:      http.MethodPut,
			target:      "/cnt0000001",
			contentType: "application/json;ty=3",
			body:        `{"m2m:cnt":{"mni":5}}`,
			want: models.Request{
				Operation: models.OperationUpdate,
				To:        "cnt0000001",
				Content:   []byte(`{"m2m:cnt":{"mni":5}}`),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{root: tt.root, logger: logger.Nop()}
			r := oneM2MRequest(tt.method, tt.target, tt.body)
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}

			got, err := h.buildRequest(r)

			require.NoError(t, err)
			assert.Equal(t, tt.want.Operation, got.Operation)
			assert.Equal(t, tt.want.To, got.To)
			assert.Equal(t, "CNoise", got.Originator)
			assert.Equal(t, "req-1", got.RequestID)
			assert.Equal(t, "3", got.ReleaseVersion)
			assert.Equal(t, tt.want.ResourceType, got.ResourceType)
			assert.Equal(t, tt.want.ResultContent, got.ResultContent)
			assert.Equal(t, tt.want.FilterCriteria, got.FilterCriteria)
			if tt.want.Content == nil {
				assert.Empty(t, got.Content)
			} else {
				assert.Equal(t, tt.want.Content, got.Content)
			}
		})
	}
}

func TestBuildRequest_Errors(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		target      string
		contentType string
		body        string
		wantErr     error
	}{
		{name: "rcn not a number", method: http.MethodGet, target: "/cse-in?rcn=all", wantErr: ErrInvalidQueryParameter},
		{name: "unknown ty", method: http.MethodGet, target: "/cse-in?fu=1&ty=99", wantErr: ErrInvalidQueryParameter},
		{name: "negative lim", method: http.MethodGet, target: "/cse-in?fu=1&lim=-1", wantErr: ErrInvalidQueryParameter},
		{name: "lvl not a number", method: http.MethodGet, target: "/cse-in?fu=1&lvl=deep", wantErr: ErrInvalidQueryParameter},
		{name: "xml body", method: http.MethodPost, target: "/cse-in", contentType: "application/xml;ty=2", body: "<m2m:ae/>", wantErr: ErrUnsupportedMediaType},
		{name: "unknown method", method: http.MethodPatch, target: "/cse-in", wantErr: service.ErrOperationNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{root: "/", logger: logger.Nop()}
			r := oneM2MRequest(tt.method, tt.target, tt.body)
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}

			_, err := h.buildRequest(r)

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildRequest_DecodingErrorsAreBadRequests(t *testing.T) {
	h := &Handler{root: "/", logger: logger.Nop()}

	_, err := h.buildRequest(oneM2MRequest(http.MethodGet, "/cse-in?rcn=x", ""))

	require.ErrorIs(t, err, service.ErrBadRequest)
	assert.Equal(t, models.RSCBadRequest, rscFromError(err))
}

func TestBuildRequest_BodyTooLarge(t *testing.T) {
	h := &Handler{root: "/", logger: logger.Nop()}
	body := bytes.Repeat([]byte("a"), maxRequestBodySize+1)
	r := httptest.NewRequest(http.MethodPost, "/cse-in", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json;ty=3")

	_, err := h.buildRequest(r)

	require.ErrorIs(t, err, service.ErrBadRequest)
}

func TestBuildRequest_OriginatorFromToken(t *testing.T) {
	h := &Handler{root: "/", logger: logger.Nop()}
	r := httptest.NewRequest(http.MethodGet, "/cse-in", nil)
	r = r.WithContext(utils.WithOriginator(r.Context(), "CNoise"))

	got, err := h.buildRequest(r)

	require.NoError(t, err)
	assert.Equal(t, "CNoise", got.Originator)
}

func TestBuildRequest_HeaderOriginatorWins(t *testing.T) {
	h := &Handler{root: "/", logger: logger.Nop()}
	r := oneM2MRequest(http.MethodGet, "/cse-in", "")
	r = r.WithContext(utils.WithOriginator(r.Context(), "CAdmin"))

	got, err := h.buildRequest(r)

	require.NoError(t, err)
	assert.Equal(t, "CNoise", got.Originator)
}

func TestTarget(t *testing.T) {
	h := &Handler{root: "/onem2m"}

	assert.Equal(t, "cse-in/AE", h.target("/onem2m/cse-in/AE"))
	assert.Equal(t, "", h.target("/onem2m"))
	assert.True(t, strings.HasPrefix(h.target("/onem2m/~/id-in/cse-in"), "~/"))
}

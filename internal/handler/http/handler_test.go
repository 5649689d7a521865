package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/mock"
	"github.com/MKhiriev/go-acme-cse/internal/service"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
	"github.com/MKhiriev/go-acme-cse/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func testConfig(root string) *config.StructuredConfig {
	cfg := &config.StructuredConfig{}
	cfg.CSE.Originator = "CAdmin"
	cfg.CSE.ReleaseVersion = "3"
	cfg.HTTP.Port = 8080
	cfg.HTTP.Root = root
	return cfg
}

// newTestHandler builds a Handler on mocked services with the given root.
func newTestHandler(t *testing.T, ctrl *gomock.Controller, root string) (*Handler, *mock.MockResourceService, *mock.MockAppInfoService) {
	t.Helper()

	resources := mock.NewMockResourceService(ctrl)
	appInfo := mock.NewMockAppInfoService(ctrl)

	h, err := NewHandler(&service.Services{
		ResourceService: resources,
		AppInfoService:  appInfo,
	}, testConfig(root), logger.Nop())
	require.NoError(t, err)

	return h, resources, appInfo
}

func oneM2MRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r.Header.Set(models.HeaderOrigin, "CNoise")
	r.Header.Set(models.HeaderRequestID, "req-1")
	r.Header.Set(models.HeaderReleaseVersion, "3")
	return r
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_Settings(t *testing.T) {
	cfg := testConfig("onem2m/")
	enabled := true
	cfg.HTTP.EnableMetrics = &enabled
	cfg.HTTP.Security.EnableTokenAuth = &enabled
	cfg.HTTP.Security.TokenSignKey = "key"
	cfg.HTTP.Security.TokenIssuer = "acmecse"

	h, err := NewHandler(&service.Services{}, cfg, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "/onem2m", h.root)
	assert.Equal(t, "3", h.releaseVersion)
	assert.Equal(t, "CAdmin", h.admin)
	assert.True(t, h.metricsEnabled)
	assert.True(t, h.tokenAuth)
	assert.Equal(t, "key", h.tokenKey)
	assert.Nil(t, h.basicAuth)
}

func TestNewHandler_LoadsBasicAuthFile(t *testing.T) {
	hash, err := utils.HashPassword("secret")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "users")
	require.NoError(t, os.WriteFile(path, []byte("# users\nadmin:"+hash+"\n"), 0o600))

	cfg := testConfig("/")
	enabled := true
	cfg.HTTP.Security.EnableBasicAuth = &enabled
	cfg.HTTP.Security.BasicAuthFile = path

	h, err := NewHandler(&service.Services{}, cfg, logger.Nop())

	require.NoError(t, err)
	require.Contains(t, h.basicAuth, "admin")
	assert.NoError(t, h.basicAuth.Verify("admin", "secret"))
}

func TestNewHandler_MissingBasicAuthFile(t *testing.T) {
	cfg := testConfig("/")
	enabled := true
	cfg.HTTP.Security.EnableBasicAuth = &enabled
	cfg.HTTP.Security.BasicAuthFile = filepath.Join(t.TempDir(), "missing")

	h, err := NewHandler(&service.Services{}, cfg, logger.Nop())

	require.Error(t, err)
	assert.Nil(t, h)
}

func TestNormalizeRoot(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"onem2m", "/onem2m"},
		{"/onem2m/", "/onem2m"},
		{" /a/b ", "/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeRoot(tt.in))
		})
	}
}

// ─────────────────────────────────────────────
// Init — route registration
// ─────────────────────────────────────────────

func TestInit_Version(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, appInfo := newTestHandler(t, ctrl, "/")
	appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(models.NewAppBuildInfo("1.4.0", "2026-03-01", "abc123"))

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/__version__", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"1.4.0","date":"2026-03-01","commit":"abc123"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_MetricsEnabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, _ := newTestHandler(t, ctrl, "/")
	h.metricsEnabled = true

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestInit_MetricsDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, _ := newTestHandler(t, ctrl, "/onem2m")

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_ResourceRoutesUnderRoot(t *testing.T) {
	methods := map[string]models.Operation{
		http.MethodGet:    models.OperationRetrieve,
		http.MethodPost:   models.OperationNotify,
		http.MethodPut:    models.OperationUpdate,
		http.MethodDelete: models.OperationDelete,
	}

	for method, op := range methods {
		t.Run(method, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h, resources, _ := newTestHandler(t, ctrl, "/onem2m")

			resources.EXPECT().Handle(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req models.Request) (models.Response, error) {
					assert.Equal(t, op, req.Operation)
					assert.Equal(t, "cse-in/NoiseCancellationSystem", req.To)
					return models.Response{StatusCode: models.RSCOK}, nil
				})

			rec := httptest.NewRecorder()
			h.Init().ServeHTTP(rec, oneM2MRequest(method, "/onem2m/cse-in/NoiseCancellationSystem", ""))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "2000", rec.Header().Get(models.HeaderRSC))
		})
	}
}

func TestInit_NotificationToCSEIsNotImplemented(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := testConfig("/")
	cfg.CSE.SupportedReleaseVersions = []string{"3"}

	// the CSE answers a NOTIFY before touching the store or any subscription
	resources := service.NewResourceValidationService(cfg.CSE.SupportedReleaseVersions).Wrap(
		service.NewResourceService(mock.NewMockResourceRepository(ctrl), mock.NewMockSecurityService(ctrl),
			mock.NewMockNotificationService(ctrl), service.NewMonotonicClock(), cfg, logger.Nop()))

	h, err := NewHandler(&service.Services{
		ResourceService: resources,
		AppInfoService:  mock.NewMockAppInfoService(ctrl),
	}, cfg, logger.Nop())
	require.NoError(t, err)

	r := oneM2MRequest(http.MethodPost, "/cse-in/CNoise", `{"m2m:sgn":{"sur":"/id-in/sub0000001","vrq":true}}`)
	r.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Equal(t, "5001", rec.Header().Get(models.HeaderRSC))
	assert.Equal(t, "req-1", rec.Header().Get(models.HeaderRequestID))
}

func TestInit_UnsupportedMethod(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, _ := newTestHandler(t, ctrl, "/")

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, oneM2MRequest(http.MethodPatch, "/cse-in", `{}`))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "4005", rec.Header().Get(models.HeaderRSC))
	assert.Equal(t, "req-1", rec.Header().Get(models.HeaderRequestID))
	assert.Contains(t, rec.Body.String(), `"m2m:dbg"`)
}

func TestInit_TokenAuthProtectsResources(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, appInfo := newTestHandler(t, ctrl, "/")
	h.tokenAuth = true
	h.tokenKey = "key"
	h.tokenIssuer = "acmecse"
	router := h.Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, oneM2MRequest(http.MethodGet, "/cse-in", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// version stays public
	appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(models.NewAppBuildInfo("1.0.0", "", ""))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/__version__", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

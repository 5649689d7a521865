package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-acme-cse/models"
)

// makeRequest creates a test request with a buffer logger in its context,
// the way withTraceID attaches one.
func makeRequest(method, path string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	l := zerolog.New(buf)
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		path             string
		status           int
		rsc              string
		body             string
		checkLogContains []string
		checkLogMissing  []string
	}{
		{
			name:   "oneM2M create",
			method: http.MethodPost,
			path:   "/cse-in/NoiseCancellationSystem",
			status: http.StatusCreated,
			rsc:    "2001",
			body:   `{"m2m:cnt":{}}`,
			checkLogContains: []string{
				`"method":"POST"`,
				`"uri":"/cse-in/NoiseCancellationSystem"`,
				`"status":201`,
				`"rsc":"2001"`,
				`"size":14`,
				`"duration":`,
			},
		},
		{
			name:             "plain endpoint without rsc",
			method:           http.MethodGet,
			path:             "/__version__",
			status:           http.StatusOK,
			body:             "1.0.0",
			checkLogContains: []string{`"status":200`, `"size":5`},
			checkLogMissing:  []string{`"rsc"`},
		},
		{
			name:             "no body written",
			method:           http.MethodDelete,
			path:             "/cnt0000001",
			status:           http.StatusOK,
			rsc:              "2002",
			checkLogContains: []string{`"status":200`, `"size":0`, `"rsc":"2002"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.rsc != "" {
					w.Header().Set(models.HeaderRSC, tt.rsc)
				}
				w.WriteHeader(tt.status)
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			})

			rec := httptest.NewRecorder()
			withLogging(next).ServeHTTP(rec, makeRequest(tt.method, tt.path, &buf))

			assert.Equal(t, tt.status, rec.Code)
			for _, s := range tt.checkLogContains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.checkLogMissing {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)
	n, err := w.Write([]byte("ok"))

	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, http.StatusCreated, w.status)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, w.size)
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.Write([]byte("abc"))
	w.Write([]byte("de"))

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 5, w.size)
	assert.Equal(t, "abcde", rec.Body.String())
}

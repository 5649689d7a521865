package http

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-acme-cse/internal/service"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
	"github.com/MKhiriev/go-acme-cse/models"
)

// maxRequestBodySize bounds the primitive content of a single request.
const maxRequestBodySize = 1 << 20

var operationByMethod = map[string]models.Operation{
	http.MethodPost:   models.OperationCreate,
	http.MethodGet:    models.OperationRetrieve,
	http.MethodPut:    models.OperationUpdate,
	http.MethodDelete: models.OperationDelete,
}

// buildRequest decodes the request primitive of r. Decoding errors wrap
// service.ErrBadRequest. Required parameters are checked by the validation
// layer of the resource service.
func (h *Handler) buildRequest(r *http.Request) (models.Request, error) {
	op, ok := operationByMethod[r.Method]
	if !ok {
		return models.Request{}, fmt.Errorf("%w: %s", service.ErrOperationNotAllowed, r.Method)
	}

	req := models.Request{
		Operation:      op,
		To:             h.target(r.URL.Path),
		Originator:     r.Header.Get(models.HeaderOrigin),
		RequestID:      r.Header.Get(models.HeaderRequestID),
		ReleaseVersion: r.Header.Get(models.HeaderReleaseVersion),
	}
	if req.Originator == "" {
		if originator, found := utils.GetOriginatorFromContext(r.Context()); found {
			req.Originator = originator
		}
	}

	mediaType, ty := models.ParseContentType(r.Header.Get("Content-Type"))
	if op == models.OperationCreate {
		// a POST without the ty parameter carries a notification
		if ty == models.TypeUnknown {
			req.Operation = models.OperationNotify
		} else {
			req.ResourceType = ty
		}
	}

	if r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize+1))
		if err != nil {
			return req, fmt.Errorf("%w: reading body: %w", service.ErrBadRequest, err)
		}
		if len(body) > maxRequestBodySize {
			return req, fmt.Errorf("%w: body exceeds %d bytes", service.ErrBadRequest, maxRequestBodySize)
		}
		req.Content = body
	}
	if len(req.Content) > 0 && !isJSONMediaType(mediaType) {
		return req, fmt.Errorf("%w: %w: %s", service.ErrBadRequest, ErrUnsupportedMediaType, mediaType)
	}

	if err := parseQuery(r.URL.Query(), &req); err != nil {
		return req, fmt.Errorf("%w: %w", service.ErrBadRequest, err)
	}

	return req, nil
}

// target strips the binding root and the leading slash from path.
func (h *Handler) target(path string) string {
	if h.root != "/" {
		path = strings.TrimPrefix(path, h.root)
	}
	return strings.TrimPrefix(path, "/")
}

// parseQuery reads rcn, fu, ty, lbl, lim and lvl. Multi-valued parameters
// accept both repeated keys and space separated values ("ty=3+4").
func parseQuery(q url.Values, req *models.Request) error {
	if v := q.Get("rcn"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: rcn=%q", ErrInvalidQueryParameter, v)
		}
		rcn := models.ResultContent(n)
		req.ResultContent = &rcn
	}

	fc := &req.FilterCriteria
	var err error
	if fc.FilterUsage, err = queryInt(q, "fu"); err != nil {
		return err
	}
	if fc.Limit, err = queryInt(q, "lim"); err != nil {
		return err
	}
	if fc.Level, err = queryInt(q, "lvl"); err != nil {
		return err
	}

	for _, v := range splitValues(q["ty"]) {
		ty, ok := models.ParseResourceType(v)
		if !ok {
			return fmt.Errorf("%w: ty=%q", ErrInvalidQueryParameter, v)
		}
		fc.ResourceTypes = append(fc.ResourceTypes, ty)
	}
	fc.Labels = splitValues(q["lbl"])

	return nil
}

func queryInt(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParameter, name, v)
	}
	return n, nil
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Fields(v)...)
	}
	return out
}

// isJSONMediaType accepts application/json and +json media types such as
// application/vnd.onem2m-res+json. A missing Content-Type is treated as JSON.
func isJSONMediaType(mediaType string) bool {
	return mediaType == "" || mediaType == models.MediaTypeJSON || strings.HasSuffix(mediaType, "+json")
}

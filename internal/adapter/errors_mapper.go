package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"github.com/MKhiriev/go-acme-cse/models"
)

// mapHTTPError turns a non-2xx answer into one of the package sentinels. The
// m2m:dbg message and the X-M2M-RSC value are kept in the error text.
func mapHTTPError(resp *resty.Response) error {
	return mapStatus(resp.StatusCode(), resp.Header().Get(models.HeaderRSC), resp.Body())
}

func mapStatus(status int, rsc string, body []byte) error {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	msg := debugMessage(body)
	if rsc != "" {
		msg = "rsc=" + rsc + ": " + msg
	}

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	case http.StatusNotImplemented:
		return fmt.Errorf("%w: %s", ErrNotImplemented, msg)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, msg)
	default:
		return fmt.Errorf("http %d: %s", status, msg)
	}
}

func debugMessage(body []byte) string {
	var dbg models.DebugInfo
	if err := json.Unmarshal(body, &dbg); err == nil && dbg.Message != "" {
		return dbg.Message
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "empty body"
	}
	return text
}

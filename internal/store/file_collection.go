package store

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-acme-cse/models"
)

type yamlCollection struct {
	Name     string            `yaml:"name"`
	Vars     map[string]string `yaml:"vars"`
	Requests []yamlRequest     `yaml:"requests"`
}

type yamlRequest struct {
	Name       string            `yaml:"name"`
	Method     string            `yaml:"method"`
	Path       string            `yaml:"path"`
	Originator string            `yaml:"originator"`
	Type       string            `yaml:"ty"`
	Headers    map[string]string `yaml:"headers"`
	Body       any               `yaml:"body"`
	Expect     yamlExpect        `yaml:"expect"`
	Extract    map[string]string `yaml:"extract"`
}

type yamlExpect struct {
	Status []int `yaml:"status"`
}

// fileCollectionLoader reads provisioning collections from YAML files.
type fileCollectionLoader struct{}

func NewFileCollectionLoader() CollectionLoader {
	return &fileCollectionLoader{}
}

func (l *fileCollectionLoader) LoadCollection(path string) (models.Collection, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return models.Collection{}, fmt.Errorf("read collection %s: %w", path, err)
	}

	var yc yamlCollection
	if err = yaml.Unmarshal(b, &yc); err != nil {
		return models.Collection{}, fmt.Errorf("%w: %s: %w", ErrInvalidCollection, path, err)
	}

	col, err := mapCollection(yc)
	if err != nil {
		return models.Collection{}, fmt.Errorf("%w: %s: %w", ErrInvalidCollection, path, err)
	}
	return col, nil
}

func mapCollection(yc yamlCollection) (models.Collection, error) {
	if strings.TrimSpace(yc.Name) == "" {
		return models.Collection{}, errors.New("collection name is required")
	}
	if len(yc.Requests) == 0 {
		return models.Collection{}, errors.New("collection has no requests")
	}

	col := models.Collection{
		Name:     yc.Name,
		Vars:     make(map[string]string, len(yc.Vars)),
		Requests: make([]models.CollectionRequest, 0, len(yc.Requests)),
	}
	for k, v := range yc.Vars {
		col.Vars[k] = v
	}

	var errs error
	for i, yr := range yc.Requests {
		req, err := mapRequest(yr)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("request #%d (%s): %w", i+1, yr.Name, err))
			continue
		}
		col.Requests = append(col.Requests, req)
	}
	if errs != nil {
		return models.Collection{}, errs
	}

	return col, nil
}

func mapRequest(yr yamlRequest) (models.CollectionRequest, error) {
	method := strings.ToUpper(strings.TrimSpace(yr.Method))
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return models.CollectionRequest{}, fmt.Errorf("unsupported method %q", yr.Method)
	}
	if strings.TrimSpace(yr.Name) == "" {
		return models.CollectionRequest{}, errors.New("name is required")
	}
	if !strings.HasPrefix(yr.Path, "/") {
		return models.CollectionRequest{}, fmt.Errorf("path %q must start with '/'", yr.Path)
	}

	req := models.CollectionRequest{
		Name:         yr.Name,
		Method:       method,
		Path:         yr.Path,
		Originator:   yr.Originator,
		Headers:      yr.Headers,
		Body:         yr.Body,
		ExpectStatus: yr.Expect.Status,
		Extract:      yr.Extract,
	}

	if yr.Type != "" {
		ty, ok := parseCollectionType(yr.Type)
		if !ok {
			return models.CollectionRequest{}, fmt.Errorf("unknown resource type %q", yr.Type)
		}
		req.ResourceType = ty
	}
	if method == http.MethodPost && req.ResourceType == models.TypeUnknown {
		return models.CollectionRequest{}, errors.New("POST requires a resource type (ty)")
	}
	if (method == http.MethodGet || method == http.MethodDelete) && yr.Body != nil {
		return models.CollectionRequest{}, fmt.Errorf("%s must not have a body", method)
	}

	return req, nil
}

// parseCollectionType accepts the numeric type ("2"), the short name
// ("m2m:ae") or the bare name ("ae").
func parseCollectionType(s string) (models.ResourceType, bool) {
	s = strings.TrimSpace(s)
	if ty, ok := models.ParseResourceType(s); ok {
		return ty, true
	}
	if !strings.HasPrefix(s, "m2m:") {
		s = "m2m:" + s
	}
	return models.ResourceTypeFromShortName(strings.ToLower(s))
}

package service

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/MKhiriev/go-acme-cse/internal/adapter"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/models"
)

type resourceTreeService struct {
	cse  adapter.CSEAdapter
	root string

	logger *logger.Logger
}

// NewResourceTreeService browses the tree below the CSEBase named root,
// e.g. "cse-in".
func NewResourceTreeService(cse adapter.CSEAdapter, root string, logger *logger.Logger) ResourceTreeService {
	return &resourceTreeService{
		cse:    cse,
		root:   strings.Trim(root, "/"),
		logger: logger,
	}
}

func (s *resourceTreeService) Load(ctx context.Context) ([]models.TreeNode, error) {
	base, err := s.cse.Retrieve(ctx, s.root)
	if err != nil {
		return nil, fmt.Errorf("retrieve %s: %w", s.root, err)
	}

	paths, err := s.discover(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make([]models.TreeNode, 0, len(paths)+1)
	nodes = append(nodes, models.NewTreeNode(s.root, base))
	for _, path := range paths {
		res, err := s.cse.Retrieve(ctx, path)
		if err != nil {
			// removed between discovery and retrieval
			s.logger.Warn().Err(err).Str("path", path).Msg("skipping resource")
			continue
		}
		nodes = append(nodes, models.NewTreeNode(path, res))
	}

	slices.SortStableFunc(nodes, func(a, b models.TreeNode) int {
		return slices.Compare(strings.Split(a.Path, "/"), strings.Split(b.Path, "/"))
	})

	return nodes, nil
}

// discover returns the structured paths of all descendants of the CSEBase.
func (s *resourceTreeService) discover(ctx context.Context) ([]string, error) {
	resp, err := s.cse.Do(ctx, adapter.RawRequest{
		Method: http.MethodGet,
		Path:   s.root + "?fu=1",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: discovery: %w", ErrRequestFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: discovery answered %d (rsc %s): %s", ErrRequestFailed, resp.StatusCode, resp.RSC, resp.Body)
	}

	var body struct {
		URIs []string `json:"m2m:uril"`
	}
	if err = json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: decoding discovery result: %w", ErrRequestFailed, err)
	}

	paths := make([]string, 0, len(body.URIs))
	for _, uri := range body.URIs {
		if p := strings.Trim(uri, "/"); p != "" && p != s.root {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func (s *resourceTreeService) Get(ctx context.Context, path string) (models.Resource, error) {
	return s.cse.Retrieve(ctx, path)
}

func (s *resourceTreeService) Delete(ctx context.Context, path string) error {
	if strings.Trim(path, "/") == s.root {
		return fmt.Errorf("%w: the CSEBase cannot be deleted", ErrOperationNotAllowed)
	}
	if err := s.cse.Delete(ctx, path); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	s.logger.Info().Str("path", path).Msg("resource deleted")
	return nil
}

func (s *resourceTreeService) AddContentInstance(ctx context.Context, containerPath, con string) (models.Resource, error) {
	cin, err := s.cse.Create(ctx, containerPath, models.Resource{
		Type:    models.TypeContentInst,
		Content: models.String(con),
	})
	if err != nil {
		return models.Resource{}, fmt.Errorf("create content instance in %s: %w", containerPath, err)
	}
	return cin, nil
}

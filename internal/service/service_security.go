package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/store"
	"github.com/MKhiriev/go-acme-cse/models"
)

// maxParentHops bounds the walk up the resource tree when looking for
// inherited access control policies.
const maxParentHops = 64

// securityService evaluates access control policies.
type securityService struct {
	repo store.ResourceRepository

	enabled         bool
	adminFullAccess bool
	admin           string

	logger *logger.Logger
}

// NewSecurityService constructs a [SecurityService] from the [cse.security]
// settings.
func NewSecurityService(repo store.ResourceRepository, cfg config.CSE, logger *logger.Logger) SecurityService {
	return &securityService{
		repo:            repo,
		enabled:         cfg.Security.ACPChecksEnabled(),
		adminFullAccess: cfg.Security.AdminFullAccess(),
		admin:           cfg.Originator,
		logger:          logger,
	}
}

func (s *securityService) CheckAccess(ctx context.Context, originator string, op models.Operation, target models.Resource, childType models.ResourceType) error {
	log := logger.FromContext(ctx)

	allowed, err := s.hasAccess(ctx, originator, op, target, childType)
	if err != nil {
		log.Err(err).Str("func", "*securityService.CheckAccess").Msg("error evaluating access control policies")
		return err
	}
	if !allowed {
		log.Debug().
			Str("originator", originator).
			Str("operation", op.String()).
			Str("target", target.ResourceID).
			Msg("access denied")
		return fmt.Errorf("%w: %s may not %s %s", ErrOriginatorHasNoPrivilege, originator, op, target.StructuredPath)
	}

	return nil
}

func (s *securityService) hasAccess(ctx context.Context, originator string, op models.Operation, target models.Resource, childType models.ResourceType) (bool, error) {
	if !s.enabled {
		return true, nil
	}
	if s.adminFullAccess && originator == s.admin {
		return true, nil
	}
	if originator == "" {
		return false, nil
	}
	if target.Creator == originator {
		return true, nil
	}

	// ACPs are guarded by their own self privileges
	if target.Type == models.TypeACP {
		return grants(target.SelfPrivileges, originator, op, childType), nil
	}

	current := target
	for hop := 0; hop < maxParentHops; hop++ {
		if current.Type == models.TypeAE && current.AEID == originator {
			return true, nil
		}

		if len(current.ACPIDs) > 0 {
			return s.grantedByPolicies(ctx, current.ACPIDs, originator, op, childType)
		}

		if current.Type == models.TypeCSEBase || current.ParentID == "" {
			return false, nil
		}

		parent, err := s.repo.Get(ctx, current.ParentID)
		if errors.Is(err, store.ErrResourceNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		current = parent
	}

	return false, nil
}

func (s *securityService) grantedByPolicies(ctx context.Context, acpIDs []string, originator string, op models.Operation, childType models.ResourceType) (bool, error) {
	for _, id := range acpIDs {
		acp, err := s.repo.Get(ctx, id)
		if errors.Is(err, store.ErrResourceNotFound) {
			logger.FromContext(ctx).Warn().Str("acpi", id).Msg("referenced access control policy does not exist")
			continue
		}
		if err != nil {
			return false, err
		}

		if grants(acp.Privileges, originator, op, childType) {
			return true, nil
		}
	}

	return false, nil
}

func grants(privileges *models.SetOfACRs, originator string, op models.Operation, childType models.ResourceType) bool {
	if privileges == nil {
		return false
	}

	for _, rule := range privileges.AccessControlRules {
		if !rule.MatchesOriginator(originator) || !rule.Operations.Has(op.Permission()) {
			continue
		}
		if op == models.OperationCreate && !rule.AllowsChildType(childType) {
			continue
		}
		return true
	}

	return false
}

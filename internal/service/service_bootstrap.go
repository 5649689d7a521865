package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/store"
	"github.com/MKhiriev/go-acme-cse/models"
)

const adminACPName = "acpAdmin"

var cseTypeCodes = map[string]int{
	"IN":  1,
	"MN":  2,
	"ASN": 3,
}

// Bootstrap prepares the store for the CSE. When the reset option is set all
// resources are removed first. On an empty store the CSEBase and an ACP
// granting the admin originator every operation are created.
func (s *resourceService) Bootstrap(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if s.reset {
		if err := s.repo.Reset(ctx); err != nil {
			return fmt.Errorf("reset resource store: %w", err)
		}
	}

	cb, err := s.repo.Get(ctx, s.cseRI)
	if err == nil {
		log.Info().Str("csi", cb.CSEID).Str("srn", cb.StructuredPath).Msg("using existing CSEBase")
		return nil
	}
	if !errors.Is(err, store.ErrResourceNotFound) {
		return err
	}

	now := s.clock.Now()
	adminRules := &models.SetOfACRs{AccessControlRules: []models.AccessControlRule{{
		Originators: []string{s.admin},
		Operations:  models.PermissionAll,
	}}}

	acp := models.Resource{
		Type:             models.TypeACP,
		ResourceID:       adminACPName,
		ResourceName:     adminACPName,
		ParentID:         s.cseRI,
		CreationTime:     &now,
		LastModifiedTime: &now,
		Creator:          s.admin,
		Privileges:       adminRules,
		SelfPrivileges:   adminRules,
		StructuredPath:   s.cseRN + "/" + adminACPName,
	}

	cb = models.Resource{
		Type:                     models.TypeCSEBase,
		ResourceID:               s.cseRI,
		ResourceName:             s.cseRN,
		CreationTime:             &now,
		LastModifiedTime:         &now,
		ACPIDs:                   []string{acp.ResourceID},
		CSEID:                    s.cseID,
		CSEType:                  cseTypeCodes[s.cseType],
		SupportedResourceTypes:   models.SupportedResourceTypes,
		SupportedReleaseVersions: s.releaseVersions,
		PointOfAccess:            s.poa,
		StructuredPath:           s.cseRN,
	}

	if err = s.repo.Create(ctx, cb); err != nil {
		return fmt.Errorf("%w: create CSEBase: %w", ErrCSEBaseNotInitialized, err)
	}
	if err = s.repo.Create(ctx, acp); err != nil {
		return fmt.Errorf("%w: create admin ACP: %w", ErrCSEBaseNotInitialized, err)
	}

	log.Info().
		Str("csi", s.cseID).
		Str("ri", s.cseRI).
		Str("rn", s.cseRN).
		Msg("CSEBase created")
	return nil
}

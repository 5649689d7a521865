package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/mock"
	"github.com/MKhiriev/go-acme-cse/internal/store"
	"github.com/MKhiriev/go-acme-cse/models"
)

func newTestSecuritySvc(ctrl *gomock.Controller, checks, adminFull bool) (SecurityService, *mock.MockResourceRepository) {
	repo := mock.NewMockResourceRepository(ctrl)
	cfg := config.CSE{
		Originator: "CAdmin",
		Security: config.Security{
			EnableACPChecks: models.Bool(checks),
			FullAccessAdmin: models.Bool(adminFull),
		},
	}
	return NewSecurityService(repo, cfg, logger.Nop()), repo
}

func acpFixture(ri string, acop models.Permission, originators ...string) models.Resource {
	return models.Resource{
		Type:       models.TypeACP,
		ResourceID: ri,
		Privileges: &models.SetOfACRs{AccessControlRules: []models.AccessControlRule{{
			Originators: originators,
			Operations:  acop,
		}}},
		SelfPrivileges: &models.SetOfACRs{AccessControlRules: []models.AccessControlRule{{
			Originators: []string{"CAdmin"},
			Operations:  models.PermissionAll,
		}}},
	}
}

func TestSecurityService_ChecksDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestSecuritySvc(ctrl, false, false)

	err := svc.CheckAccess(context.Background(), "Cnobody", models.OperationDelete, cseBaseFixture(), models.TypeUnknown)
	assert.NoError(t, err)
}

func TestSecurityService_AdminFullAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestSecuritySvc(ctrl, true, true)

	err := svc.CheckAccess(context.Background(), "CAdmin", models.OperationDelete, aeFixture(), models.TypeUnknown)
	assert.NoError(t, err)
}

func TestSecurityService_CreatorAndOwnAE(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestSecuritySvc(ctrl, true, false)
	ctx := context.Background()

	cnt := containerFixture()
	cnt.Creator = "Cnoise"
	assert.NoError(t, svc.CheckAccess(ctx, "Cnoise", models.OperationUpdate, cnt, models.TypeUnknown))

	ae := aeFixture()
	assert.NoError(t, svc.CheckAccess(ctx, ae.AEID, models.OperationCreate, ae, models.TypeContainer))
}

func TestSecurityService_EmptyOriginator(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestSecuritySvc(ctrl, true, false)

	err := svc.CheckAccess(context.Background(), "", models.OperationRetrieve, aeFixture(), models.TypeUnknown)
	assert.ErrorIs(t, err, ErrOriginatorHasNoPrivilege)
}

func TestSecurityService_InheritedPolicies(t *testing.T) {
	tests := []struct {
		name       string
		originator string
		op         models.Operation
		acop       models.Permission
		wantErr    error
	}{
		{name: "granted retrieve", originator: "Cviewer", op: models.OperationRetrieve, acop: models.PermissionRetrieve | models.PermissionDiscover},
		{name: "granted discovery", originator: "Cviewer", op: models.OperationDiscovery, acop: models.PermissionRetrieve | models.PermissionDiscover},
		{name: "missing bit", originator: "Cviewer", op: models.OperationDelete, acop: models.PermissionRetrieve, wantErr: ErrOriginatorHasNoPrivilege},
		{name: "other originator", originator: "Cother", op: models.OperationRetrieve, acop: models.PermissionAll, wantErr: ErrOriginatorHasNoPrivilege},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, repo := newTestSecuritySvc(ctrl, true, false)
			ctx := context.Background()

			ae := aeFixture()
			ae.ACPIDs = []string{"acpViewer"}
			cnt := containerFixture()

			repo.EXPECT().Get(ctx, cnt.ParentID).Return(ae, nil)
			repo.EXPECT().Get(ctx, "acpViewer").Return(acpFixture("acpViewer", tt.acop, "Cviewer"), nil)

			err := svc.CheckAccess(ctx, tt.originator, tt.op, cnt, models.TypeUnknown)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSecurityService_ChildTypeContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestSecuritySvc(ctrl, true, false)
	ctx := context.Background()

	acp := acpFixture("acpCin", models.PermissionCreate, "C*")
	acp.Privileges.AccessControlRules[0].Contexts = []models.AccessControlCtx{{
		ChildResourceTypes: []models.ResourceType{models.TypeContentInst},
	}}
	cnt := containerFixture()
	cnt.ACPIDs = []string{"acpCin"}

	repo.EXPECT().Get(ctx, "acpCin").Return(acp, nil).Times(2)

	require.NoError(t, svc.CheckAccess(ctx, "Cwriter", models.OperationCreate, cnt, models.TypeContentInst))
	assert.ErrorIs(t, svc.CheckAccess(ctx, "Cwriter", models.OperationCreate, cnt, models.TypeSubscription), ErrOriginatorHasNoPrivilege)
}

func TestSecurityService_MissingPolicySkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestSecuritySvc(ctrl, true, false)
	ctx := context.Background()

	cnt := containerFixture()
	cnt.ACPIDs = []string{"acpGone", "acpAll"}

	repo.EXPECT().Get(ctx, "acpGone").Return(models.Resource{}, store.ErrResourceNotFound)
	repo.EXPECT().Get(ctx, "acpAll").Return(acpFixture("acpAll", models.PermissionAll, "all"), nil)

	assert.NoError(t, svc.CheckAccess(ctx, "Canyone", models.OperationUpdate, cnt, models.TypeUnknown))
}

func TestSecurityService_SelfPrivileges(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestSecuritySvc(ctrl, true, false)
	ctx := context.Background()

	acp := acpFixture("acpViewer", models.PermissionAll, "Cviewer")

	assert.ErrorIs(t, svc.CheckAccess(ctx, "Cviewer", models.OperationUpdate, acp, models.TypeUnknown), ErrOriginatorHasNoPrivilege)
	assert.NoError(t, svc.CheckAccess(ctx, "CAdmin", models.OperationUpdate, acp, models.TypeUnknown))
}

func TestSecurityService_NoPolicyUpToCSEBase(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestSecuritySvc(ctrl, true, false)
	ctx := context.Background()

	cnt := containerFixture()
	repo.EXPECT().Get(ctx, cnt.ParentID).Return(aeFixture(), nil)
	repo.EXPECT().Get(ctx, "id-in").Return(cseBaseFixture(), nil)

	assert.ErrorIs(t, svc.CheckAccess(ctx, "Cviewer", models.OperationRetrieve, cnt, models.TypeUnknown), ErrOriginatorHasNoPrivilege)
}

func TestSecurityService_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestSecuritySvc(ctrl, true, false)
	ctx := context.Background()
	boom := errors.New("boom")

	cnt := containerFixture()
	repo.EXPECT().Get(ctx, cnt.ParentID).Return(models.Resource{}, boom)

	err := svc.CheckAccess(ctx, "Cviewer", models.OperationRetrieve, cnt, models.TypeUnknown)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrOriginatorHasNoPrivilege)
}

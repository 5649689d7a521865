package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-acme-cse/internal/adapter"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/mock"
	"github.com/MKhiriev/go-acme-cse/models"
)

func newTestTreeSvc(ctrl *gomock.Controller) (ResourceTreeService, *mock.MockCSEAdapter) {
	cse := mock.NewMockCSEAdapter(ctrl)
	return NewResourceTreeService(cse, "/cse-in/", logger.Nop()), cse
}

func TestResourceTree_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, cse := newTestTreeSvc(ctrl)
	ctx := context.Background()

	cse.EXPECT().Retrieve(ctx, "cse-in").Return(models.Resource{Type: models.TypeCSEBase, ResourceID: "id-in"}, nil)
	cse.EXPECT().Do(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, req adapter.RawRequest) (adapter.RawResponse, error) {
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "cse-in?fu=1", req.Path)
		return adapter.RawResponse{
			StatusCode: http.StatusOK,
			RSC:        "2000",
			Body: []byte(`{"m2m:uril":[
				"cse-in/NoiseCancellationSystem/Schedule",
				"cse-in/NoiseCancellationSystem-old",
				"cse-in/NoiseCancellationSystem",
				"cse-in/NoiseCancellationSystem/Schedule/cin01",
				"cse-in/gone"
			]}`),
		}, nil
	})
	cse.EXPECT().Retrieve(ctx, "cse-in/NoiseCancellationSystem").Return(models.Resource{Type: models.TypeAE, ResourceID: "CNoise"}, nil)
	cse.EXPECT().Retrieve(ctx, "cse-in/NoiseCancellationSystem-old").Return(models.Resource{Type: models.TypeAE, ResourceID: "COld"}, nil)
	cse.EXPECT().Retrieve(ctx, "cse-in/NoiseCancellationSystem/Schedule").Return(models.Resource{Type: models.TypeContainer, ResourceID: "cnt01"}, nil)
	cse.EXPECT().Retrieve(ctx, "cse-in/NoiseCancellationSystem/Schedule/cin01").Return(models.Resource{Type: models.TypeContentInst, ResourceID: "cin01"}, nil)
	cse.EXPECT().Retrieve(ctx, "cse-in/gone").Return(models.Resource{}, adapter.ErrNotFound)

	nodes, err := svc.Load(ctx)

	require.NoError(t, err)
	want := []models.TreeNode{
		{Path: "cse-in", Name: "cse-in", ResourceID: "id-in", Type: models.TypeCSEBase, Depth: 0},
		{Path: "cse-in/NoiseCancellationSystem", Name: "NoiseCancellationSystem", ResourceID: "CNoise", Type: models.TypeAE, Depth: 1},
		{Path: "cse-in/NoiseCancellationSystem/Schedule", Name: "Schedule", ResourceID: "cnt01", Type: models.TypeContainer, Depth: 2},
		{Path: "cse-in/NoiseCancellationSystem/Schedule/cin01", Name: "cin01", ResourceID: "cin01", Type: models.TypeContentInst, Depth: 3},
		{Path: "cse-in/NoiseCancellationSystem-old", Name: "NoiseCancellationSystem-old", ResourceID: "COld", Type: models.TypeAE, Depth: 1},
	}
	assert.Equal(t, want, nodes)
}

func TestResourceTree_LoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		resp    adapter.RawResponse
		doErr   error
		wantErr error
	}{
		{name: "transport", doErr: errors.New("connection refused"), wantErr: ErrRequestFailed},
		{name: "denied", resp: adapter.RawResponse{StatusCode: http.StatusForbidden, RSC: "4103"}, wantErr: ErrRequestFailed},
		{name: "garbage", resp: adapter.RawResponse{StatusCode: http.StatusOK, Body: []byte("<html>")}, wantErr: ErrRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, cse := newTestTreeSvc(ctrl)
			cse.EXPECT().Retrieve(gomock.Any(), "cse-in").Return(models.Resource{Type: models.TypeCSEBase}, nil)
			cse.EXPECT().Do(gomock.Any(), gomock.Any()).Return(tt.resp, tt.doErr)

			_, err := svc.Load(context.Background())

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResourceTree_LoadRootUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, cse := newTestTreeSvc(ctrl)
	cse.EXPECT().Retrieve(gomock.Any(), "cse-in").Return(models.Resource{}, adapter.ErrNotFound)

	_, err := svc.Load(context.Background())

	require.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestResourceTree_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, cse := newTestTreeSvc(ctrl)

	cse.EXPECT().Delete(gomock.Any(), "cse-in/NoiseCancellationSystem").Return(nil)
	require.NoError(t, svc.Delete(context.Background(), "cse-in/NoiseCancellationSystem"))

	err := svc.Delete(context.Background(), "/cse-in")
	require.ErrorIs(t, err, ErrOperationNotAllowed)
}

func TestResourceTree_AddContentInstance(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, cse := newTestTreeSvc(ctrl)

	cse.EXPECT().Create(gomock.Any(), "cse-in/NoiseCancellationSystem/Schedule", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, res models.Resource) (models.Resource, error) {
			assert.Equal(t, models.TypeContentInst, res.Type)
			assert.Equal(t, "09:00-18:00", models.Deref(res.Content))
			res.ResourceID = "cin02"
			return res, nil
		})

	cin, err := svc.AddContentInstance(context.Background(), "cse-in/NoiseCancellationSystem/Schedule", "09:00-18:00")

	require.NoError(t, err)
	assert.Equal(t, "cin02", cin.ResourceID)
}

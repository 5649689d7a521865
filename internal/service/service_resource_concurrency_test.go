package service

import (
	"context"
	"fmt"
	"sync"
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

// newSQLiteResourceSvc wires a resource service to a real in-memory store.
// Access checks and notifications are mocked to always pass.
func newSQLiteResourceSvc(t *testing.T, ctrl *gomock.Controller) (*resourceService, store.ResourceRepository) {
	t.Helper()
	db, err := store.NewStorage(context.Background(), config.Database{Type: config.DatabaseMemory}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := store.NewResourceRepository(db, logger.Nop())

	security := mock.NewMockSecurityService(ctrl)
	security.EXPECT().CheckAccess(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	notifications := mock.NewMockNotificationService(ctrl)
	notifications.EXPECT().NotifyEvent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	notifications.EXPECT().NotifySubscriptionDeleted(gomock.Any(), gomock.Any()).AnyTimes()

	svc := NewResourceService(repo, security, notifications, NewMonotonicClock(), testCSEConfig(), logger.Nop()).(*resourceService)
	return svc, repo
}

func storeContainer(t *testing.T, repo store.ResourceRepository, mni, mbs int64) models.Resource {
	t.Helper()
	ctx := context.Background()
	ct := testNow

	cb := cseBaseFixture()
	cb.CreationTime = &ct
	ae := aeFixture()
	ae.CreationTime = &ct
	cnt := containerFixture()
	cnt.CreationTime = &ct
	cnt.MaxNrOfInstances = models.Int64(mni)
	cnt.MaxByteSize = models.Int64(mbs)

	for _, res := range []models.Resource{cb, ae, cnt} {
		require.NoError(t, repo.Create(ctx, res))
	}
	return cnt
}

// ── Concurrent content instances ─────────────────────────────────────────────

func TestResourceService_ConcurrentContentInstances(t *testing.T) {
	const writers = 64

	tests := []struct {
		name    string
		mni     int64
		wantCNI int64
	}{
		{name: "all kept", mni: 1000, wantCNI: writers},
		{name: "oldest evicted", mni: 5, wantCNI: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, repo := newSQLiteResourceSvc(t, ctrl)
			ctx := context.Background()
			cnt := storeContainer(t, repo, tt.mni, 1_000_000)

			var wg sync.WaitGroup
			errs := make(chan error, writers)
			for i := range writers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := svc.Create(ctx, models.Request{
						To:           cnt.StructuredPath,
						Originator:   "CAdmin",
						ResourceType: models.TypeContentInst,
						Content:      []byte(fmt.Sprintf(`{"m2m:cin":{"con":"%02d"}}`, i)),
					})
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			stored, err := repo.Children(ctx, cnt.ResourceID, models.TypeContentInst)
			require.NoError(t, err)
			got, err := repo.Get(ctx, cnt.ResourceID)
			require.NoError(t, err)

			assert.Len(t, stored, int(tt.wantCNI))
			assert.Equal(t, tt.wantCNI, models.Deref(got.CurrentNrOfInstances))
			assert.Equal(t, 2*tt.wantCNI, models.Deref(got.CurrentByteSize))
			assert.Equal(t, int64(writers), models.Deref(got.StateTag))

			seen := make(map[int64]bool, len(stored))
			for _, cin := range stored {
				st := models.Deref(cin.StateTag)
				assert.False(t, seen[st], "state tag %d repeated", st)
				seen[st] = true
			}
		})
	}
}

func TestResourceService_ConcurrentDeleteKeepsCounters(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newSQLiteResourceSvc(t, ctrl)
	ctx := context.Background()
	cnt := storeContainer(t, repo, 1000, 1_000_000)

	const instances = 20
	for i := range instances {
		_, err := svc.Create(ctx, models.Request{
			To:           cnt.StructuredPath,
			Originator:   "CAdmin",
			ResourceType: models.TypeContentInst,
			Content:      []byte(fmt.Sprintf(`{"m2m:cin":{"con":"%03d"}}`, i)),
		})
		require.NoError(t, err)
	}

	stored, err := repo.Children(ctx, cnt.ResourceID, models.TypeContentInst)
	require.NoError(t, err)
	require.Len(t, stored, instances)

	var wg sync.WaitGroup
	for _, cin := range stored[:instances/2] {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Delete(ctx, models.Request{To: cin.StructuredPath, Originator: "CAdmin"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, cnt.ResourceID)
	require.NoError(t, err)
	assert.Equal(t, int64(instances/2), models.Deref(got.CurrentNrOfInstances))
	assert.Equal(t, int64(3*instances/2), models.Deref(got.CurrentByteSize))
}

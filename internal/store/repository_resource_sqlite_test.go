package store

import (
	"context"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func newMemoryResourceRepo(t *testing.T) ResourceRepository {
	t.Helper()
	db, err := NewStorage(context.Background(), config.Database{Type: config.DatabaseMemory}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewResourceRepository(db, logger.Nop())
}

func storedResource(ri, pi, srn string, ty models.ResourceType, offset time.Duration) models.Resource {
	ct := models.NewTimestamp(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).Add(offset))
	return models.Resource{
		Type:           ty,
		ResourceID:     ri,
		ResourceName:   path.Base(srn),
		ParentID:       pi,
		CreationTime:   &ct,
		StructuredPath: srn,
	}
}

// ── Descendants ───────────────────────────────────────────────────────────────

func TestSQLiteDescendants_NamesAreMatchedLiterally(t *testing.T) {
	repo := newMemoryResourceRepo(t)
	ctx := context.Background()

	for i, res := range []models.Resource{
		storedResource("ae1", "id-in", "cse-in/AE_1", models.TypeAE, 0),
		storedResource("cnt1", "ae1", "cse-in/AE_1/Data", models.TypeContainer, time.Second),
		storedResource("cin1", "cnt1", "cse-in/AE_1/Data/cin1", models.TypeContentInst, 2*time.Second),
		storedResource("ae2", "id-in", "cse-in/AEx1", models.TypeAE, 3*time.Second),
		storedResource("cnt2", "ae2", "cse-in/AEx1/Other", models.TypeContainer, 4*time.Second),
		storedResource("ae3", "id-in", "cse-in/ae_1", models.TypeAE, 5*time.Second),
		storedResource("cnt3", "ae3", "cse-in/ae_1/Lower", models.TypeContainer, 6*time.Second),
		storedResource("ae4", "id-in", "cse-in/AE%", models.TypeAE, 7*time.Second),
		storedResource("cnt4", "ae4", "cse-in/AE%/Percent", models.TypeContainer, 8*time.Second),
		storedResource("ae5", "id-in", "cse-in/AE_1x", models.TypeAE, 9*time.Second),
		storedResource("cnt5", "ae5", "cse-in/AE_1x/Longer", models.TypeContainer, 10*time.Second),
	} {
		require.NoError(t, repo.Create(ctx, res), "resource %d", i)
	}

	tests := []struct {
		name  string
		srn   string
		types []models.ResourceType
		want  []string
	}{
		{name: "underscore is not a wildcard", srn: "cse-in/AE_1", want: []string{"cse-in/AE_1/Data", "cse-in/AE_1/Data/cin1"}},
		{name: "type filter", srn: "cse-in/AE_1", types: []models.ResourceType{models.TypeContainer}, want: []string{"cse-in/AE_1/Data"}},
		{name: "percent is not a wildcard", srn: "cse-in/AE%", want: []string{"cse-in/AE%/Percent"}},
		{name: "case sensitive", srn: "cse-in/ae_1", want: []string{"cse-in/ae_1/Lower"}},
		{name: "leaf has none", srn: "cse-in/AEx1/Other", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := repo.Descendants(ctx, tt.srn, tt.types...)
			require.NoError(t, err)

			var got []string
			for _, r := range res {
				got = append(got, r.StructuredPath)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Reset ─────────────────────────────────────────────────────────────────────

func TestSQLiteReset_RecreatesSchema(t *testing.T) {
	repo := newMemoryResourceRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedResource("ae1", "id-in", "cse-in/AE1", models.TypeAE, 0)))
	require.NoError(t, repo.Create(ctx, storedResource("cnt1", "ae1", "cse-in/AE1/Data", models.TypeContainer, time.Second)))

	require.NoError(t, repo.Reset(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// the schema is usable again after the reset
	require.NoError(t, repo.Create(ctx, storedResource("ae1", "id-in", "cse-in/AE1", models.TypeAE, 0)))
	got, err := repo.GetByPath(ctx, "cse-in/AE1")
	require.NoError(t, err)
	assert.Equal(t, "ae1", got.ResourceID)
}

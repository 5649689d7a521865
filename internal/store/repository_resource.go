package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/migrations"
	"github.com/MKhiriev/go-acme-cse/models"
)

const resourcesTable = "resources"

var insertColumns = []string{"ri", "rn", "pi", "ty", "srn", "ct_ns", "et_ns", "doc"}

type rowScanner interface {
	Scan(dest ...any) error
}

// resourceRepository is the SQL implementation of [ResourceRepository].
// Indexed attributes live in their own columns; the complete resource is kept
// as a JSON document.
type resourceRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewResourceRepository constructs a [ResourceRepository] on top of db.
func NewResourceRepository(db *DB, logger *logger.Logger) ResourceRepository {
	logger.Debug().Msg("creating resource repository")
	return &resourceRepository{
		db:     db,
		logger: logger,
	}
}

func (r *resourceRepository) Create(ctx context.Context, res models.Resource) error {
	log := logger.FromContext(ctx)

	doc, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	query, args, err := r.db.builder.Insert(resourcesTable).
		Columns(insertColumns...).
		Values(res.ResourceID, res.ResourceName, res.ParentID, int(res.Type), res.StructuredPath,
			creationNanos(res), expirationNanos(res), string(doc)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.Create").Str("ri", res.ResourceID).Msg("error inserting resource")
		if isUniqueViolation(err) {
			return ErrResourceAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *resourceRepository) Get(ctx context.Context, ri string) (models.Resource, error) {
	return r.getOne(ctx, r.selectResources().Where(sq.Eq{"ri": ri}))
}

func (r *resourceRepository) GetByPath(ctx context.Context, srn string) (models.Resource, error) {
	return r.getOne(ctx, r.selectResources().Where(sq.Eq{"srn": srn}))
}

func (r *resourceRepository) Update(ctx context.Context, res models.Resource) error {
	log := logger.FromContext(ctx)

	doc, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	query, args, err := r.db.builder.Update(resourcesTable).
		Set("et_ns", expirationNanos(res)).
		Set("doc", string(doc)).
		Where(sq.Eq{"ri": res.ResourceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var result sql.Result
	err = r.db.withRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*resourceRepository.Update").Str("ri", res.ResourceID).Msg("error updating resource")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrResourceNotFound
	}

	return nil
}

func (r *resourceRepository) Delete(ctx context.Context, ris ...string) error {
	if len(ris) == 0 {
		return nil
	}

	query, args, err := r.db.builder.Delete(resourcesTable).Where(sq.Eq{"ri": ris}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*resourceRepository.Delete").Strs("ri", ris).Msg("error deleting resources")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *resourceRepository) Children(ctx context.Context, pi string, types ...models.ResourceType) ([]models.Resource, error) {
	return r.getMany(ctx, r.childrenQuery(pi, types...).OrderBy("ct_ns ASC", "ri ASC"))
}

func (r *resourceRepository) LatestChild(ctx context.Context, pi string, ty models.ResourceType) (models.Resource, error) {
	return r.getOne(ctx, r.childrenQuery(pi, ty).OrderBy("ct_ns DESC", "ri DESC").Limit(1))
}

func (r *resourceRepository) OldestChild(ctx context.Context, pi string, ty models.ResourceType) (models.Resource, error) {
	return r.getOne(ctx, r.childrenQuery(pi, ty).OrderBy("ct_ns ASC", "ri ASC").Limit(1))
}

func (r *resourceRepository) Descendants(ctx context.Context, srn string, types ...models.ResourceType) ([]models.Resource, error) {
	// byte-exact prefix match; '_', '%' and letter case in names are literal
	prefix := srn + "/"
	q := r.selectResources().Where(sq.Expr("substr(srn, 1, ?) = ?", utf8.RuneCountInString(prefix), prefix))
	if len(types) > 0 {
		q = q.Where(sq.Eq{"ty": typeValues(types)})
	}
	return r.getMany(ctx, q.OrderBy("ct_ns ASC", "ri ASC"))
}

func (r *resourceRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := r.db.builder.Select("COUNT(*)").From(resourcesTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return count, nil
}

func (r *resourceRepository) Expired(ctx context.Context, now time.Time) ([]models.Resource, error) {
	return r.getMany(ctx, r.selectResources().
		Where(sq.And{sq.NotEq{"et_ns": nil}, sq.Lt{"et_ns": now.UnixNano()}}).
		OrderBy("ct_ns DESC"))
}

// Reset drops the schema through the goose down migrations and migrates it
// up again.
func (r *resourceRepository) Reset(ctx context.Context) error {
	if err := migrations.Reset(r.db.DB, r.db.dialect); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*resourceRepository.Reset").Msg("error resetting resource store")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	r.logger.Info().Msg("resource store reset")
	return nil
}

func (r *resourceRepository) selectResources() sq.SelectBuilder {
	return r.db.builder.Select("srn", "doc").From(resourcesTable)
}

func (r *resourceRepository) childrenQuery(pi string, types ...models.ResourceType) sq.SelectBuilder {
	q := r.selectResources().Where(sq.Eq{"pi": pi})
	if len(types) > 0 {
		q = q.Where(sq.Eq{"ty": typeValues(types)})
	}
	return q
}

func typeValues(types []models.ResourceType) []int {
	tys := make([]int, len(types))
	for i, t := range types {
		tys[i] = int(t)
	}
	return tys
}

func (r *resourceRepository) getOne(ctx context.Context, q sq.SelectBuilder) (models.Resource, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return models.Resource{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := scanResource(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Resource{}, ErrResourceNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*resourceRepository.getOne").Msg("error reading resource")
		return models.Resource{}, err
	}

	return res, nil
}

func (r *resourceRepository) getMany(ctx context.Context, q sq.SelectBuilder) ([]models.Resource, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*resourceRepository.getMany").Msg("error querying resources")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	resources := make([]models.Resource, 0)
	for rows.Next() {
		res, scanErr := scanResource(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		resources = append(resources, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return resources, nil
}

func scanResource(row rowScanner) (models.Resource, error) {
	var srn, doc string
	if err := row.Scan(&srn, &doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Resource{}, err
		}
		return models.Resource{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var res models.Resource
	if err := json.Unmarshal([]byte(doc), &res); err != nil {
		return models.Resource{}, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}
	res.StructuredPath = srn
	return res, nil
}

func creationNanos(res models.Resource) int64 {
	if res.CreationTime == nil {
		return 0
	}
	return res.CreationTime.UnixNano()
}

func expirationNanos(res models.Resource) sql.NullInt64 {
	if res.ExpirationTime == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: res.ExpirationTime.UnixNano(), Valid: true}
}

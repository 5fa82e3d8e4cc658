package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
	"github.com/iglimehmetaj/service-platform2/pkg/dbmetrics"
	"github.com/iglimehmetaj/service-platform2/pkg/psqlbuilder"
)

// Repository reads bookable services. The catalog itself is maintained elsewhere.
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceByID loads a service. Inside a transaction the row is locked with
// FOR UPDATE, which serializes concurrent bookings of the same service.
func (r *Repository) GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "company_id", "category_id", "name", "price", "duration_minutes").
		From("services").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		svc        domain.Service
		categoryID uuid.NullUUID
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.CompanyID,
		&categoryID,
		&svc.Name,
		&svc.Price,
		&svc.DurationMinutes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	if categoryID.Valid {
		svc.CategoryID = &categoryID.UUID
	}

	return &svc, nil
}

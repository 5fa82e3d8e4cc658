package catalog

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceColumns = []string{"id", "company_id", "category_id", "name", "price", "duration_minutes"}

func TestRepository_GetServiceByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	companyID := uuid.New()
	mock.ExpectQuery(`SELECT id, company_id, category_id, name, price, duration_minutes FROM services WHERE id = \$1$`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(serviceColumns).AddRow(id.String(), companyID.String(), nil, "Haircut", "20.00", 30))

	svc, err := NewRepository(db).GetServiceByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, companyID, svc.CompanyID)
	assert.Nil(t, svc.CategoryID)
	assert.Equal(t, 30, svc.DurationMinutes)
	assert.True(t, decimal.RequireFromString("20").Equal(svc.Price))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetServiceByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM services`).WillReturnRows(sqlmock.NewRows(serviceColumns))

	_, err = NewRepository(db).GetServiceByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

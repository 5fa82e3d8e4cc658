package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
	"github.com/iglimehmetaj/service-platform2/pkg/dbmetrics"
	"github.com/iglimehmetaj/service-platform2/pkg/psqlbuilder"
)

const exclusionViolationCode = "23P01"

var appointmentColumns = []string{
	"id",
	"service_id",
	"client_id",
	"company_id",
	"start_time",
	"end_time",
	"status",
	"price",
	"notes",
	"created_at",
	"updated_at",
}

// Repository stores appointments in PostgreSQL.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new appointment. Uses the transaction from ctx when present.
// An overlapping slot-holding appointment on the same service yields ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if appt.ID == uuid.Nil {
		appt.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"service_id",
			"client_id",
			"company_id",
			"start_time",
			"end_time",
			"status",
			"price",
			"notes",
		).
		Values(
			appt.ID,
			appt.ServiceID,
			appt.ClientID,
			appt.CompanyID,
			appt.StartTime,
			appt.EndTime,
			appt.Status,
			appt.Price,
			appt.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID loads an appointment. Inside a transaction the row is locked with FOR UPDATE.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// UpdateStatus sets a new status and returns the updated row.
// Moving a freed slot back to a holding status may hit the exclusion constraint.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(appointmentColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return appt, nil
}

// ListBookedSlots returns the intervals held by PENDING, CONFIRMED and COMPLETED
// appointments of a service ordered by start time. excludeID skips one appointment.
func (r *Repository) ListBookedSlots(ctx context.Context, serviceID uuid.UUID, excludeID *uuid.UUID) ([]domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("start_time", "end_time").
		From("appointments").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"status": statusStrings(domain.BlockingStatuses)}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.BookedSlot, 0)
	for rows.Next() {
		var (
			slot domain.BookedSlot
			end  sql.NullTime
		)
		if err := rows.Scan(&slot.StartTime, &end); err != nil {
			return nil, fmt.Errorf("%w: ListBookedSlots - scan slot: %v", ErrScanRow, err)
		}
		slot.StartTime = slot.StartTime.UTC()
		if end.Valid {
			t := end.Time.UTC()
			slot.EndTime = &t
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookedSlots - rows iteration: %v", ErrScanRow, err)
	}

	return slots, nil
}

// ListDetails returns role-scoped appointments joined with service, client and
// company data, ordered by start time ascending.
func (r *Repository) ListDetails(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(
		"a.id",
		"a.service_id",
		"a.client_id",
		"a.company_id",
		"a.start_time",
		"a.end_time",
		"a.status",
		"a.price",
		"a.notes",
		"a.created_at",
		"a.updated_at",
		"s.name",
		"s.price",
		"u.name",
		"u.email",
		"c.name",
		"c.location",
	).
		From("appointments a").
		Join("services s ON s.id = a.service_id").
		Join("users u ON u.id = a.client_id").
		Join("companies c ON c.id = a.company_id"), filter).
		OrderBy("a.start_time ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDetails - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDetails - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.AppointmentDetails, 0)
	for rows.Next() {
		var (
			d                    domain.AppointmentDetails
			end                  sql.NullTime
			createdAt, updatedAt sql.NullTime
			notes, location      sql.NullString
		)
		err := rows.Scan(
			&d.ID,
			&d.ServiceID,
			&d.ClientID,
			&d.CompanyID,
			&d.StartTime,
			&end,
			&d.Status,
			&d.Price,
			&notes,
			&createdAt,
			&updatedAt,
			&d.ServiceName,
			&d.ServicePrice,
			&d.ClientName,
			&d.ClientEmail,
			&d.CompanyName,
			&location,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDetails - scan appointment: %v", ErrScanRow, err)
		}
		d.StartTime = d.StartTime.UTC()
		d.EndTime = nullTimePtr(end)
		d.Notes = nullStringPtr(notes)
		d.CompanyLocation = nullStringPtr(location)
		d.CreatedAt = createdAt.Time
		d.UpdatedAt = updatedAt.Time
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDetails - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// Count returns the number of appointments matching filter, ignoring Limit and Offset.
func (r *Repository) Count(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("appointments a"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan: %v", ErrScanRow, err)
	}
	return total, nil
}

func applyFilter(b squirrel.SelectBuilder, filter domain.AppointmentFilter) squirrel.SelectBuilder {
	if filter.ClientID != nil {
		b = b.Where(squirrel.Eq{"a.client_id": *filter.ClientID})
	}
	if filter.CompanyID != nil {
		b = b.Where(squirrel.Eq{"a.company_id": *filter.CompanyID})
	}
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"a.status": *filter.Status})
	}
	return b
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appt                 domain.Appointment
		end                  sql.NullTime
		notes                sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&appt.ID,
		&appt.ServiceID,
		&appt.ClientID,
		&appt.CompanyID,
		&appt.StartTime,
		&end,
		&appt.Status,
		&appt.Price,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.StartTime = appt.StartTime.UTC()
	appt.EndTime = nullTimePtr(end)
	appt.Notes = nullStringPtr(notes)
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == exclusionViolationCode
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

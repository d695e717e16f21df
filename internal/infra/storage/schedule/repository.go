package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/HMS-AppointmentService/pkg/psqlbuilder"
)

const tableName = "doctor_availability"

var columns = []string{
	"id",
	"doctor_id",
	"day_of_week",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий недельного расписания врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByDoctor получает все окна приема врача, упорядоченные по дню и времени
func (r *Repository) ListByDoctor(ctx context.Context, doctorID int64) ([]*domain.DoctorAvailability, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListByDoctor", query, args)
}

// ListByDoctorAndDay получает окна приема врача на день недели
// Внутри транзакции строки блокируются
func (r *Repository) ListByDoctorAndDay(ctx context.Context, doctorID int64, day domain.DayOfWeek) ([]*domain.DoctorAvailability, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID, "day_of_week": int(day)}).
		OrderBy("start_time ASC")
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctorAndDay - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListByDoctorAndDay", query, args)
}

// DeleteDay удаляет все окна приема врача на день недели
func (r *Repository) DeleteDay(ctx context.Context, doctorID int64, day domain.DayOfWeek) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"doctor_id": doctorID, "day_of_week": int(day)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteDay - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteDay - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateBatch сохраняет окна приема одним запросом и заполняет их ID
func (r *Repository) CreateBatch(ctx context.Context, windows []*domain.DoctorAvailability) error {
	if len(windows) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(tableName).
		Columns("doctor_id", "day_of_week", "start_time", "end_time")
	for _, w := range windows {
		insertBuilder = insertBuilder.Values(w.DoctorID, int(w.DayOfWeek), w.StartTime, w.EndTime)
	}

	query, args, err := insertBuilder.Suffix("RETURNING id, created_at, updated_at").ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// PostgreSQL возвращает строки RETURNING в порядке VALUES
	i := 0
	for rows.Next() {
		if i >= len(windows) {
			break
		}
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&windows[i].ID, &createdAt, &updatedAt); err != nil {
			return fmt.Errorf("%w: CreateBatch - scan row: %v", ErrScanRow, err)
		}
		windows[i].CreatedAt = createdAt.Time
		windows[i].UpdatedAt = updatedAt.Time
		i++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.DoctorAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	windows := make([]*domain.DoctorAvailability, 0)
	for rows.Next() {
		var w domain.DoctorAvailability
		var day int
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&w.ID, &w.DoctorID, &day, &w.StartTime, &w.EndTime, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		w.DayOfWeek = domain.DayOfWeek(day)
		w.CreatedAt = createdAt.Time
		w.UpdatedAt = updatedAt.Time
		windows = append(windows, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return windows, nil
}

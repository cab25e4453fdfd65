package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taskverse/taskverse/internal/domain"
)

const scheduleColumns = `id, owner_id, course_name, session, day_of_week,
	time_start, time_end, location, lecturer`

// CreateSchedule persists a schedule entry.
func (s *Store) CreateSchedule(ctx context.Context, entry *domain.Schedule) (*domain.Schedule, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO schedules
			(id, owner_id, course_name, session, day_of_week, time_start, time_end, location, lecturer)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+scheduleColumns,
		entry.ID, entry.OwnerID, entry.CourseName, entry.Session, entry.DayOfWeek,
		entry.TimeStart, entry.TimeEnd, entry.Location, entry.Lecturer,
	)

	stored, err := scanSchedule(row)
	if err != nil {
		return nil, fmt.Errorf("insert schedule: %w", err)
	}
	return stored, nil
}

// ListSchedules retrieves the owner's entries ordered by weekday and start
// time.
func (s *Store) ListSchedules(ctx context.Context, ownerID string) ([]domain.Schedule, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE owner_id = $1
		ORDER BY day_of_week, time_start, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var entries []domain.Schedule
	for rows.Next() {
		entry, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedules: %w", err)
	}
	return entries, nil
}

// UpdateSchedule applies a partial update scoped to the owner.
func (s *Store) UpdateSchedule(ctx context.Context, ownerID string, params domain.UpdateScheduleParams) (*domain.Schedule, error) {
	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.CourseName != nil {
		set("course_name", *params.CourseName)
	}
	if params.Session != nil {
		set("session", *params.Session)
	}
	if params.DayOfWeek != nil {
		set("day_of_week", *params.DayOfWeek)
	}
	if params.TimeStart != nil {
		set("time_start", *params.TimeStart)
	}
	if params.TimeEnd != nil {
		set("time_end", *params.TimeEnd)
	}
	if params.Location != nil {
		set("location", *params.Location)
	}
	if params.Lecturer != nil {
		set("lecturer", *params.Lecturer)
	}

	if len(sets) == 0 {
		return s.findSchedule(ctx, ownerID, params.ScheduleID)
	}

	args = append(args, params.ScheduleID, ownerID)
	query := fmt.Sprintf(`
		UPDATE schedules SET %s
		WHERE id = $%d AND owner_id = $%d
		RETURNING `+scheduleColumns,
		strings.Join(sets, ", "), len(args)-1, len(args),
	)

	entry, err := scanSchedule(s.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}
	return entry, nil
}

// DeleteSchedule removes one of the owner's entries.
func (s *Store) DeleteSchedule(ctx context.Context, ownerID, id string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM schedules WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScheduleNotFound
	}
	return nil
}

// DeleteAllSchedules removes every entry the owner has.
func (s *Store) DeleteAllSchedules(ctx context.Context, ownerID string) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM schedules WHERE owner_id = $1`,
		ownerID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete all schedules: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Store) findSchedule(ctx context.Context, ownerID, id string) (*domain.Schedule, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)

	entry, err := scanSchedule(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	return entry, nil
}

func scanSchedule(row pgx.Row) (*domain.Schedule, error) {
	var entry domain.Schedule
	err := row.Scan(&entry.ID, &entry.OwnerID, &entry.CourseName, &entry.Session,
		&entry.DayOfWeek, &entry.TimeStart, &entry.TimeEnd, &entry.Location, &entry.Lecturer)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

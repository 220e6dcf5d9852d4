package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/opdeck/internal/journal/domain"
)

const runColumns = `id, guid, console, state, control_source, pauses,
	started_at, paused_at, stopped_at, updated_at`

// runRepository implements domain.RunRepository using SQLite.
type runRepository struct {
	db *sql.DB
}

func newRunRepository(db *sql.DB) *runRepository {
	return &runRepository{db: db}
}

var _ domain.RunRepository = (*runRepository)(nil)

func scanRun(scanner interface{ Scan(...any) error }) (*RunModel, error) {
	var m RunModel
	err := scanner.Scan(
		&m.ID, &m.GUID, &m.Console, &m.State, &m.ControlSource, &m.Pauses,
		&m.StartedAt, &m.PausedAt, &m.StoppedAt, &m.UpdatedAt,
	)
	return &m, err
}

// Save inserts new runs (ID == 0) and updates existing ones.
func (r *runRepository) Save(run *domain.Run) error {
	m := toRunModel(run)

	if run.ID() == 0 {
		result, err := r.db.Exec(
			`INSERT INTO runs (guid, console, state, control_source, pauses,
				started_at, paused_at, stopped_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.GUID, m.Console, m.State, m.ControlSource, m.Pauses,
			m.StartedAt, m.PausedAt, m.StoppedAt, m.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		run.SetID(id)
		return nil
	}

	_, err := r.db.Exec(
		`UPDATE runs SET
			state = ?, control_source = ?, pauses = ?,
			paused_at = ?, stopped_at = ?, updated_at = ?
		WHERE id = ?`,
		m.State, m.ControlSource, m.Pauses,
		m.PausedAt, m.StoppedAt, m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// FindByGUID returns RunNotFoundError when no run matches.
func (r *runRepository) FindByGUID(guid string) (*domain.Run, error) {
	row := r.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE guid = ?`, guid)
	m, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.RunNotFoundError{GUID: guid}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find run: %w", err)
	}
	return m.toDomain(), nil
}

// List returns runs newest first.
func (r *runRepository) List(filter domain.ListFilter) ([]*domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if filter.State != "" {
		query += ` WHERE state = ?`
		args = append(args, filter.State.String())
	}
	query += ` ORDER BY started_at DESC, id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.Run
	for rows.Next() {
		m, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// Close is a no-op; the DB owns the connection.
func (r *runRepository) Close() error {
	return nil
}

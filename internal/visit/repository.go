package visit

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a visit id does not exist.
var ErrNotFound = errors.New("visit not found")

// Repository provides data access for visits.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a visit repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, client_id, visit_date, touch_type, outcome, products, signal,
	note, next_action, follow_up_date, priority, completed, created_at`

func scanVisit(row interface{ Scan(...interface{}) error }) (*Visit, error) {
	var v Visit
	err := row.Scan(
		&v.ID, &v.ClientID, &v.Date, &v.TouchType, &v.Outcome, &v.Products, &v.Signal,
		&v.Note, &v.NextAction, &v.FollowUpDate, &v.Priority, &v.Completed, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Add records a new visit. The visit date must be YYYY-MM-DD; the follow-up
// date is stored as given. Empty touch type and priority take their defaults.
func (r *Repository) Add(v *Visit) (*Visit, error) {
	if _, err := time.Parse(DateLayout, v.Date); err != nil {
		return nil, fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
	}

	touchType := v.TouchType
	if touchType == "" {
		touchType = TouchCall
	}
	priority := v.Priority
	if priority == "" {
		priority = DefaultPriority
	}

	result, err := r.db.Exec(
		`INSERT INTO visits (client_id, visit_date, touch_type, outcome, products, signal,
		 note, next_action, follow_up_date, priority, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ClientID, v.Date, touchType, v.Outcome, v.Products, v.Signal,
		v.Note, v.NextAction, v.FollowUpDate, priority, v.Completed,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting visit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a visit by its ID.
func (r *Repository) GetByID(id int64) (*Visit, error) {
	row := r.db.QueryRow(fmt.Sprintf("SELECT %s FROM visits WHERE id = ?", selectColumns), id)

	v, err := scanVisit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("visit %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying visit %d: %w", id, err)
	}
	return v, nil
}

// List returns every visit, newest first.
func (r *Repository) List() ([]*Visit, error) {
	return r.query(fmt.Sprintf(
		"SELECT %s FROM visits ORDER BY visit_date DESC, id DESC", selectColumns,
	))
}

// ListByClientID returns all visits for a client, newest first.
func (r *Repository) ListByClientID(clientID int64) ([]*Visit, error) {
	return r.query(fmt.Sprintf(
		"SELECT %s FROM visits WHERE client_id = ? ORDER BY visit_date DESC, id DESC", selectColumns,
	), clientID)
}

func (r *Repository) query(q string, args ...interface{}) (visits []*Visit, err error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating visits: %w", err)
	}

	return visits, nil
}

// Update writes every mutable column of v back to the store.
func (r *Repository) Update(v *Visit) (*Visit, error) {
	result, err := r.db.Exec(
		`UPDATE visits SET client_id = ?, visit_date = ?, touch_type = ?, outcome = ?,
		 products = ?, signal = ?, note = ?, next_action = ?, follow_up_date = ?,
		 priority = ?, completed = ?
		 WHERE id = ?`,
		v.ClientID, v.Date, v.TouchType, v.Outcome,
		v.Products, v.Signal, v.Note, v.NextAction, v.FollowUpDate,
		v.Priority, v.Completed, v.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating visit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("visit %d: %w", v.ID, ErrNotFound)
	}

	return r.GetByID(v.ID)
}

// MarkCompleted flags a visit's follow-up as done. No other column changes.
func (r *Repository) MarkCompleted(id int64) error {
	result, err := r.db.Exec("UPDATE visits SET completed = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("completing visit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("visit %d: %w", id, ErrNotFound)
	}

	return nil
}

package client

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a client id does not exist.
var ErrNotFound = errors.New("client not found")

// Repository provides CRUD operations for clients.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a client repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const insertSQL = `INSERT INTO clients
	(name, city, state, contact, phone, email, segment, status, notes)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectColumns = `id, name, city, state, contact, phone, email, segment, status, notes, created_at, updated_at`

// Add inserts a new client and returns it with its generated ID.
// An empty status is stored as DefaultStatus.
func (r *Repository) Add(c *Client) (*Client, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("client name is required")
	}

	status := c.Status
	if status == "" {
		status = DefaultStatus
	}

	result, err := r.db.Exec(insertSQL,
		c.Name, c.City, c.State, c.Contact, c.Phone,
		c.Email, c.Segment, status, c.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a client by its ID.
func (r *Repository) GetByID(id int64) (*Client, error) {
	query := fmt.Sprintf("SELECT %s FROM clients WHERE id = ?", selectColumns)

	c, err := scanClient(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying client %d: %w", id, err)
	}

	return c, nil
}

// List returns all clients ordered by name.
func (r *Repository) List() (clients []*Client, err error) {
	query := fmt.Sprintf("SELECT %s FROM clients ORDER BY name COLLATE NOCASE, id", selectColumns)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}

	return clients, nil
}

// Update overwrites the editable fields of an existing client.
func (r *Repository) Update(c *Client) (*Client, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("client name is required")
	}

	status := c.Status
	if status == "" {
		status = DefaultStatus
	}

	result, err := r.db.Exec(
		`UPDATE clients SET name = ?, city = ?, state = ?, contact = ?, phone = ?,
		 email = ?, segment = ?, status = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		c.Name, c.City, c.State, c.Contact, c.Phone,
		c.Email, c.Segment, status, c.Notes, c.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("client %d: %w", c.ID, ErrNotFound)
	}

	return r.GetByID(c.ID)
}

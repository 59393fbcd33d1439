// Package client provides the client (account) domain model and data access.
package client

import "time"

// DefaultStatus is assigned to clients created without a status.
const DefaultStatus = "Active"

// Client represents a customer account worked by the field rep.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Contact   string    `json:"contact"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Segment   string    `json:"segment"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// scanClient scans a client from a database row.
func scanClient(row interface{ Scan(...interface{}) error }) (*Client, error) {
	var c Client
	err := row.Scan(
		&c.ID, &c.Name, &c.City, &c.State, &c.Contact, &c.Phone,
		&c.Email, &c.Segment, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

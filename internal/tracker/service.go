// Package tracker ties the client and visit stores together: manual entry
// with validation, imports, follow-up completion, and the derived view.
package tracker

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/evcraddock/sales-tracker/internal/calendar"
	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/importer"
	"github.com/evcraddock/sales-tracker/internal/visit"
)

// Service provides tracker business logic over an open database.
type Service struct {
	clients  *client.Repository
	visits   *visit.Repository
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a tracker service on db. The caller owns db and closes it.
func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		clients:  client.NewRepository(db),
		visits:   visit.NewRepository(db),
		validate: newValidator(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Today returns the current date as YYYY-MM-DD.
func (s *Service) Today() string {
	return s.now().Format(visit.DateLayout)
}

// Reload reads every client and visit and derives a fresh View.
func (s *Service) Reload() (*View, error) {
	clients, err := s.clients.List()
	if err != nil {
		return nil, fmt.Errorf("loading clients: %w", err)
	}
	visits, err := s.visits.List()
	if err != nil {
		return nil, fmt.Errorf("loading visits: %w", err)
	}
	return buildView(clients, visits, s.now()), nil
}

// Client returns a client by id.
func (s *Service) Client(id int64) (*client.Client, error) {
	return s.clients.GetByID(id)
}

// ClientVisits returns a client's visits, newest first. It fails with
// client.ErrNotFound if the client doesn't exist.
func (s *Service) ClientVisits(clientID int64) ([]*visit.Visit, error) {
	if _, err := s.clients.GetByID(clientID); err != nil {
		return nil, err
	}
	return s.visits.ListByClientID(clientID)
}

// Visit returns a visit by id.
func (s *Service) Visit(id int64) (*visit.Visit, error) {
	return s.visits.GetByID(id)
}

// AddClient validates and stores a manually entered client.
func (s *Service) AddClient(c *client.Client) (*client.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := check(s.validate, c); err != nil {
		return nil, err
	}

	saved, err := s.clients.Add(c)
	if err != nil {
		return nil, fmt.Errorf("saving client: %w", err)
	}
	slog.Info("client added", "id", saved.ID, "name", saved.Name)
	return saved, nil
}

// UpdateClient validates and saves edits to an existing client.
func (s *Service) UpdateClient(c *client.Client) (*client.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := check(s.validate, c); err != nil {
		return nil, err
	}

	return s.clients.Update(c)
}

// VisitInput is a manually logged visit.
type VisitInput struct {
	ClientID     int64  `json:"client_id" validate:"gt=0"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	TouchType    string `json:"touch_type" validate:"omitempty,oneof=Call 'Site Visit' Meeting Email"`
	Outcome      string `json:"outcome"`
	Products     string `json:"products"`
	Signal       string `json:"signal" validate:"omitempty,oneof=Hot Warm Cold"`
	Note         string `json:"note" validate:"required"`
	NextAction   string `json:"next_action"`
	FollowUpDate string `json:"follow_up_date" validate:"omitempty,datetime=2006-01-02"`
	Priority     string `json:"priority"`
}

// LogVisit validates and stores a manually logged visit. An empty date means
// today. The client must exist.
func (s *Service) LogVisit(in VisitInput) (*visit.Visit, error) {
	in.Note = strings.TrimSpace(in.Note)
	in.Date = strings.TrimSpace(in.Date)
	in.FollowUpDate = strings.TrimSpace(in.FollowUpDate)
	if in.Date == "" {
		in.Date = s.Today()
	}
	if err := check(s.validate, in); err != nil {
		return nil, err
	}

	if _, err := s.clients.GetByID(in.ClientID); err != nil {
		return nil, err
	}

	v := &visit.Visit{
		ClientID:     in.ClientID,
		Date:         in.Date,
		TouchType:    in.TouchType,
		Outcome:      in.Outcome,
		Products:     in.Products,
		Signal:       in.Signal,
		Note:         in.Note,
		NextAction:   in.NextAction,
		FollowUpDate: in.FollowUpDate,
		Priority:     in.Priority,
		Completed:    in.FollowUpDate == "",
	}

	saved, err := s.visits.Add(v)
	if err != nil {
		return nil, fmt.Errorf("saving visit: %w", err)
	}
	slog.Info("visit logged", "id", saved.ID, "client_id", saved.ClientID, "follow_up", saved.FollowUpDate)
	return saved, nil
}

// MarkFollowUpDone marks a visit's follow-up completed. No other field changes.
func (s *Service) MarkFollowUpDone(visitID int64) error {
	if err := s.visits.MarkCompleted(visitID); err != nil {
		return err
	}
	slog.Info("follow-up completed", "visit_id", visitID)
	return nil
}

// ImportClients imports pasted client rows.
func (s *Service) ImportClients(text string) (int, error) {
	n, err := importer.ImportClients(text, s.clients)
	if err != nil {
		slog.Error("client import stopped", "imported", n, "error", err)
		return n, err
	}
	slog.Info("clients imported", "imported", n)
	return n, nil
}

// ImportVisits imports pasted visit rows, matching client names against the
// clients loaded when the import starts.
func (s *Service) ImportVisits(text string) (importer.Result, error) {
	clients, err := s.clients.List()
	if err != nil {
		return importer.Result{}, fmt.Errorf("loading clients: %w", err)
	}

	res, err := importer.ImportVisits(text, clients, s.visits, s.now())
	if err != nil {
		slog.Error("visit import stopped", "imported", res.Imported, "skipped", res.Skipped, "error", err)
		return res, err
	}
	slog.Info("visits imported", "imported", res.Imported, "skipped", res.Skipped)
	return res, nil
}

// FollowUpEvent renders a visit's follow-up as an .ics document and returns
// it with a suggested file name.
func (s *Service) FollowUpEvent(visitID int64) (filename, ics string, err error) {
	v, err := s.visits.GetByID(visitID)
	if err != nil {
		return "", "", err
	}
	c, err := s.clients.GetByID(v.ClientID)
	if err != nil {
		return "", "", err
	}

	ics, err = calendar.Event(c, v, s.now())
	if err != nil {
		return "", "", err
	}
	return calendar.Filename(c, v), ics, nil
}

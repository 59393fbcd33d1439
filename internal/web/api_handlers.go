package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/tracker"
	"github.com/evcraddock/sales-tracker/internal/visit"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// apiServiceError maps a service error onto a status code. Store failures
// are logged and reported generically.
func apiServiceError(w http.ResponseWriter, err error) {
	var ve *tracker.ValidationError
	switch {
	case errors.As(err, &ve):
		apiJSON(w, map[string]interface{}{"error": ve.Error(), "fields": ve.Fields}, http.StatusBadRequest)
	case errors.Is(err, client.ErrNotFound), errors.Is(err, visit.ErrNotFound):
		apiError(w, err.Error(), http.StatusNotFound)
	default:
		slog.Error("api request failed", "error", err)
		apiError(w, "internal error", http.StatusInternalServerError)
	}
}

// clientResponse adds display fields to an enriched client.
type clientResponse struct {
	*tracker.EnrichedClient
	PhoneDisplay string `json:"phone_display,omitempty"`
}

func (s *Server) clientResponse(ec *tracker.EnrichedClient) clientResponse {
	return clientResponse{
		EnrichedClient: ec,
		PhoneDisplay:   client.FormatPhone(ec.Phone, s.region),
	}
}

// handleAPIClients routes /api/clients requests.
func (s *Server) handleAPIClients(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/clients")
	path = strings.TrimPrefix(path, "/")

	// /api/clients: list or add
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			s.apiListClients(w)
		case http.MethodPost:
			s.apiAddClient(w, r)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/clients/{id}/visits
	if strings.HasSuffix(path, "/visits") {
		id, err := strconv.ParseInt(strings.TrimSuffix(path, "/visits"), 10, 64)
		if err != nil {
			apiError(w, "invalid client ID", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			s.apiListVisits(w, id)
		case http.MethodPost:
			s.apiLogVisit(w, r, id)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/clients/{id}: show or edit
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		apiError(w, "invalid client ID", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.apiGetClient(w, id)
	case http.MethodPut:
		s.apiUpdateClient(w, r, id)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// apiListClients returns every client with its derived fields.
func (s *Server) apiListClients(w http.ResponseWriter) {
	view, err := s.svc.Reload()
	if err != nil {
		apiServiceError(w, err)
		return
	}

	out := make([]clientResponse, 0, len(view.Clients))
	for _, ec := range view.Clients {
		out = append(out, s.clientResponse(ec))
	}
	apiJSON(w, out, http.StatusOK)
}

// apiAddClient adds a manually entered client.
func (s *Server) apiAddClient(w http.ResponseWriter, r *http.Request) {
	var c client.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	c.ID = 0

	saved, err := s.svc.AddClient(&c)
	if err != nil {
		apiServiceError(w, err)
		return
	}
	apiJSON(w, saved, http.StatusCreated)
}

// apiGetClient returns one client with its visits.
func (s *Server) apiGetClient(w http.ResponseWriter, id int64) {
	view, err := s.svc.Reload()
	if err != nil {
		apiServiceError(w, err)
		return
	}

	ec, ok := view.Client(id)
	if !ok {
		apiError(w, "client not found", http.StatusNotFound)
		return
	}

	visits := view.ClientVisits(id)
	if visits == nil {
		visits = make([]*visit.Visit, 0)
	}

	type response struct {
		Client clientResponse `json:"client"`
		Visits []*visit.Visit `json:"visits"`
	}
	apiJSON(w, response{Client: s.clientResponse(ec), Visits: visits}, http.StatusOK)
}

// apiUpdateClient replaces a client's editable fields.
func (s *Server) apiUpdateClient(w http.ResponseWriter, r *http.Request, id int64) {
	var c client.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	c.ID = id

	saved, err := s.svc.UpdateClient(&c)
	if err != nil {
		apiServiceError(w, err)
		return
	}
	apiJSON(w, saved, http.StatusOK)
}

// apiListVisits returns a client's visits, newest first.
func (s *Server) apiListVisits(w http.ResponseWriter, id int64) {
	visits, err := s.svc.ClientVisits(id)
	if err != nil {
		apiServiceError(w, err)
		return
	}
	if visits == nil {
		visits = make([]*visit.Visit, 0)
	}
	apiJSON(w, visits, http.StatusOK)
}

// apiLogVisit records a visit for a client.
func (s *Server) apiLogVisit(w http.ResponseWriter, r *http.Request, id int64) {
	var in tracker.VisitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	in.ClientID = id

	v, err := s.svc.LogVisit(in)
	if err != nil {
		apiServiceError(w, err)
		return
	}
	apiJSON(w, v, http.StatusCreated)
}

// handleAPIVisits routes /api/visits/{id}/complete and /api/visits/{id}/ics.
func (s *Server) handleAPIVisits(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/visits/")

	idStr, action, _ := strings.Cut(path, "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		apiError(w, "invalid visit ID", http.StatusBadRequest)
		return
	}

	switch action {
	case "complete":
		if r.Method != http.MethodPost {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiCompleteVisit(w, id)
	case "ics":
		if r.Method != http.MethodGet {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiVisitICS(w, id)
	default:
		apiError(w, "not found", http.StatusNotFound)
	}
}

// apiCompleteVisit marks a visit's follow-up done.
func (s *Server) apiCompleteVisit(w http.ResponseWriter, id int64) {
	if err := s.svc.MarkFollowUpDone(id); err != nil {
		apiServiceError(w, err)
		return
	}

	v, err := s.svc.Visit(id)
	if err != nil {
		apiServiceError(w, err)
		return
	}
	apiJSON(w, v, http.StatusOK)
}

// apiVisitICS downloads a visit's follow-up as a calendar file.
func (s *Server) apiVisitICS(w http.ResponseWriter, id int64) {
	name, ics, err := s.svc.FollowUpEvent(id)
	if err != nil {
		if errors.Is(err, visit.ErrNotFound) || errors.Is(err, client.ErrNotFound) {
			apiServiceError(w, err)
			return
		}
		apiError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if _, err := io.WriteString(w, ics); err != nil {
		slog.Error("writing ics", "error", err)
	}
}

// apiFollowUps returns open follow-ups grouped into overdue, today and
// upcoming.
func (s *Server) apiFollowUps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	view, err := s.svc.Reload()
	if err != nil {
		apiServiceError(w, err)
		return
	}
	apiJSON(w, view.FollowUps, http.StatusOK)
}

// handleAPIImport accepts pasted CSV or TSV text as the raw request body.
func (s *Server) handleAPIImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	kind := strings.TrimPrefix(r.URL.Path, "/api/import/")
	if kind != "clients" && kind != "visits" {
		apiError(w, "not found", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		apiError(w, "reading body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	if kind == "clients" {
		n, err := s.svc.ImportClients(string(body))
		if err != nil {
			apiServiceError(w, err)
			return
		}
		apiJSON(w, map[string]int{"imported": n}, http.StatusOK)
		return
	}

	res, err := s.svc.ImportVisits(string(body))
	if err != nil {
		apiServiceError(w, err)
		return
	}
	apiJSON(w, res, http.StatusOK)
}

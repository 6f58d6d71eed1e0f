// Package apitest runs an in-memory vehicle backend over httptest for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/jask/vehicledesk/internal/api"
)

type account struct {
	id       int64
	password string
	admin    bool
}

type failure struct {
	prefix string
	status int
	body   string
}

// Server is a fake backend honouring the collection contract.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   int64
	records  []api.Vehicle
	accounts map[string]account
	requests []string
	failures []failure
}

// NewServer starts a backend seeded with records. Seed ids of zero are
// assigned. The server is closed when the test ends.
func NewServer(t testing.TB, seed ...api.Vehicle) *Server {
	t.Helper()
	s := &Server{nextID: 1, accounts: map[string]account{}}
	for _, v := range seed {
		if v.ID == 0 {
			v.ID = s.nextID
		}
		if v.ID >= s.nextID {
			s.nextID = v.ID + 1
		}
		s.records = append(s.records, v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /vehicles", s.list)
	mux.HandleFunc("POST /vehicles", s.create)
	mux.HandleFunc("GET /vehicles/{id}", s.get)
	mux.HandleFunc("DELETE /vehicles/{id}", s.remove)
	mux.HandleFunc("PATCH /vehicles/{id}/favorite", s.toggle)
	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	})

	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// AddUser registers a login.
func (s *Server) AddUser(username, password string, admin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[username] = account{id: int64(len(s.accounts) + 1), password: password, admin: admin}
}

// FailNext makes the next request answer with status and a detail body. An
// empty detail sends a non-JSON body.
func (s *Server) FailNext(status int, detail string) {
	s.FailNextMatching("", status, detail)
}

// FailNextMatching fails the next request whose "METHOD /path?query" line
// starts with prefix.
func (s *Server) FailNextMatching(prefix string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body := "internal error"
	if detail != "" {
		buf, _ := json.Marshal(map[string]string{"detail": detail})
		body = string(buf)
	}
	s.failures = append(s.failures, failure{prefix: prefix, status: status, body: body})
}

// Requests lists "METHOD /path?query" for every request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Records returns the current collection.
func (s *Server) Records() []api.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		line := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			line += "?" + r.URL.RawQuery
		}
		s.mu.Lock()
		s.requests = append(s.requests, line)
		var f *failure
		for i := range s.failures {
			if strings.HasPrefix(line, s.failures[i].prefix) {
				hit := s.failures[i]
				f = &hit
				s.failures = slices.Delete(s.failures, i, i+1)
				break
			}
		}
		s.mu.Unlock()
		if f != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Vehicle, 0, len(s.records))
	want := r.URL.Query().Get("favorite")
	for _, v := range s.records {
		if want != "" && strconv.FormatBool(v.Favorite) != want {
			continue
		}
		out = append(out, v)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var in api.NewVehicle
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Model) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "name, category and model are required")
		return
	}
	if in.Year < 1950 || in.Year > 2024 {
		writeDetail(w, http.StatusUnprocessableEntity, "year out of range")
		return
	}
	s.mu.Lock()
	v := api.Vehicle{
		ID:       s.nextID,
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
		Model:    strings.TrimSpace(in.Model),
		Year:     in.Year,
	}
	s.nextID++
	s.records = append(s.records, v)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(r)
	if i < 0 {
		writeDetail(w, http.StatusNotFound, "vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, s.records[i])
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(r)
	if i < 0 {
		writeDetail(w, http.StatusNotFound, "vehicle not found")
		return
	}
	id := s.records[i].ID
	s.records = slices.Delete(s.records, i, i+1)
	writeJSON(w, http.StatusOK, api.DeleteResult{
		Message: "vehicle deleted",
		Success: true,
		Data:    map[string]any{"id": id},
	})
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(r)
	if i < 0 {
		writeDetail(w, http.StatusNotFound, "vehicle not found")
		return
	}
	s.records[i].Favorite = !s.records[i].Favorite
	writeJSON(w, http.StatusOK, s.records[i])
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	s.mu.Lock()
	acct, ok := s.accounts[creds.Username]
	s.mu.Unlock()
	if !ok || acct.password != creds.Password {
		writeDetail(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	writeJSON(w, http.StatusOK, api.LoginResult{
		Success: true,
		Message: "login successful",
		User:    &api.User{ID: acct.id, Username: creds.Username, Admin: acct.admin},
	})
}

// indexOf must be called with mu held.
func (s *Server) indexOf(r *http.Request) int {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return -1
	}
	return slices.IndexFunc(s.records, func(v api.Vehicle) bool { return v.ID == id })
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

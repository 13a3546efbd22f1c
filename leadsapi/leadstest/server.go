// Package leadstest provides an in-memory leads backend for tests.
//
// It mirrors the reference backend's behavior: HS256 tokens with an 8 hour
// expiry, newest-first listing, page/limit clamping, 400 on invalid create
// input, field-wise fallback on update, 204 on delete and 404 for unknown ids.
package leadstest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"leadsweb/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Secret signs the fake backend's tokens
const Secret = "leadstest-secret"

// Default credentials seeded into every server
const (
	Email    = "test@example.com"
	Password = "password123"
)

// Request records one call the backend received
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          string
}

// Server is a running fake backend
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string][]byte // email -> bcrypt hash
	leads    map[int64]models.Lead
	nextID   int64
	requests []Request

	// failNext makes the next request to a matching path prefix answer with a status
	failNext map[string]int

	// createGate, when set, holds every POST /api/leads until it is closed
	createGate chan struct{}

	// listHook runs before a list response is written (tests use it to delay responses)
	listHook func(page int)
}

// NewServer starts a fake backend seeded with the default user and two leads
func NewServer() *Server {
	s := &Server{
		users:    map[string][]byte{},
		leads:    map[int64]models.Lead{},
		failNext: map[string]int{},
	}
	s.AddUser(Email, Password)
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	s.AddLead(models.LeadInput{Name: "Alice", Email: "alice@example.com", Phone: "1234567890", Status: models.StatusNew})
	s.AddLead(models.LeadInput{Name: "Bob", Email: "bob@example.com", Phone: "9876543210", Status: models.StatusInProgress})
	return s
}

// Token mints a valid token for email, as a successful login would
func Token(email string, ttl time.Duration) string {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(Secret))
	return tok
}

// AddUser registers an account. Passwords are stored as bcrypt hashes at
// the minimum cost so tests stay fast.
func (s *Server) AddUser(email, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	s.users[strings.ToLower(email)] = hash
	s.mu.Unlock()
}

// AddLead inserts a lead directly and returns it
func (s *Server) AddLead(in models.LeadInput) models.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(in)
}

// Reset removes every lead
func (s *Server) Reset() {
	s.mu.Lock()
	s.leads = map[int64]models.Lead{}
	s.mu.Unlock()
}

// SetLeads replaces the lead table with n generated leads
func (s *Server) SetLeads(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = map[int64]models.Lead{}
	for i := 1; i <= n; i++ {
		s.insertLocked(models.LeadInput{
			Name:   "Lead " + strconv.Itoa(i),
			Email:  "lead" + strconv.Itoa(i) + "@example.com",
			Phone:  strconv.Itoa(1000 + i),
			Status: models.StatusNew,
		})
	}
}

// Lead returns the stored lead with the given id
func (s *Server) Lead(id models.LeadID) (models.Lead, bool) {
	n, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil {
		return models.Lead{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[n]
	return l, ok
}

// LeadCount returns the number of stored leads
func (s *Server) LeadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.leads)
}

// FailNext makes the next request whose path starts with prefix answer status
func (s *Server) FailNext(prefix string, status int) {
	s.mu.Lock()
	s.failNext[prefix] = status
	s.mu.Unlock()
}

// HoldCreates blocks POST /api/leads until the returned release func is called
func (s *Server) HoldCreates() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.createGate = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.createGate = nil
			s.mu.Unlock()
			close(gate)
		})
	}
}

// OnList installs a hook that runs before each list response
func (s *Server) OnList(hook func(page int)) {
	s.mu.Lock()
	s.listHook = hook
	s.mu.Unlock()
}

// Requests returns a copy of every request received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// CountRequests counts received requests matching method and path prefix
func (s *Server) CountRequests(method, prefix string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && strings.HasPrefix(r.Path, prefix) {
			n++
		}
	}
	return n
}

func (s *Server) insertLocked(in models.LeadInput) models.Lead {
	s.nextID++
	l := models.Lead{
		ID:     models.LeadID(strconv.FormatInt(s.nextID, 10)),
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
		Status: in.Status,
	}
	s.leads[s.nextID] = l
	return l
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		Body:          string(body),
	})
	for prefix, status := range s.failNext {
		if strings.HasPrefix(r.URL.Path, prefix) {
			delete(s.failNext, prefix)
			s.mu.Unlock()
			writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
			return
		}
	}
	s.mu.Unlock()

	switch {
	case r.URL.Path == "/api/auth/login" && r.Method == http.MethodPost:
		s.login(w, body)
	case r.URL.Path == "/api/leads" || strings.HasPrefix(r.URL.Path, "/api/leads/"):
		if !s.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		s.leadsRoute(w, r, body)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	}
}

func (s *Server) login(w http.ResponseWriter, body []byte) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.Unmarshal(body, &in)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	s.mu.Lock()
	hash, ok := s.users[email]
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(in.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": Token(email, 8*time.Hour)})
}

func (s *Server) authorized(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return false
	}
	_, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		return []byte(Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err == nil
}

func (s *Server) leadsRoute(w http.ResponseWriter, r *http.Request, body []byte) {
	if r.URL.Path == "/api/leads" {
		switch r.Method {
		case http.MethodGet:
			s.list(w, r)
		case http.MethodPost:
			s.create(w, body)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/api/leads/"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		return
	}
	switch r.Method {
	case http.MethodPut:
		s.update(w, id, body)
	case http.MethodDelete:
		s.remove(w, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 5
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}

	s.mu.Lock()
	hook := s.listHook
	ids := make([]int64, 0, len(s.leads))
	for id := range s.leads {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	total := len(ids)
	items := []models.Lead{}
	for i := (page - 1) * limit; i < total && i < page*limit; i++ {
		items = append(items, s.leads[ids[i]])
	}
	s.mu.Unlock()

	if hook != nil {
		hook(page)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"leads": items,
		"page":  page,
		"limit": limit,
		"total": total,
		"pages": (total + limit - 1) / limit,
	})
}

func validStatus(st models.Status) bool {
	_, err := models.ParseStatus(string(st))
	return err == nil
}

func (s *Server) create(w http.ResponseWriter, body []byte) {
	s.mu.Lock()
	gate := s.createGate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}

	var in models.LeadInput
	_ = json.Unmarshal(body, &in)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Status == "" {
		in.Status = models.StatusNew
	}
	if in.Name == "" || in.Email == "" || in.Phone == "" || !validStatus(in.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Bad request"})
		return
	}
	writeJSON(w, http.StatusCreated, s.AddLead(in))
}

func (s *Server) update(w http.ResponseWriter, id int64, body []byte) {
	var in models.LeadInput
	_ = json.Unmarshal(body, &in)

	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.leads[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		return
	}
	if v := strings.TrimSpace(in.Name); v != "" {
		l.Name = v
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		l.Email = v
	}
	if v := strings.TrimSpace(in.Phone); v != "" {
		l.Phone = v
	}
	if in.Status != "" {
		if !validStatus(in.Status) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Bad request"})
			return
		}
		l.Status = in.Status
	}
	s.leads[id] = l
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) remove(w http.ResponseWriter, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leads[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		return
	}
	delete(s.leads, id)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Package leads holds the client-side state of the leads list: the current
// page, the rows on it, which rows are being edited and their drafts, and the
// create-form guard. Every front end (web, terminal, CLI) drives a View.
package leads

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"leadsweb/leadsapi"
	"leadsweb/models"
	"leadsweb/session"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// PageSize is the fixed number of leads requested per page
const PageSize = 5

// Messages shown to the user
const (
	MsgLoadFailed   = "Failed to load leads"
	MsgCreateFailed = "Failed to add lead"
)

// ErrCreateInFlight is returned when a create is submitted while another is pending
var ErrCreateInFlight = errors.New("a lead is already being added")

// API is the subset of the backend client the view needs
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	ListLeads(ctx context.Context, token string, page, limit int) (*models.LeadPage, error)
	CreateLead(ctx context.Context, token string, in models.LeadInput) (*models.Lead, error)
	UpdateLead(ctx context.Context, token string, id models.LeadID, in models.LeadInput) (*models.Lead, error)
	DeleteLead(ctx context.Context, token string, id models.LeadID) error
}

// Nav tells the front end where to go after an action
type Nav int

const (
	NavStay  Nav = iota // remain on the current screen
	NavLogin            // go to the login screen
	NavList             // go to the leads list
)

func (n Nav) String() string {
	switch n {
	case NavLogin:
		return "login"
	case NavList:
		return "list"
	default:
		return "stay"
	}
}

// Result is the outcome of a user action
type Result struct {
	Nav     Nav
	Message string
	// Stale is set when a list response arrived after a newer one was requested and was dropped
	Stale bool
}

// RowState is the presentation mode of one row
type RowState int

const (
	RowDisplay RowState = iota
	RowEditing
)

// Row is one lead as a front end should render it
type Row struct {
	Lead  models.Lead
	State RowState
	Draft models.LeadInput // only meaningful while State is RowEditing
}

// Editing reports whether the row shows its edit inputs
func (r Row) Editing() bool {
	return r.State == RowEditing
}

// Snapshot is a consistent copy of the view for rendering
type Snapshot struct {
	Page    int
	Pages   int
	Total   int
	Label   string
	HasPrev bool
	HasNext bool
	Rows    []Row
	Notice  string
	Adding  bool
}

// View is the state of one leads list session
type View struct {
	api   API
	store session.Store

	mu     sync.Mutex
	page   int
	pages  int
	total  int
	rows   []models.Lead
	states map[models.LeadID]RowState
	drafts map[models.LeadID]models.LeadInput
	notice string
	seq    uint64 // sequence number of the latest issued list request

	adding atomic.Bool
}

// NewView returns a view positioned on page 1
func NewView(api API, store session.Store) *View {
	return &View{
		api:    api,
		store:  store,
		page:   1,
		pages:  1,
		rows:   []models.Lead{},
		states: map[models.LeadID]RowState{},
		drafts: map[models.LeadID]models.LeadInput{},
	}
}

// Store returns the session store backing the view
func (v *View) Store() session.Store {
	return v.store
}

// Token returns the stored token, or "" when absent or unreadable
func (v *View) Token() string {
	tok, err := v.store.Get()
	if err != nil {
		logger.LogErr(err, "Failed to read session token")
		return ""
	}
	return tok
}

// Load fetches the current page and replaces every row with the response.
// Without a token it navigates to login and makes no request.
func (v *View) Load(ctx context.Context) Result {
	v.mu.Lock()
	page := v.page
	v.mu.Unlock()
	return v.load(ctx, page)
}

// load fetches page and makes it current only when the fetch succeeds, so a
// failed page change leaves the label and the rows on the same page.
func (v *View) load(ctx context.Context, page int) Result {
	token := v.Token()
	if token == "" {
		return Result{Nav: NavLogin}
	}

	v.mu.Lock()
	v.seq++
	seq := v.seq
	v.mu.Unlock()

	lp, err := v.api.ListLeads(ctx, token, page, PageSize)

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.seq {
		logger.Debug("Dropping stale list response", "seq", seq, "latest", v.seq, "page", page)
		return Result{Stale: true}
	}

	if err != nil {
		if leadsapi.IsUnauthorized(err) {
			logger.Info("Session rejected by backend, returning to login")
			if cerr := v.store.Clear(); cerr != nil {
				logger.LogErr(cerr, "Failed to clear session token")
			}
			v.resetLocked()
			return Result{Nav: NavLogin}
		}
		logger.LogErr(err, "Failed to load leads", "page", page)
		v.notice = MsgLoadFailed
		return Result{Message: MsgLoadFailed}
	}

	v.page = lp.Page
	v.pages = lp.Pages
	v.total = lp.Total
	v.rows = lp.Leads
	v.states = map[models.LeadID]RowState{}
	v.drafts = map[models.LeadID]models.LeadInput{}
	v.notice = ""
	return Result{}
}

// Prev loads the previous page; no-op on the first page
func (v *View) Prev(ctx context.Context) Result {
	v.mu.Lock()
	page := v.page
	v.mu.Unlock()
	if page <= 1 {
		return Result{}
	}
	return v.load(ctx, page-1)
}

// Next loads the following page; no-op on the last page
func (v *View) Next(ctx context.Context) Result {
	v.mu.Lock()
	page, pages := v.page, v.pages
	v.mu.Unlock()
	if page >= pages {
		return Result{}
	}
	return v.load(ctx, page+1)
}

// Edit puts a row into edit mode with a draft of its current values.
// It reports false for ids not on the current page.
func (v *View) Edit(id models.LeadID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	lead, ok := v.findLocked(id)
	if !ok {
		return false
	}
	if v.states[id] != RowEditing {
		v.states[id] = RowEditing
		v.drafts[id] = lead.ToInput()
	}
	return true
}

// SetDraft replaces the draft of a row in edit mode
func (v *View) SetDraft(id models.LeadID, in models.LeadInput) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.states[id] != RowEditing {
		return false
	}
	v.drafts[id] = in
	return true
}

// Draft returns the draft of a row in edit mode
func (v *View) Draft(id models.LeadID) (models.LeadInput, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.states[id] != RowEditing {
		return models.LeadInput{}, false
	}
	return v.drafts[id], true
}

// Save sends the row's draft as a full update and reloads the page.
// Rows not in edit mode are left alone.
func (v *View) Save(ctx context.Context, id models.LeadID) Result {
	draft, ok := v.Draft(id)
	if !ok {
		return Result{}
	}
	return v.SaveInput(ctx, id, draft)
}

// SaveInput sends in as the full record of lead id and reloads the page,
// whatever the row's local state. The web form posts the edited values
// with the request and saves through here.
// A failed update is logged; the reload shows what the backend holds.
func (v *View) SaveInput(ctx context.Context, id models.LeadID, in models.LeadInput) Result {
	token := v.Token()
	if token == "" {
		return Result{Nav: NavLogin}
	}

	if _, err := v.api.UpdateLead(ctx, token, id, in); err != nil {
		logger.LogErr(err, "Failed to save lead", "id", id.String())
	}
	return v.Load(ctx)
}

// Cancel drops the row's draft by reloading the page from the backend
func (v *View) Cancel(ctx context.Context, id models.LeadID) Result {
	logger.Debug("Cancel edit", "id", id.String())
	return v.Load(ctx)
}

// Delete removes a lead and reloads the page
func (v *View) Delete(ctx context.Context, id models.LeadID) Result {
	token := v.Token()
	if token == "" {
		return Result{Nav: NavLogin}
	}

	if err := v.api.DeleteLead(ctx, token, id); err != nil {
		logger.LogErr(err, "Failed to delete lead", "id", id.String())
	}
	return v.Load(ctx)
}

// Create submits a new lead and reloads the current page on success.
// Only one create may be pending; a second call returns ErrCreateInFlight
// without contacting the backend.
func (v *View) Create(ctx context.Context, in models.LeadInput) (Result, error) {
	if !v.adding.CompareAndSwap(false, true) {
		return Result{}, ErrCreateInFlight
	}
	defer v.adding.Store(false)

	v.mu.Lock()
	v.notice = ""
	v.mu.Unlock()

	token := v.Token()
	if token == "" {
		return Result{Nav: NavLogin}, nil
	}

	lead, err := v.api.CreateLead(ctx, token, in)
	if err != nil {
		if leadsapi.IsUnauthorized(err) {
			if cerr := v.store.Clear(); cerr != nil {
				logger.LogErr(cerr, "Failed to clear session token")
			}
			return Result{Nav: NavLogin}, serr.Wrap(err, "create rejected")
		}
		logger.LogErr(err, "Failed to add lead")
		v.mu.Lock()
		v.notice = MsgCreateFailed
		v.mu.Unlock()
		return Result{Message: MsgCreateFailed}, serr.Wrap(err, "failed to add lead")
	}

	logger.Info("Lead added", "id", lead.ID.String())
	return v.Load(ctx), nil
}

// Adding reports whether a create is pending
func (v *View) Adding() bool {
	return v.adding.Load()
}

// Logout clears the token and forgets the loaded page
func (v *View) Logout() Result {
	if err := v.store.Clear(); err != nil {
		logger.LogErr(err, "Failed to clear session token")
	}
	v.mu.Lock()
	v.resetLocked()
	v.mu.Unlock()
	return Result{Nav: NavLogin}
}

// Snapshot returns a copy of everything a front end renders
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	lp := models.LeadPage{Page: v.page, Pages: v.pages}
	snap := Snapshot{
		Page:    v.page,
		Pages:   v.pages,
		Total:   v.total,
		Label:   lp.Label(),
		HasPrev: lp.HasPrev(),
		HasNext: lp.HasNext(),
		Rows:    make([]Row, 0, len(v.rows)),
		Notice:  v.notice,
		Adding:  v.adding.Load(),
	}
	for _, l := range v.rows {
		row := Row{Lead: l, State: v.states[l.ID]}
		if row.State == RowEditing {
			row.Draft = v.drafts[l.ID]
		}
		snap.Rows = append(snap.Rows, row)
	}
	return snap
}

// Rows returns the rows of the current page
func (v *View) Rows() []Row {
	return v.Snapshot().Rows
}

// Page returns the current page number
func (v *View) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// Pages returns the page count reported by the last load
func (v *View) Pages() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pages
}

// Notice returns the current status message, if any
func (v *View) Notice() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notice
}

// SetPage positions the view on a page before the next Load. Values below 1 become 1.
func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.mu.Lock()
	v.page = page
	v.mu.Unlock()
}

func (v *View) findLocked(id models.LeadID) (models.Lead, bool) {
	for _, l := range v.rows {
		if l.ID == id {
			return l, true
		}
	}
	return models.Lead{}, false
}

func (v *View) resetLocked() {
	v.page = 1
	v.pages = 1
	v.total = 0
	v.rows = []models.Lead{}
	v.states = map[models.LeadID]RowState{}
	v.drafts = map[models.LeadID]models.LeadInput{}
	v.notice = ""
}

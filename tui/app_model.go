package tui

import (
	"context"

	"leadsweb/leads"
	"leadsweb/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenLogin screen = iota
	screenList
	screenAdd
)

// leadForm is a row of inputs for name, email and phone plus a status picker.
// Field 3 is the status; it cycles with space or left/right.
type leadForm struct {
	inputs    [3]textinput.Model
	statusIdx int
	focus     int
}

const formFields = 4

func newLeadForm() leadForm {
	var f leadForm
	for i, ph := range []string{"Name", "Email", "Phone"} {
		in := textinput.New()
		in.Placeholder = ph
		in.CharLimit = 200
		in.Width = 28
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

func (f *leadForm) fill(in models.LeadInput) {
	f.inputs[0].SetValue(in.Name)
	f.inputs[1].SetValue(in.Email)
	f.inputs[2].SetValue(in.Phone)
	f.statusIdx = 0
	for i, st := range models.Statuses() {
		if st == in.Status {
			f.statusIdx = i
		}
	}
}

func (f leadForm) value() models.LeadInput {
	return models.LeadInput{
		Name:   f.inputs[0].Value(),
		Email:  f.inputs[1].Value(),
		Phone:  f.inputs[2].Value(),
		Status: models.Statuses()[f.statusIdx],
	}
}

func (f *leadForm) next() {
	f.focus = (f.focus + 1) % formFields
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *leadForm) cycleStatus(delta int) {
	n := len(models.Statuses())
	f.statusIdx = (f.statusIdx + delta + n) % n
}

// update routes a key to the focused field and reports whether the value changed
func (f *leadForm) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	if f.focus == formFields-1 {
		switch msg.String() {
		case " ", "right", "l":
			f.cycleStatus(1)
			return true, nil
		case "left", "h":
			f.cycleStatus(-1)
			return true, nil
		}
		return false, nil
	}
	before := f.inputs[f.focus].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f.inputs[f.focus].Value() != before, cmd
}

// Messages carrying the outcome of a backend call
type (
	loginDoneMsg  struct{ res leads.Result }
	actionDoneMsg struct{ res leads.Result }
	createDoneMsg struct {
		res leads.Result
		err error
	}
)

type appModel struct {
	ctx  context.Context
	api  leads.API
	view *leads.View

	screen   screen
	width    int
	height   int
	message  string
	busy     bool
	selected int

	email    textinput.Model
	password textinput.Model
	loginIdx int

	editing models.LeadID // id of the row being edited, "" when none
	edit    leadForm
	add     leadForm
}

func newAppModel(ctx context.Context, api leads.API, view *leads.View) appModel {
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 200
	email.Width = 32
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 200
	password.Width = 32

	m := appModel{
		ctx:      ctx,
		api:      api,
		view:     view,
		screen:   screenLogin,
		email:    email,
		password: password,
		edit:     newLeadForm(),
		add:      newLeadForm(),
	}
	if view.Token() != "" {
		m.screen = screenList
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.screen == screenList {
		return m.loadCmd()
	}
	return textinput.Blink
}

func (m appModel) loadCmd() tea.Cmd {
	v, ctx := m.view, m.ctx
	return func() tea.Msg { return actionDoneMsg{res: v.Load(ctx)} }
}

func (m appModel) actionCmd(fn func(context.Context) leads.Result) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg { return actionDoneMsg{res: fn(ctx)} }
}

func (m appModel) loginCmd() tea.Cmd {
	ctx, api, store := m.ctx, m.api, m.view.Store()
	email, password := m.email.Value(), m.password.Value()
	return func() tea.Msg {
		return loginDoneMsg{res: leads.Login(ctx, api, store, email, password)}
	}
}

func (m appModel) createCmd(in models.LeadInput) tea.Cmd {
	v, ctx := m.view, m.ctx
	return func() tea.Msg {
		res, err := v.Create(ctx, in)
		return createDoneMsg{res: res, err: err}
	}
}

// selectedRow returns the highlighted row of the current page
func (m appModel) selectedRow() (leads.Row, bool) {
	rows := m.view.Rows()
	if m.selected < 0 || m.selected >= len(rows) {
		return leads.Row{}, false
	}
	return rows[m.selected], true
}

func (m *appModel) clampSelection() {
	n := len(m.view.Rows())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *appModel) toLogin(msg string) {
	m.screen = screenLogin
	m.editing = ""
	m.message = msg
	m.password.SetValue("")
	m.loginIdx = 0
	m.email.Focus()
	m.password.Blur()
}

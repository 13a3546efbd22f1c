package tui

import (
	"context"
	"errors"

	"leadsweb/leads"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case loginDoneMsg:
		m.busy = false
		if msg.res.Nav == leads.NavList {
			m.screen = screenList
			m.message = ""
			m.selected = 0
			m.view.SetPage(1)
			return m, m.loadCmd()
		}
		m.message = msg.res.Message
		return m, nil

	case actionDoneMsg:
		m.busy = false
		return m.afterAction(msg.res), nil

	case createDoneMsg:
		m.busy = false
		switch {
		case errors.Is(msg.err, leads.ErrCreateInFlight):
			return m, nil
		case msg.res.Nav == leads.NavLogin:
			m.toLogin("")
			return m, nil
		case msg.err != nil:
			m.message = msg.res.Message
			return m, nil
		}
		m.add = newLeadForm()
		m.screen = screenList
		return m.afterAction(msg.res), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenLogin:
			return m.updateLogin(msg)
		case screenAdd:
			return m.updateAdd(msg)
		default:
			if m.editing != "" {
				return m.updateEdit(msg)
			}
			return m.updateList(msg)
		}
	}
	return m, nil
}

// afterAction applies a view result: navigation, notices, selection bounds
func (m appModel) afterAction(res leads.Result) appModel {
	if res.Nav == leads.NavLogin {
		m.toLogin("")
		return m
	}
	if res.Stale {
		return m
	}
	m.message = m.view.Notice()
	m.editing = ""
	for _, row := range m.view.Rows() {
		if row.Editing() {
			m.editing = row.Lead.ID
		}
	}
	m.clampSelection()
	return m
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginIdx = 1 - m.loginIdx
		if m.loginIdx == 0 {
			m.email.Focus()
			m.password.Blur()
		} else {
			m.password.Focus()
			m.email.Blur()
		}
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.message = ""
		return m, m.loginCmd()
	case "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.loginIdx == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.view.Rows())-1 {
			m.selected++
		}
		return m, nil
	}

	// Everything below talks to the backend; one call at a time
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		if !m.view.Snapshot().HasPrev {
			return m, nil
		}
		m.busy = true
		m.selected = 0
		return m, m.actionCmd(m.view.Prev)
	case "right", "l":
		if !m.view.Snapshot().HasNext {
			return m, nil
		}
		m.busy = true
		m.selected = 0
		return m, m.actionCmd(m.view.Next)
	case "r":
		m.busy = true
		return m, m.loadCmd()
	case "e":
		row, ok := m.selectedRow()
		if !ok || !m.view.Edit(row.Lead.ID) {
			return m, nil
		}
		draft, _ := m.view.Draft(row.Lead.ID)
		m.editing = row.Lead.ID
		m.edit = newLeadForm()
		m.edit.fill(draft)
		return m, nil
	case "d":
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		id := row.Lead.ID
		m.busy = true
		return m, m.actionCmd(func(ctx context.Context) leads.Result { return m.view.Delete(ctx, id) })
	case "a":
		m.screen = screenAdd
		m.add = newLeadForm()
		m.message = ""
		return m, textinput.Blink
	case "L":
		m.toLogin("")
		m.view.Logout()
		return m, nil
	}
	return m, nil
}

func (m appModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.editing
	switch msg.String() {
	case "tab":
		m.edit.next()
		return m, nil
	case "ctrl+s", "enter":
		if m.busy {
			return m, nil
		}
		m.view.SetDraft(id, m.edit.value())
		m.busy = true
		return m, m.actionCmd(func(ctx context.Context) leads.Result { return m.view.Save(ctx, id) })
	case "esc":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.actionCmd(func(ctx context.Context) leads.Result { return m.view.Cancel(ctx, id) })
	}

	changed, cmd := m.edit.update(msg)
	if changed {
		m.view.SetDraft(id, m.edit.value())
	}
	return m, cmd
}

func (m appModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenList
		return m, nil
	case "tab":
		m.add.next()
		return m, nil
	case "enter", "ctrl+s":
		// the view also rejects a second submit while one is pending
		if m.busy || m.view.Adding() {
			return m, nil
		}
		m.busy = true
		return m, m.createCmd(m.add.value())
	}
	_, cmd := m.add.update(msg)
	return m, cmd
}

package tui

import (
	"fmt"
	"strings"

	"leadsweb/leads"
	"leadsweb/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func (m appModel) View() string {
	switch m.screen {
	case screenLogin:
		return m.viewLogin()
	case screenAdd:
		return m.viewAdd()
	default:
		return m.viewList()
	}
}

func (m appModel) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Leads - Login") + "\n\n")
	b.WriteString(m.email.View() + "\n")
	b.WriteString(m.password.View() + "\n\n")
	if m.message != "" {
		b.WriteString(errorStyle.Render(m.message) + "\n\n")
	}
	if m.busy {
		b.WriteString(mutedStyle.Render("Signing in...") + "\n")
	}
	b.WriteString(mutedStyle.Render("tab switch field · enter login · esc quit"))
	return boxStyle.Render(b.String())
}

// column widths for name, email, phone, status
var colWidths = [4]int{20, 28, 14, 12}

func cell(s string, w int) string {
	if lipgloss.Width(s) > w {
		r := []rune(s)
		if len(r) > w-1 {
			s = string(r[:w-1]) + "…"
		}
	}
	return lipgloss.NewStyle().Width(w).Render(s)
}

func (m appModel) viewList() string {
	snap := m.view.Snapshot()

	var b strings.Builder
	title := "Leads"
	if info, err := models.ParseTokenInfo(m.view.Token()); err == nil && info.Subject != "" {
		title += mutedStyle.Render("  signed in as " + info.Subject)
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	header := cell("Name", colWidths[0]) + cell("Email", colWidths[1]) +
		cell("Phone", colWidths[2]) + cell("Status", colWidths[3])
	b.WriteString(headerStyle.Render(header) + "\n")

	if len(snap.Rows) == 0 {
		b.WriteString(mutedStyle.Render("No leads on this page") + "\n")
	}
	for i, row := range snap.Rows {
		b.WriteString(m.renderRow(i, row) + "\n")
	}

	b.WriteString("\n" + pagerLine(snap) + "\n")

	if m.editing != "" {
		if changes := m.view.DraftChanges(m.editing); len(changes) > 0 {
			b.WriteString("\n" + mutedStyle.Render("Pending changes:") + "\n")
			for _, c := range changes {
				b.WriteString("  " + c.Field + ": " + renderDiff(c.Diffs) + "\n")
			}
		}
	}

	if m.message != "" {
		b.WriteString("\n" + errorStyle.Render(m.message) + "\n")
	}

	b.WriteString("\n" + mutedStyle.Render(m.helpLine()))
	return b.String()
}

func (m appModel) renderRow(i int, row leads.Row) string {
	if row.Editing() && row.Lead.ID == m.editing {
		fields := []string{
			m.edit.inputs[0].View(),
			m.edit.inputs[1].View(),
			m.edit.inputs[2].View(),
			m.statusPicker(m.edit),
		}
		return editStyle.Render("▸ ") + strings.Join(fields, " ")
	}

	l := row.Lead
	line := cell(l.Name, colWidths[0]) + cell(l.Email, colWidths[1]) +
		cell(l.Phone, colWidths[2]) + statusStyle(l.Status).Render(cell(string(l.Status), colWidths[3]))
	if i == m.selected {
		return selectedStyle.Render(line)
	}
	return line
}

func (m appModel) statusPicker(f leadForm) string {
	st := string(models.Statuses()[f.statusIdx])
	if f.focus == formFields-1 {
		return editStyle.Render("< " + st + " >")
	}
	return "  " + st + "  "
}

func pagerLine(snap leads.Snapshot) string {
	prev, next := "◂ prev", "next ▸"
	if !snap.HasPrev {
		prev = mutedStyle.Render(prev)
	}
	if !snap.HasNext {
		next = mutedStyle.Render(next)
	}
	return fmt.Sprintf("%s  %s  %s", prev, snap.Label, next)
}

func (m appModel) helpLine() string {
	if m.editing != "" {
		return "tab next field · space/←/→ status · ctrl+s save · esc cancel"
	}
	return "↑/↓ select · ←/→ page · e edit · d delete · a add · r reload · L logout · q quit"
}

func (m appModel) viewAdd() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add lead") + "\n\n")
	for _, in := range m.add.inputs {
		b.WriteString(in.View() + "\n")
	}
	b.WriteString(m.statusPicker(m.add) + "\n\n")
	if m.view.Adding() {
		b.WriteString(mutedStyle.Render("Adding...") + "\n")
	}
	if m.message != "" {
		b.WriteString(errorStyle.Render(m.message) + "\n")
	}
	b.WriteString(mutedStyle.Render("tab next field · enter add · esc back"))
	return boxStyle.Render(b.String())
}

// renderDiff colours a character diff: insertions green, deletions struck through
func renderDiff(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString(insertStyle.Render(d.Text))
		case diffmatchpatch.DiffDelete:
			b.WriteString(deleteStyle.Render(d.Text))
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

package leads

import (
	"strings"

	"leadsweb/models"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// FieldChange is one edited field of a draft
type FieldChange struct {
	Field string
	From  string
	To    string
	Diffs []diffmatchpatch.Diff
}

// Inline renders the change in wdiff style: [-removed-]{+added+}
func (c FieldChange) Inline() string {
	var sb strings.Builder
	for _, d := range c.Diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

// DraftChanges lists the fields whose draft differs from the loaded row.
// It returns nil when the row is not being edited or nothing changed.
func (v *View) DraftChanges(id models.LeadID) []FieldChange {
	v.mu.Lock()
	lead, ok := v.findLocked(id)
	draft, editing := v.drafts[id]
	editing = editing && v.states[id] == RowEditing
	v.mu.Unlock()

	if !ok || !editing {
		return nil
	}
	return diffInput(lead.ToInput(), draft)
}

func diffInput(from, to models.LeadInput) []FieldChange {
	pairs := []struct{ field, a, b string }{
		{"name", from.Name, to.Name},
		{"email", from.Email, to.Email},
		{"phone", from.Phone, to.Phone},
		{"status", string(from.Status), string(to.Status)},
	}

	dmp := diffmatchpatch.New()
	var changes []FieldChange
	for _, p := range pairs {
		if p.a == p.b {
			continue
		}
		diffs := dmp.DiffMain(p.a, p.b, false)
		diffs = dmp.DiffCleanupSemantic(diffs)
		changes = append(changes, FieldChange{Field: p.field, From: p.a, To: p.b, Diffs: diffs})
	}
	return changes
}

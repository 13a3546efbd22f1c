package models

import "fmt"

// LeadPage is one page of the lead list as returned by GET /api/leads.
// It is recomputed on every list fetch and never persisted.
type LeadPage struct {
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
	Limit int    `json:"limit"`
	Total int    `json:"total"`
	Leads []Lead `json:"leads"`
}

// Normalize clamps the cursor fields to their documented minimums.
// An empty table makes the backend report zero pages; the UI always shows at least one.
func (p *LeadPage) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Pages < 1 {
		p.Pages = 1
	}
	if p.Leads == nil {
		p.Leads = []Lead{}
	}
}

// Label renders the pager caption, e.g. "Page 2 / 3"
func (p LeadPage) Label() string {
	return fmt.Sprintf("Page %d / %d", p.Page, p.Pages)
}

// HasPrev reports whether the Prev control is enabled
func (p LeadPage) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether the Next control is enabled
func (p LeadPage) HasNext() bool {
	return p.Page < p.Pages
}

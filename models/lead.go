package models

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/rohanthewiz/serr"
)

// Status is the sales stage of a lead
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "In Progress"
	StatusConverted  Status = "Converted"
)

// Statuses returns every status in display order.
// Used to populate the status selector when a row is being edited.
func Statuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusConverted}
}

// ParseStatus converts a form value into a Status.
// Only the three exact labels are accepted; the backend rejects anything else.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", serr.New("unknown lead status: " + s)
}

// LeadID is an opaque lead identifier.
// The sqlite backend emits integers while the document-store backend emits
// hex strings, so the client keeps whatever textual form it was given and
// sends it back verbatim in /api/leads/{id} paths.
type LeadID string

// UnmarshalJSON accepts both JSON numbers and JSON strings
func (id *LeadID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return serr.Wrap(err, "failed to decode lead id string")
		}
		*id = LeadID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return serr.Wrap(err, "failed to decode lead id number")
	}
	*id = LeadID(n.String())
	return nil
}

// MarshalJSON emits numeric ids as numbers so a decoded page re-encodes unchanged
func (id LeadID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id LeadID) String() string {
	return string(id)
}

// Lead is a sales-contact record as returned by the backend
type Lead struct {
	ID     LeadID `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Status Status `json:"status"`
}

// LeadInput is the body of create and update requests (a Lead minus its id)
type LeadInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Status Status `json:"status"`
}

// ToInput returns the editable fields of the lead
func (l Lead) ToInput() LeadInput {
	return LeadInput{
		Name:   l.Name,
		Email:  l.Email,
		Phone:  l.Phone,
		Status: l.Status,
	}
}

// IsZero reports whether no field has been filled in
func (in LeadInput) IsZero() bool {
	return in.Name == "" && in.Email == "" && in.Phone == "" && in.Status == ""
}

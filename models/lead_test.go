package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestParseStatus tests that only the three stage labels are accepted.
func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"New", StatusNew, false},
		{"In Progress", StatusInProgress, false},
		{"Converted", StatusConverted, false},
		{"new", "", true},
		{"", "", true},
		{"Lost", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestLeadIDDecoding verifies ids decode from both numeric and string JSON.
func TestLeadIDDecoding(t *testing.T) {
	body := `{"page":2,"pages":3,"leads":[
		{"id":7,"name":"A","email":"a@x.com","phone":"1","status":"New"},
		{"id":"65f1c0ffee","name":"B","email":"b@x.com","phone":"2","status":"Converted"}
	]}`

	var page LeadPage
	if err := json.Unmarshal([]byte(body), &page); err != nil {
		t.Fatalf("failed to decode page: %v", err)
	}

	if len(page.Leads) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(page.Leads))
	}
	if page.Leads[0].ID != "7" {
		t.Errorf("expected numeric id to decode as \"7\", got %q", page.Leads[0].ID)
	}
	if page.Leads[1].ID != "65f1c0ffee" {
		t.Errorf("expected string id preserved, got %q", page.Leads[1].ID)
	}

	out, err := json.Marshal(page.Leads[0])
	if err != nil {
		t.Fatalf("failed to encode lead: %v", err)
	}
	if string(out) != `{"id":7,"name":"A","email":"a@x.com","phone":"1","status":"New"}` {
		t.Errorf("unexpected re-encoding: %s", out)
	}
}

// TestLeadPageBounds checks pager math, including the zero-pages response.
func TestLeadPageBounds(t *testing.T) {
	tests := []struct {
		name      string
		page      LeadPage
		wantLabel string
		wantPrev  bool
		wantNext  bool
	}{
		{"first of three", LeadPage{Page: 1, Pages: 3}, "Page 1 / 3", false, true},
		{"middle", LeadPage{Page: 2, Pages: 3}, "Page 2 / 3", true, true},
		{"last", LeadPage{Page: 3, Pages: 3}, "Page 3 / 3", true, false},
		{"single", LeadPage{Page: 1, Pages: 1}, "Page 1 / 1", false, false},
		{"empty table", LeadPage{Page: 1, Pages: 0}, "Page 1 / 1", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.page
			p.Normalize()
			if p.Label() != tt.wantLabel {
				t.Errorf("Label() = %q, want %q", p.Label(), tt.wantLabel)
			}
			if p.HasPrev() != tt.wantPrev {
				t.Errorf("HasPrev() = %v, want %v", p.HasPrev(), tt.wantPrev)
			}
			if p.HasNext() != tt.wantNext {
				t.Errorf("HasNext() = %v, want %v", p.HasNext(), tt.wantNext)
			}
			if p.Leads == nil {
				t.Error("Normalize should replace nil leads with an empty slice")
			}
		})
	}
}

// TestParseTokenInfo reads claims from an HS256 token without the key.
func TestParseTokenInfo(t *testing.T) {
	exp := time.Now().Add(8 * time.Hour).Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   "test@example.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("dev-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	info, err := ParseTokenInfo(token)
	if err != nil {
		t.Fatalf("ParseTokenInfo failed: %v", err)
	}
	if info.Subject != "test@example.com" {
		t.Errorf("expected subject test@example.com, got %q", info.Subject)
	}
	if !info.ExpiresAt.Equal(exp) {
		t.Errorf("expected expiry %v, got %v", exp, info.ExpiresAt)
	}
	if info.Expired(time.Now()) {
		t.Error("token should not be expired yet")
	}
	if !info.Expired(exp.Add(time.Minute)) {
		t.Error("token should be expired after exp")
	}

	t.Run("Opaque", func(t *testing.T) {
		if _, err := ParseTokenInfo("not-a-jwt"); err == nil {
			t.Error("expected error for opaque token")
		}
		if _, err := ParseTokenInfo(""); err == nil {
			t.Error("expected error for empty token")
		}
	})
}

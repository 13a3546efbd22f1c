package leadsapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"leadsweb/leadsapi"
	"leadsweb/leadsapi/leadstest"
	"leadsweb/models"
)

// TestClientAgainstBackend runs every endpoint against the fake backend.
func TestClientAgainstBackend(t *testing.T) {
	backend := leadstest.NewServer()
	defer backend.Close()

	ctx := context.Background()
	client := leadsapi.New(backend.URL+"/", leadsapi.WithTimeout(5*time.Second))

	var token string

	t.Run("LoginSuccess", func(t *testing.T) {
		tok, err := client.Login(ctx, leadstest.Email, leadstest.Password)
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if tok == "" {
			t.Fatal("expected a token")
		}
		token = tok

		reqs := backend.Requests()
		last := reqs[len(reqs)-1]
		var body map[string]string
		if err := json.Unmarshal([]byte(last.Body), &body); err != nil {
			t.Fatalf("login body is not JSON: %v", err)
		}
		if body["email"] != leadstest.Email || body["password"] != leadstest.Password {
			t.Errorf("unexpected login body: %v", body)
		}
		if last.Authorization != "" {
			t.Errorf("login must not carry a bearer header, got %q", last.Authorization)
		}
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		_, err := client.Login(ctx, leadstest.Email, "wrong")
		if err == nil {
			t.Fatal("expected error")
		}
		if !leadsapi.IsUnauthorized(err) {
			t.Errorf("expected unauthorized, got %v", err)
		}
		if !strings.Contains(err.Error(), "Invalid credentials") {
			t.Errorf("expected backend message in error, got %q", err.Error())
		}
	})

	t.Run("ListSendsBearerAndQuery", func(t *testing.T) {
		page, err := client.ListLeads(ctx, token, 1, 5)
		if err != nil {
			t.Fatalf("ListLeads failed: %v", err)
		}
		if page.Page != 1 || page.Pages != 1 || page.Total != 2 {
			t.Errorf("unexpected page: %+v", page)
		}
		if len(page.Leads) != 2 || page.Leads[0].Name != "Bob" {
			t.Errorf("expected newest-first leads, got %+v", page.Leads)
		}

		reqs := backend.Requests()
		last := reqs[len(reqs)-1]
		if last.Authorization != "Bearer "+token {
			t.Errorf("expected bearer header, got %q", last.Authorization)
		}
		if last.Query != "limit=5&page=1" {
			t.Errorf("unexpected query %q", last.Query)
		}
	})

	var created *models.Lead

	t.Run("Create", func(t *testing.T) {
		lead, err := client.CreateLead(ctx, token, models.LeadInput{
			Name: "Carol", Email: "carol@example.com", Phone: "555", Status: models.StatusConverted,
		})
		if err != nil {
			t.Fatalf("CreateLead failed: %v", err)
		}
		if lead.ID == "" || lead.Name != "Carol" || lead.Status != models.StatusConverted {
			t.Errorf("unexpected created lead: %+v", lead)
		}
		created = lead
	})

	t.Run("CreateInvalid", func(t *testing.T) {
		_, err := client.CreateLead(ctx, token, models.LeadInput{Name: "NoEmail"})
		var se *leadsapi.StatusError
		if !asStatus(err, &se) || se.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 StatusError, got %v", err)
		}
		if leadsapi.IsUnauthorized(err) {
			t.Error("400 must not count as unauthorized")
		}
	})

	t.Run("UpdateFullRecord", func(t *testing.T) {
		in := models.LeadInput{Name: "Carol B", Email: "carolb@example.com", Phone: "556", Status: models.StatusInProgress}
		lead, err := client.UpdateLead(ctx, token, created.ID, in)
		if err != nil {
			t.Fatalf("UpdateLead failed: %v", err)
		}
		if lead.ToInput() != in {
			t.Errorf("expected %+v, got %+v", in, lead.ToInput())
		}

		reqs := backend.Requests()
		last := reqs[len(reqs)-1]
		if last.Method != http.MethodPut || last.Path != "/api/leads/"+created.ID.String() {
			t.Errorf("unexpected request %s %s", last.Method, last.Path)
		}
		var body map[string]any
		_ = json.Unmarshal([]byte(last.Body), &body)
		for _, key := range []string{"name", "email", "phone", "status"} {
			if _, ok := body[key]; !ok {
				t.Errorf("update body missing %q: %v", key, body)
			}
		}
		if _, ok := body["id"]; ok {
			t.Error("update body must not carry the id")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := client.DeleteLead(ctx, token, created.ID); err != nil {
			t.Fatalf("DeleteLead failed: %v", err)
		}
		if _, ok := backend.Lead(created.ID); ok {
			t.Error("lead still present after delete")
		}
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		err := client.DeleteLead(ctx, token, "9999")
		var se *leadsapi.StatusError
		if !asStatus(err, &se) || se.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %v", err)
		}
	})

	t.Run("BadToken", func(t *testing.T) {
		_, err := client.ListLeads(ctx, "totally.invalid.token", 1, 5)
		if !leadsapi.IsUnauthorized(err) {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})

	t.Run("ServerErrorIsNotUnauthorized", func(t *testing.T) {
		backend.FailNext("/api/leads", http.StatusInternalServerError)
		_, err := client.ListLeads(ctx, token, 1, 5)
		if err == nil {
			t.Fatal("expected error")
		}
		if leadsapi.IsUnauthorized(err) {
			t.Error("500 must not count as unauthorized")
		}
		if !leadsapi.IsStatus(err) {
			t.Error("500 should be a StatusError")
		}
	})

	t.Run("ForbiddenIsUnauthorized", func(t *testing.T) {
		backend.FailNext("/api/leads", http.StatusForbidden)
		_, err := client.ListLeads(ctx, token, 1, 5)
		if !leadsapi.IsUnauthorized(err) {
			t.Errorf("expected 403 to count as unauthorized, got %v", err)
		}
	})
}

// TestClientTransportFailure verifies that an unreachable backend is not a StatusError.
func TestClientTransportFailure(t *testing.T) {
	backend := leadstest.NewServer()
	url := backend.URL
	backend.Close()

	client := leadsapi.New(url, leadsapi.WithTimeout(time.Second))
	_, err := client.Login(context.Background(), leadstest.Email, leadstest.Password)
	if err == nil {
		t.Fatal("expected error for closed backend")
	}
	if leadsapi.IsStatus(err) {
		t.Errorf("transport failure must not be a StatusError: %v", err)
	}
}

// TestStatusErrorMessage covers body fallbacks.
func TestStatusErrorMessage(t *testing.T) {
	se := &leadsapi.StatusError{Op: "list leads", StatusCode: 502}
	if se.Error() != "list leads: status 502" {
		t.Errorf("unexpected message %q", se.Error())
	}
	se.Message = "Bad gateway"
	if se.Error() != "list leads: status 502: Bad gateway" {
		t.Errorf("unexpected message %q", se.Error())
	}
}

func asStatus(err error, target **leadsapi.StatusError) bool {
	se, ok := err.(*leadsapi.StatusError)
	if ok {
		*target = se
	}
	return ok
}

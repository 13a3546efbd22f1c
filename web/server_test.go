package web_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"
	"time"

	"leadsweb/leadsapi"
	"leadsweb/leadsapi/leadstest"
	"leadsweb/web"

	"github.com/rohanthewiz/rweb"
)

type frontEnd struct {
	baseURL string
	client  *http.Client
	backend *leadstest.Server
}

// startFrontEnd runs the web front end on a dynamic port against a fake backend
func startFrontEnd(t *testing.T) *frontEnd {
	t.Helper()

	backend := leadstest.NewServer()
	t.Cleanup(backend.Close)

	readyChan := make(chan struct{}, 1)
	srv := web.NewServer(rweb.ServerOptions{
		Address:   "localhost:",
		ReadyChan: readyChan,
	}, leadsapi.New(backend.URL))

	go func() {
		_ = srv.Run()
	}()
	<-readyChan

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &frontEnd{
		baseURL: fmt.Sprintf("http://localhost:%s", srv.GetListenPort()),
		client:  &http.Client{Timeout: 5 * time.Second, Jar: jar},
		backend: backend,
	}
}

func (f *frontEnd) get(t *testing.T, path string) (string, string) {
	t.Helper()
	resp, err := f.client.Get(f.baseURL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return readPage(t, resp)
}

func (f *frontEnd) post(t *testing.T, path string, form url.Values) (string, string) {
	t.Helper()
	resp, err := f.client.PostForm(f.baseURL+path, form)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return readPage(t, resp)
}

// readPage returns the final path after redirects and the body
func readPage(t *testing.T, resp *http.Response) (string, string) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d for %s", resp.StatusCode, resp.Request.URL.Path)
	}
	return resp.Request.URL.Path, string(body)
}

func TestWebFrontEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	fe := startFrontEnd(t)

	t.Run("ListWithoutLoginRedirects", func(t *testing.T) {
		path, body := fe.get(t, "/leads")
		if path != "/login" {
			t.Errorf("expected redirect to /login, landed on %s", path)
		}
		if !strings.Contains(body, `id="login-form"`) {
			t.Error("expected login form")
		}
	})

	t.Run("BadLoginShowsMessage", func(t *testing.T) {
		path, body := fe.post(t, "/login", url.Values{"email": {leadstest.Email}, "password": {"nope"}})
		if path != "/login" {
			t.Errorf("expected to stay on /login, got %s", path)
		}
		if !strings.Contains(body, "Invalid email or password") {
			t.Error("expected inline login error")
		}
	})

	t.Run("LoginShowsLeads", func(t *testing.T) {
		path, body := fe.post(t, "/login", url.Values{"email": {leadstest.Email}, "password": {leadstest.Password}})
		if path != "/leads" {
			t.Fatalf("expected /leads after login, got %s", path)
		}
		if strings.Count(body, "<tr data-id=") != 2 {
			t.Errorf("expected 2 lead rows, got page:\n%s", body)
		}
		if !strings.Contains(body, "Page 1 / 1") {
			t.Error("expected pager label")
		}
	})

	t.Run("CreateAddsRow", func(t *testing.T) {
		_, body := fe.post(t, "/leads/create", url.Values{
			"name": {"Carol"}, "email": {"carol@example.com"}, "phone": {"555"}, "status": {"Converted"},
		})
		if !strings.Contains(body, "Carol") {
			t.Error("expected new lead on the page")
		}
		if fe.backend.LeadCount() != 3 {
			t.Errorf("expected 3 leads in backend, got %d", fe.backend.LeadCount())
		}
	})

	t.Run("EditThenSave", func(t *testing.T) {
		_, body := fe.post(t, "/leads/1/edit", nil)
		if !strings.Contains(body, `action="/leads/1/save"`) {
			t.Fatal("expected row 1 in edit mode")
		}

		_, body = fe.post(t, "/leads/1/save", url.Values{
			"name": {"Alicia"}, "email": {"alice@example.com"}, "phone": {"1234567890"}, "status": {"Converted"},
		})
		if !strings.Contains(body, "Alicia") {
			t.Error("expected saved name after reload")
		}
	})

	t.Run("SaveAfterReloadStillUpdates", func(t *testing.T) {
		fe.post(t, "/leads/3/edit", nil)

		// another tab on the same session reloads the list, dropping edit mode
		_, body := fe.get(t, "/leads")
		if strings.Contains(body, `action="/leads/3/save"`) {
			t.Fatal("reload should render row 3 in display mode")
		}

		puts := fe.backend.CountRequests(http.MethodPut, "/api/leads/3")
		_, body = fe.post(t, "/leads/3/save", url.Values{
			"name": {"Caroline"}, "email": {"carol@example.com"}, "phone": {"555"}, "status": {"In Progress"},
		})
		if n := fe.backend.CountRequests(http.MethodPut, "/api/leads/3") - puts; n != 1 {
			t.Errorf("expected one PUT for the posted row, got %d", n)
		}
		if l, _ := fe.backend.Lead("3"); l.Name != "Caroline" || l.Status != "In Progress" {
			t.Errorf("backend not updated: %+v", l)
		}
		if !strings.Contains(body, "Caroline") {
			t.Error("expected saved name after reload")
		}
	})

	t.Run("DeleteRemovesRow", func(t *testing.T) {
		_, body := fe.post(t, "/leads/2/delete", nil)
		if strings.Contains(body, `<tr data-id="2"`) {
			t.Error("deleted lead still rendered")
		}
	})

	t.Run("LogoutReturnsToLogin", func(t *testing.T) {
		path, _ := fe.post(t, "/logout", nil)
		if path != "/login" {
			t.Errorf("expected /login after logout, got %s", path)
		}
		path, _ = fe.get(t, "/leads")
		if path != "/login" {
			t.Errorf("expected /leads to require login again, got %s", path)
		}
	})
}

func TestStaticAssets(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	fe := startFrontEnd(t)

	resp, err := fe.client.Get(fe.baseURL + "/static/css/app.css")
	if err != nil {
		t.Fatalf("GET app.css failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for stylesheet, got %d", resp.StatusCode)
	}

	resp, err = fe.client.Get(fe.baseURL + "/static/missing.css")
	if err != nil {
		t.Fatalf("GET missing.css failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing asset, got %d", resp.StatusCode)
	}
}

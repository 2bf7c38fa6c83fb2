package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wuwenbin0122/userdash/internal/client"
	"github.com/wuwenbin0122/userdash/internal/dashboard"
	"github.com/wuwenbin0122/userdash/internal/models"
)

var mockAPIUsers = []models.User{
	{ID: 1, Name: "John Doe", Email: "johndoe@solutioncorp.com"},
	{ID: 2, Name: "Jane Doe", Email: "janedoe@megacorp.com"},
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestFetchUsersSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer abc" {
			t.Errorf("expected bearer token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(mockAPIUsers)
	}))
	defer server.Close()

	c := client.New(server.URL, client.WithToken("abc"))
	users, err := c.FetchUsers(context.Background())
	if err != nil {
		t.Fatalf("fetch users returned error: %v", err)
	}

	state := dashboard.NewState().Loaded(users)
	if len(state.All) != 2 || state.All[0].Name != "John Doe" {
		t.Fatalf("unexpected users: %+v", state.All)
	}
	if state.Error != "" {
		t.Fatalf("expected no error, got %q", state.Error)
	}
}

func TestFetchUsersServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to fetch user data"}`))
	}))
	defer server.Close()

	users, err := client.New(server.URL).FetchUsers(context.Background())
	if users != nil {
		t.Fatalf("expected no users on failure")
	}

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", apiErr.StatusCode)
	}

	state := dashboard.NewState().Failed(err)
	if state.Error != "Failed to fetch user data" {
		t.Fatalf("unexpected error message %q", state.Error)
	}
	if state.All != nil || state.Displayed != nil {
		t.Fatalf("user lists must not be updated on failure")
	}
}

func TestFetchUsersErrorWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	_, err := client.New(server.URL).FetchUsers(context.Background())
	if got := client.Message(err); got != client.FallbackMessage {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestFetchUsersUndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := client.New(server.URL).FetchUsers(context.Background())
	if err == nil {
		t.Fatalf("expected decode error")
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("decode failure must not look like a server error, got %+v", apiErr)
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected wrapped json syntax error, got %v", err)
	}
	if got := client.Message(err); got != client.FallbackMessage {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestFetchUsersNetworkError(t *testing.T) {
	c := client.New("http://users.invalid/api/users", client.WithHTTPClient(failingDoer{}))

	_, err := c.FetchUsers(context.Background())

	var netErr *client.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if client.Message(err) == "" {
		t.Fatalf("expected a user-facing message for network errors")
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("network failure must not look like a server error")
	}
}

func TestFetchUsersRequiresURL(t *testing.T) {
	if _, err := client.New("  ").FetchUsers(context.Background()); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wuwenbin0122/userdash/internal/dashboard"
	"github.com/wuwenbin0122/userdash/internal/models"
)

func newTestSession(users []models.User, err error) *session {
	load := func(context.Context) ([]models.User, error) { return users, err }
	sess := newSession(load, zap.NewNop())
	sess.fetch(context.Background())
	return sess
}

func mustApply(t *testing.T, sess *session, evt dashboardEvent) dashboardView {
	t.Helper()
	if err := sess.apply(context.Background(), evt); err != nil {
		t.Fatalf("apply %+v: %v", evt, err)
	}
	return sess.view()
}

func TestSessionSortFlow(t *testing.T) {
	sess := newTestSession(mockAPIUsers(), nil)

	view := mustApply(t, sess, dashboardEvent{Type: "click", Target: dashboard.ElementDropdownHead})
	if !view.Open || view.Label != dashboard.DefaultSortLabel {
		t.Fatalf("expected open dropdown with default label, got %+v", view)
	}

	view = mustApply(t, sess, dashboardEvent{Type: "click", Target: dashboard.DropdownItemID("Name")})
	if view.Open || view.Label != "Name" {
		t.Fatalf("expected closed dropdown labelled Name, got %+v", view)
	}
	if got := userNames(view.Users); !slices.Equal(got, []string{"Jane Doe", "John Doe"}) {
		t.Fatalf("expected ascending names, got %v", got)
	}

	view = mustApply(t, sess, dashboardEvent{Type: "click", Target: dashboard.ElementOrderButton})
	if view.Ascending {
		t.Fatalf("expected descending order")
	}
	if got := userNames(view.Users); !slices.Equal(got, []string{"John Doe", "Jane Doe"}) {
		t.Fatalf("expected descending names, got %v", got)
	}
}

func TestSessionSearchFlow(t *testing.T) {
	sess := newTestSession(mockAPIUsers(), nil)

	view := mustApply(t, sess, dashboardEvent{Type: "input", Value: "j"})
	if len(view.Users) != 2 {
		t.Fatalf("single character search should show every user, got %d", len(view.Users))
	}

	view = mustApply(t, sess, dashboardEvent{Type: "input", Value: "jane"})
	if got := userNames(view.Users); !slices.Equal(got, []string{"Jane Doe"}) {
		t.Fatalf("expected Jane only, got %v", got)
	}

	view = mustApply(t, sess, dashboardEvent{Type: "click", Target: dashboard.ElementSearchButton})
	if len(view.Users) != 1 {
		t.Fatalf("search button should keep the filtered list, got %d", len(view.Users))
	}
}

func TestSessionPointerDown(t *testing.T) {
	sess := newTestSession(mockAPIUsers(), nil)
	mustApply(t, sess, dashboardEvent{Type: "click", Target: dashboard.ElementDropdownHead})

	view := mustApply(t, sess, dashboardEvent{Type: "pointerdown", Target: dashboard.DropdownItemID("Email")})
	if !view.Open {
		t.Fatalf("pointer-down inside the dropdown must keep it open")
	}

	view = mustApply(t, sess, dashboardEvent{Type: "pointerdown", Target: dashboard.ElementBody})
	if view.Open {
		t.Fatalf("pointer-down on the body must close the dropdown")
	}
}

func TestSessionFetchFailure(t *testing.T) {
	sess := newTestSession(nil, errors.New("connection refused"))

	view := sess.view()
	if view.Error != fetchFailedMessage {
		t.Fatalf("expected fetch error, got %q", view.Error)
	}
	if len(view.Users) != 0 {
		t.Fatalf("expected no users after failure")
	}
}

func TestSessionReloadAfterFailure(t *testing.T) {
	fail := true
	load := func(context.Context) ([]models.User, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return mockAPIUsers(), nil
	}
	sess := newSession(load, zap.NewNop())
	sess.fetch(context.Background())
	if sess.view().Error == "" {
		t.Fatalf("expected fetch error before reload")
	}

	fail = false
	view := mustApply(t, sess, dashboardEvent{Type: "reload"})
	if view.Error != "" || len(view.Users) != 2 {
		t.Fatalf("expected reload to clear the error and load users, got %+v", view)
	}
}

func TestSessionUnknownEvent(t *testing.T) {
	sess := newTestSession(mockAPIUsers(), nil)
	if err := sess.apply(context.Background(), dashboardEvent{Type: "scroll"}); !errors.Is(err, errUnknownEvent) {
		t.Fatalf("expected unknown event error, got %v", err)
	}
}

func TestDashboardSocket(t *testing.T) {
	router := setupTestRouter(t, &stubStore{users: mockAPIUsers()}, nil)
	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/dashboard/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var initial dashboardView
	if err := conn.ReadJSON(&initial); err != nil {
		t.Fatalf("read initial view: %v", err)
	}
	if len(initial.Users) != 2 || initial.Label != dashboard.DefaultSortLabel {
		t.Fatalf("unexpected initial view %+v", initial)
	}

	if err := conn.WriteJSON(dashboardEvent{Type: "click", Target: dashboard.DropdownItemID("Email")}); err != nil {
		t.Fatalf("write event: %v", err)
	}

	var sorted dashboardView
	if err := conn.ReadJSON(&sorted); err != nil {
		t.Fatalf("read sorted view: %v", err)
	}
	if sorted.Users[0].Email != "janedoe@megacorp.com" {
		t.Fatalf("expected email ascending order, got %v", userNames(sorted.Users))
	}

	if err := conn.WriteJSON(dashboardEvent{Type: "wiggle"}); err != nil {
		t.Fatalf("write event: %v", err)
	}
	var failure map[string]any
	if err := conn.ReadJSON(&failure); err != nil {
		t.Fatalf("read error reply: %v", err)
	}
	if failure["error"] == nil {
		t.Fatalf("expected error reply for unknown event, got %v", failure)
	}
}

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wuwenbin0122/userdash/internal/dashboard"
	"github.com/wuwenbin0122/userdash/internal/models"
)

// Event types accepted on the dashboard socket.
const (
	eventInput       = "input"
	eventClick       = "click"
	eventPointerDown = "pointerdown"
	eventReload      = "reload"
)

var dashboardUpgrader = websocket.Upgrader{
	ReadBufferSize:  4 * 1024,
	WriteBufferSize: 16 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var errUnknownEvent = errors.New("unknown event")

type dashboardEvent struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Value  string `json:"value"`
}

type dashboardView struct {
	Search     string        `json:"search"`
	Open       bool          `json:"open"`
	Label      string        `json:"label"`
	Ascending  bool          `json:"ascending"`
	Categories []string      `json:"categories"`
	Users      []models.User `json:"users"`
	Error      string        `json:"error,omitempty"`
}

func newView(state dashboard.State) dashboardView {
	users := state.Visible()
	if users == nil {
		users = []models.User{}
	}
	return dashboardView{
		Search:     state.Search,
		Open:       state.Open,
		Label:      state.Label,
		Ascending:  state.Ascending,
		Categories: dashboard.Categories(dashboard.AcceptedCategories),
		Users:      users,
		Error:      state.Error,
	}
}

// session is one connected dashboard page. Events are applied in arrival order.
type session struct {
	state  dashboard.State
	layout *dashboard.Layout
	load   func(ctx context.Context) ([]models.User, error)
	logger *zap.Logger
}

func newSession(load func(ctx context.Context) ([]models.User, error), logger *zap.Logger) *session {
	return &session{
		state:  dashboard.NewState(),
		layout: dashboard.NewLayout(dashboard.AcceptedCategories),
		load:   load,
		logger: logger,
	}
}

// fetch loads the directory once and records either the users or the error.
func (s *session) fetch(ctx context.Context) {
	users, err := s.load(ctx)
	if err != nil {
		s.logger.Warn("dashboard fetch failed", zap.Error(err))
		s.state = s.state.Failed(errors.New(fetchFailedMessage))
		return
	}
	s.state = s.state.Loaded(users)
}

func (s *session) apply(ctx context.Context, evt dashboardEvent) error {
	switch strings.ToLower(evt.Type) {
	case eventInput:
		s.state = s.state.WithSearch(evt.Value)
	case eventPointerDown:
		s.state = s.state.CloseOnOutside(dashboard.PointerEvent{
			Type:   eventPointerDown,
			Target: s.layout.Resolve(evt.Target),
		}, s.layout.Dropdown)
	case eventClick:
		s.click(evt.Target)
	case eventReload:
		s.state.Error = ""
		s.fetch(ctx)
	default:
		return fmt.Errorf("%w: %q", errUnknownEvent, evt.Type)
	}
	return nil
}

func (s *session) click(target string) {
	el := s.layout.Resolve(target)

	switch el.ID {
	case dashboard.ElementSearchButton:
		s.state = s.state.ApplySearch()
	case dashboard.ElementDropdownHead:
		s.state = s.state.ToggleDropdown()
	case dashboard.ElementOrderButton:
		s.state = s.state.ToggleOrder()
	default:
		if category, ok := dashboard.ItemCategory(el); ok {
			s.state = s.state.SelectCategory(category)
		}
	}
}

func (s *session) view() dashboardView {
	return newView(s.state)
}

func (h *Handler) handleDashboardSocket(c *gin.Context) {
	conn, err := dashboardUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("dashboard websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	sess := newSession(h.store.ListUsers, h.logger)
	sess.fetch(ctx)

	if err := conn.WriteJSON(sess.view()); err != nil {
		h.logger.Debug("dashboard initial write failed", zap.Error(err))
		return
	}

	for {
		var evt dashboardEvent
		if err := conn.ReadJSON(&evt); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("dashboard read ended", zap.Error(err))
			}
			return
		}

		if err := sess.apply(ctx, evt); err != nil {
			if writeErr := conn.WriteJSON(gin.H{"error": err.Error()}); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(sess.view()); err != nil {
			h.logger.Debug("dashboard write failed", zap.Error(err))
			return
		}
	}
}

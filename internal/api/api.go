package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wuwenbin0122/userdash/internal/auth"
	"github.com/wuwenbin0122/userdash/internal/dashboard"
	"github.com/wuwenbin0122/userdash/internal/db"
	"github.com/wuwenbin0122/userdash/internal/models"
	"github.com/wuwenbin0122/userdash/internal/utils"
)

// fetchFailedMessage is the error body of a failed user listing.
const fetchFailedMessage = "Failed to fetch user data"

// UserStore is the read side of the user directory.
type UserStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int) (models.User, error)
}

type Handler struct {
	authService *auth.Service
	store       UserStore
	logger      *zap.Logger
}

// NewHandler wires the API. A nil authService leaves the routes open.
func NewHandler(authService *auth.Service, store UserStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = utils.Logger()
	}
	return &Handler{authService: authService, store: store, logger: logger}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestID(), requestLogger(h.logger))

	apiGroup := router.Group("/api")

	if h.authService != nil {
		apiGroup.POST("/auth/token", h.handleIssueToken)
	}

	protected := apiGroup.Group("")
	protected.Use(h.requireToken())
	protected.GET("/users", h.handleListUsers)
	protected.GET("/users/:id", h.handleGetUser)
	protected.GET("/view", h.handleView)
	protected.GET("/categories", h.handleCategories)
	protected.GET("/dashboard/ws", h.handleDashboardSocket)
}

type tokenRequest struct {
	AdminKey string `json:"adminKey"`
	Subject  string `json:"subject"`
}

func (h *Handler) handleIssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	result, err := h.authService.IssueToken(c.Request.Context(), auth.TokenInput{
		AdminKey: req.AdminKey,
		Subject:  req.Subject,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(c, http.StatusUnauthorized, err.Error(), err)
		default:
			writeError(c, http.StatusInternalServerError, "failed to issue token", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":     result.Token,
		"subject":   result.Subject,
		"expiresAt": result.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *Handler) handleListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, fetchFailedMessage, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *Handler) handleGetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrUserNotFound):
			writeError(c, http.StatusNotFound, "user not found", err)
		default:
			h.logger.Error("get user failed", zap.Int("id", id), zap.Error(err))
			writeError(c, http.StatusInternalServerError, fetchFailedMessage, err)
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

var errUnknownCategory = errors.New("unknown sort category")

// handleView applies search and sort server-side the way the dashboard does.
func (h *Handler) handleView(c *gin.Context) {
	search := c.Query("search")

	category := dashboard.CategoryNone
	if raw := strings.TrimSpace(c.Query("sort")); raw != "" {
		parsed, ok := dashboard.ParseCategory(raw)
		if !ok {
			writeError(c, http.StatusBadRequest, errUnknownCategory.Error(), errUnknownCategory)
			return
		}
		category = parsed
	}

	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, fetchFailedMessage, err)
		return
	}

	state := dashboard.NewState()
	state.Ascending = !strings.EqualFold(c.Query("order"), "desc")
	state = state.Loaded(users).WithSearch(search)
	if category != dashboard.CategoryNone {
		state = state.SelectCategory(category)
	}

	c.JSON(http.StatusOK, newView(state))
}

func (h *Handler) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default":    dashboard.DefaultSortLabel,
		"categories": dashboard.Categories(dashboard.AcceptedCategories),
	})
}

func (h *Handler) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.authService == nil {
			c.Next()
			return
		}

		token := auth.ParseAuthorization(c.GetHeader("Authorization"))
		if token == "" {
			// browsers cannot set headers on websocket upgrades
			token = strings.TrimSpace(c.Query("token"))
		}
		if token == "" {
			writeError(c, http.StatusUnauthorized, "missing bearer token", auth.ErrInvalidToken)
			c.Abort()
			return
		}

		claims, err := h.authService.VerifyToken(token)
		if err != nil {
			writeError(c, http.StatusUnauthorized, "invalid bearer token", err)
			c.Abort()
			return
		}

		c.Set("subject", claims.Subject)
		c.Next()
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("requestID")),
		)
	}
}

func writeError(c *gin.Context, status int, message string, err error) {
	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

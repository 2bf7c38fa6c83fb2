package db

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/wuwenbin0122/userdash/internal/models"
	"github.com/wuwenbin0122/userdash/internal/utils"
)

var (
	ErrUsersUnavailable = errors.New("db: users source unavailable")
	ErrUserNotFound     = errors.New("db: user not found")
)

// UserSource is a backend that holds the user directory.
type UserSource interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int) (models.User, error)
}

// UserStore reads users from the cache first, then from each source in order.
// A source reporting ErrUsersUnavailable or holding no users is skipped. When
// no source has users the fixture list is served if one was given.
type UserStore struct {
	cache    *Cache
	sources  []namedSource
	fixtures []models.User
	logger   *zap.Logger
}

type namedSource struct {
	name   string
	source UserSource
}

type StoreOption func(*UserStore)

func WithCache(cache *Cache) StoreOption {
	return func(s *UserStore) {
		s.cache = cache
	}
}

// WithSource appends a source. Nil sources are ignored.
func WithSource(name string, source UserSource) StoreOption {
	return func(s *UserStore) {
		if source == nil {
			return
		}
		s.sources = append(s.sources, namedSource{name: name, source: source})
	}
}

func WithFixtures(users []models.User) StoreOption {
	return func(s *UserStore) {
		s.fixtures = slices.Clone(users)
	}
}

func WithStoreLogger(logger *zap.Logger) StoreOption {
	return func(s *UserStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewUserStore(opts ...StoreOption) *UserStore {
	s := &UserStore{logger: utils.Logger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *UserStore) ListUsers(ctx context.Context) ([]models.User, error) {
	cached, ok, err := s.cache.Users(ctx)
	if err != nil {
		s.logger.Warn("user cache read failed", zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	answered := false
	for _, src := range s.sources {
		users, err := src.source.ListUsers(ctx)
		if err != nil {
			if errors.Is(err, ErrUsersUnavailable) {
				s.logger.Info("user source unavailable, trying next", zap.String("source", src.name), zap.Error(err))
				continue
			}
			return nil, fmt.Errorf("%s: %w", src.name, err)
		}
		answered = true
		if len(users) == 0 {
			s.logger.Info("user source empty, trying next", zap.String("source", src.name))
			continue
		}

		if err := s.cache.SetUsers(ctx, users); err != nil {
			s.logger.Warn("user cache write failed", zap.Error(err))
		}
		return users, nil
	}

	if s.fixtures != nil {
		return slices.Clone(s.fixtures), nil
	}
	if answered {
		return []models.User{}, nil
	}
	return nil, ErrUsersUnavailable
}

func (s *UserStore) GetUser(ctx context.Context, id int) (models.User, error) {
	for _, src := range s.sources {
		user, err := src.source.GetUser(ctx, id)
		if err == nil {
			return user, nil
		}
		if errors.Is(err, ErrUsersUnavailable) || errors.Is(err, ErrUserNotFound) {
			continue
		}
		return models.User{}, fmt.Errorf("%s: %w", src.name, err)
	}

	for _, u := range s.fixtures {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/avoronov/taskgo/internal/models"
	"github.com/avoronov/taskgo/internal/storage"
)

type userServiceImpl struct {
	logger zerolog.Logger
	users  storage.UserStore
}

func NewUserService(
	logger zerolog.Logger,
	users storage.UserStore,
) UserService {
	return &userServiceImpl{
		logger: logger,
		users:  users,
	}
}

func (s *userServiceImpl) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select users")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(users)).
		Msg("selected users")

	public := make([]models.PublicUser, len(users))
	for i := range users {
		public[i] = users[i].Public()
	}
	return public, nil
}

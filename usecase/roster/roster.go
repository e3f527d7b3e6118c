package roster

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/repository"
)

// UseCase is the identity and role store. The single super-admin id comes
// from configuration; everyone else registers as a regular user.
type UseCase struct {
	users   repository.UserRepository
	adminID int64
	logger  *zap.Logger
}

func New(users repository.UserRepository, adminID int64, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:   users,
		adminID: adminID,
		logger:  logger,
	}
}

// GetOrCreate looks the user up by id and registers them on first contact.
// The admin flag is decided once, at creation.
func (uc *UseCase) GetOrCreate(ctx context.Context, id int64, username, fullName string) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user = &domain.User{
		ID:       id,
		Username: username,
		FullName: fullName,
		IsAdmin:  id == uc.adminID,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.logger.Info("user registered",
		zap.Int64("user_id", id),
		zap.Bool("is_admin", user.IsAdmin))

	// Re-read so a racing first contact still yields the persisted row.
	return uc.users.GetByID(ctx, id)
}

// IsAdmin reports whether the id belongs to an admin. Unknown ids are plain
// non-admins, never an error. The role is looked up fresh on every call.
func (uc *UseCase) IsAdmin(ctx context.Context, id int64) (bool, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin, nil
}

// List returns every registered user.
func (uc *UseCase) List(ctx context.Context) ([]domain.User, error) {
	return uc.users.List(ctx)
}

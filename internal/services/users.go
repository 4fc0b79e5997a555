package services

//go:generate mockgen -source=users.go -destination=users_mock.go -package=services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/eduai-platform/internal/logger"
	"github.com/sbilibin2017/eduai-platform/internal/models"
	"github.com/sbilibin2017/eduai-platform/internal/repositories"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	Update(ctx context.Context, id, name, email string, role models.Role) (*models.User, error)
}

// UserService backs the user-id keyed REST endpoints. The caller supplies the
// user id and it is not checked against any session.
type UserService struct {
	reader UserReader
	writer UserWriter
	ledger *Ledger
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter, ledger *Ledger) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		ledger: ledger,
	}
}

// Register creates a user row for a new account.
func (svc *UserService) Register(ctx context.Context, creds models.Credentials) (*models.User, error) {
	creds = normalizeCredentials(creds)
	if creds.Email == "" || creds.Password == "" || creds.Name == "" {
		return nil, ErrMissingFields
	}
	if err := ValidateRegistration(creds); err != nil {
		return nil, err
	}

	role := creds.Role
	if role == "" {
		role = models.RoleStudent
	}

	user, err := svc.writer.Create(ctx, &models.User{
		ID:       "stack_" + uuid.NewString(),
		Email:    creds.Email,
		Name:     creds.Name,
		Role:     role,
		Provider: models.ProviderHosted,
	})
	if repositories.IsUniqueViolation(err) {
		logger.Log.Errorw("user already exists", "email", creds.Email)
		return nil, ErrUserAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to create user", "email", creds.Email, "err", err)
		return nil, err
	}
	return user, nil
}

// SyncUser returns the user with the given hosted id, creating it on first sight.
func (svc *UserService) SyncUser(ctx context.Context, userID, email, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if userID == "" || email == "" {
		return nil, ErrMissingFields
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user by email", "email", email, "err", err)
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	u := ProfileFromIdentity(models.HostedIdentity{ID: userID, Email: email, Name: name}, nil, models.RoleStudent)
	user, err = svc.writer.Create(ctx, &u)
	if err != nil {
		logger.Log.Errorw("failed to create user", "user_id", userID, "err", err)
		return nil, err
	}
	return user, nil
}

// UpdateProfile overwrites name, email and role of an existing user.
func (svc *UserService) UpdateProfile(ctx context.Context, userID, name, email string, role models.Role) (*models.User, error) {
	if userID == "" {
		return nil, ErrMissingFields
	}
	if role != "" && !role.Valid() {
		return nil, &ValidationError{Field: "role", Message: "Role must be student, educator or researcher"}
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	// omitted fields keep their stored value
	if name == "" || email == "" || role == "" {
		existing, err := svc.reader.GetByID(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
			return nil, err
		}
		if existing == nil {
			return nil, ErrUserNotFound
		}
		if name == "" {
			name = existing.Name
		}
		if email == "" {
			email = existing.Email
		}
		if role == "" {
			role = existing.Role
		}
	}

	user, err := svc.writer.Update(ctx, userID, name, email, role)
	if repositories.IsUniqueViolation(err) {
		return nil, ErrUserAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to update user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (svc *UserService) RecordCompletion(ctx context.Context, userID string, tutorialID int) error {
	return svc.ledger.RecordCompletion(ctx, userID, tutorialID)
}

func (svc *UserService) Progress(ctx context.Context, userID string) ([]models.Completion, error) {
	return svc.ledger.Progress(ctx, userID)
}

func (svc *UserService) LogUsage(ctx context.Context, userID, tool string, data map[string]any) (*models.UsageSession, error) {
	return svc.ledger.RecordUsage(ctx, userID, tool, data)
}

func (svc *UserService) Stats(ctx context.Context, userID string) (*models.Stats, error) {
	return svc.ledger.Stats(ctx, userID)
}

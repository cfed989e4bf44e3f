// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger

	// placeholderHash is compared against on unknown emails so both login
	// failures cost one bcrypt check.
	placeholderOnce sync.Once
	placeholderHash string
}

const placeholderPassword = "storefront-unknown-account"

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register hashes the password and inserts the user. There is no existence
// pre-check: the unique email index rejects duplicates atomically.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email and password are required")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			srv.log(ctx).Warn("Registration rejected, email already registered", slog.String("email", email))
		} else {
			srv.log(ctx).Error("Failed to create user", slog.String("email", email), slog.Any("error", err))
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.log(ctx).Info("User registered", slog.Uint64("userID", uint64(newUser.ID)))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login verifies the credentials and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.checkPlaceholder(input.Password)
			srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "unknown email"))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "password mismatch"))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, expiresAt, err := srv.tokenService.Issue(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Uint64("userID", uint64(user.ID)), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Uint64("userID", uint64(user.ID)))

	return &usecase.LoginOutput{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// checkPlaceholder spends the same bcrypt work a real password check would.
func (srv *userService) checkPlaceholder(password string) {
	srv.placeholderOnce.Do(func() {
		hash, err := srv.hasher.Hash(placeholderPassword)
		if err != nil {
			srv.logger.Warn("Failed to prepare placeholder hash", slog.Any("error", err))

			return
		}
		srv.placeholderHash = hash
	})

	if srv.placeholderHash != "" {
		srv.hasher.Check(password, srv.placeholderHash)
	}
}

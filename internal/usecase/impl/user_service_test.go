package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userServiceFixtures struct {
	service      usecase.UserUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	service := NewUserService(UserServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return userServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("pw1").Return("hashed_password", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			assert.Equal(t, "u@x.com", user.Email)
			assert.Equal(t, "hashed_password", user.PasswordHash)
			user.ID = 1
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{Email: "  U@X.com ", Password: "pw1"})

	require.NoError(t, err)
	assert.Equal(t, uint(1), output.User.ID)
	assert.Equal(t, "u@x.com", output.User.Email)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("pw1").Return("hashed_password", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists"))

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{Email: "u@x.com", Password: "pw1"})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserService_Register_RequiresCredentials(t *testing.T) {
	fx := createTestUserService(t)

	for _, input := range []*usecase.RegisterInput{
		{Email: "", Password: "pw1"},
		{Email: "   ", Password: "pw1"},
		{Email: "u@x.com", Password: ""},
	} {
		_, err := fx.service.Register(context.Background(), input)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	}
}

func TestUserService_Register_HashFailure(t *testing.T) {
	fx := createTestUserService(t)

	fx.hasher.EXPECT().Hash("pw1").Return("", domainerrors.ErrPasswordHashFailed)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{Email: "u@x.com", Password: "pw1"})
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "a@b.com", PasswordHash: "hash"}
	expiresAt := time.Now().Add(time.Hour)

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@b.com").Return(user, nil)
	fx.hasher.EXPECT().Check("pw1", "hash").Return(true)
	fx.tokenService.EXPECT().Issue(user).Return("signed.token", expiresAt, nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "A@B.com", Password: "pw1"})

	require.NoError(t, err)
	assert.Equal(t, "signed.token", output.AccessToken)
	assert.Equal(t, expiresAt, output.ExpiresAt)
	assert.Same(t, user, output.User)
}

func TestUserService_Login_InvalidCredentials(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		fx := createTestUserService(t)
		fx.userRepo.EXPECT().FindByEmail(mock.Anything, "a@b.com").Return(nil, repository.ErrUserNotFound)
		fx.hasher.EXPECT().Hash(placeholderPassword).Return("placeholder-hash", nil).Once()
		fx.hasher.EXPECT().Check("pw1", "placeholder-hash").Return(false).Twice()

		for range 2 {
			_, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "a@b.com", Password: "pw1"})
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
		}
	})

	t.Run("unknown email without placeholder hash", func(t *testing.T) {
		fx := createTestUserService(t)
		fx.userRepo.EXPECT().FindByEmail(mock.Anything, "a@b.com").Return(nil, repository.ErrUserNotFound)
		fx.hasher.EXPECT().Hash(placeholderPassword).Return("", domainerrors.ErrPasswordHashFailed).Once()

		_, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "a@b.com", Password: "pw1"})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("wrong password", func(t *testing.T) {
		fx := createTestUserService(t)
		fx.userRepo.EXPECT().FindByEmail(mock.Anything, "a@b.com").Return(&entity.User{ID: 7, PasswordHash: "hash"}, nil)
		fx.hasher.EXPECT().Check("wrong", "hash").Return(false)

		_, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "a@b.com", Password: "wrong"})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})
}

func TestUserService_Login_StoreFailure(t *testing.T) {
	fx := createTestUserService(t)
	storeErr := errors.New("connection refused")
	fx.userRepo.EXPECT().FindByEmail(mock.Anything, "a@b.com").Return(nil, storeErr)

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "a@b.com", Password: "pw1"})
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Register_AcceptsWhitespacePassword(t *testing.T) {
	fx := createTestUserService(t)

	fx.hasher.EXPECT().Hash("   ").Return("hashed_password", nil)
	fx.userRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{Email: "u@x.com", Password: "   "})
	assert.NoError(t, err)
}

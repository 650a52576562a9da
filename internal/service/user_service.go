package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/AymanChabbaki/tutor-MVP/internal/platform/logger"
	"github.com/AymanChabbaki/tutor-MVP/internal/service/auth"
	"github.com/AymanChabbaki/tutor-MVP/internal/store"
)

// TokenPair carries a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides account registration, authentication, and profile
// operations.
type UserService interface {
	// Register creates a new user account and issues a token pair.
	// Returns store.ErrEmailExists when the email is already taken.
	Register(ctx context.Context, name, email, password string, lang domain.Language) (*domain.User, *TokenPair, error)

	// Login verifies the email/password pair and issues a token pair.
	// Returns auth.ErrInvalidCredentials when the pair does not match;
	// a missing account is indistinguishable from a wrong password.
	Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error)

	// Refresh validates a refresh token and issues a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateLanguage changes a user's preferred output language.
	UpdateLanguage(ctx context.Context, userID uuid.UUID, lang domain.Language) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	verifier   auth.PasswordVerifier
	db         *sql.DB
	logger     *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	jwtService auth.JWTService,
	verifier auth.PasswordVerifier,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore:  userStore,
		jwtService: jwtService,
		verifier:   verifier,
		db:         db,
		logger:     logger.With("component", "user_service"),
	}
}

// Register implements UserService.Register
// User creation runs in a transaction so a failure to persist never leaks a
// half-created account.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	name, email, password string,
	lang domain.Language,
) (*domain.User, *TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email, password, lang)
	if err != nil {
		return nil, nil, NewServiceError("register", "invalid user data", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration attempted with existing email", "email", email)
			return nil, nil, err
		}
		log.Error("failed to persist new user", "error", err)
		return nil, nil, NewServiceError("register", "failed to save user", err)
	}

	pair, err := s.issueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	log.Info("user registered", "user_id", user.ID)
	return user, pair, nil
}

// Login implements UserService.Login
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("login attempted for unknown email")
			return nil, nil, auth.ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", "error", err)
		return nil, nil, NewServiceError("login", "failed to look up user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login attempted with wrong password", "user_id", user.ID)
		return nil, nil, auth.ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	log.Info("user logged in", "user_id", user.ID)
	return user, pair, nil
}

// Refresh implements UserService.Refresh
// The user is re-fetched so tokens for deleted accounts stop working at
// refresh time.
func (s *UserServiceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if _, err := s.userStore.GetByID(ctx, claims.UserID); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("refresh attempted for deleted user", "user_id", claims.UserID)
			return nil, auth.ErrInvalidToken
		}
		return nil, NewServiceError("refresh", "failed to look up user", err)
	}

	return s.issueTokenPair(ctx, claims.UserID)
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}

// UpdateLanguage implements UserService.UpdateLanguage
func (s *UserServiceImpl) UpdateLanguage(ctx context.Context, userID uuid.UUID, lang domain.Language) error {
	if !lang.Valid() {
		return NewServiceError("update_language", "invalid language preference", domain.ErrInvalidLanguage)
	}
	return s.userStore.UpdateLanguage(ctx, userID, lang)
}

func (s *UserServiceImpl) issueTokenPair(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	access, err := s.jwtService.GenerateToken(ctx, userID)
	if err != nil {
		return nil, NewServiceError("issue_tokens", "failed to generate access token", err)
	}

	refresh, err := s.jwtService.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, NewServiceError("issue_tokens", "failed to generate refresh token", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

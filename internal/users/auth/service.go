// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/constants"
	"github.com/taibuivan/yomira-social/internal/platform/sec"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
	"github.com/taibuivan/yomira-social/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	settings          Settings
	logger            *slog.Logger
	now               func() time.Time
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
	settings Settings,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		settings:          settings.withDefaults(),
		logger:            logger,
		now:               time.Now,
	}
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

/*
Register validates, hashes, and persists a brand new user account, then signs
it in.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *LoginSession: Session for the new account, counters at zero
  - err: DuplicateAccount (if identity exists), ValidationError, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*LoginSession, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Username(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldFirstName, input.FirstName, 50).
		MaxLen(FieldLastName, input.LastName, 50)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Friendly pre-check; the repository re-checks atomically on insert.
	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.DuplicateAccount("User already exists")
	}
	if _, err := service.userRepository.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.DuplicateAccount("User already exists")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         sec.RoleMember,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID), slog.String("username", user.Username))

	return service.openSession(context, user)
}

// # Authentication Flow

/*
Login validates credentials and issues a session.

Parameters:
  - context: context.Context
  - login: string (email, or username as a fallback)
  - password: string

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: InvalidCredentials or internal failures
*/
func (service *Service) Login(context context.Context, login, password string) (*LoginSession, error) {
	login = strings.TrimSpace(login)

	user, err := service.userRepository.FindByEmail(context, login)
	if err != nil {
		user, err = service.userRepository.FindByUsername(context, login)
	}

	// Generic message to prevent enumeration.
	if err != nil {
		if !apperr.IsNotFound(err) {
			return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
		}
		return nil, apperr.InvalidCredentials()
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))

	return service.openSession(context, user)
}

// openSession mints an access token and a tracked refresh token for user.
func (service *Service) openSession(context context.Context, user *User) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), service.settings.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(constants.RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		ExpiresAt: service.now().Add(service.settings.RefreshTokenTTL),
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

/*
Logout revokes the session behind refreshToken.

Description: Idempotent. Unknown or already revoked tokens succeed.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if err := service.sessionRepository.Revoke(context, sec.HashToken(refreshToken)); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
Refresh issues a new access token for an active refresh session.

Description: The refresh token itself is not rotated; clients keep using the
one they hold until it expires or is revoked.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - string: New access token
  - err: NoRefreshToken, SessionExpired, or storage failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", apperr.NoRefreshToken()
	}

	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.SessionExpired("Invalid or expired refresh token")
		}
		return "", fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
	}

	if !session.Active(service.now()) {
		return "", apperr.SessionExpired("Invalid or expired refresh token")
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return "", apperr.SessionExpired("User not found")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), service.settings.AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	service.logger.Debug("access_token_refreshed", slog.String("user_id", user.ID))

	return accessToken, nil
}

/*
ChangePassword updates the credentials of an authenticated user.

Description: Existing sessions and tokens stay valid.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - err: WrongPassword, ValidationError, or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, currentPassword).
		MinLen(FieldNewPassword, newPassword, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.WrongPassword()
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	service.logger.Info("user_password_changed", slog.String("user_id", userID))

	return nil
}

// Me returns the account behind the current access token.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

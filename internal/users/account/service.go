// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/constants"
	"github.com/taibuivan/yomira-social/internal/platform/validate"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// # Service Layer

// Service orchestrates business logic for public profiles.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Lookup

/*
GetProfile retrieves an account with relationship flags for viewerID.

Parameters:
  - context: context.Context
  - viewerID: string (empty for anonymous)
  - userID: string

Returns:
  - *Profile: The hydrated profile
  - error: apperr.NotFound or execution failures
*/
func (service *Service) GetProfile(context context.Context, viewerID, userID string) (*Profile, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return service.withRelationship(context, viewerID, user)
}

// GetProfileByUsername is [Service.GetProfile] keyed by handle.
func (service *Service) GetProfileByUsername(context context.Context, viewerID, username string) (*Profile, error) {
	user, err := service.accountRepository.FindByUsername(context, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	return service.withRelationship(context, viewerID, user)
}

func (service *Service) withRelationship(context context.Context, viewerID string, user *auth.User) (*Profile, error) {
	relationship, err := service.accountRepository.Relationship(context, viewerID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("account_service_relationship_failed: %w", err)
	}

	return &Profile{
		User:          *user,
		IsFollowing:   relationship.IsFollowing,
		IsFollower:    relationship.IsFollower,
		MutualFollows: relationship.MutualFollows,
	}, nil
}

// GetStats returns the aggregate statistics of userID.
func (service *Service) GetStats(context context.Context, userID string) (*Stats, error) {
	return service.accountRepository.Stats(context, userID)
}

// # Discovery

/*
Search lists accounts matching query.

Description: A blank query matches nothing and returns an empty page.

Parameters:
  - context: context.Context
  - query: string
  - params: pagination.Params

Returns:
  - []*auth.User: Page of matches
  - pagination.Meta
  - error: Storage failures
*/
func (service *Service) Search(context context.Context, query string, params pagination.Params) ([]*auth.User, pagination.Meta, error) {
	params = params.Normalize(pagination.DefaultLimit)

	if strings.TrimSpace(query) == "" {
		return []*auth.User{}, pagination.NewMeta(params.Page, params.Limit, 0), nil
	}

	users, total, err := service.accountRepository.Search(context, strings.TrimSpace(query), params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("account_service_search_failed: %w", err)
	}

	return users, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Recommended returns up to [RecommendedLimit] accounts viewerID might follow.
func (service *Service) Recommended(context context.Context, viewerID string) ([]*auth.User, error) {
	users, err := service.accountRepository.Recommended(context, viewerID, RecommendedLimit)
	if err != nil {
		return nil, fmt.Errorf("account_service_recommended_failed: %w", err)
	}
	return users, nil
}

// # Availability

// UsernameAvailability reports whether username can be registered.
func (service *Service) UsernameAvailability(context context.Context, username string) (*Availability, error) {
	username = strings.TrimSpace(username)

	taken, err := service.accountRepository.UsernameTaken(context, username)
	if err != nil {
		return nil, fmt.Errorf("account_service_username_availability_failed: %w", err)
	}
	return &Availability{Username: username, IsAvailable: !taken}, nil
}

// EmailAvailability reports whether email can be registered.
func (service *Service) EmailAvailability(context context.Context, email string) (*Availability, error) {
	email = strings.TrimSpace(email)

	taken, err := service.accountRepository.EmailTaken(context, email)
	if err != nil {
		return nil, fmt.Errorf("account_service_email_availability_failed: %w", err)
	}
	return &Availability{Email: email, IsAvailable: !taken}, nil
}

// # Profile Management

/*
UpdateProfile applies a partial set of changes to the caller's profile.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: ValidationError, apperr.NotFound, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	if input.Empty() {
		return nil, apperr.ValidationError("No profile fields to update")
	}

	validator := &validate.Validator{}
	validator.OptionalMaxLen(FieldFirstName, input.FirstName, MaxNameLength).
		OptionalMaxLen(FieldLastName, input.LastName, MaxNameLength).
		OptionalMaxLen(FieldBio, input.Bio, constants.MaxBioLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.accountRepository.UpdateProfile(context, userID, input)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package verification implements the account verification workflow.

	not_submitted -> pending -> approved
	                         -> rejected -> pending (resubmission)

An account may submit only when it meets every [Requirements] entry and has no
pending or approved request. Approval sets the account's isVerified flag.
*/
package verification

import (
	"time"

	"github.com/taibuivan/yomira-social/internal/users/auth"
)

// Status is the state of a verification request.
type Status string

const (
	StatusNotSubmitted Status = "not_submitted"
	StatusPending      Status = "pending"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
)

// Blocks reports whether a request in this state prevents a new submission.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusApproved
}

// Request is the latest verification request of an account.
type Request struct {
	UserID      string     `json:"userId"`
	Status      Status     `json:"status"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	Reason      string     `json:"reason,omitempty"`
}

// Requirements are the eligibility thresholds for submitting.
type Requirements struct {
	MinFollowers      int  `json:"minFollowers"`
	MinPosts          int  `json:"minPosts"`
	AccountAge        int  `json:"accountAge"` // days
	HasProfilePicture bool `json:"hasProfilePicture"`
	HasBio            bool `json:"hasBio"`
}

// DefaultRequirements are the thresholds applied by the service.
var DefaultRequirements = Requirements{
	MinFollowers:      100,
	MinPosts:          10,
	AccountAge:        30,
	HasProfilePicture: true,
	HasBio:            true,
}

// Requirement field names used in validation details.
const (
	FieldFollowers = "followersCount"
	FieldPosts     = "postsCount"
	FieldAge       = "accountAge"
	FieldAvatar    = "avatar"
	FieldBio       = "bio"
)

// Eligibility is the answer to "may this account submit now".
type Eligibility struct {
	CanSubmit bool     `json:"canSubmit"`
	Status    Status   `json:"status"`
	Unmet     []string `json:"unmet"`
}

// VerifiedUsersLimit is the default page size of the verified users listing.
const VerifiedUsersLimit = 20

/*
Unmet lists the requirement fields user fails at now.

Parameters:
  - requirements: Requirements
  - user: *auth.User
  - now: time.Time

Returns:
  - []string: Field names, empty when every requirement is met
*/
func (requirements Requirements) Unmet(user *auth.User, now time.Time) []string {
	unmet := []string{}

	if user.FollowersCount < requirements.MinFollowers {
		unmet = append(unmet, FieldFollowers)
	}
	if user.PostsCount < requirements.MinPosts {
		unmet = append(unmet, FieldPosts)
	}
	if ageDays := int(now.Sub(user.CreatedAt).Hours() / 24); ageDays < requirements.AccountAge {
		unmet = append(unmet, FieldAge)
	}
	if requirements.HasProfilePicture && user.Avatar == "" {
		unmet = append(unmet, FieldAvatar)
	}
	if requirements.HasBio && user.Bio == "" {
		unmet = append(unmet, FieldBio)
	}

	return unmet
}

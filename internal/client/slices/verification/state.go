// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package verification tracks the viewer's verification request and the
// public verified-users listing.
package verification

import (
	"github.com/taibuivan/yomira-social/internal/social/verification"
	"github.com/taibuivan/yomira-social/internal/users/auth"
)

type State struct {
	Status        verification.Status        `json:"status"`
	Request       *verification.Request      `json:"request,omitempty"`
	Requirements  *verification.Requirements `json:"requirements,omitempty"`
	Eligibility   *verification.Eligibility  `json:"eligibility,omitempty"`
	VerifiedUsers []*auth.User               `json:"verifiedUsers"`
	IsLoading     bool                       `json:"isLoading"`
	IsSubmitting  bool                       `json:"isSubmitting"`
	Error         string                     `json:"error,omitempty"`
}

func Initial() State {
	return State{Status: verification.StatusNotSubmitted, VerifiedUsers: []*auth.User{}}
}

// # Events

type Op string

const (
	OpSubmit       Op = "submit"
	OpStatus       Op = "status"
	OpRequirements Op = "requirements"
	OpEligibility  Op = "eligibility"
	OpVerified     Op = "verified"
	OpReview       Op = "review"
)

var defaultMessages = map[Op]string{
	OpSubmit:       "Failed to submit verification",
	OpStatus:       "Failed to fetch verification status",
	OpRequirements: "Failed to fetch verification requirements",
	OpEligibility:  "Failed to check verification eligibility",
	OpVerified:     "Failed to fetch verified users",
	OpReview:       "Failed to review verification",
}

type Event interface{ verificationEvent() }

type (
	Pending struct{ Op Op }

	// RequestLoaded stores the viewer's own request.
	RequestLoaded struct{ Request *verification.Request }

	RequirementsLoaded struct{ Requirements verification.Requirements }
	EligibilityLoaded  struct{ Eligibility verification.Eligibility }
	VerifiedLoaded     struct{ Users []*auth.User }

	// Reviewed records a moderator decision on someone else's request; the
	// viewer's own status is untouched.
	Reviewed struct{ Request *verification.Request }

	Failed struct {
		Op      Op
		Message string
	}

	Reset        struct{}
	ErrorCleared struct{}
)

func (Pending) verificationEvent()            {}
func (RequestLoaded) verificationEvent()      {}
func (RequirementsLoaded) verificationEvent() {}
func (EligibilityLoaded) verificationEvent()  {}
func (VerifiedLoaded) verificationEvent()     {}
func (Reviewed) verificationEvent()           {}
func (Failed) verificationEvent()             {}
func (Reset) verificationEvent()              {}
func (ErrorCleared) verificationEvent()       {}

// # Reducer

func Reduce(current State, event Event) State {
	next := current

	switch event := event.(type) {
	case Pending:
		if event.Op == OpSubmit {
			next.IsSubmitting = true
		} else {
			next.IsLoading = true
		}
		next.Error = ""

	case RequestLoaded:
		next.IsLoading, next.IsSubmitting = false, false
		next.Request = event.Request
		next.Status = verification.StatusNotSubmitted
		if event.Request != nil {
			next.Status = event.Request.Status
		}
		// A new request invalidates the last eligibility answer.
		next.Eligibility = nil

	case RequirementsLoaded:
		next.IsLoading = false
		requirements := event.Requirements
		next.Requirements = &requirements

	case EligibilityLoaded:
		next.IsLoading = false
		eligibility := event.Eligibility
		next.Eligibility = &eligibility

	case VerifiedLoaded:
		next.IsLoading = false
		next.VerifiedUsers = event.Users

	case Reviewed:
		next.IsLoading = false

	case Failed:
		next.IsLoading, next.IsSubmitting = false, false
		next.Error = event.Message
		if next.Error == "" {
			next.Error = defaultMessages[event.Op]
		}

	case Reset:
		next = Initial()

	case ErrorCleared:
		next.Error = ""
	}

	return next
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remote

import (
	"context"

	"github.com/taibuivan/yomira-social/internal/social/verification"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

type reviewBody struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason,omitempty"`
}

func (client *Client) VerificationRequirements(context context.Context) (verification.Requirements, error) {
	return call[verification.Requirements](context, client, getRequest("/verification/requirements", nil))
}

func (client *Client) VerificationStatus(context context.Context) (*verification.Request, error) {
	return call[*verification.Request](context, client, getRequest("/verification/status", nil))
}

func (client *Client) VerificationEligibility(context context.Context) (verification.Eligibility, error) {
	return call[verification.Eligibility](context, client, getRequest("/verification/eligibility", nil))
}

func (client *Client) SubmitVerification(context context.Context) (*verification.Request, error) {
	return call[*verification.Request](context, client, postRequest("/verification/submit", nil))
}

// ReviewVerification decides a pending request. Moderators only.
func (client *Client) ReviewVerification(context context.Context, userID string, approve bool, reason string) (*verification.Request, error) {
	return call[*verification.Request](context, client, postRequest(path("/verification/review/%s", userID), reviewBody{Approve: approve, Reason: reason}))
}

func (client *Client) VerifiedUsers(context context.Context, params pagination.Params) (Page[*auth.User], error) {
	return callPage[*auth.User](context, client, getRequest("/verification/verified-users", pageQuery(params)))
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package verification

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-social/internal/platform/apperr"
	"github.com/taibuivan/yomira-social/internal/platform/dberr"
	"github.com/taibuivan/yomira-social/internal/platform/postgres"
	"github.com/taibuivan/yomira-social/internal/users/auth"
	"github.com/taibuivan/yomira-social/pkg/pagination"
)

// PostgresVerificationRepository implements [VerificationRepository] using pgx.
//
// # Schema Table Mapping
//   - social.verification: One row per account holding its latest request.
//   - social.account: isverified flag set on approval.
type PostgresVerificationRepository struct {
	pool *pgxpool.Pool
}

// NewVerificationRepository creates a new PostgreSQL implementation of [VerificationRepository].
func NewVerificationRepository(pool *pgxpool.Pool) *PostgresVerificationRepository {
	return &PostgresVerificationRepository{pool: pool}
}

const requestColumns = `userid, status, submittedat, reviewedat, reason`

func scanRequest(row pgx.Row) (*Request, error) {
	request := &Request{}
	if err := row.Scan(&request.UserID, &request.Status, &request.SubmittedAt, &request.ReviewedAt, &request.Reason); err != nil {
		return nil, err
	}
	return request, nil
}

func (repository *PostgresVerificationRepository) FindByUser(context context.Context, userID string) (*Request, error) {
	request, err := scanRequest(repository.pool.QueryRow(context,
		`SELECT `+requestColumns+` FROM social.verification WHERE userid = $1`, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "Verification request")
	}
	return request, nil
}

/*
Submit upserts a pending request unless the current one blocks resubmission.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Request: The pending request
  - error: apperr.Conflict, apperr.NotFound, or query failures
*/
func (repository *PostgresVerificationRepository) Submit(context context.Context, userID string) (*Request, error) {
	var request *Request
	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		var verified bool
		if err := tx.QueryRow(context, `SELECT isverified FROM social.account WHERE id = $1 FOR UPDATE`, userID).Scan(&verified); err != nil {
			return dberr.Wrap(err, "User")
		}
		if verified {
			return apperr.Conflict("Account is already verified")
		}

		var err error
		request, err = scanRequest(tx.QueryRow(context, `
			INSERT INTO social.verification (userid, status, submittedat, reviewedat, reason)
			VALUES ($1, 'pending', now(), NULL, '')
			ON CONFLICT (userid) DO UPDATE
				SET status = 'pending', submittedat = now(), reviewedat = NULL, reason = ''
				WHERE social.verification.status NOT IN ('pending', 'approved')
			RETURNING `+requestColumns, userID))
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.Conflict("Verification request already pending")
		}
		return err
	})
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("postgres_verification_repo_submit_failed: %w", err)
	}
	return request, nil
}

func (repository *PostgresVerificationRepository) Review(context context.Context, userID string, approve bool, reason string) (*Request, error) {
	status, storedReason := StatusRejected, reason
	if approve {
		status, storedReason = StatusApproved, ""
	}

	var request *Request
	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		var err error
		request, err = scanRequest(tx.QueryRow(context, `
			UPDATE social.verification
			SET status = $2, reviewedat = now(), reason = $3
			WHERE userid = $1 AND status = 'pending'
			RETURNING `+requestColumns, userID, status, storedReason))
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.Conflict("No pending verification request")
		}
		if err != nil || !approve {
			return err
		}

		_, err = tx.Exec(context, `UPDATE social.account SET isverified = TRUE, updatedat = now() WHERE id = $1`, userID)
		return err
	})
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("postgres_verification_repo_review_failed: %w", err)
	}
	return request, nil
}

func (repository *PostgresVerificationRepository) VerifiedUsers(context context.Context, params pagination.Params) ([]*auth.User, int, error) {
	var total int
	if err := repository.pool.QueryRow(context, `SELECT count(*) FROM social.account WHERE isverified`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_verification_repo_count_failed: %w", err)
	}

	rows, err := repository.pool.Query(context,
		`SELECT `+auth.UserColumns+` FROM social.account a WHERE a.isverified ORDER BY a.createdat, a.id LIMIT $1 OFFSET $2`,
		params.Limit, params.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_verification_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := []*auth.User{}
	for rows.Next() {
		user, err := auth.ScanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_verification_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}

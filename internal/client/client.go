// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client composes the state client: one persisted store, one request
gateway, and the domain slices wired to each other.

Cross-slice wiring:

  - the auth slice is the gateway's authenticator and the ui slice its notifier
  - comment writes adjust the cached post's commentsCount
  - follow writes refresh the cached profile of the target
  - profile updates replace the session's cached account
  - logout drops follow data and the verification request
*/
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/yomira-social/internal/client/gateway"
	"github.com/taibuivan/yomira-social/internal/client/persist"
	"github.com/taibuivan/yomira-social/internal/client/remote"
	"github.com/taibuivan/yomira-social/internal/client/slices/auth"
	"github.com/taibuivan/yomira-social/internal/client/slices/comments"
	"github.com/taibuivan/yomira-social/internal/client/slices/follows"
	"github.com/taibuivan/yomira-social/internal/client/slices/posts"
	"github.com/taibuivan/yomira-social/internal/client/slices/ui"
	"github.com/taibuivan/yomira-social/internal/client/slices/users"
	"github.com/taibuivan/yomira-social/internal/client/slices/verification"
	"github.com/taibuivan/yomira-social/internal/platform/config"
	redisstore "github.com/taibuivan/yomira-social/internal/platform/redis"
)

// Client is the composed state client.
type Client struct {
	Auth         *auth.Slice
	Users        *users.Slice
	Posts        *posts.Slice
	Comments     *comments.Slice
	Follows      *follows.Slice
	Verification *verification.Slice
	UI           *ui.Slice

	Remote  *remote.Client
	Storage persist.Store

	gateway *gateway.Gateway
	closers []func() error
	logger  *slog.Logger
}

/*
Open builds a [Client] from cfg, connecting to Redis when StateRedisURL is
set and using the JSON state file otherwise.

Returns:
  - *Client: Not yet restored; call [Client.Restore]
  - error: Redis connection failure
*/
func Open(context context.Context, cfg *config.ClientConfig, logger *slog.Logger) (*Client, error) {
	if cfg.StateRedisURL == "" {
		return New(cfg, persist.NewFile(cfg.StateFile), logger), nil
	}

	rdb, err := redisstore.NewClient(context, cfg.StateRedisURL, logger)
	if err != nil {
		return nil, fmt.Errorf("client_state_connect_failed: %w", err)
	}

	client := New(cfg, persist.NewRedis(rdb, cfg.StateNamespace), logger)
	client.closers = append(client.closers, rdb.Close)
	return client, nil
}

// New wires every slice over storage.
func New(cfg *config.ClientConfig, storage persist.Store, logger *slog.Logger) *Client {
	gw := gateway.New(cfg.APIURL, cfg.APITimeout, logger)
	api := remote.New(gw)

	client := &Client{
		Remote:  api,
		Storage: storage,
		gateway: gw,
		logger:  logger,
	}

	client.Auth = auth.New(api, storage, logger)
	client.UI = ui.New(storage, nil, logger)
	client.Users = users.New(api, client.Auth, logger)
	client.Posts = posts.New(api, client.viewer, logger)
	client.Comments = comments.New(api, client.viewer, client.Posts, logger)
	client.Follows = follows.New(api, client.viewer, client.Users, logger)
	client.Verification = verification.New(api, logger)

	gw.Bind(client.Auth, client.UI)

	client.Auth.Subscribe(func(event auth.Event, _ auth.State) {
		if _, ok := event.(auth.SignedOut); ok {
			client.Follows.ClearFollowData()
			client.Verification.Reset()
		}
	})

	client.closers = append(client.closers, func() error {
		gw.Close()
		return nil
	})

	return client
}

// viewer returns the signed in account id, or "".
func (client *Client) viewer() string {
	if user := client.Auth.State().User; user != nil {
		return user.ID
	}
	return ""
}

// Restore applies the persisted theme and session.
//
// It reports whether a session was restored. A corrupt theme entry is logged
// and otherwise ignored.
func (client *Client) Restore(context context.Context) bool {
	if _, err := client.UI.RestoreTheme(context); err != nil {
		client.logger.Warn("client_theme_restore_failed", slog.Any("error", err))
	}
	return client.Auth.RestoreSession(context)
}

// Close releases the gateway's connections and the state backend.
func (client *Client) Close() error {
	var errs []error
	for _, closer := range client.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

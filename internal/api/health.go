// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/yomira-social/internal/platform/respond"
)

// # Health Probes

// Probe is one readiness dependency, such as the Postgres pool or the Redis
// session store.
type Probe struct {
	Name  string
	Check func(context context.Context) error
}

// probeTimeout bounds the whole /ready round.
const probeTimeout = 3 * time.Second

type checkResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

/*
NewHealthHandlers returns the /health and /ready handlers.

/health always answers 200. /ready runs every probe concurrently and answers
503 "degraded" if any fails; with no probes (the memory driver) it is always
ready.
*/
func NewHealthHandlers(probes []Probe, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		bounded, cancel := context.WithTimeout(request.Context(), probeTimeout)
		defer cancel()

		results := make([]checkResult, len(probes))
		var group errgroup.Group
		for index, probe := range probes {
			group.Go(func() error {
				results[index] = checkResult{Name: probe.Name, OK: true}
				if err := probe.Check(bounded); err != nil {
					results[index] = checkResult{Name: probe.Name, Error: err.Error()}
					logger.Error("readiness_check_failed", slog.String("dependency", probe.Name), slog.Any("error", err))
					return err
				}
				return nil
			})
		}

		status, code := "ready", http.StatusOK
		if group.Wait() != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		respond.JSON(writer, code, respond.SuccessEnvelope{Data: map[string]any{
			"status": status,
			"checks": results,
		}})
	}

	return liveness, readiness
}

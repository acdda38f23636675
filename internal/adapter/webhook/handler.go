// Package webhook runs the bot as an HTTP service receiving
// pull-request events. Signature verification is handled upstream.
package webhook

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/render"

	"github.com/Graylog2/reviewbot/internal/domain"
	"github.com/Graylog2/reviewbot/internal/usecase/lint"
)

// PullRequestEvent is the subset of the GitHub payload the bot consumes.
type PullRequestEvent struct {
	Action      string `json:"action"`
	Number      int    `json:"number"`
	PullRequest struct {
		Body string `json:"body"`
		Base struct {
			SHA string `json:"sha"`
		} `json:"base"`
		Head struct {
			SHA string `json:"sha"`
		} `json:"head"`
	} `json:"pull_request"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
}

// Runner executes the lint pipeline for one pull-request event.
type Runner interface {
	Run(ctx context.Context, rc domain.RunContext) (lint.Result, error)
}

type runResponse struct {
	Status string `json:"status"`
	Files  int    `json:"files"`
	Hints  int    `json:"hints"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler turns pull-request events into pipeline runs. Events are
// handled one at a time: a run is executed to completion before the
// next event is picked up.
type Handler struct {
	runner     Runner
	prefix     string
	workingDir string

	mu sync.Mutex
}

// NewHandler constructs a handler over the pipeline runner and the
// process-wide prefix and working directory.
func NewHandler(runner Runner, prefix, workingDir string) *Handler {
	return &Handler{runner: runner, prefix: prefix, workingDir: workingDir}
}

// ServeEvent handles POST /event. Events other than opened/synchronize
// are acknowledged and ignored.
func (h *Handler) ServeEvent(w http.ResponseWriter, r *http.Request) {
	var event PullRequestEvent
	if err := render.DecodeJSON(r.Body, &event); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "malformed event payload"})
		return
	}

	if !actionable(event.Action) {
		render.Status(r, http.StatusAccepted)
		render.JSON(w, r, runResponse{Status: "ignored"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	rc := domain.RunContext{
		BaseSHA:          event.PullRequest.Base.SHA,
		HeadSHA:          event.PullRequest.Head.SHA,
		Prefix:           h.prefix,
		WorkingDirectory: h.workingDir,
		PullRequestBody:  event.PullRequest.Body,
	}

	res, err := h.runner.Run(r.Context(), rc)
	if err != nil {
		var hintsErr *lint.HintsError
		if errors.As(err, &hintsErr) {
			render.Status(r, http.StatusOK)
			render.JSON(w, r, runResponse{Status: lint.StatusFailed, Files: res.Files, Hints: hintsErr.Count})
			return
		}
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: err.Error()})
		return
	}

	status := lint.StatusPassed
	if res.Skipped {
		status = lint.StatusSkipped
	}
	render.JSON(w, r, runResponse{Status: status, Files: res.Files, Hints: res.Hints})
}

func actionable(action string) bool {
	return action == "opened" || action == "synchronize"
}

package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"kitesync/src/schemas"
	"kitesync/src/utils"
)

const syncRequestTimeout = 60 * time.Second

func (h *Handler) GetAuthorizationURL(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromURL(r)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}

	resp, err := h.Controller.GetAuthorizationURL(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, resp, http.StatusOK)
}

func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	requestToken := r.URL.Query().Get("request_token")
	state := r.URL.Query().Get("state")
	if requestToken == "" || state == "" {
		h.HandleErrors(w, utils.BadRequest("request_token and state are required"))
		return
	}

	if err := h.Controller.HandleCallback(ctx, requestToken, state); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.MessageResponse{Message: "Kite authentication successful"}, http.StatusOK)
}

func (h *Handler) SyncHoldings(w http.ResponseWriter, r *http.Request) {
	h.runSync(w, r, h.Controller.SyncHoldings)
}

func (h *Handler) SyncPositions(w http.ResponseWriter, r *http.Request) {
	h.runSync(w, r, h.Controller.SyncPositions)
}

func (h *Handler) SyncOrders(w http.ResponseWriter, r *http.Request) {
	h.runSync(w, r, h.Controller.SyncOrders)
}

// runSync executes one interactive sync. The outcome is returned as-is; a
// FAILED outcome is still a 200 since the sync unit itself completed.
func (h *Handler) runSync(w http.ResponseWriter, r *http.Request, sync func(context.Context, int64) (*schemas.SyncOutcome, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), syncRequestTimeout)
	defer cancel()

	userID, err := userIDFromURL(r)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}

	outcome, err := sync(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, outcome, http.StatusOK)
}

func (h *Handler) GetHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromURL(r)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}

	holdings, err := h.Controller.GetHoldings(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, holdings, http.StatusOK)
}

func (h *Handler) GetPositions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromURL(r)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}

	positions, err := h.Controller.GetPositions(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, positions, http.StatusOK)
}

func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromURL(r)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}

	orders, err := h.Controller.GetOrders(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, orders, http.StatusOK)
}

func (h *Handler) GetSyncLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromURL(r)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	logs, err := h.Controller.GetSyncLogs(ctx, userID, limit)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, logs, http.StatusOK)
}

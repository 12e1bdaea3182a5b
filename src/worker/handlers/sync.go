package handlers

import (
	"context"
	"net/http"

	"kitesync/src/schemas"
	"kitesync/src/utils"

	"github.com/sirupsen/logrus"
)

// TriggerSyncAll runs the full batch immediately. The batch isolates per-user
// failures itself, so completion is always reported.
func (h *Handler) TriggerSyncAll(w http.ResponseWriter, r *http.Request) {
	h.Controller.RunAll(r.Context())
	h.respond(w, r, schemas.MessageResponse{Message: "sync batch completed"}, http.StatusOK)
}

// ScheduleDailySync installs the cron schedule for the daily batch.
func (h *Handler) ScheduleDailySync(cronSpec string, logger *logrus.Logger) error {
	ctx := utils.WithLogger(context.Background(), logger)
	return h.Controller.ScheduleDailySync(ctx, cronSpec)
}

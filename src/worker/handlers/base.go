package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"kitesync/src/clients/kite"
	"kitesync/src/config"
	"kitesync/src/database"
	"kitesync/src/repositories"
	"kitesync/src/services"
	"kitesync/src/utils"
	"kitesync/src/worker/controllers"
)

type Handler struct {
	Controller *controllers.Controller
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	userRepo := repositories.NewUserRepository(db)
	holdingRepo := repositories.NewHoldingRepository(db)
	positionRepo := repositories.NewPositionRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	syncLogRepo := repositories.NewSyncLogRepository(db)

	kiteClient := kite.NewClient(cfg)
	syncService := services.NewSyncService(holdingRepo, positionRepo, orderRepo, syncLogRepo, kiteClient)
	batchService := services.NewBatchSyncService(userRepo, syncService)

	controller := controllers.NewController(batchService)
	return &Handler{Controller: controller}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	} else if err != nil {
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	} else {
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

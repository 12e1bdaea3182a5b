package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"kitesync/src/api/controllers"
	"kitesync/src/clients/kite"
	"kitesync/src/config"
	"kitesync/src/database"
	"kitesync/src/repositories"
	"kitesync/src/services"
	"kitesync/src/utils"
	aws_handler "kitesync/src/utils/aws"
	redis_utils "kitesync/src/utils/redis"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Controller *controllers.Controller
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	redisHandler, err := redis_utils.NewRedisHandler(cfg)
	if err != nil {
		return nil, err
	}

	apiSecret, err := ResolveKiteSecret(cfg)
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
	authService := services.NewKiteAuthService(userRepo, kiteClient, redisHandler, apiSecret)

	controller := controllers.NewController(authService, syncService, userRepo)
	return &Handler{Controller: controller}, nil
}

// ResolveKiteSecret returns the Kite API secret from config, or from AWS
// Secrets Manager when only a secret name is configured.
func ResolveKiteSecret(cfg *config.Config) (string, error) {
	if cfg.ExternalClients.Kite.APISecret != "" {
		return cfg.ExternalClients.Kite.APISecret, nil
	}
	if cfg.ExternalClients.Kite.SecretName == "" {
		return "", nil
	}
	awsHandler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
	if err != nil {
		return "", err
	}
	return awsHandler.SecretManager.GetSecretValue(cfg.ExternalClients.Kite.SecretName)
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	var syncErr *utils.SyncError
	if errors.Is(err, context.DeadlineExceeded) {
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	} else if errors.As(err, &syncErr) {
		h.respond(w, nil, map[string]string{"error": syncErr.Error()}, statusForKind(syncErr.Kind))
	} else if err != nil {
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	} else {
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

func statusForKind(kind utils.ErrorKind) int {
	switch kind {
	case utils.AuthErrorKind:
		return http.StatusBadRequest
	case utils.RemoteErrorKind:
		return http.StatusBadGateway
	case utils.ParseErrorKind:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func userIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
}

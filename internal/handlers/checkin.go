package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"

	"wellness_checkin/internal/models"
	"wellness_checkin/internal/usecases"
)

type CheckinHandler struct {
	service      *usecases.CheckinService
	logger       *zap.Logger
	validate     *validator.Validate
	historyLimit int
}

func NewCheckinHandler(service *usecases.CheckinService, logger *zap.Logger, historyLimit int) *CheckinHandler {
	if historyLimit <= 0 {
		historyLimit = 20
	}

	validate := validator.New()
	_ = validate.RegisterValidation("notblank", validators.NotBlank)

	return &CheckinHandler{
		service:      service,
		logger:       logger,
		validate:     validate,
		historyLimit: historyLimit,
	}
}

type checkinRequest struct {
	Text string `json:"text" validate:"notblank"`
}

type checkinResponse struct {
	Mood       string `json:"mood"`
	Response   string `json:"response"`
	Suggestion string `json:"suggestion"`
	Failure    string `json:"failure,omitempty"`
}

// POST /api/checkin
func (ch *CheckinHandler) HandleCheckin(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleCheckin"

	var input checkinRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		ch.logger.Info("decode error", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusBadRequest, "Couldnt decode json. Wrong request.")
		return
	}

	if err := ch.validate.Struct(input); err != nil {
		ch.logger.Info("validation error", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	analysis, err := ch.service.Submit(r.Context(), input.Text)
	if err != nil {
		ch.logger.Error("submit failed", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJSON(w, http.StatusOK, toCheckinResponse(analysis))
}

func toCheckinResponse(a models.Analysis) checkinResponse {
	return checkinResponse{
		Mood:       a.Result.Mood,
		Response:   a.Result.Response,
		Suggestion: a.Result.Suggestion,
		Failure:    string(a.Failure),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}

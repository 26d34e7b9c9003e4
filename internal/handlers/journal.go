package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

const maxHistoryLimit = 500

type historyQuery struct {
	Limit int `validate:"min=1,max=500"`
}

// GET /api/entries?limit=N
func (ch *CheckinHandler) HandleGetEntries(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleGetEntries"

	limit, ok := ch.parseLimit(w, r)
	if !ok {
		return
	}

	history, err := ch.service.History(r.Context(), limit)
	if err != nil {
		ch.logger.Error("couldnt get entries", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Couldnt get entries.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   history.Entries,
	})
}

// GET /api/trend?limit=N
func (ch *CheckinHandler) HandleGetTrend(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleGetTrend"

	limit, ok := ch.parseLimit(w, r)
	if !ok {
		return
	}

	history, err := ch.service.History(r.Context(), limit)
	if err != nil {
		ch.logger.Error("couldnt get trend", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Couldnt get trend.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   history.Trend,
	})
}

func (ch *CheckinHandler) parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return ch.historyLimit, true
	}

	l, err := strconv.Atoi(limitStr)
	if err == nil {
		err = ch.validate.Struct(historyQuery{Limit: l})
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(maxHistoryLimit))
		return 0, false
	}

	return l, true
}

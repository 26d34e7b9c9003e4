package handlers

import (
	"embed"
	"errors"
	"hash/fnv"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"wellness_checkin/internal/models"
	"wellness_checkin/internal/usecases"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type pageData struct {
	Result  *models.AnalysisResult
	Entries []models.JournalEntry
	Chart   []chartDay
	Error   string
}

type chartDay struct {
	Date string
	Bars []chartBar
}

type chartBar struct {
	Mood    string
	Count   int
	Percent int
	Hue     int
}

// GET /
func (ch *CheckinHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	ch.renderPage(w, r, http.StatusOK, pageData{})
}

// POST /checkin
func (ch *CheckinHandler) HandleFormCheckin(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleFormCheckin"

	if err := r.ParseForm(); err != nil {
		ch.renderPage(w, r, http.StatusBadRequest, pageData{Error: "Could not read the form."})
		return
	}

	status := http.StatusOK
	var data pageData
	analysis, err := ch.service.Submit(r.Context(), r.PostFormValue("text"))
	switch {
	case errors.Is(err, usecases.ErrEmptyEntry):
		// Nothing to analyze; just redraw.
	case err != nil:
		ch.logger.Error("submit failed", zap.String("op", op), zap.Error(err))
		status = http.StatusInternalServerError
		data.Error = "Your entry could not be saved."
	default:
		data.Result = &analysis.Result
	}

	ch.renderPage(w, r, status, data)
}

func (ch *CheckinHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	op := "handlers.renderPage"

	history, err := ch.service.History(r.Context(), ch.historyLimit)
	if err != nil {
		ch.logger.Error("couldnt load history", zap.String("op", op), zap.Error(err))
		if data.Error == "" {
			data.Error = "Could not load your journal."
		}
	}
	data.Entries = history.Entries
	data.Chart = buildChart(history.Trend)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, data); err != nil {
		ch.logger.Error("render failed", zap.String("op", op), zap.Error(err))
	}
}

// buildChart lays trend points out as one row of bars per day, scaled to the
// largest count.
func buildChart(points []models.TrendPoint) []chartDay {
	maxCount := 0
	for _, p := range points {
		if p.Count > maxCount {
			maxCount = p.Count
		}
	}

	var days []chartDay
	for _, p := range points {
		if len(days) == 0 || days[len(days)-1].Date != p.Date {
			days = append(days, chartDay{Date: p.Date})
		}
		day := &days[len(days)-1]
		day.Bars = append(day.Bars, chartBar{
			Mood:    p.Mood,
			Count:   p.Count,
			Percent: p.Count * 100 / maxCount,
			Hue:     moodHue(p.Mood),
		})
	}
	return days
}

func moodHue(mood string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(mood))
	return int(h.Sum32() % 360)
}

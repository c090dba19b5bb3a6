package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/quizmaster/backend/internal/domain/history"
)

// ── Response types ──────────────────────────────────────────────────────────

type TableResponse struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

type HistorySummaryResponse struct {
	TotalQuizzes   int     `json:"total_quizzes"`
	TotalQuestions int     `json:"total_questions"`
	AverageScore   float64 `json:"average_score"`
	BestScore      float64 `json:"best_score"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /history
func (h *Handler) historyTable(w http.ResponseWriter, r *http.Request) {
	rows, err := h.quiz.HistoryTable()
	if h.handleServiceError(w, err, "history") {
		return
	}
	respondJSON(w, http.StatusOK, TableResponse{Header: history.Header, Rows: rows})
}

// GET /history/summary
func (h *Handler) historySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.quiz.HistorySummary()
	if h.handleServiceError(w, err, "history") {
		return
	}
	respondJSON(w, http.StatusOK, HistorySummaryResponse{
		TotalQuizzes:   summary.TotalQuizzes,
		TotalQuestions: summary.TotalQuestions,
		AverageScore:   summary.AverageScore,
		BestScore:      summary.BestScore,
	})
}

// GET /history/export
func (h *Handler) exportHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(
		"attachment; filename=quiz_history_%s.csv", time.Now().Format("20060102_150405")))

	if err := h.quiz.ExportHistoryCSV(w); err != nil {
		h.logger.Error("history export failed", "error", err)
	}
}

// GET /missed
func (h *Handler) missedQuestions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, TableResponse{
		Header: history.MissedHeader,
		Rows:   h.quiz.MissedQuestionsTable(),
	})
}

// GET /missed/export
func (h *Handler) exportMissed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(
		"attachment; filename=missed_questions_%s.csv", time.Now().Format("20060102_150405")))

	if err := h.quiz.ExportMissedCSV(w); err != nil {
		h.logger.Error("missed export failed", "error", err)
	}
}

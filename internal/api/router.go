// internal/api/router.go
package api

import "net/http"

// RegisterRoutes attaches every API route to the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Classes
	mux.HandleFunc("POST /classes/{className}", h.loadClass)
	mux.HandleFunc("GET /classes", h.listClasses)
	mux.HandleFunc("GET /classes/{className}/chapters", h.listChapters)
	mux.HandleFunc("GET /classes/{className}/questions", h.listQuestions)

	// Sessions
	mux.HandleFunc("POST /sessions", h.startSession)
	mux.HandleFunc("GET /sessions/current", h.currentQuestion)
	mux.HandleFunc("POST /sessions/current/answer", h.recordAnswer)
	mux.HandleFunc("POST /sessions/current/navigate", h.navigate)
	mux.HandleFunc("POST /sessions/current/submit", h.submitSession)

	// History and review
	mux.HandleFunc("GET /history", h.historyTable)
	mux.HandleFunc("GET /history/summary", h.historySummary)
	mux.HandleFunc("GET /history/export", h.exportHistory)
	mux.HandleFunc("GET /missed", h.missedQuestions)
	mux.HandleFunc("GET /missed/export", h.exportMissed)
}

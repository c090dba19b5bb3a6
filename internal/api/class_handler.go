package api

import (
	"errors"
	"net/http"

	"github.com/quizmaster/backend/internal/loader"
)

// ── Request / Response types ────────────────────────────────────────────────

type LoadClassResponse struct {
	Class       string `json:"class"`
	Questions   int    `json:"questions"`
	Chapters    int    `json:"chapters"`
	SkippedRows int    `json:"skipped_rows"`
}

type ListClassesResponse struct {
	Classes []string `json:"classes"`
}

type ListChaptersResponse struct {
	Class    string   `json:"class"`
	Chapters []string `json:"chapters"`
}

type QuestionResponse struct {
	Chapter       string   `json:"chapter"`
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Alternatives  []string `json:"alternatives"`
	Reasoning     string   `json:"reasoning"`
}

type ListQuestionsResponse struct {
	Class     string             `json:"class"`
	Questions []QuestionResponse `json:"questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /classes/{className}
// The request body is the raw CSV or XLSX file. The optional "filename"
// query parameter selects the format by extension; the default is CSV.
func (h *Handler) loadClass(w http.ResponseWriter, r *http.Request) {
	className := r.PathValue("className")
	filename := r.URL.Query().Get("filename")

	report, err := h.quiz.LoadSource(className, filename, r.Body)
	if err != nil {
		var schemaErr *loader.SchemaError
		var sourceErr *loader.SourceError
		switch {
		case errors.As(err, &schemaErr), errors.As(err, &sourceErr), errors.Is(err, loader.ErrNoQuestions):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("load failed", "class", className, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load class")
		}
		return
	}

	chapters, err := h.quiz.ListChapters(className)
	if h.handleServiceError(w, err, "class") {
		return
	}

	respondJSON(w, http.StatusCreated, LoadClassResponse{
		Class:       className,
		Questions:   report.Loaded,
		Chapters:    len(chapters),
		SkippedRows: report.SkippedRows,
	})
}

// GET /classes
func (h *Handler) listClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.quiz.ListClasses()
	if h.handleServiceError(w, err, "classes") {
		return
	}
	if classes == nil {
		classes = []string{}
	}
	respondJSON(w, http.StatusOK, ListClassesResponse{Classes: classes})
}

// GET /classes/{className}/chapters
func (h *Handler) listChapters(w http.ResponseWriter, r *http.Request) {
	className := r.PathValue("className")

	chapters, err := h.quiz.ListChapters(className)
	if h.handleServiceError(w, err, "class") {
		return
	}

	respondJSON(w, http.StatusOK, ListChaptersResponse{
		Class:    className,
		Chapters: chapters,
	})
}

// GET /classes/{className}/questions
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	className := r.PathValue("className")

	questions, err := h.quiz.ListQuestions(className)
	if h.handleServiceError(w, err, "class") {
		return
	}

	out := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		out[i] = QuestionResponse{
			Chapter:       q.Chapter,
			Question:      q.Text,
			CorrectAnswer: q.CorrectAnswer,
			Alternatives:  q.Alternatives,
			Reasoning:     q.Reasoning,
		}
	}

	respondJSON(w, http.StatusOK, ListQuestionsResponse{
		Class:     className,
		Questions: out,
	})
}

package api

import (
	"errors"
	"net/http"

	"github.com/quizmaster/backend/internal/domain/session"
	"github.com/quizmaster/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartSessionRequest struct {
	Class    string   `json:"class"`
	Chapters []string `json:"chapters"`
	Count    int      `json:"count"`
}

func (r *StartSessionRequest) Validate() error {
	if r.Class == "" {
		return errors.New("class is required")
	}
	if len(r.Chapters) == 0 {
		return errors.New("chapters is required")
	}
	if r.Count < 1 {
		return errors.New("count must be at least 1")
	}
	return nil
}

type StartSessionResponse struct {
	ID       string `json:"id"`
	Class    string `json:"class"`
	Count    int    `json:"count"`
	Position int    `json:"position"`
}

type CurrentQuestionResponse struct {
	Position int      `json:"position"` // 1-based
	Total    int      `json:"total"`
	Chapter  string   `json:"chapter"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer,omitempty"`
}

type RecordAnswerRequest struct {
	Answer string `json:"answer"`
}

func (r *RecordAnswerRequest) Validate() error {
	if r.Answer == "" {
		return errors.New("answer is required")
	}
	return nil
}

type NavigateRequest struct {
	Direction string `json:"direction"`
}

func (r *NavigateRequest) Validate() error {
	d := service.Direction(r.Direction)
	if d != service.DirectionNext && d != service.DirectionPrevious {
		return errors.New("direction must be next or previous")
	}
	return nil
}

type SubmitSessionResponse struct {
	Recorded        bool     `json:"recorded"`
	TotalQuestions  int      `json:"total_questions"`
	CorrectAnswers  int      `json:"correct_answers"`
	Percentage      *float64 `json:"percentage,omitempty"`
	MissedQuestions int      `json:"missed_questions"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /sessions
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sess, err := h.quiz.StartSession(req.Class, req.Chapters, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoQuestions), errors.Is(err, session.ErrInvalidCount):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.handleServiceError(w, err, "class")
		}
		return
	}

	respondJSON(w, http.StatusCreated, StartSessionResponse{
		ID:       sess.ID,
		Class:    sess.ClassName,
		Count:    len(sess.Questions),
		Position: sess.Position,
	})
}

// GET /sessions/current
func (h *Handler) currentQuestion(w http.ResponseWriter, r *http.Request) {
	cq, err := h.quiz.GetCurrentQuestion()
	if h.handleServiceError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusOK, CurrentQuestionResponse{
		Position: cq.Position,
		Total:    cq.Total,
		Chapter:  cq.Chapter,
		Question: cq.Text,
		Options:  cq.Options,
		Answer:   cq.Answer,
	})
}

// POST /sessions/current/answer
func (h *Handler) recordAnswer(w http.ResponseWriter, r *http.Request) {
	var req RecordAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.quiz.RecordAnswer(req.Answer); h.handleServiceError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusOK, StatusResponse{Status: "recorded"})
}

// POST /sessions/current/navigate
func (h *Handler) navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.quiz.Navigate(service.Direction(req.Direction)); h.handleServiceError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// POST /sessions/current/submit
func (h *Handler) submitSession(w http.ResponseWriter, r *http.Request) {
	entry, recorded, err := h.quiz.SubmitSession()
	if h.handleServiceError(w, err, "session") {
		return
	}

	resp := SubmitSessionResponse{Recorded: recorded}
	if recorded {
		resp.TotalQuestions = entry.TotalQuestions
		resp.CorrectAnswers = entry.CorrectAnswers
		resp.Percentage = &entry.Percentage
		resp.MissedQuestions = entry.MissedQuestions
	}
	respondJSON(w, http.StatusOK, resp)
}

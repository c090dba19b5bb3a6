package service_test

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/quizmaster/backend/internal/loader"
	"github.com/quizmaster/backend/internal/service"
	"github.com/quizmaster/backend/internal/store"
)

const quizCSV = `Chapter,Question Text,Reasoning,Correct_Answer,Alternative_1,Alternative_2,Alternative_3
Ch1,Q1?,R1,A,B,C,D
Ch2,Q2?,R2,X,Y,Z,W
`

func newService(t *testing.T) *service.QuizService {
	t.Helper()
	s, err := store.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewQuizService(s, logger)
}

func loadQuiz(t *testing.T, qs *service.QuizService, class string) {
	t.Helper()
	if _, err := qs.LoadSource(class, "quiz.csv", strings.NewReader(quizCSV)); err != nil {
		t.Fatalf("load failed: %v", err)
	}
}

func TestLoadSource_RegistersClass(t *testing.T) {
	qs := newService(t)
	loadQuiz(t, qs, "Biology")

	classes, err := qs.ListClasses()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(classes) != 1 || classes[0] != "Biology" {
		t.Errorf("expected [Biology], got %v", classes)
	}

	chapters, err := qs.ListChapters("Biology")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters) != 2 || chapters[0] != "Ch1" || chapters[1] != "Ch2" {
		t.Errorf("expected [Ch1 Ch2], got %v", chapters)
	}

	questions, err := qs.ListQuestions("Biology")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(questions))
	}
}

func TestLoadSource_FailureLeavesStateUntouched(t *testing.T) {
	qs := newService(t)
	loadQuiz(t, qs, "Biology")

	_, err := qs.LoadSource("Chemistry", "bad.csv", strings.NewReader("Wrong,Header\n1,2\n"))
	var schemaErr *loader.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}

	classes, err := qs.ListClasses()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(classes) != 1 || classes[0] != "Biology" {
		t.Errorf("expected failed load to register nothing, got %v", classes)
	}
}

func TestFullSession_AllCorrect(t *testing.T) {
	qs := newService(t)
	loadQuiz(t, qs, "Biology")

	sess, err := qs.StartSession("Biology", []string{"Ch1", "Ch2"}, 2)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(sess.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(sess.Questions))
	}

	// Answer every question correctly, navigating like a user would.
	for i := range sess.Questions {
		cq, err := qs.GetCurrentQuestion()
		if err != nil {
			t.Fatalf("current question failed: %v", err)
		}
		if cq.Position != i+1 || cq.Total != 2 {
			t.Errorf("expected progress %d/2, got %d/%d", i+1, cq.Position, cq.Total)
		}
		if len(cq.Options) != 4 {
			t.Errorf("expected 4 display options, got %v", cq.Options)
		}

		if err := qs.RecordAnswer(sess.Questions[i].CorrectAnswer); err != nil {
			t.Fatalf("record failed: %v", err)
		}
		if i < len(sess.Questions)-1 {
			if err := qs.Navigate(service.DirectionNext); err != nil {
				t.Fatalf("navigate failed: %v", err)
			}
		}
	}

	entry, recorded, err := qs.SubmitSession()
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !recorded {
		t.Fatal("expected session to be recorded")
	}
	if entry.TotalQuestions != 2 || entry.CorrectAnswers != 2 {
		t.Errorf("unexpected entry totals: %+v", entry)
	}
	if entry.Percentage != 100.0 {
		t.Errorf("expected 100%%, got %v", entry.Percentage)
	}

	rows, err := qs.HistoryTable()
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(rows))
	}
	if rows[0][4] != "100.0%" {
		t.Errorf("expected rendered percentage 100.0%%, got %q", rows[0][4])
	}

	summary, err := qs.HistorySummary()
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalQuizzes != 1 || summary.BestScore != 100 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestSubmit_NothingAnswered(t *testing.T) {
	qs := newService(t)
	loadQuiz(t, qs, "Biology")

	if _, err := qs.StartSession("Biology", []string{"Ch1", "Ch2"}, 2); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	_, recorded, err := qs.SubmitSession()
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if recorded {
		t.Error("expected unanswered session not to be recorded")
	}

	rows, err := qs.HistoryTable()
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected empty history, got %d rows", len(rows))
	}
}

func TestMissedQuestions_RetainedUntilNextStart(t *testing.T) {
	qs := newService(t)
	loadQuiz(t, qs, "Biology")

	if _, err := qs.StartSession("Biology", []string{"Ch1"}, 1); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := qs.RecordAnswer("definitely wrong"); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if _, _, err := qs.SubmitSession(); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	rows := qs.MissedQuestionsTable()
	if len(rows) != 1 {
		t.Fatalf("expected 1 missed question, got %d", len(rows))
	}
	if rows[0][2] != "definitely wrong" {
		t.Errorf("unexpected missed row: %v", rows[0])
	}

	var buf strings.Builder
	if err := qs.ExportMissedCSV(&buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(buf.String(), "definitely wrong") {
		t.Error("expected missed export to contain the wrong answer")
	}

	// Starting a new session resets the missed list.
	if _, err := qs.StartSession("Biology", []string{"Ch1"}, 1); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if rows := qs.MissedQuestionsTable(); len(rows) != 0 {
		t.Errorf("expected missed questions to reset on new start, got %d rows", len(rows))
	}
}

func TestSessionLifecycleErrors(t *testing.T) {
	qs := newService(t)
	loadQuiz(t, qs, "Biology")

	if _, err := qs.GetCurrentQuestion(); !errors.Is(err, service.ErrNoActiveSession) {
		t.Errorf("expected ErrNoActiveSession before start, got %v", err)
	}

	if _, err := qs.StartSession("Unknown", []string{"Ch1"}, 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown class, got %v", err)
	}

	if _, err := qs.StartSession("Biology", []string{"Ch1"}, 1); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := qs.RecordAnswer(""); err == nil {
		t.Error("expected error for empty answer")
	}
	if err := qs.Navigate("sideways"); err == nil {
		t.Error("expected error for bad direction")
	}

	if _, _, err := qs.SubmitSession(); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, _, err := qs.SubmitSession(); !errors.Is(err, service.ErrNoActiveSession) {
		t.Errorf("expected ErrNoActiveSession after submit, got %v", err)
	}
}

func TestExportHistoryCSV(t *testing.T) {
	qs := newService(t)
	loadQuiz(t, qs, "Biology")

	sess, err := qs.StartSession("Biology", []string{"Ch1", "Ch2"}, 2)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := qs.RecordAnswer(sess.Questions[0].CorrectAnswer); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if _, _, err := qs.SubmitSession(); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	var buf strings.Builder
	if err := qs.ExportHistoryCSV(&buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "Date,Class,Total Questions,Correct Answers,Percentage,Missed Questions,Chapters" {
		t.Errorf("unexpected CSV header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "100.0%") {
		t.Errorf("expected one answered question scored at 100.0%%, got %q", lines[1])
	}
}

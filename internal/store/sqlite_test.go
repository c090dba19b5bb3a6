package store_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/quizmaster/backend/internal/domain/history"
	"github.com/quizmaster/backend/internal/domain/question"
	"github.com/quizmaster/backend/internal/domain/stats"
	"github.com/quizmaster/backend/internal/store"
)

func newStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func poolOf(t *testing.T, chapters ...string) *question.Pool {
	t.Helper()
	pool := question.NewPool()
	for i, ch := range chapters {
		q, err := question.New(ch, fmt.Sprintf("Q%d?", i), fmt.Sprintf("R%d", i),
			fmt.Sprintf("A%d", i), []string{"w1", "w2", "w3"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pool.Add(q)
	}
	return pool
}

func TestSaveClass_RoundTrip(t *testing.T) {
	s := newStore(t)

	if err := s.SaveClass("Biology", poolOf(t, "Ch2", "Ch1", "Ch2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pool, err := s.GetPool("Biology")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chapters := pool.Chapters()
	if len(chapters) != 2 || chapters[0] != "Ch2" || chapters[1] != "Ch1" {
		t.Errorf("expected first-seen chapter order [Ch2 Ch1], got %v", chapters)
	}
	if pool.Total() != 3 {
		t.Errorf("expected 3 questions, got %d", pool.Total())
	}

	ch2 := pool.Questions("Ch2")
	if len(ch2) != 2 || ch2[0].Text != "Q0?" || ch2[1].Text != "Q2?" {
		t.Errorf("expected Ch2 questions in source order, got %v", ch2)
	}
	if ch2[0].Alternatives[2] != "w3" {
		t.Errorf("unexpected alternatives: %v", ch2[0].Alternatives)
	}
}

func TestSaveClass_ReplacesWholesale(t *testing.T) {
	s := newStore(t)

	if err := s.SaveClass("Biology", poolOf(t, "Old", "Old")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SaveClass("Biology", poolOf(t, "New")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pool, err := s.GetPool("Biology")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.Total() != 1 {
		t.Errorf("expected old questions to be replaced, got %d questions", pool.Total())
	}
	if len(pool.Questions("Old")) != 0 {
		t.Error("expected old chapter to be gone")
	}
}

func TestListClasses_LoadOrder(t *testing.T) {
	s := newStore(t)

	for _, name := range []string{"Zoology", "Anatomy", "Botany"} {
		if err := s.SaveClass(name, poolOf(t, "Ch1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// Reloading must not change the original position.
	if err := s.SaveClass("Zoology", poolOf(t, "Ch1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	classes, err := s.ListClasses()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Zoology", "Anatomy", "Botany"}
	if len(classes) != 3 {
		t.Fatalf("expected 3 classes, got %v", classes)
	}
	for i := range want {
		if classes[i] != want[i] {
			t.Errorf("expected classes %v, got %v", want, classes)
			break
		}
	}
}

func TestGetPool_UnknownClass(t *testing.T) {
	s := newStore(t)

	if _, err := s.GetPool("nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHistory_AppendOrder(t *testing.T) {
	s := newStore(t)

	for i := 1; i <= 3; i++ {
		entry := history.Entry{
			Timestamp:        time.Date(2026, 8, 29, 10, i, 0, 0, time.UTC),
			ClassName:        "Biology",
			TotalQuestions:   10,
			CorrectAnswers:   i,
			Percentage:       float64(i) * 10,
			MissedQuestions:  10 - i,
			ChapterStats:     map[string]stats.ChapterStat{"Ch1": {Asked: 10, Correct: i}},
			SelectedChapters: []string{"Ch1", "Ch2"},
		}
		if err := s.SaveHistoryEntry(entry); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := s.ListHistory()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	for i, e := range entries {
		if e.CorrectAnswers != i+1 {
			t.Errorf("expected append order, entry %d has correct=%d", i, e.CorrectAnswers)
		}
	}

	first := entries[0]
	if first.ClassName != "Biology" || first.Percentage != 10 || first.MissedQuestions != 9 {
		t.Errorf("unexpected entry: %+v", first)
	}
	if !first.Timestamp.Equal(time.Date(2026, 8, 29, 10, 1, 0, 0, time.UTC)) {
		t.Errorf("unexpected timestamp: %v", first.Timestamp)
	}
	if first.ChapterStats["Ch1"].Asked != 10 || first.ChapterStats["Ch1"].Correct != 1 {
		t.Errorf("unexpected chapter stats: %+v", first.ChapterStats)
	}
	if len(first.SelectedChapters) != 2 || first.SelectedChapters[0] != "Ch1" {
		t.Errorf("unexpected chapters: %v", first.SelectedChapters)
	}
}

func TestHistory_Empty(t *testing.T) {
	s := newStore(t)

	entries, err := s.ListHistory()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty ledger, got %d entries", len(entries))
	}
}

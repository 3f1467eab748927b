package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := OpenInMemory(name)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrateCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{tableUsers, tableMistakes, tableSessions, tableLLMEvents, "global_sequence"} {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestUserCreateGetList(t *testing.T) {
	s := openTestStore(t)
	repo := s.UserRepo()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "ada"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing user: err = %v, want ErrNotFound", err)
	}

	for _, name := range []string{"zed", "ada"} {
		if err := repo.Create(ctx, &User{Username: name, Email: name + "@example.com"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	u, err := repo.Get(ctx, "ada")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Email != "ada@example.com" {
		t.Errorf("email = %q", u.Email)
	}
	if u.ID == 0 {
		t.Error("expected assigned id")
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 || users[0].Username != "ada" || users[1].Username != "zed" {
		t.Errorf("unexpected users: %+v", users)
	}

	if err := repo.Create(ctx, &User{Username: "ada", Email: "x@y.z"}); err == nil {
		t.Error("expected unique violation for duplicate username")
	}
}

func TestMistakeSaveOrderAndUpdate(t *testing.T) {
	s := openTestStore(t)
	repo := s.MistakeRepo()
	ctx := context.Background()

	first := &Mistake{ID: "m1", Username: "ada", Word: "necessary", UserSpelling: "neccesary", OriginalSentence: "It is necessary.", Grade: "7th Grade"}
	second := &Mistake{ID: "m2", Username: "ada", Word: "rhythm", UserSpelling: "rythm", OriginalSentence: "Feel the rhythm.", Grade: "8th Grade"}
	other := &Mistake{ID: "m3", Username: "bob", Word: "weird", UserSpelling: "wierd", OriginalSentence: "So weird.", Grade: "7th Grade"}
	for _, m := range []*Mistake{first, second, other} {
		if err := repo.Save(ctx, m); err != nil {
			t.Fatalf("save %s: %v", m.ID, err)
		}
	}

	list, err := repo.List(ctx, "ada")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "m2" || list[1].ID != "m1" {
		t.Fatalf("expected newest first [m2 m1], got %+v", list)
	}

	// Updating the older record keeps its position.
	first.MasteryScore = 2
	first.UserSpelling = "nessesary"
	first.Timestamp = time.Now().UTC().Add(time.Hour)
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("update: %v", err)
	}
	list, _ = repo.List(ctx, "ada")
	if list[1].ID != "m1" || list[1].MasteryScore != 2 || list[1].UserSpelling != "nessesary" {
		t.Errorf("update not applied in place: %+v", list)
	}

	got, err := repo.Get(ctx, "m2")
	if err != nil || got.Word != "rhythm" {
		t.Errorf("get m2 = %+v, %v", got, err)
	}

	if err := repo.Delete(ctx, "m2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "m2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	n, err := repo.DeleteAll(ctx, "ada")
	if err != nil || n != 1 {
		t.Errorf("delete all = %d, %v", n, err)
	}
	bobs, _ := repo.List(ctx, "bob")
	if len(bobs) != 1 {
		t.Errorf("other user's mistakes should survive, got %d", len(bobs))
	}
}

func TestSessionAppendNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	for i := range 12 {
		rec := &PracticeSession{
			Username: "ada",
			Grade:    "7th Grade",
			Correct:  i%2 == 0,
			Text:     fmt.Sprintf("sentence %d", i),
		}
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if rec.ID == "" || rec.Sequence == 0 {
			t.Fatalf("append did not fill id/sequence: %+v", rec)
		}
	}

	all, err := repo.List(ctx, "ada", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 12 {
		t.Fatalf("expected 12 records, got %d", len(all))
	}
	if all[0].Text != "sentence 11" || all[11].Text != "sentence 0" {
		t.Errorf("expected newest first, got %q ... %q", all[0].Text, all[11].Text)
	}
	if !all[11].Correct || all[10].Correct {
		t.Error("correct flag not round-tripped")
	}

	recent, _ := repo.List(ctx, "ada", 10)
	if len(recent) != 10 {
		t.Errorf("limit ignored: %d", len(recent))
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "sentence", InputTokens: 100, OutputTokens: 20, LatencyMs: 300, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "sentence", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "other", Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "sentence"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 || got[0].InputTokens != 50 {
		t.Errorf("unexpected events: %+v", got)
	}

	e, err := repo.GetLLMEvent(ctx, got[0].ID)
	if err != nil || e == nil || e.Model != "gemini-2.5-flash" {
		t.Errorf("get event = %+v, %v", e, err)
	}
	if e, _ := repo.GetLLMEvent(ctx, 9999); e != nil {
		t.Error("expected nil for unknown id")
	}

	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 || usage[1].Purpose != "sentence" || usage[1].Calls != 2 || usage[1].InputTokens != 150 || usage[1].AvgLatencyMs != 200 {
		t.Errorf("unexpected purpose usage: %+v", usage)
	}

	models, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("model usage: %v", err)
	}
	if len(models) != 2 {
		t.Errorf("unexpected model usage: %+v", models)
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := &PracticeSession{Username: "ada", Grade: "7th Grade", Text: "x"}
	if err := s.SessionRepo().Append(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "sentence", Success: true}); err != nil {
		t.Fatal(err)
	}
	events, _ := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if len(events) != 1 || events[0].Sequence <= rec.Sequence {
		t.Errorf("expected event sequence after %d, got %+v", rec.Sequence, events)
	}
}

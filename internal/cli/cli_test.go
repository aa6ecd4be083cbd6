package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zhouzirui/mindwell/backend/internal/analysis/triage"
	"github.com/zhouzirui/mindwell/backend/internal/store"
	"github.com/zhouzirui/mindwell/backend/internal/store/sqlitestore"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDetectCommand(t *testing.T) {
	out, err := run(t, "detect", "मुझे", "चिंता", "है")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if strings.TrimSpace(out) != "hi" {
		t.Fatalf("expected hi, got %q", out)
	}

	out, err = run(t, "detect", "--lang", "fr", "ok")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if strings.TrimSpace(out) != "fr" {
		t.Fatalf("expected fallback fr, got %q", out)
	}
}

func TestClassifyCommandJSON(t *testing.T) {
	out, err := run(t, "classify", "-f", "json", "I feel lonely at college")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	var res triage.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Topic != triage.TopicMentalHealth || res.Subtopic != triage.SubtopicLoneliness {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRespondCommandCrisis(t *testing.T) {
	out, err := run(t, "respond", "--seed", "7", "I", "want", "to", "die")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !strings.HasPrefix(out, "[en/crisis]") || !strings.Contains(out, "9152987821") {
		t.Fatalf("unexpected crisis output: %q", out)
	}
}

func TestCommandErrors(t *testing.T) {
	if _, err := run(t, "detect", "--lang", "klingon", "hello"); err == nil {
		t.Fatal("expected error for unsupported language")
	}
	if _, err := run(t, "languages", "-f", "yaml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if _, err := run(t, "classify"); err == nil {
		t.Fatal("expected error without text")
	}
}

func TestLanguagesCommand(t *testing.T) {
	out, err := run(t, "languages")
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != len(triage.Languages()) {
		t.Fatalf("expected %d lines, got %d", len(triage.Languages()), lines)
	}
}

func TestAnalyticsCommandReadsSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindwell.db")
	st, err := sqlitestore.New(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	ctx := context.Background()
	started := time.Date(2026, time.October, 2, 8, 0, 0, 0, time.UTC)
	if err := st.CreateSession(ctx, store.SessionRecord{ID: "s1", Language: "en", StartedAt: started}); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := st.UpdateSession(ctx, store.SessionUpdate{ID: "s1", EndedAt: started.Add(time.Minute), MessageCount: 3, Rating: 5}); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out, err := run(t, "analytics", "--db", path)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if !strings.Contains(out, "sessions=1") || !strings.Contains(out, "2026-10 sessions=1") {
		t.Fatalf("unexpected analytics output:\n%s", out)
	}
}

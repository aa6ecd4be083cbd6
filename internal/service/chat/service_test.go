package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/zhouzirui/mindwell/backend/internal/analysis/triage"
	"github.com/zhouzirui/mindwell/backend/internal/metrics"
	chatModel "github.com/zhouzirui/mindwell/backend/internal/model/chat"
	chat "github.com/zhouzirui/mindwell/backend/internal/service/chat"
	"github.com/zhouzirui/mindwell/backend/internal/store"
	"github.com/zhouzirui/mindwell/backend/internal/store/memstore"
)

type brokenStore struct {
	*memstore.Store
}

func (brokenStore) CreateSession(context.Context, store.SessionRecord) error {
	return errors.New("database unavailable")
}

func (brokenStore) UpdateSession(context.Context, store.SessionUpdate) error {
	return errors.New("database unavailable")
}

func newService(opts ...chat.Option) *chat.Service {
	return chat.NewService(triage.NewEngine(triage.WithSeed(7)), opts...)
}

func TestServiceGetSession(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "student-1", "hi")
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	got, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if got.ID != session.ID || got.UserID != "student-1" {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.Language != "hi" || got.State != chatModel.StateIdle {
		t.Fatalf("unexpected language/state: %s/%s", got.Language, got.State)
	}
	if len(got.Messages) != 1 || got.Messages[0].Sender != chatModel.SenderBot {
		t.Fatalf("expected a single greeting, got %+v", got.Messages)
	}
	if !strings.HasPrefix(got.Messages[0].Text, "नमस्ते") {
		t.Fatalf("expected Hindi greeting, got %q", got.Messages[0].Text)
	}
}

func TestServiceGetSessionNotFound(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.GetSession(ctx, "missing"); !errors.Is(err, chat.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.Submit(ctx, "missing", "hello"); !errors.Is(err, chat.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound from Submit, got %v", err)
	}
}

func TestCreateSessionFallsBackToDefaultLanguage(t *testing.T) {
	svc := newService(chat.WithDefaultLanguage(triage.Spanish))
	session, err := svc.CreateSession(context.Background(), "", "xx")
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	if session.Language != "es" {
		t.Fatalf("expected es, got %s", session.Language)
	}
}

func TestSubmitEmptyInputIsIgnored(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	session, _ := svc.CreateSession(ctx, "", "en")

	for _, input := range []string{"", "   ", "<p> </p>"} {
		res, err := svc.Submit(ctx, session.ID, input)
		if err != nil {
			t.Fatalf("Submit(%q) err: %v", input, err)
		}
		if res.Accepted || res.State != chatModel.StateIdle {
			t.Fatalf("Submit(%q) should be a no-op, got %+v", input, res)
		}
	}

	got, _ := svc.GetSession(ctx, session.ID)
	if len(got.Messages) != 1 {
		t.Fatalf("no message should be appended, got %d", len(got.Messages))
	}
}

func TestSubmitSanitizesAndReplies(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	session, _ := svc.CreateSession(ctx, "", "en")

	res, err := svc.Submit(ctx, session.ID, `<b onclick="x()">I feel anxious</b>`)
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if !res.Accepted || res.State != chatModel.StateIdle {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.UserMessage.Text != "I feel anxious" {
		t.Fatalf("expected sanitized text, got %q", res.UserMessage.Text)
	}
	if res.Topic != triage.TopicMentalHealth || res.Subtopic != triage.SubtopicAnxiety {
		t.Fatalf("unexpected classification: %s/%s", res.Topic, res.Subtopic)
	}

	got, _ := svc.GetSession(ctx, session.ID)
	if len(got.Messages) != 3 {
		t.Fatalf("expected greeting + user + bot, got %d", len(got.Messages))
	}
	if got.Messages[2].Sender != chatModel.SenderBot || got.Messages[2].Text != res.BotMessage.Text {
		t.Fatalf("bot reply not appended: %+v", got.Messages[2])
	}
}

func TestCrisisMarksSessionEscalated(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	session, _ := svc.CreateSession(ctx, "", "en")

	res, err := svc.Submit(ctx, session.ID, "I want to kill myself")
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if res.Topic != triage.TopicCrisis {
		t.Fatalf("expected crisis, got %s", res.Topic)
	}
	got, _ := svc.GetSession(ctx, session.ID)
	if !got.Escalated {
		t.Fatalf("session should be escalated after a crisis turn")
	}
}

func TestSubmitRejectsConcurrentTurn(t *testing.T) {
	svc := newService(chat.WithThinkingDelay(300 * time.Millisecond))
	ctx := context.Background()
	session, _ := svc.CreateSession(ctx, "", "en")

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, session.ID, "I can't sleep")
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		got, _ := svc.GetSession(ctx, session.ID)
		if got.State == chatModel.StateAwaitingResponse {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("session never entered awaiting-response")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := svc.Submit(ctx, session.ID, "hello?"); !errors.Is(err, chat.ErrTurnInFlight) {
		t.Fatalf("expected ErrTurnInFlight, got %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("first Submit err: %v", err)
	}
	got, _ := svc.GetSession(ctx, session.ID)
	if got.State != chatModel.StateIdle || len(got.Messages) != 3 {
		t.Fatalf("expected idle with 3 messages, got %s with %d", got.State, len(got.Messages))
	}
}

func TestCancelledContextStillAppendsReply(t *testing.T) {
	svc := newService(chat.WithThinkingDelay(time.Hour))
	session, _ := svc.CreateSession(context.Background(), "", "en")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.Submit(ctx, session.ID, "hello")
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if res.BotMessage == nil || res.State != chatModel.StateIdle {
		t.Fatalf("expected a reply and idle state, got %+v", res)
	}
}

func TestEndSessionPersistsRating(t *testing.T) {
	st := memstore.New()
	svc := newService(chat.WithStore(st))
	ctx := context.Background()
	session, _ := svc.CreateSession(ctx, "student-1", "en")

	if _, err := svc.Submit(ctx, session.ID, "I want to end my life"); err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if _, err := svc.EndSession(ctx, session.ID, 6); !errors.Is(err, chat.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	ended, err := svc.EndSession(ctx, session.ID, 4)
	if err != nil {
		t.Fatalf("EndSession err: %v", err)
	}
	if ended.State != chatModel.StateEnded || ended.Rating != 4 || ended.EndedAt == nil {
		t.Fatalf("unexpected ended session: %+v", ended)
	}
	if _, err := svc.Submit(ctx, session.ID, "hello"); !errors.Is(err, chat.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if _, err := svc.EndSession(ctx, session.ID, 0); !errors.Is(err, chat.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed on second end, got %v", err)
	}

	drainCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := svc.Drain(drainCtx); err != nil {
		t.Fatalf("Drain err: %v", err)
	}

	rows, err := st.SessionAnalytics(ctx, 12)
	if err != nil {
		t.Fatalf("SessionAnalytics err: %v", err)
	}
	if len(rows) != 1 || rows[0].TotalSessions != 1 || rows[0].EscalatedSessions != 1 || rows[0].AvgSatisfaction != 4 {
		t.Fatalf("unexpected analytics: %+v", rows)
	}
}

func TestPersistenceFailuresDoNotBreakConversation(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	svc := newService(chat.WithStore(brokenStore{memstore.New()}), chat.WithMetrics(m))
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "", "en")
	if err != nil {
		t.Fatalf("CreateSession must not surface store errors: %v", err)
	}
	if _, err := svc.Submit(ctx, session.ID, "exam stress"); err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if _, err := svc.EndSession(ctx, session.ID, 5); err != nil {
		t.Fatalf("EndSession must not surface store errors: %v", err)
	}

	drainCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := svc.Drain(drainCtx); err != nil {
		t.Fatalf("Drain err: %v", err)
	}

	if got := testutil.ToFloat64(m.PersistenceFailures.WithLabelValues("create_session")); got != 1 {
		t.Fatalf("expected 1 create failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.PersistenceFailures.WithLabelValues("update_session")); got != 1 {
		t.Fatalf("expected 1 update failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.TurnsTotal.WithLabelValues("en", "mental-health")); got != 1 {
		t.Fatalf("expected 1 mental-health turn, got %v", got)
	}
}

func TestEndSessionWaitsForPendingCrisisReply(t *testing.T) {
	st := memstore.New()
	svc := newService(chat.WithStore(st), chat.WithThinkingDelay(300*time.Millisecond))
	ctx := context.Background()
	session, _ := svc.CreateSession(ctx, "", "en")

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, session.ID, "I want to kill myself")
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		got, _ := svc.GetSession(ctx, session.ID)
		if got.State == chatModel.StateAwaitingResponse {
			if !got.Escalated {
				t.Fatal("crisis turn should escalate before the reply is sent")
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("session never entered awaiting-response")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := svc.EndSession(ctx, session.ID, 4); !errors.Is(err, chat.ErrTurnInFlight) {
		t.Fatalf("expected ErrTurnInFlight while a reply is pending, got %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Submit err: %v", err)
	}

	ended, err := svc.EndSession(ctx, session.ID, 4)
	if err != nil {
		t.Fatalf("EndSession err: %v", err)
	}
	if !ended.Escalated || len(ended.Messages) != 3 {
		t.Fatalf("expected escalated session with 3 messages, got %v with %d", ended.Escalated, len(ended.Messages))
	}

	drainCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := svc.Drain(drainCtx); err != nil {
		t.Fatalf("Drain err: %v", err)
	}
	rows, err := st.SessionAnalytics(ctx, 12)
	if err != nil {
		t.Fatalf("SessionAnalytics err: %v", err)
	}
	if len(rows) != 1 || rows[0].EscalatedSessions != 1 || rows[0].AvgSatisfaction != 4 {
		t.Fatalf("unexpected analytics: %+v", rows)
	}
}

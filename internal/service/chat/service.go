package chat

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/mindwell/backend/internal/analysis/triage"
	"github.com/zhouzirui/mindwell/backend/internal/metrics"
	"github.com/zhouzirui/mindwell/backend/internal/model/chat"
	"github.com/zhouzirui/mindwell/backend/internal/store"
	"github.com/zhouzirui/mindwell/backend/pkg/utils"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session has ended")
	ErrTurnInFlight    = errors.New("a reply is still being prepared")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

const defaultPersistTimeout = 5 * time.Second

// TurnResult describes the outcome of one submission. Accepted is false when
// the input was empty after sanitization; nothing is appended in that case.
type TurnResult struct {
	Accepted    bool            `json:"accepted"`
	State       chat.State      `json:"state"`
	UserMessage *chat.Message   `json:"userMessage,omitempty"`
	BotMessage  *chat.Message   `json:"botMessage,omitempty"`
	Language    triage.Language `json:"language,omitempty"`
	Topic       triage.Topic    `json:"topic,omitempty"`
	Subtopic    triage.Subtopic `json:"subtopic,omitempty"`
}

// Option configures a Service.
type Option func(*Service)

// WithStore enables fire-and-forget session logging.
func WithStore(st store.Store) Option {
	return func(s *Service) { s.store = st }
}

// WithMetrics records chat metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithThinkingDelay sets the artificial latency before each reply.
func WithThinkingDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithDefaultLanguage sets the language used when a session names none.
func WithDefaultLanguage(lang triage.Language) Option {
	return func(s *Service) {
		if _, ok := triage.ParseLanguage(string(lang)); ok {
			s.defaultLang = lang
		}
	}
}

// WithPersistTimeout bounds each session log write.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.persistTimeout = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// session owns its transcript; mu serialises turns within one conversation.
type session struct {
	mu        sync.Mutex
	id        string
	userID    string
	language  triage.Language
	state     chat.State
	escalated bool
	rating    int
	createdAt time.Time
	endedAt   *time.Time
	messages  []chat.Message

	// logged is closed once the create-session write has finished, so the
	// closing update never overtakes it.
	logged chan struct{}
}

// Service encapsulates conversation state management.
type Service struct {
	engine         *triage.Engine
	store          store.Store
	metrics        *metrics.Metrics
	delay          time.Duration
	defaultLang    triage.Language
	persistTimeout time.Duration
	now            func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session

	pending sync.WaitGroup
}

// NewService builds the in-memory chat service around a triage engine.
func NewService(engine *triage.Engine, opts ...Option) *Service {
	if engine == nil {
		engine = triage.NewEngine()
	}
	s := &Service{
		engine:         engine,
		defaultLang:    triage.English,
		persistTimeout: defaultPersistTimeout,
		now:            time.Now,
		sessions:       make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine exposes the triage engine shared with the HTTP layer.
func (s *Service) Engine() *triage.Engine {
	return s.engine
}

// CreateSession opens a conversation and appends the greeting. An empty or
// unknown language falls back to the service default. userID may be empty.
func (s *Service) CreateSession(ctx context.Context, userID, language string) (chat.Session, error) {
	lang, ok := triage.ParseLanguage(language)
	if !ok {
		lang = s.defaultLang
	}

	now := s.now().UTC()
	sess := &session{
		id:        uuid.NewString(),
		userID:    userID,
		language:  lang,
		state:     chat.StateIdle,
		createdAt: now,
		messages:  make([]chat.Message, 0, 16),
		logged:    make(chan struct{}),
	}
	sess.messages = append(sess.messages, chat.Message{
		ID:        uuid.NewString(),
		SessionID: sess.id,
		Sender:    chat.SenderBot,
		Text:      s.engine.Greeting(lang),
		Language:  string(lang),
		CreatedAt: now,
	})

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SessionsStarted.WithLabelValues(string(lang)).Inc()
	}

	rec := store.SessionRecord{
		ID:        sess.id,
		UserID:    userID,
		Language:  string(lang),
		StartedAt: now,
	}
	s.persist(ctx, "create_session", sess.id, nil, func(ctx context.Context) error {
		defer close(sess.logged)
		return s.store.CreateSession(ctx, rec)
	}, func() { close(sess.logged) })

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// Submit runs one user turn: sanitize, guard, triage, wait, append reply.
// Cancelling ctx cuts the thinking delay short but the reply is still
// appended, so a session never stays in AwaitingResponse.
func (s *Service) Submit(ctx context.Context, sessionID, raw string) (TurnResult, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return TurnResult{}, err
	}

	text := utils.Sanitize(raw)

	sess.mu.Lock()
	if text == "" {
		state := sess.state
		sess.mu.Unlock()
		if s.metrics != nil {
			s.metrics.IgnoredSubmissions.Inc()
		}
		return TurnResult{Accepted: false, State: state}, nil
	}
	switch sess.state {
	case chat.StateEnded:
		sess.mu.Unlock()
		return TurnResult{}, ErrSessionClosed
	case chat.StateAwaitingResponse:
		sess.mu.Unlock()
		return TurnResult{}, ErrTurnInFlight
	}

	res := s.engine.Triage(text, sess.language)
	userMsg := chat.Message{
		ID:        uuid.NewString(),
		SessionID: sess.id,
		Sender:    chat.SenderUser,
		Text:      text,
		Language:  string(res.Language),
		CreatedAt: s.now().UTC(),
	}
	sess.messages = append(sess.messages, userMsg)
	sess.state = chat.StateAwaitingResponse
	if res.Topic == triage.TopicCrisis {
		sess.escalated = true
	}
	sess.mu.Unlock()

	s.think(ctx)

	botMsg := chat.Message{
		ID:        uuid.NewString(),
		SessionID: sess.id,
		Sender:    chat.SenderBot,
		Text:      res.Response,
		Language:  string(res.Language),
		Topic:     string(res.Topic),
		Subtopic:  string(res.Subtopic),
		CreatedAt: s.now().UTC(),
	}

	sess.mu.Lock()
	sess.messages = append(sess.messages, botMsg)
	sess.state = chat.StateIdle
	state := sess.state
	sess.mu.Unlock()

	if s.metrics != nil {
		s.metrics.TurnsTotal.WithLabelValues(string(res.Language), string(res.Topic)).Inc()
		if res.Topic == triage.TopicCrisis {
			s.metrics.CrisisTotal.WithLabelValues(string(res.Language)).Inc()
		}
	}
	if res.Topic == triage.TopicCrisis {
		log.Printf("[chat] crisis response served session=%s lang=%s", sess.id, res.Language)
	}

	return TurnResult{
		Accepted:    true,
		State:       state,
		UserMessage: &userMsg,
		BotMessage:  &botMsg,
		Language:    res.Language,
		Topic:       res.Topic,
		Subtopic:    res.Subtopic,
	}, nil
}

func (s *Service) think(ctx context.Context) {
	if s.delay <= 0 {
		return
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// EndSession closes a conversation with an optional rating (0 = unrated)
// and logs the final counts. A session waiting on a reply cannot be ended
// until that reply is appended.
func (s *Service) EndSession(ctx context.Context, sessionID string, rating int) (chat.Session, error) {
	if rating != 0 && (rating < 1 || rating > 5) {
		return chat.Session{}, ErrInvalidRating
	}
	sess, err := s.lookup(sessionID)
	if err != nil {
		return chat.Session{}, err
	}

	sess.mu.Lock()
	switch sess.state {
	case chat.StateEnded:
		sess.mu.Unlock()
		return chat.Session{}, ErrSessionClosed
	case chat.StateAwaitingResponse:
		sess.mu.Unlock()
		return chat.Session{}, ErrTurnInFlight
	}
	ended := s.now().UTC()
	sess.state = chat.StateEnded
	sess.endedAt = &ended
	sess.rating = rating
	upd := store.SessionUpdate{
		ID:           sess.id,
		EndedAt:      ended,
		MessageCount: len(sess.messages),
		Rating:       rating,
		Escalated:    sess.escalated,
	}
	snapshot := sess.snapshot()
	sess.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SessionsEnded.Inc()
		if rating > 0 {
			s.metrics.SessionRating.Observe(float64(rating))
		}
	}

	s.persist(ctx, "update_session", sess.id, sess.logged, func(ctx context.Context) error {
		return s.store.UpdateSession(ctx, upd)
	}, nil)

	return snapshot, nil
}

// GetSession returns a snapshot of the session and its transcript.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return chat.Session{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// LoadTranscript returns the stored messages for a session.
func (s *Service) LoadTranscript(ctx context.Context, sessionID string) ([]chat.Message, error) {
	snap, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return snap.Messages, nil
}

// Drain waits for in-flight session log writes or for ctx to expire.
func (s *Service) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) lookup(sessionID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// persist runs write in the background, detached from the request but
// bounded by the persist timeout. Failures are logged and counted, never
// returned or retried. after, when set, is awaited before writing. skip runs
// instead of write when no store is configured.
func (s *Service) persist(ctx context.Context, op, sessionID string, after <-chan struct{}, write func(context.Context) error, skip func()) {
	if s.store == nil {
		if skip != nil {
			skip()
		}
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
		defer cancel()

		if after != nil {
			select {
			case <-after:
			case <-ctx.Done():
				s.persistFailed(op, sessionID, ctx.Err())
				return
			}
		}
		if err := write(ctx); err != nil {
			s.persistFailed(op, sessionID, err)
		}
	}()
}

func (s *Service) persistFailed(op, sessionID string, err error) {
	log.Printf("[sessionlog] %s failed session=%s: %v", op, sessionID, err)
	if s.metrics != nil {
		s.metrics.PersistenceFailures.WithLabelValues(op).Inc()
	}
}

func (sess *session) snapshot() chat.Session {
	out := chat.Session{
		ID:        sess.id,
		UserID:    sess.userID,
		Language:  string(sess.language),
		State:     sess.state,
		Escalated: sess.escalated,
		Rating:    sess.rating,
		CreatedAt: sess.createdAt,
		Messages:  append([]chat.Message(nil), sess.messages...),
	}
	if sess.endedAt != nil {
		ended := *sess.endedAt
		out.EndedAt = &ended
	}
	return out
}

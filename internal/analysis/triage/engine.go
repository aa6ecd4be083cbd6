package triage

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Result is the outcome of one triage pass.
type Result struct {
	Language Language `json:"language"`
	Topic    Topic    `json:"topic"`
	Subtopic Subtopic `json:"subtopic,omitempty"`
	Response string   `json:"response"`
}

// Engine runs detection, screening, classification and template selection.
// It is safe for concurrent use.
type Engine struct {
	book *TemplateBook

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes general replies reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand injects the random source used for general replies.
func WithRand(src rand.Source) Option {
	return func(e *Engine) {
		e.rng = rand.New(src)
	}
}

// WithTemplates replaces the built-in template catalog.
func WithTemplates(book *TemplateBook) Option {
	return func(e *Engine) {
		if book != nil {
			e.book = book
		}
	}
}

// NewEngine builds an engine over the built-in catalog.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{book: DefaultTemplates()}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		now := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(now, now>>1))
	}
	return e
}

// Templates exposes the engine's template book.
func (e *Engine) Templates() *TemplateBook {
	return e.book
}

// Respond selects the reply for an already classified message.
func (e *Engine) Respond(lang Language, topic Topic, text string) string {
	switch topic {
	case TopicCrisis:
		return e.book.Crisis(lang)
	case TopicMentalHealth:
		return e.book.MentalHealth(lang, DetectSubtopic(text, lang))
	default:
		return e.pickGeneral(lang)
	}
}

func (e *Engine) pickGeneral(lang Language) string {
	candidates := e.book.General(lang)
	e.mu.Lock()
	i := e.rng.IntN(len(candidates))
	e.mu.Unlock()
	return candidates[i]
}

// Triage runs the full pipeline. preferred is used as the language when
// detection finds no signal in text.
func (e *Engine) Triage(text string, preferred Language) Result {
	lang := DetectOr(text, preferred)
	res := Result{Language: lang}

	if IsCrisis(text) {
		res.Topic = TopicCrisis
		res.Response = e.book.Crisis(lang)
		return res
	}

	res.Topic = Classify(text, lang)
	if res.Topic == TopicMentalHealth {
		res.Subtopic = DetectSubtopic(text, lang)
		res.Response = e.book.MentalHealth(lang, res.Subtopic)
		return res
	}
	res.Response = e.pickGeneral(lang)
	return res
}

// Greeting returns the opening message for lang.
func (e *Engine) Greeting(lang Language) string {
	return e.book.Greeting(lang)
}

// QuickActions returns the canned prompts for lang.
func (e *Engine) QuickActions(lang Language) []string {
	return e.book.QuickActions(lang)
}

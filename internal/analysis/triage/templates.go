package triage

// GenericResponse is the last entry of every fallback chain.
const GenericResponse = "I'm here to listen. Could you tell me a little more about how you're feeling?"

// GenericDisclaimer backs crisis and mental-health fallbacks when the book
// has no disclaimer of its own.
const GenericDisclaimer = "⚠️ Disclaimer: This is AI-generated guidance and not a substitute for professional medical advice. Please consult a certified mental health professional or doctor for proper treatment."

// guidedFallback is GenericResponse with a disclaimer, used where every
// reply must carry one.
func (b *TemplateBook) guidedFallback(lang Language) string {
	disclaimer := b.Disclaimer(lang)
	if disclaimer == "" {
		disclaimer = GenericDisclaimer
	}
	return GenericResponse + "\n\n" + disclaimer
}

// TemplateBook resolves response templates with the fallback chain
// requested language, then English, then GenericResponse.
type TemplateBook struct {
	packs map[Language]*languagePack
}

// DefaultTemplates returns the book backed by the built-in catalog.
func DefaultTemplates() *TemplateBook {
	return &TemplateBook{packs: catalog}
}

func (b *TemplateBook) pack(lang Language) (*languagePack, bool) {
	p, ok := b.packs[lang]
	return p, ok && p != nil
}

// lookup walks the fallback chain and returns the first non-empty value
// produced by pick.
func (b *TemplateBook) lookup(lang Language, pick func(*languagePack) string) string {
	for _, l := range []Language{lang, English} {
		if p, ok := b.pack(l); ok {
			if s := pick(p); s != "" {
				return s
			}
		}
	}
	return ""
}

// Disclaimer returns the medical disclaimer for lang.
func (b *TemplateBook) Disclaimer(lang Language) string {
	return b.lookup(lang, func(p *languagePack) string { return p.disclaimer })
}

// withDisclaimer appends the disclaimer of the language the body came from.
func withDisclaimer(p *languagePack, body string) string {
	if body == "" {
		return ""
	}
	if p.disclaimer == "" {
		return body
	}
	return body + "\n\n" + p.disclaimer
}

// Crisis returns the fixed safety message for lang.
func (b *TemplateBook) Crisis(lang Language) string {
	if s := b.lookup(lang, func(p *languagePack) string { return withDisclaimer(p, p.crisis) }); s != "" {
		return s
	}
	return b.guidedFallback(lang)
}

// MentalHealth returns the template for (lang, sub). A subtopic missing in
// lang falls back to the English subtopic before the language default.
func (b *TemplateBook) MentalHealth(lang Language, sub Subtopic) string {
	bySub := func(s Subtopic) func(*languagePack) string {
		return func(p *languagePack) string { return withDisclaimer(p, p.mentalHealth[s]) }
	}
	if sub != SubtopicDefault && sub != "" {
		if s := b.lookup(lang, bySub(sub)); s != "" {
			return s
		}
	}
	if s := b.lookup(lang, bySub(SubtopicDefault)); s != "" {
		return s
	}
	return b.guidedFallback(lang)
}

// General returns the candidate general replies for lang.
func (b *TemplateBook) General(lang Language) []string {
	for _, l := range []Language{lang, English} {
		if p, ok := b.pack(l); ok && len(p.general) > 0 {
			return append([]string(nil), p.general...)
		}
	}
	return []string{GenericResponse}
}

// Greeting returns the opening bot message for lang.
func (b *TemplateBook) Greeting(lang Language) string {
	if s := b.lookup(lang, func(p *languagePack) string { return p.greeting }); s != "" {
		return s
	}
	return GenericResponse
}

// QuickActions returns the canned phrases offered for lang.
func (b *TemplateBook) QuickActions(lang Language) []string {
	for _, l := range []Language{lang, English} {
		if p, ok := b.pack(l); ok && len(p.quickActions) > 0 {
			return append([]string(nil), p.quickActions...)
		}
	}
	return nil
}

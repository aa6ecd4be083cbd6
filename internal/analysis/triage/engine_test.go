package triage

import (
	"slices"
	"strings"
	"testing"
)

func TestDetectLanguages(t *testing.T) {
	cases := map[string]Language{
		"":                                English,
		"   ":                             English,
		"hello there, how was your day?":  English,
		"मुझे चिंता हो रही है":            Hindi,
		"mujhe neend nahi aati":           Hindi,
		"मला काळजी वाटत आहे":              Marathi,
		"আমি ভালো নেই":                    Bengali,
		"నాకు బాధగా ఉంది":                 Telugu,
		"நான் சோகமாக இருக்கிறேன்":         Tamil,
		"મને ચિંતા થાય છે":                Gujarati,
		"ನನಗೆ ಬೇಸರವಾಗಿದೆ":                 Kannada,
		"എനിക്ക് സങ്കടമാണ്":                Malayalam,
		"ମୁଁ ଦୁଃଖୀ":                        Odia,
		"ਮੈਂ ਉਦਾਸ ਹਾਂ":                     Punjabi,
		"میں پریشان ہوں":                  Urdu,
		"HOLA, estoy triste":              Spanish,
		"Bonjour, je me sens seul":        French,
		"Ich bin so müde":                 German,
		"&lt;b&gt;hola&lt;/b&gt;":         Spanish,
	}
	for input, want := range cases {
		if got := Detect(input); got != want {
			t.Fatalf("Detect(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestDetectOrUsesFallback(t *testing.T) {
	if got := DetectOr("ok", Spanish); got != Spanish {
		t.Fatalf("expected fallback es, got %s", got)
	}
	if got := DetectOr("ok", Language("xx")); got != English {
		t.Fatalf("expected en for unknown fallback, got %s", got)
	}
	if got := DetectOr("मुझे मदद चाहिए", French); got != Hindi {
		t.Fatalf("detected script must win over fallback, got %s", got)
	}
}

func TestParseLanguage(t *testing.T) {
	if lang, ok := ParseLanguage(" HI-in "); !ok || lang != Hindi {
		t.Fatalf("expected hi, got %q %v", lang, ok)
	}
	if _, ok := ParseLanguage("klingon"); ok {
		t.Fatalf("expected unknown language to be rejected")
	}
}

func TestEveryCrisisPhraseIsCrisis(t *testing.T) {
	engine := NewEngine(WithSeed(1))
	book := engine.Templates()
	for lang, pack := range catalog {
		want := book.Crisis(lang)
		if !strings.HasSuffix(want, pack.disclaimer) {
			t.Fatalf("crisis template for %s lacks disclaimer", lang)
		}
		for _, phrase := range pack.crisisPhrases {
			if got := Classify(phrase, lang); got != TopicCrisis {
				t.Fatalf("Classify(%q, %s) = %s, want crisis", phrase, lang, got)
			}
			first := engine.Respond(lang, TopicCrisis, phrase)
			second := engine.Respond(lang, TopicCrisis, phrase)
			if first != want || second != want {
				t.Fatalf("crisis response for %s is not the fixed template", lang)
			}
		}
	}
}

func TestCrisisScenarioEnglish(t *testing.T) {
	res := NewEngine().Triage("I want to kill myself", English)
	if res.Topic != TopicCrisis || res.Language != English {
		t.Fatalf("unexpected result: %+v", res)
	}
	for _, want := range []string{"9152987821", "112", "immediate", "EMERGENCY"} {
		if !strings.Contains(res.Response, want) {
			t.Fatalf("crisis response missing %q", want)
		}
	}
}

func TestCrisisShortCircuitsMentalHealthKeywords(t *testing.T) {
	res := NewEngine().Triage("exam stress makes me want to die", English)
	if res.Topic != TopicCrisis {
		t.Fatalf("expected crisis, got %s", res.Topic)
	}
	if res.Subtopic != "" {
		t.Fatalf("crisis result should carry no subtopic, got %s", res.Subtopic)
	}
}

func TestHindiAnxietyScenario(t *testing.T) {
	res := NewEngine().Triage("मुझे चिंता हो रही है", English)
	if res.Language != Hindi {
		t.Fatalf("expected hi, got %s", res.Language)
	}
	if res.Topic != TopicMentalHealth || res.Subtopic != SubtopicAnxiety {
		t.Fatalf("expected mental-health/anxiety, got %s/%s", res.Topic, res.Subtopic)
	}
	if !strings.Contains(res.Response, "प्राणायाम") {
		t.Fatalf("expected the Hindi anxiety template, got %q", res.Response)
	}
	if !strings.Contains(res.Response, catalog[Hindi].disclaimer) {
		t.Fatalf("mental-health response must contain the disclaimer")
	}
}

func TestGeneralScenarioIsMemberOfEnglishSet(t *testing.T) {
	engine := NewEngine()
	set := engine.Templates().General(English)
	for range 20 {
		res := engine.Triage("What's a good movie to watch?", English)
		if res.Topic != TopicGeneral {
			t.Fatalf("expected general, got %s", res.Topic)
		}
		if !slices.Contains(set, res.Response) {
			t.Fatalf("response %q not in English general set", res.Response)
		}
	}
}

func TestBoundaryInputsAreGeneral(t *testing.T) {
	engine := NewEngine()
	for _, input := range []string{"", "   \t\n", "😀🎉🙏"} {
		if got := Classify(input, English); got != TopicGeneral {
			t.Fatalf("Classify(%q) = %s, want general", input, got)
		}
		if res := engine.Triage(input, English); res.Response == "" {
			t.Fatalf("Triage(%q) returned an empty response", input)
		}
	}
}

func TestDetectSubtopicOrder(t *testing.T) {
	cases := map[string]Subtopic{
		"I feel anxious and sad":        SubtopicAnxiety,
		"I am so depressed":             SubtopicDepression,
		"my parents keep fighting":      SubtopicFamily,
		"my boss is awful":              SubtopicWork,
		"I can't sleep before my exam":  SubtopicStress,
		"I have insomnia":               SubtopicSleep,
		"I feel lonely":                 SubtopicLoneliness,
		"I need coping strategies":      SubtopicDefault,
		"परिवार में झगड़ा":                SubtopicFamily,
		"estoy con insomnio":            SubtopicSleep,
		"ich fühle mich einsam":         SubtopicLoneliness,
	}
	for input, want := range cases {
		lang := Detect(input)
		if got := DetectSubtopic(input, lang); got != want {
			t.Fatalf("DetectSubtopic(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestMentalHealthTemplatesCarryDisclaimer(t *testing.T) {
	book := DefaultTemplates()
	for _, info := range Languages() {
		disclaimer := book.Disclaimer(info.Code)
		for _, sub := range append(slices.Clone(subtopicOrder), SubtopicDefault) {
			if got := book.MentalHealth(info.Code, sub); !strings.Contains(got, "⚠️") || got == GenericResponse {
				t.Fatalf("template %s/%s lacks a disclaimer: %q", info.Code, sub, got)
			}
		}
		if disclaimer == "" {
			t.Fatalf("no disclaimer resolved for %s", info.Code)
		}
	}
}

func TestMentalHealthFallsBackToEnglishSubtopic(t *testing.T) {
	book := DefaultTemplates()
	if got, want := book.MentalHealth(Spanish, SubtopicStress), book.MentalHealth(English, SubtopicStress); got != want {
		t.Fatalf("expected English stress template for es, got %q", got)
	}
	if got, want := book.MentalHealth(Spanish, SubtopicDefault), catalog[Spanish].mentalHealth[SubtopicDefault]; !strings.HasPrefix(got, want) {
		t.Fatalf("expected Spanish default template, got %q", got)
	}
	if got, want := book.MentalHealth(Bengali, SubtopicAnxiety), book.MentalHealth(English, SubtopicAnxiety); got != want {
		t.Fatalf("expected English anxiety template for bn, got %q", got)
	}
}

func TestEmptyBookFallsBackToGeneric(t *testing.T) {
	book := &TemplateBook{packs: map[Language]*languagePack{}}
	guided := GenericResponse + "\n\n" + GenericDisclaimer
	if got := book.Crisis(Hindi); got != guided {
		t.Fatalf("expected generic crisis fallback with disclaimer, got %q", got)
	}
	if got := book.MentalHealth(Hindi, SubtopicAnxiety); got != guided {
		t.Fatalf("expected generic mental-health fallback with disclaimer, got %q", got)
	}
	if got := book.Greeting(Hindi); got != GenericResponse {
		t.Fatalf("expected plain generic greeting, got %q", got)
	}
	if got := book.General(Hindi); len(got) != 1 || got[0] != GenericResponse {
		t.Fatalf("expected generic general fallback, got %v", got)
	}
}

func TestSeededEnginesAgree(t *testing.T) {
	a := NewEngine(WithSeed(42))
	b := NewEngine(WithSeed(42))
	for range 10 {
		if a.Respond(English, TopicGeneral, "hi") != b.Respond(English, TopicGeneral, "hi") {
			t.Fatalf("engines with equal seeds diverged")
		}
	}
}

func TestQuickActionsAreMentalHealth(t *testing.T) {
	engine := NewEngine()
	for _, lang := range []Language{English, Hindi} {
		actions := engine.QuickActions(lang)
		if len(actions) == 0 {
			t.Fatalf("no quick actions for %s", lang)
		}
		for _, action := range actions {
			if got := Classify(action, Detect(action)); got != TopicMentalHealth {
				t.Fatalf("quick action %q classified as %s", action, got)
			}
		}
	}
	if got := engine.QuickActions(Tamil); !slices.Equal(got, engine.QuickActions(English)) {
		t.Fatalf("expected English quick actions for ta")
	}
}

func TestSparseBookKeepsItsDisclaimer(t *testing.T) {
	book := &TemplateBook{packs: map[Language]*languagePack{
		Hindi: {disclaimer: "अस्वीकरण"},
	}}
	engine := NewEngine(WithTemplates(book))
	for _, topic := range []Topic{TopicCrisis, TopicMentalHealth} {
		got := engine.Respond(Hindi, topic, "मुझे चिंता है")
		if !strings.HasPrefix(got, GenericResponse) || !strings.HasSuffix(got, "अस्वीकरण") {
			t.Fatalf("%s fallback lacks the book disclaimer: %q", topic, got)
		}
	}
}

func TestMarathiUsesDevanagariKeywords(t *testing.T) {
	cases := map[string]Subtopic{
		"मला खूप चिंता वाटत आहे": SubtopicAnxiety,
		"मला परीक्षेचा तनाव आहे":  SubtopicStress,
	}
	engine := NewEngine()
	for input, want := range cases {
		res := engine.Triage(input, English)
		if res.Language != Marathi {
			t.Fatalf("Triage(%q) language = %s, want mr", input, res.Language)
		}
		if res.Topic != TopicMentalHealth || res.Subtopic != want {
			t.Fatalf("Triage(%q) = %s/%s, want mental-health/%s", input, res.Topic, res.Subtopic, want)
		}
		if !strings.Contains(res.Response, "⚠️") {
			t.Fatalf("Triage(%q) response lacks a disclaimer", input)
		}
	}
}

package triage

import (
	"html"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Language is a supported conversation language code.
type Language string

const (
	English   Language = "en"
	Hindi     Language = "hi"
	Marathi   Language = "mr"
	Bengali   Language = "bn"
	Telugu    Language = "te"
	Tamil     Language = "ta"
	Gujarati  Language = "gu"
	Kannada   Language = "kn"
	Malayalam Language = "ml"
	Odia      Language = "or"
	Punjabi   Language = "pa"
	Urdu      Language = "ur"
	Spanish   Language = "es"
	French    Language = "fr"
	German    Language = "de"
)

// LanguageInfo describes a language for language pickers.
type LanguageInfo struct {
	Code       Language `json:"code"`
	Name       string   `json:"name"`
	NativeName string   `json:"nativeName"`
}

var languageInfos = []LanguageInfo{
	{Code: English, Name: "English", NativeName: "English"},
	{Code: Hindi, Name: "Hindi", NativeName: "हिंदी"},
	{Code: Bengali, Name: "Bengali", NativeName: "বাংলা"},
	{Code: Telugu, Name: "Telugu", NativeName: "తెలుగు"},
	{Code: Marathi, Name: "Marathi", NativeName: "मराठी"},
	{Code: Tamil, Name: "Tamil", NativeName: "தமிழ்"},
	{Code: Gujarati, Name: "Gujarati", NativeName: "ગુજરાતી"},
	{Code: Kannada, Name: "Kannada", NativeName: "ಕನ್ನಡ"},
	{Code: Malayalam, Name: "Malayalam", NativeName: "മലയാളം"},
	{Code: Odia, Name: "Odia", NativeName: "ଓଡ଼ିଆ"},
	{Code: Punjabi, Name: "Punjabi", NativeName: "ਪੰਜਾਬੀ"},
	{Code: Urdu, Name: "Urdu", NativeName: "اردو"},
	{Code: Spanish, Name: "Spanish", NativeName: "Español"},
	{Code: French, Name: "French", NativeName: "Français"},
	{Code: German, Name: "German", NativeName: "Deutsch"},
}

// Languages returns the supported languages in display order.
func Languages() []LanguageInfo {
	return append([]LanguageInfo(nil), languageInfos...)
}

// ParseLanguage resolves a language code such as "hi" or "HI-in".
func ParseLanguage(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	for _, info := range languageInfos {
		if string(info.Code) == code {
			return info.Code, true
		}
	}
	return "", false
}

// detectionRule matches a language either by keyword or by script.
type detectionRule struct {
	lang     Language
	keywords []string
	script   *unicode.RangeTable
}

// detectionRules are evaluated in order and the first match wins. Marathi
// shares the Devanagari script with Hindi, so it is only recognised by its
// own vocabulary and must run before the Hindi script rule.
var detectionRules = []detectionRule{
	{lang: Marathi, keywords: []string{"आहे", "नाही", "वाटत", "मराठी"}},
	{lang: Hindi, keywords: []string{"namaste", "mujhe", "kaise ho", "madad", "dhanyavaad"}, script: unicode.Devanagari},
	{lang: Bengali, script: unicode.Bengali},
	{lang: Telugu, script: unicode.Telugu},
	{lang: Tamil, script: unicode.Tamil},
	{lang: Gujarati, script: unicode.Gujarati},
	{lang: Kannada, script: unicode.Kannada},
	{lang: Malayalam, script: unicode.Malayalam},
	{lang: Odia, script: unicode.Oriya},
	{lang: Punjabi, script: unicode.Gurmukhi},
	{lang: Urdu, script: unicode.Arabic},
	{lang: Spanish, keywords: []string{"hola", "cómo", "estoy", "siento", "ayuda", "gracias", "por favor"}},
	{lang: French, keywords: []string{"bonjour", "je suis", "je me sens", "merci", "s'il vous plaît", "aidez-moi", "ça va"}},
	{lang: German, keywords: []string{"ich bin", "ich fühle", "ich habe", "hilfe", "danke", "wie geht", "guten tag"}},
}

func init() {
	for i := range detectionRules {
		detectionRules[i].keywords = foldAll(detectionRules[i].keywords)
	}
}

func (r detectionRule) matches(raw, folded string) bool {
	if containsAny(folded, r.keywords) {
		return true
	}
	if r.script == nil {
		return false
	}
	return strings.ContainsFunc(raw, func(c rune) bool {
		return unicode.Is(r.script, c)
	})
}

// Detect returns the language of text, or English when no rule matches.
func Detect(text string) Language {
	return DetectOr(text, English)
}

// DetectOr is Detect with a caller supplied default for unmatched input.
func DetectOr(text string, fallback Language) Language {
	if lang, ok := detect(text); ok {
		return lang
	}
	if _, ok := ParseLanguage(string(fallback)); !ok {
		return English
	}
	return fallback
}

func detect(text string) (Language, bool) {
	raw, folded := prepare(text)
	for _, rule := range detectionRules {
		if rule.matches(raw, folded) {
			return rule.lang, true
		}
	}
	return "", false
}

// prepare decodes the HTML entities left by sanitization and returns the raw
// text alongside its case-folded form used for substring matching.
func prepare(text string) (raw, folded string) {
	raw = html.UnescapeString(text)
	return raw, fold(raw)
}

func fold(text string) string {
	return cases.Fold().String(norm.NFC.String(text))
}

func foldAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = fold(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func containsAny(folded string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

package triage

// Topic is the coarse category of a user message.
type Topic string

const (
	TopicCrisis       Topic = "crisis"
	TopicMentalHealth Topic = "mental-health"
	TopicGeneral      Topic = "general"
)

// Subtopic refines a mental-health message.
type Subtopic string

const (
	SubtopicAnxiety    Subtopic = "anxiety"
	SubtopicDepression Subtopic = "depression"
	SubtopicFamily     Subtopic = "family"
	SubtopicWork       Subtopic = "work"
	SubtopicStress     Subtopic = "stress"
	SubtopicSleep      Subtopic = "sleep"
	SubtopicLoneliness Subtopic = "loneliness"
	SubtopicDefault    Subtopic = "default"
)

// subtopicOrder is the tie-break when a message names several subtopics.
var subtopicOrder = []Subtopic{
	SubtopicAnxiety,
	SubtopicDepression,
	SubtopicFamily,
	SubtopicWork,
	SubtopicStress,
	SubtopicSleep,
	SubtopicLoneliness,
}

// folded keyword tables, built once from the catalog
var (
	crisisPhrases []string
	topicKeywords = map[Language]map[Subtopic][]string{}
)

func init() {
	for lang, pack := range catalog {
		crisisPhrases = append(crisisPhrases, foldAll(pack.crisisPhrases)...)
		buckets := make(map[Subtopic][]string, len(pack.keywords))
		for sub, words := range pack.keywords {
			buckets[sub] = foldAll(words)
		}
		topicKeywords[lang] = buckets
	}
}

// IsCrisis reports whether text contains a registered self-harm phrase in
// any language. Matching is exact substring on case-folded text, so misses
// are expected for phrasings outside the lists.
func IsCrisis(text string) bool {
	_, folded := prepare(text)
	return containsAny(folded, crisisPhrases)
}

// Classify assigns a topic to text. Crisis screening always runs first.
// Mental-health keywords are taken from lang and from English, since users
// frequently mix English terms into other languages.
func Classify(text string, lang Language) Topic {
	_, folded := prepare(text)
	if containsAny(folded, crisisPhrases) {
		return TopicCrisis
	}
	for _, buckets := range keywordSets(lang) {
		for _, words := range buckets {
			if containsAny(folded, words) {
				return TopicMentalHealth
			}
		}
	}
	return TopicGeneral
}

// DetectSubtopic returns the first subtopic in subtopicOrder whose keywords
// occur in text, or SubtopicDefault.
func DetectSubtopic(text string, lang Language) Subtopic {
	_, folded := prepare(text)
	sets := keywordSets(lang)
	for _, sub := range subtopicOrder {
		for _, buckets := range sets {
			if containsAny(folded, buckets[sub]) {
				return sub
			}
		}
	}
	return SubtopicDefault
}

// sharedKeywords lists the tables a language borrows from a language written
// in the same script. Marathi text routinely uses Hindi vocabulary.
var sharedKeywords = map[Language][]Language{
	Marathi: {Hindi},
}

// keywordSets returns the tables consulted for lang, most specific first:
// its own, any borrowed ones, then English.
func keywordSets(lang Language) []map[Subtopic][]string {
	var sets []map[Subtopic][]string
	if lang != English {
		for _, l := range append([]Language{lang}, sharedKeywords[lang]...) {
			if own, ok := topicKeywords[l]; ok {
				sets = append(sets, own)
			}
		}
	}
	return append(sets, topicKeywords[English])
}

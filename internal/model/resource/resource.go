package resource

// Type is the media kind of a resource.
type Type string

const (
	TypeVideo   Type = "video"
	TypeAudio   Type = "audio"
	TypeGuide   Type = "guide"
	TypeArticle Type = "article"
)

// Resource is a self-help item in the library.
type Resource struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        Type    `json:"type"`
	Duration    string  `json:"duration,omitempty"`
	Rating      float64 `json:"rating"`
	Language    string  `json:"language"` // display name, e.g. "Hindi"
	Category    string  `json:"category"`
	URL         string  `json:"url,omitempty"`
}

// Categories lists the browsable categories in display order.
var Categories = []string{"Anxiety", "Sleep", "Academic", "Depression", "Stress", "Relaxation", "Relationships", "General"}

// Languages lists the languages resources are offered in.
var Languages = []string{"English", "Hindi", "Bengali", "Spanish", "French"}

// Seed provides the initial library content.
func Seed() []Resource {
	return []Resource{
		{
			ID:          "1",
			Title:       "Mindful Breathing for Anxiety",
			Description: "Learn deep breathing techniques to manage anxiety and panic attacks.",
			Type:        TypeVideo,
			Duration:    "8 mins",
			Rating:      4.8,
			Language:    "English",
			Category:    "Anxiety",
			URL:         "https://www.youtube.com/embed/YRPh_GaiL8s",
		},
		{
			ID:          "2",
			Title:       "Sleep Meditation: Body Scan",
			Description: "Guided body scan meditation to help you fall asleep naturally.",
			Type:        TypeAudio,
			Duration:    "15 mins",
			Rating:      4.9,
			Language:    "English",
			Category:    "Sleep",
		},
		{
			ID:          "3",
			Title:       "Managing Academic Stress",
			Description: "Practical strategies for handling academic pressure and deadlines.",
			Type:        TypeGuide,
			Duration:    "5 min read",
			Rating:      4.7,
			Language:    "English",
			Category:    "Academic",
		},
		{
			ID:          "4",
			Title:       "मानसिक स्वास्थ्य की देखभाल",
			Description: "मानसिक स्वास्थ्य की मूल बातें और दैनिक अभ्यास",
			Type:        TypeArticle,
			Duration:    "7 min read",
			Rating:      4.6,
			Language:    "Hindi",
			Category:    "General",
		},
		{
			ID:          "5",
			Title:       "Progressive Muscle Relaxation",
			Description: "Step-by-step guide to releasing physical tension and stress.",
			Type:        TypeAudio,
			Duration:    "12 mins",
			Rating:      4.8,
			Language:    "English",
			Category:    "Relaxation",
		},
		{
			ID:          "6",
			Title:       "Building Healthy Relationships",
			Description: "Communication skills and boundary setting for better relationships.",
			Type:        TypeVideo,
			Duration:    "12 mins",
			Rating:      4.5,
			Language:    "English",
			Category:    "Relationships",
		},
		{
			ID:          "7",
			Title:       "Depression Self-Help Toolkit",
			Description: "Evidence-based strategies for managing depressive symptoms.",
			Type:        TypeGuide,
			Duration:    "10 min read",
			Rating:      4.9,
			Language:    "English",
			Category:    "Depression",
		},
		{
			ID:          "8",
			Title:       "মানসিক চাপ কমানোর উপায়",
			Description: "মানসিক চাপ কমানোর জন্য সহজ কৌশল এবং ব্যায়াম",
			Type:        TypeArticle,
			Duration:    "6 min read",
			Rating:      4.4,
			Language:    "Bengali",
			Category:    "Stress",
		},
	}
}

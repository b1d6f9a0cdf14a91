package models

// MoodEntry records how the user felt on one calendar day. Date is a
// day key in "2006-01-02" form; at most one entry exists per day.
type MoodEntry struct {
	Date  string `json:"date"`
	Mood  string `json:"mood"`
	Emoji string `json:"emoji"`
	Note  string `json:"note"`
}

type MoodOption struct {
	Name  string
	Emoji string
}

func MoodCatalog() []MoodOption {
	return []MoodOption{
		{Name: "Happy", Emoji: "😊"},
		{Name: "Sad", Emoji: "😢"},
		{Name: "Excited", Emoji: "🤩"},
		{Name: "Calm", Emoji: "😌"},
		{Name: "Anxious", Emoji: "😰"},
		{Name: "Grateful", Emoji: "🙏"},
	}
}

// MoodEmoji returns the glyph for a catalog mood name, or empty when
// the name is not in the catalog.
func MoodEmoji(name string) string {
	for _, option := range MoodCatalog() {
		if option.Name == name {
			return option.Emoji
		}
	}
	return ""
}

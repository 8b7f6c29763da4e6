package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Episode is the published reference attached to an item after a successful
// podcast upload.
type Episode struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Item is one created rehearsal: the enhanced script plus whatever the
// creation workflow managed to attach. Items are read-only once the workflow
// finishes; Audio and Published are each set at most once, during creation.
type Item struct {
	ID         string    `json:"id"`
	TitleWords []string  `json:"titleWords"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`

	Audio     []byte   `json:"-"`
	Published *Episode `json:"published,omitempty"`
}

const titleWordCount = 4

// New derives a fresh item from enhanced text. The title is the first four
// whitespace tokens of the content, prefix artifacts included; the original
// never distinguished a clean title field from the enhancement prefix.
func New(enhanced string, now time.Time) *Item {
	words := strings.Fields(enhanced)
	if len(words) > titleWordCount {
		words = words[:titleWordCount]
	}
	return &Item{
		ID:         uuid.NewString(),
		TitleWords: words,
		Content:    enhanced,
		CreatedAt:  now,
	}
}

// Title joins the title words for display and for episode metadata.
func (it *Item) Title() string {
	return strings.Join(it.TitleWords, " ")
}

func (it *Item) HasAudio() bool {
	return len(it.Audio) > 0
}

// Package response picks the guided follow-up shown after a tracker entry and
// walks the user through it.
package response

import (
	"strings"

	"github.com/rcliao/wellness/internal/model"
)

// Kind identifies a follow-up track.
type Kind string

const (
	KindBody      Kind = "body"
	KindCognitive Kind = "cognitive"
	KindSystemic  Kind = "systemic"
)

// HighAnxiety is the level from which the body track is always chosen.
const HighAnxiety = 7

const shownQuestions = 3

var cognitiveQuestions = []string{
	"What evidence supports this thought?",
	"What evidence contradicts it?",
	"How would you see this situation a year from now?",
	"What would you tell a friend in the same situation?",
	"Is there another way to look at this?",
}

var systemicQuestions = []string{
	"Could this feeling belong to someone other than you?",
	"Who in your family do you remind yourself of in this state?",
	"What message does this feeling carry?",
	"Is this about now, or about something from long ago?",
	"Whose expectations are you trying to live up to?",
}

var bodyQuestions = []string{
	"Where exactly in your body do you feel the anxiety?",
	"Is this anxiety about something specific or is it diffuse?",
}

var bodyPractice = Practice{
	Title: "A short body practice",
	Steps: []string{
		"Feel the support under your feet. Notice the floor or the ground.",
		"Take three deep breaths. Let the exhale be longer than the inhale.",
		"Put a hand on your chest. Feel the warmth of your palm.",
		"Name five things you can see right now.",
		"Gently bring your attention back to the present moment.",
	},
}

// cognitiveEmotions route an entry with a written thought to the cognitive track.
var cognitiveEmotions = []string{"sadness", "fear", "emptiness", "anger"}

// Practice is a set of steps shown all at once after the questions.
type Practice struct {
	Title string   `json:"title"`
	Steps []string `json:"steps"`
}

// Track is one follow-up experience.
type Track struct {
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Questions []string  `json:"questions"`
	Practice  *Practice `json:"practice,omitempty"`
}

// Select chooses the track for an entry. The first matching rule wins:
// high anxiety or an "anxiety" tag selects the body track; a written thought
// with a heavy emotion selects the cognitive track; anything else is systemic.
func Select(e model.TrackerEntry) Track {
	if e.AnxietyLevel >= HighAnxiety || e.HasEmotion("anxiety") {
		p := bodyPractice
		p.Steps = append([]string(nil), bodyPractice.Steps...)
		return Track{
			Kind:      KindBody,
			Title:     "Let's calm the body first",
			Questions: append([]string(nil), bodyQuestions...),
			Practice:  &p,
		}
	}

	if strings.TrimSpace(e.Thought) != "" && hasAny(e, cognitiveEmotions) {
		return Track{
			Kind:      KindCognitive,
			Title:     "Let's look at the thoughts together",
			Questions: append([]string(nil), cognitiveQuestions[:shownQuestions]...),
		}
	}

	return Track{
		Kind:      KindSystemic,
		Title:     "Deeper into the feeling",
		Questions: append([]string(nil), systemicQuestions[:shownQuestions]...),
	}
}

func hasAny(e model.TrackerEntry, tags []string) bool {
	for _, t := range tags {
		if e.HasEmotion(t) {
			return true
		}
	}
	return false
}

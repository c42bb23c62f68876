// Package model defines the core wellness record types.
package model

import "time"

// TrackerEntry is one mood check-in.
type TrackerEntry struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Emotions       []string  `json:"emotions"`
	AnxietyLevel   int       `json:"anxietyLevel"`
	BodySensations []string  `json:"bodySensations"`
	Thought        string    `json:"thought"`
}

// HasEmotion reports whether the entry carries the given emotion tag.
func (e TrackerEntry) HasEmotion(tag string) bool {
	for _, em := range e.Emotions {
		if em == tag {
			return true
		}
	}
	return false
}

// AntianxietySession is one completed guided exercise.
type AntianxietySession struct {
	ID           string            `json:"id"`
	ExerciseType ExerciseType      `json:"exerciseType"`
	CompletedAt  time.Time         `json:"completedAt"`
	CBTAnswers   map[string]string `json:"cbtAnswers,omitempty"`
}

// MeditationSession is one guided meditation played to the end.
type MeditationSession struct {
	ID           string    `json:"id"`
	MeditationID string    `json:"meditationId"`
	CompletedAt  time.Time `json:"completedAt"`
	Duration     int       `json:"duration"` // minutes, copied from the catalog
}

// ProgramDayProgress accumulates the answers given on one program day.
type ProgramDayProgress struct {
	DayID          int                      `json:"dayId"`
	Responses      map[string]ResponseValue `json:"responses"`
	CompletedAt    *time.Time               `json:"completedAt,omitempty"`
	LastAccessedAt time.Time                `json:"lastAccessedAt"`
}

// User is a local account without its password hash.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	AvatarURI string    `json:"avatarUri,omitempty"`
}

// ExerciseType names one of the anti-anxiety exercises.
type ExerciseType string

const (
	ExerciseBreathing ExerciseType = "breathing"
	ExerciseGrounding ExerciseType = "grounding"
	ExerciseCBT       ExerciseType = "cbt"
	ExerciseBody      ExerciseType = "body"
)

// ExerciseTypes lists the exercise categories in display order.
var ExerciseTypes = []ExerciseType{ExerciseBreathing, ExerciseGrounding, ExerciseCBT, ExerciseBody}

// ValidExerciseTypes are the allowed exercise types.
var ValidExerciseTypes = map[ExerciseType]bool{
	ExerciseBreathing: true,
	ExerciseGrounding: true,
	ExerciseCBT:       true,
	ExerciseBody:      true,
}

// Emotions is the fixed emotion vocabulary in display order.
var Emotions = []string{"calm", "joy", "sadness", "anxiety", "anger", "fear", "emptiness", "hope"}

// ValidEmotions are the allowed emotion tags.
var ValidEmotions = map[string]bool{
	"calm":      true,
	"joy":       true,
	"sadness":   true,
	"anxiety":   true,
	"anger":     true,
	"fear":      true,
	"emptiness": true,
	"hope":      true,
}

// ValidSensations are the allowed body sensation tags.
var ValidSensations = map[string]bool{
	"tension":   true,
	"heaviness": true,
	"lightness": true,
	"pain":      true,
	"warmth":    true,
	"cold":      true,
	"numbness":  true,
	"energy":    true,
}

const (
	MinAnxiety = 1
	MaxAnxiety = 10
)

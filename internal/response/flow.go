package response

import "fmt"

// Phase is a state of the follow-up flow.
type Phase string

const (
	PhaseQuestioning Phase = "questioning"
	PhasePractice    Phase = "practice"
	PhaseDone        Phase = "done"
)

// Flow walks through a track's questions and optional practice. It is held in
// memory only; a new flow for the same entry starts at question 0.
type Flow struct {
	track Track
	phase Phase
	index int
}

// NewFlow starts a flow at the first question.
func NewFlow(t Track) *Flow {
	f := &Flow{track: t, phase: PhaseQuestioning}
	if len(t.Questions) == 0 {
		f.phase = f.afterQuestions()
	}
	return f
}

// Track returns the track being walked.
func (f *Flow) Track() Track { return f.track }

// Phase returns the current phase.
func (f *Flow) Phase() Phase { return f.phase }

// Index returns the current question index. Only meaningful while questioning.
func (f *Flow) Index() int { return f.index }

// Question returns the current question, or "" outside the questioning phase.
func (f *Flow) Question() string {
	if f.phase != PhaseQuestioning {
		return ""
	}
	return f.track.Questions[f.index]
}

// Next advances past the current question. After the last question the flow
// moves to the practice if the track has one, otherwise it is done.
func (f *Flow) Next() error {
	if f.phase != PhaseQuestioning {
		return fmt.Errorf("next: flow is in %s phase", f.phase)
	}
	if f.index < len(f.track.Questions)-1 {
		f.index++
		return nil
	}
	f.phase = f.afterQuestions()
	return nil
}

// Finish leaves the practice.
func (f *Flow) Finish() error {
	if f.phase != PhasePractice {
		return fmt.Errorf("finish: flow is in %s phase", f.phase)
	}
	f.phase = PhaseDone
	return nil
}

// Advance applies steps transitions, moving through the practice as well.
// It stops early once the flow is done.
func (f *Flow) Advance(steps int) {
	for i := 0; i < steps && f.phase != PhaseDone; i++ {
		if f.phase == PhasePractice {
			_ = f.Finish()
			continue
		}
		_ = f.Next()
	}
}

func (f *Flow) afterQuestions() Phase {
	if f.track.Practice != nil {
		return PhasePractice
	}
	return PhaseDone
}

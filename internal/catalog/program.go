package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned for field keys a program day does not ask for.
var ErrUnknownField = errors.New("unknown program field")

// FieldKind says how an answer is entered.
type FieldKind string

const (
	FieldPrompt FieldKind = "prompt" // free text
	FieldList   FieldKind = "list"   // open-ended list of items
	FieldTimer  FieldKind = "timer"  // a timed practice, answered with a note
)

// Field is one answerable section of a program day.
type Field struct {
	Key      string    `json:"key"`
	Kind     FieldKind `json:"kind"`
	MinItems int       `json:"min_items,omitempty"`
}

// ProgramDay is the outline of one day.
type ProgramDay struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Field looks up a field by key.
func (d ProgramDay) Field(key string) (Field, error) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("%w: day %d has no field %q", ErrUnknownField, d.ID, key)
}

func prompt(key string) Field { return Field{Key: key, Kind: FieldPrompt} }

func list(key string, minItems int) Field {
	return Field{Key: key, Kind: FieldList, MinItems: minItems}
}

var programDays = []ProgramDay{
	{ID: 1, Title: "Strengths and the achievement tree", Fields: []Field{
		prompt("strengths_five"),
		prompt("strengths_success"),
		prompt("enjoyable_actions"),
		prompt("pleasure_qualities"),
		prompt("values_qualities"),
		prompt("others_see"),
		list("achievements_tree", 5),
	}},
	{ID: 2, Title: "Start with the hardest", Fields: []Field{
		prompt("tasks_ordered"),
	}},
	{ID: 3, Title: "Beliefs and rewriting the negative", Fields: []Field{
		prompt("parent_messages"),
		prompt("feelings_wrong_eval"),
		prompt("labels_awareness"),
		prompt("rewrite_belief"),
	}},
	{ID: 4, Title: "Working through fear", Fields: []Field{
		prompt("fear_main"),
		prompt("fear_name"),
		prompt("fear_situation"),
		prompt("fear_belief"),
		prompt("fear_behavior"),
	}},
	{ID: 5, Title: "Questioning distortions and the gratitude habit", Fields: []Field{
		prompt("realistic_belief"),
		{Key: "thought_insertion_timer", Kind: FieldTimer},
		list("gratitude_list", 10),
		prompt("positive_moments"),
	}},
	{ID: 6, Title: "Release and letting go", Fields: []Field{
		prompt("release_problems"),
	}},
	{ID: 7, Title: "Acknowledging yourself", Fields: []Field{
		list("i_acknowledge", 10),
	}},
}

// ProgramDays returns the program outline.
func ProgramDays() []ProgramDay {
	out := make([]ProgramDay, len(programDays))
	copy(out, programDays)
	return out
}

// LookupProgramDay returns the outline of day id.
func LookupProgramDay(id int) (ProgramDay, error) {
	for _, d := range programDays {
		if d.ID == id {
			return d, nil
		}
	}
	return ProgramDay{}, fmt.Errorf("no program day %d", id)
}

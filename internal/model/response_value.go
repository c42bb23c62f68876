package model

import (
	"encoding/json"
	"fmt"
)

// ResponseValue is a program answer: either free text or an ordered list of items.
type ResponseValue struct {
	Text   string
	Items  []string
	IsList bool
}

// Text returns a text answer.
func Text(s string) ResponseValue { return ResponseValue{Text: s} }

// List returns a list answer.
func List(items ...string) ResponseValue {
	if items == nil {
		items = []string{}
	}
	return ResponseValue{Items: items, IsList: true}
}

func (v ResponseValue) MarshalJSON() ([]byte, error) {
	if v.IsList {
		items := v.Items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(v.Text)
}

func (v *ResponseValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = Text(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("response value must be a string or a list of strings: %w", err)
	}
	*v = List(items...)
	return nil
}

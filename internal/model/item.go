package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID identifies an item. It is assigned by the server and treated as opaque:
// servers may send it as a JSON string or a JSON number.
type ID string

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts both "7" and 7.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("id: null")
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	// Kept exactly as sent (1.0 stays "1.0"); the server owns the id format.
	*id = ID(n.String())
	return nil
}

// Item is the domain model for a todo entry.
// Name is the only attribute a client edits.
type Item struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

package todos

import "github.com/idilsaglam/tada/internal/model"

// EditState is either Idle or Editing(id). The zero value is Idle.
type EditState struct {
	editing bool
	id      model.ID
}

// Idle is the state where no row exposes its input.
func Idle() EditState { return EditState{} }

// Editing is the state where exactly row id exposes its input.
func Editing(id model.ID) EditState { return EditState{editing: true, id: id} }

// Active reports the editing row, if any.
func (s EditState) Active() (model.ID, bool) { return s.id, s.editing }

// IsEditing reports whether row id is the editing row.
func (s EditState) IsEditing(id model.ID) bool { return s.editing && s.id == id }

func (s EditState) String() string {
	if !s.editing {
		return "Idle"
	}
	return "Editing(" + s.id.String() + ")"
}

// Package markup renders the todo list as HTML.
package markup

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/idilsaglam/tada/internal/todos"
)

// Each row is keyed by the item id. The input is revealed only while the
// row is editing.
const listTemplate = `<ul>
{{- range . }}
<li id="{{ .ID }}"{{ if .Editing }} editing="1"{{ end }}><span class="name">{{ .Name }}</span><input class="edit-name" type="text" value="{{ .Name }}"{{ if not .Editing }} hidden{{ end }}><button class="edit">Edit</button><button class="delete">Delete</button></li>
{{- end }}
</ul>`

const pageTemplate = `<div id="todoList"><input id="newName" type="text" placeholder="New item..." value="{{ .Input }}">
{{ .List }}
</div>`

var (
	listTmpl = template.Must(template.New("list_todos").Parse(listTemplate))
	pageTmpl = template.Must(template.New("todo_page").Parse(pageTemplate))
)

// View is a todos.View that keeps its content as markup.
type View struct {
	list  template.HTML
	input string
}

var _ todos.View = (*View)(nil)

// New returns a View holding an empty list.
func New() *View {
	v := &View{}
	v.Replace(nil)
	return v
}

// Replace re-renders the whole <ul>.
func (v *View) Replace(rows []todos.Row) {
	v.list = Rows(rows)
}

// ClearInput empties the creation field.
func (v *View) ClearInput() { v.input = "" }

// SetInput puts text into the creation field.
func (v *View) SetInput(s string) { v.input = s }

// Input returns the creation field value.
func (v *View) Input() string { return v.input }

// List returns the rendered <ul>.
func (v *View) List() string { return string(v.list) }

// HTML returns the whole container: creation field plus list.
func (v *View) HTML() string {
	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, struct {
		Input string
		List  template.HTML
	}{Input: v.input, List: v.list})
	if err != nil {
		// Only possible if the template itself is broken.
		panic(err)
	}
	return buf.String()
}

// Rows renders rows as a <ul>.
func Rows(rows []todos.Row) template.HTML {
	var buf strings.Builder
	if err := listTmpl.Execute(&buf, rows); err != nil {
		panic(err)
	}
	return template.HTML(buf.String())
}

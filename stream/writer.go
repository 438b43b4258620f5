package stream

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
)

type writeScope struct {
	object bool
	items  int
}

// Writer emits a JSON document token by token. With a non-empty indent the
// output is pretty-printed, one indent per nesting level; otherwise it is
// compact. A Writer is single-use and not safe for concurrent writes.
type Writer struct {
	out    io.Writer
	indent string
	scopes []writeScope
	err    error
}

// NewWriter returns a compact Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

// SetIndent sets the indentation written per nesting level. An empty string
// selects compact output.
func (w *Writer) SetIndent(indent string) {
	w.indent = indent
}

func (w *Writer) write(s string) error {
	if w.err != nil {
		return w.err
	}
	if _, err := io.WriteString(w.out, s); err != nil {
		w.err = err
	}
	return w.err
}

func (w *Writer) newline(depth int) error {
	if w.indent == "" {
		return nil
	}
	return w.write("\n" + strings.Repeat(w.indent, depth))
}

// beforeValue emits the separator owed before a value in the current scope.
// Object values follow a name, which already wrote the separator.
func (w *Writer) beforeValue() error {
	n := len(w.scopes)
	if n == 0 || w.scopes[n-1].object {
		return w.err
	}
	if w.scopes[n-1].items > 0 {
		if err := w.write(","); err != nil {
			return err
		}
	}
	w.scopes[n-1].items++
	return w.newline(n)
}

// Name writes an object key. Must alternate with exactly one value.
func (w *Writer) Name(name string) error {
	n := len(w.scopes)
	if n == 0 || !w.scopes[n-1].object {
		return fmt.Errorf("stream: name outside of an object")
	}
	if w.scopes[n-1].items > 0 {
		if err := w.write(","); err != nil {
			return err
		}
	}
	w.scopes[n-1].items++
	if err := w.newline(n); err != nil {
		return err
	}
	quoted, err := json.Marshal(name)
	if err != nil {
		return err
	}
	if err := w.write(string(quoted)); err != nil {
		return err
	}
	if w.indent != "" {
		return w.write(": ")
	}
	return w.write(":")
}

// BeginObject opens a JSON object.
func (w *Writer) BeginObject() error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	if err := w.write("{"); err != nil {
		return err
	}
	w.scopes = append(w.scopes, writeScope{object: true})
	return nil
}

// EndObject closes the current JSON object.
func (w *Writer) EndObject() error {
	n := len(w.scopes)
	if n == 0 || !w.scopes[n-1].object {
		return fmt.Errorf("stream: end-object outside of an object")
	}
	hadItems := w.scopes[n-1].items > 0
	w.scopes = w.scopes[:n-1]
	if hadItems {
		if err := w.newline(n - 1); err != nil {
			return err
		}
	}
	return w.write("}")
}

// BeginArray opens a JSON array.
func (w *Writer) BeginArray() error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	if err := w.write("["); err != nil {
		return err
	}
	w.scopes = append(w.scopes, writeScope{})
	return nil
}

// EndArray closes the current JSON array.
func (w *Writer) EndArray() error {
	n := len(w.scopes)
	if n == 0 || w.scopes[n-1].object {
		return fmt.Errorf("stream: end-array outside of an array")
	}
	hadItems := w.scopes[n-1].items > 0
	w.scopes = w.scopes[:n-1]
	if hadItems {
		if err := w.newline(n - 1); err != nil {
			return err
		}
	}
	return w.write("]")
}

// WriteString writes a string value, escaped per JSON rules.
func (w *Writer) WriteString(s string) error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	quoted, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return w.write(string(quoted))
}

// WriteNumber writes a number value from its literal form.
func (w *Writer) WriteNumber(n json.Number) error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	return w.write(n.String())
}

// WriteBool writes a boolean value.
func (w *Writer) WriteBool(b bool) error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	if b {
		return w.write("true")
	}
	return w.write("false")
}

// WriteNull writes a null value.
func (w *Writer) WriteNull() error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	return w.write("null")
}

// Err returns the first write error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

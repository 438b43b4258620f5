// Package stream provides the streaming JSON token reader and writer the
// adapter layer drives. The reader tokenizes through goccy/go-json so numeric
// literals survive round trips verbatim; the writer emits tokens with an
// optional caller-selected indent.
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Kind classifies the next token the reader will produce.
type Kind int

const (
	KindInvalid Kind = iota
	KindBeginObject
	KindEndObject
	KindBeginArray
	KindEndArray
	KindName
	KindString
	KindNumber
	KindBool
	KindNull
	KindEndDocument
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "begin-object"
	case KindEndObject:
		return "end-object"
	case KindBeginArray:
		return "begin-array"
	case KindEndArray:
		return "end-array"
	case KindName:
		return "name"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindEndDocument:
		return "end-document"
	default:
		return "invalid"
	}
}

type readScope struct {
	object   bool
	nameNext bool
}

// Reader consumes a JSON document token by token. Structural problems
// reported by the underlying decoder are returned unchanged.
type Reader struct {
	dec     *json.Decoder
	peeked  any
	hasPeek bool
	scopes  []readScope
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Reader{dec: dec}
}

func (r *Reader) peek() (any, error) {
	if !r.hasPeek {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, err
		}
		r.peeked = tok
		r.hasPeek = true
	}
	return r.peeked, nil
}

func (r *Reader) next() (any, error) {
	tok, err := r.peek()
	if err != nil {
		return nil, err
	}
	r.hasPeek = false
	return tok, nil
}

// afterValue restores name position after a value completes inside an object.
func (r *Reader) afterValue() {
	if n := len(r.scopes); n > 0 && r.scopes[n-1].object {
		r.scopes[n-1].nameNext = true
	}
}

// Peek reports the kind of the next token without consuming it.
func (r *Reader) Peek() (Kind, error) {
	tok, err := r.peek()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return KindEndDocument, nil
		}
		return KindInvalid, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return KindBeginObject, nil
		case '}':
			return KindEndObject, nil
		case '[':
			return KindBeginArray, nil
		case ']':
			return KindEndArray, nil
		}
		return KindInvalid, fmt.Errorf("stream: unexpected delimiter %v", v)
	case string:
		if n := len(r.scopes); n > 0 && r.scopes[n-1].object && r.scopes[n-1].nameNext {
			return KindName, nil
		}
		return KindString, nil
	case json.Number:
		return KindNumber, nil
	case float64:
		return KindNumber, nil
	case bool:
		return KindBool, nil
	case nil:
		return KindNull, nil
	default:
		return KindInvalid, fmt.Errorf("stream: unexpected token %v (%T)", tok, tok)
	}
}

// HasNext reports whether the enclosing object or array has more content.
func (r *Reader) HasNext() (bool, error) {
	k, err := r.Peek()
	if err != nil {
		return false, err
	}
	return k != KindEndObject && k != KindEndArray && k != KindEndDocument, nil
}

// BeginObject consumes the opening brace of an object.
func (r *Reader) BeginObject() error {
	tok, err := r.next()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("stream: expected begin-object, got %v", tok)
	}
	r.scopes = append(r.scopes, readScope{object: true, nameNext: true})
	return nil
}

// EndObject consumes the closing brace of the current object.
func (r *Reader) EndObject() error {
	tok, err := r.next()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '}' {
		return fmt.Errorf("stream: expected end-object, got %v", tok)
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
	r.afterValue()
	return nil
}

// BeginArray consumes the opening bracket of an array.
func (r *Reader) BeginArray() error {
	tok, err := r.next()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return fmt.Errorf("stream: expected begin-array, got %v", tok)
	}
	r.scopes = append(r.scopes, readScope{})
	return nil
}

// EndArray consumes the closing bracket of the current array.
func (r *Reader) EndArray() error {
	tok, err := r.next()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != ']' {
		return fmt.Errorf("stream: expected end-array, got %v", tok)
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
	r.afterValue()
	return nil
}

// Name consumes and returns the next object key.
func (r *Reader) Name() (string, error) {
	n := len(r.scopes)
	if n == 0 || !r.scopes[n-1].object || !r.scopes[n-1].nameNext {
		return "", fmt.Errorf("stream: not positioned at an object key")
	}
	tok, err := r.next()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("stream: expected name, got %v", tok)
	}
	r.scopes[n-1].nameNext = false
	return s, nil
}

// ReadString consumes a string value.
func (r *Reader) ReadString() (string, error) {
	k, err := r.Peek()
	if err != nil {
		return "", err
	}
	if k != KindString {
		return "", fmt.Errorf("stream: expected string, got %s", k)
	}
	tok, err := r.next()
	if err != nil {
		return "", err
	}
	r.afterValue()
	return tok.(string), nil
}

// ReadNumber consumes a number value, preserving its literal form.
func (r *Reader) ReadNumber() (json.Number, error) {
	tok, err := r.next()
	if err != nil {
		return "", err
	}
	r.afterValue()
	switch v := tok.(type) {
	case json.Number:
		return v, nil
	case float64:
		return json.Number(fmt.Sprintf("%g", v)), nil
	default:
		return "", fmt.Errorf("stream: expected number, got %v", tok)
	}
}

// ReadBool consumes a boolean value.
func (r *Reader) ReadBool() (bool, error) {
	tok, err := r.next()
	if err != nil {
		return false, err
	}
	b, ok := tok.(bool)
	if !ok {
		return false, fmt.Errorf("stream: expected bool, got %v", tok)
	}
	r.afterValue()
	return b, nil
}

// ReadNull consumes a null value.
func (r *Reader) ReadNull() error {
	tok, err := r.next()
	if err != nil {
		return err
	}
	if tok != nil {
		return fmt.Errorf("stream: expected null, got %v", tok)
	}
	r.afterValue()
	return nil
}

// SkipValue consumes the next value of any shape and discards it.
func (r *Reader) SkipValue() error {
	k, err := r.Peek()
	if err != nil {
		return err
	}
	switch k {
	case KindBeginObject:
		if err := r.BeginObject(); err != nil {
			return err
		}
		for {
			more, err := r.HasNext()
			if err != nil {
				return err
			}
			if !more {
				break
			}
			if _, err := r.Name(); err != nil {
				return err
			}
			if err := r.SkipValue(); err != nil {
				return err
			}
		}
		return r.EndObject()
	case KindBeginArray:
		if err := r.BeginArray(); err != nil {
			return err
		}
		for {
			more, err := r.HasNext()
			if err != nil {
				return err
			}
			if !more {
				break
			}
			if err := r.SkipValue(); err != nil {
				return err
			}
		}
		return r.EndArray()
	case KindString:
		_, err := r.ReadString()
		return err
	case KindNumber:
		_, err := r.ReadNumber()
		return err
	case KindBool:
		_, err := r.ReadBool()
		return err
	case KindNull:
		return r.ReadNull()
	default:
		return fmt.Errorf("stream: cannot skip %s", k)
	}
}

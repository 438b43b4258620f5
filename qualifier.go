package kotshi

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// ElementKind discriminates the typed values a qualifier element can hold.
type ElementKind int

const (
	ElementInvalid ElementKind = iota
	ElementString
	ElementNumber
	ElementBool
	ElementType
	ElementEnum
	ElementBytes
	ElementArray
)

// EnumValue references one constant of a named enumeration.
type EnumValue struct {
	Enum string
	Name string
}

// Element is one typed value inside a qualifier. Exactly one field besides
// Kind is meaningful, selected by Kind.
type Element struct {
	Kind  ElementKind
	Str   string
	Num   float64
	Bool  bool
	Type  string
	Enum  EnumValue
	Bytes []byte
	Items []Element
}

func StringElement(s string) Element  { return Element{Kind: ElementString, Str: s} }
func NumberElement(n float64) Element { return Element{Kind: ElementNumber, Num: n} }
func BoolElement(b bool) Element      { return Element{Kind: ElementBool, Bool: b} }
func TypeElement(name string) Element { return Element{Kind: ElementType, Type: name} }
func BytesElement(b []byte) Element   { return Element{Kind: ElementBytes, Bytes: b} }

func ArrayElement(items ...Element) Element {
	return Element{Kind: ElementArray, Items: items}
}

func EnumElement(enum, name string) Element {
	return Element{Kind: ElementEnum, Enum: EnumValue{Enum: enum, Name: name}}
}

// Equal reports deep value equality: scalars by value, type and enum
// references by identity, byte sequences and arrays by length then content.
func (e Element) Equal(o Element) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case ElementString:
		return e.Str == o.Str
	case ElementNumber:
		return e.Num == o.Num
	case ElementBool:
		return e.Bool == o.Bool
	case ElementType:
		return e.Type == o.Type
	case ElementEnum:
		return e.Enum == o.Enum
	case ElementBytes:
		return bytes.Equal(e.Bytes, o.Bytes)
	case ElementArray:
		if len(e.Items) != len(o.Items) {
			return false
		}
		for i := range e.Items {
			if !e.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// appendFingerprint writes a canonical textual form. Equal elements always
// produce identical fingerprints, so fingerprints can stand in for hashes.
func (e Element) appendFingerprint(sb *strings.Builder) {
	switch e.Kind {
	case ElementString:
		sb.WriteString("s:")
		sb.WriteString(strconv.Quote(e.Str))
	case ElementNumber:
		sb.WriteString("n:")
		sb.WriteString(strconv.FormatFloat(e.Num, 'g', -1, 64))
	case ElementBool:
		sb.WriteString("b:")
		sb.WriteString(strconv.FormatBool(e.Bool))
	case ElementType:
		sb.WriteString("t:")
		sb.WriteString(e.Type)
	case ElementEnum:
		sb.WriteString("e:")
		sb.WriteString(e.Enum.Enum)
		sb.WriteByte('.')
		sb.WriteString(e.Enum.Name)
	case ElementBytes:
		fmt.Fprintf(sb, "y:%x", e.Bytes)
	case ElementArray:
		sb.WriteString("a:[")
		for i, item := range e.Items {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.appendFingerprint(sb)
		}
		sb.WriteByte(']')
	default:
		sb.WriteString("invalid")
	}
}

// Qualifier is one qualifying tag attached to a type usage: a name plus an
// ordered list of typed element values. Defaults declared on a QualifierSpec
// are resolved before a Qualifier exists, so an instance built from explicit
// arguments and one relying on defaults are indistinguishable.
type Qualifier struct {
	Name     string
	Elements []Element
}

// NewQualifier builds a qualifier with the given element values.
func NewQualifier(name string, elements ...Element) Qualifier {
	return Qualifier{Name: name, Elements: elements}
}

// Equal reports whether q and o carry the same name and deeply equal
// elements, in order.
func (q Qualifier) Equal(o Qualifier) bool {
	if q.Name != o.Name || len(q.Elements) != len(o.Elements) {
		return false
	}
	for i := range q.Elements {
		if !q.Elements[i].Equal(o.Elements[i]) {
			return false
		}
	}
	return true
}

// Fingerprint returns a canonical textual form consistent with Equal.
func (q Qualifier) Fingerprint() string {
	var sb strings.Builder
	sb.WriteByte('@')
	sb.WriteString(q.Name)
	sb.WriteByte('(')
	for i, e := range q.Elements {
		if i > 0 {
			sb.WriteByte(',')
		}
		e.appendFingerprint(&sb)
	}
	sb.WriteByte(')')
	return sb.String()
}

// QualifierSpec declares a qualifier shape along with per-position literal
// defaults. A position with an ElementInvalid default has no default and must
// be supplied at the use site.
type QualifierSpec struct {
	Name     string
	Defaults []Element
}

// Apply instantiates the qualifier, substituting declared defaults for
// omitted trailing elements.
func (s QualifierSpec) Apply(values ...Element) (Qualifier, error) {
	n := len(s.Defaults)
	if len(values) > n {
		n = len(values)
	}
	elements := make([]Element, n)
	for i := range elements {
		switch {
		case i < len(values) && values[i].Kind != ElementInvalid:
			elements[i] = values[i]
		case i < len(s.Defaults) && s.Defaults[i].Kind != ElementInvalid:
			elements[i] = s.Defaults[i]
		default:
			return Qualifier{}, fmt.Errorf("qualifier %s: element %d has no value and no declared default", s.Name, i)
		}
	}
	return Qualifier{Name: s.Name, Elements: elements}, nil
}

// MustApply is Apply for statically known arguments; it panics on error.
func (s QualifierSpec) MustApply(values ...Element) Qualifier {
	q, err := s.Apply(values...)
	if err != nil {
		panic(err)
	}
	return q
}

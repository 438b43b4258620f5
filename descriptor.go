package kotshi

import (
	"sort"
	"strings"
)

// TypeDescriptor is a fully qualified type usage: raw type identity, ordered
// generic arguments and an unordered set of qualifiers. It is a value object
// and the sole resolution cache key.
type TypeDescriptor struct {
	Raw        string
	Args       []TypeDescriptor
	Qualifiers []Qualifier
}

// NewType builds a descriptor for raw, optionally parameterized by args.
func NewType(raw string, args ...TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Raw: raw, Args: args}
}

// WithQualifiers returns a copy of t carrying the given qualifier set in
// addition to any it already has.
func (t TypeDescriptor) WithQualifiers(qualifiers ...Qualifier) TypeDescriptor {
	combined := make([]Qualifier, 0, len(t.Qualifiers)+len(qualifiers))
	combined = append(combined, t.Qualifiers...)
	combined = append(combined, qualifiers...)
	return TypeDescriptor{Raw: t.Raw, Args: t.Args, Qualifiers: combined}
}

// Equal reports whether two descriptors denote the same type usage: equal raw
// type, pairwise equal generic arguments in order, and equal qualifier sets
// regardless of order.
func (t TypeDescriptor) Equal(o TypeDescriptor) bool {
	if t.Raw != o.Raw || len(t.Args) != len(o.Args) || len(t.Qualifiers) != len(o.Qualifiers) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return equalQualifierSets(t.Qualifiers, o.Qualifiers)
}

func equalQualifierSets(a, b []Qualifier) bool {
	if len(a) != len(b) {
		return false
	}
	matched := make([]bool, len(b))
outer:
	for i := range a {
		for j := range b {
			if !matched[j] && a[i].Equal(b[j]) {
				matched[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

// Key returns a canonical string for t, usable as a map key. Equal
// descriptors always produce equal keys, including descriptors whose
// qualifier sets are stated in different orders.
func (t TypeDescriptor) Key() string {
	var sb strings.Builder
	t.appendKey(&sb)
	return sb.String()
}

func (t TypeDescriptor) appendKey(sb *strings.Builder) {
	sb.WriteString(t.Raw)
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, arg := range t.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			arg.appendKey(sb)
		}
		sb.WriteByte('>')
	}
	if len(t.Qualifiers) > 0 {
		prints := make([]string, len(t.Qualifiers))
		for i, q := range t.Qualifiers {
			prints[i] = q.Fingerprint()
		}
		sort.Strings(prints)
		sb.WriteString(strings.Join(prints, ""))
	}
}

// String renders the descriptor for diagnostics.
func (t TypeDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString(t.Raw)
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, arg := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteByte('>')
	}
	if len(t.Qualifiers) > 0 {
		names := make([]string, len(t.Qualifiers))
		for i, q := range t.Qualifiers {
			names[i] = "@" + q.Name
		}
		sort.Strings(names)
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(names, " "))
	}
	return sb.String()
}

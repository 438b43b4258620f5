// Package kotshi resolves JSON conversion adapters for a graph of described
// data types ahead of time, without runtime reflection: every conversion rule
// follows from declared shapes (properties, generic parameters, and qualifier
// tags that disambiguate otherwise-identical types).
//
// # Basic Usage
//
//	registry := kotshi.NewBuilder().Build()
//	adapter, err := registry.Adapter(kotshi.NewType(kotshi.TypeString))
//
// # Resolution
//
// A Registry owns an ordered chain of factories, frozen at Build time.
// Resolving a TypeDescriptor walks the chain in registration order; the first
// factory to produce an adapter wins and the result is cached under the
// descriptor's canonical key. Explicitly registered adapters and user
// factories precede generated per-type factories; a built-in tail serves
// unqualified scalars and List specializations. When no factory matches,
// resolution fails with an UnsupportedTypeError naming the raw type and its
// qualifier set.
//
// Adapters registered via AddAdapter match by full descriptor equality,
// including exact qualifier set equality. A registration for qualifiers
// {A, B} matches neither {A} nor {A, B, C}; combining independently declared
// qualifiers means registering one adapter for their union, typically a
// WrappedAdapter delegating the inner value's conversion to a separately
// resolved adapter.
//
// # Qualifiers
//
// A Qualifier is a named tag with ordered, typed element values. Two
// qualifiers are equal iff their names match and every element is deeply
// equal: scalars by value, type and enum references by identity, byte
// sequences and arrays by length then content. A QualifierSpec resolves
// declared defaults at instantiation, so a qualifier stated with explicit
// values and one relying on defaults are indistinguishable to the resolver.
//
// # Record Types
//
// ObjectAdapter implements the decode/encode contract for a record type from
// an ordered Property list. Decoding tolerates unknown keys (skipped
// structurally), aggregates every missing required property into one
// MissingPropertiesError, and applies default suppliers once the object
// closes. Encoding emits declared properties strictly in declaration order,
// so a decode/encode cycle of declared-consistent input is byte-identical
// under the same indentation.
//
// # Thread Safety
//
// A built Registry is safe for concurrent use. The cache holds one
// write-once entry per descriptor; concurrent first-time resolutions of the
// same descriptor converge to a single cached adapter. Recursive type graphs
// resolve through a delegating placeholder installed before the factory
// recurses into property adapters.
package kotshi

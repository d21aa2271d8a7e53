package nemo

// A Vertex is a single operator in an execution plan DAG. Beyond its identity,
// a Vertex is described entirely by its attribute bag, which optimization passes
// use to communicate decisions about it to one another.
type Vertex interface {
	ID() string                                // ID returns the unique identifier for this Vertex
	Name() string                              // Name returns the human-readable operator name for this Vertex, for logging
	SetAttr(key Key, val Value) Vertex         // SetAttr records an attribute on this Vertex, overwriting any previous value for key. Returns this Vertex to permit chaining.
	GetAttr(key Key) (Value, bool)             // GetAttr returns the attribute for key, with false iff no value has been recorded
	SetIntAttr(key IntegerKey, val int) Vertex // SetIntAttr records an integer attribute on this Vertex, overwriting any previous value for key. Returns this Vertex to permit chaining.
	GetIntAttr(key IntegerKey) (int, bool)     // GetIntAttr returns the integer attribute for key, with false iff no value has been recorded
}

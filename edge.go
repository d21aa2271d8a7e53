package nemo

// An Edge is a data dependency between an ordered pair of Vertices in an
// execution plan DAG. Like a Vertex, an Edge carries an attribute bag which
// optimization passes use to record decisions about its data channel.
type Edge interface {
	ID() string                              // ID returns the unique identifier for this Edge
	Src() Vertex                             // Src returns the Vertex this Edge consumes data from
	Dst() Vertex                             // Dst returns the Vertex this Edge delivers data to
	SetAttr(key Key, val Value) Edge         // SetAttr records an attribute on this Edge, overwriting any previous value for key. Returns this Edge to permit chaining.
	GetAttr(key Key) (Value, bool)           // GetAttr returns the attribute for key, with false iff no value has been recorded
	SetIntAttr(key IntegerKey, val int) Edge // SetIntAttr records an integer attribute on this Edge, overwriting any previous value for key. Returns this Edge to permit chaining.
	GetIntAttr(key IntegerKey) (int, bool)   // GetIntAttr returns the integer attribute for key, with false iff no value has been recorded
}

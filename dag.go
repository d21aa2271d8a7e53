package nemo

// A DAG is a directed acyclic graph of operator Vertices connected by data-dependency
// Edges, representing a logical execution plan. DAGs are immutable in structure once
// built - optimization passes communicate through Vertex and Edge attributes only.
type DAG interface {
	Vertices() []Vertex                    // Vertices returns every Vertex in this DAG, in topological order
	Edges() []Edge                         // Edges returns every Edge in this DAG, in insertion order
	IncomingEdgesOf(v Vertex) []Edge       // IncomingEdgesOf returns the Edges terminating at v, in insertion order
	OutgoingEdgesOf(v Vertex) []Edge       // OutgoingEdgesOf returns the Edges originating at v, in insertion order
	TopologicalDo(f func(v Vertex) error) error // TopologicalDo applies f to every Vertex in topological order, stopping at the first error
	Size() int                             // Size returns the number of Vertices in this DAG
}

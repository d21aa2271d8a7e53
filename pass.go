package nemo

// A Pass is one step of the plan compiler pipeline. A Pass consumes a DAG and the
// attributes recorded by earlier Passes, and returns the same DAG with its own
// decisions recorded as attributes. Passes never alter DAG structure.
type Pass interface {
	Name() string                 // Name returns a short name for this Pass, for logging
	Process(dag DAG) (DAG, error) // Process runs this Pass against dag, returning it with this Pass' attributes recorded
}

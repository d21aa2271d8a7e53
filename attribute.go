package nemo

// Key identifies an enumerated attribute which optimization passes attach to
// Vertices and Edges. The attribute bag is the sole communication channel between
// passes - a pass reads the decisions of earlier passes and records its own
// decisions the same way, without the plan types needing a field per decision.
type Key string

const (
	// Placement records the execution location class assigned to a Vertex
	Placement Key = "placement"
	// EdgeType records the data-dependency kind of an Edge
	EdgeType Key = "edge_type"
	// ChannelDataPlacement records the transport medium assigned to an Edge's data channel
	ChannelDataPlacement Key = "channel_data_placement"
	// ChannelTransferPolicy records whether channel data is pushed or pulled
	ChannelTransferPolicy Key = "channel_transfer_policy"
)

// IntegerKey identifies an enumerated integer-valued attribute for Vertices and Edges
type IntegerKey string

const (
	// StageID records the stage a Vertex was grouped into by stage partitioning
	StageID IntegerKey = "stage_id"
	// Parallelism records the number of parallel executions of a Vertex
	Parallelism IntegerKey = "parallelism"
)

// Value is an enumerated attribute value token. Values are shared across Keys -
// each Key documents which subset of Values is meaningful for it.
type Value string

const (
	// OneToOne is an EdgeType where each source element maps to exactly one destination element
	OneToOne Value = "one_to_one"
	// Broadcast is an EdgeType where each source element is replicated to every destination
	Broadcast Value = "broadcast"
	// ScatterGather is an EdgeType where source elements are repartitioned across destinations
	ScatterGather Value = "scatter_gather"

	// Memory is a ChannelDataPlacement where channel data stays in memory, permitting pipelining
	Memory Value = "memory"
	// LocalFile is a ChannelDataPlacement where channel data is spilled to node-local disk
	LocalFile Value = "local_file"
	// DistributedStorage is a ChannelDataPlacement where channel data is durably materialized
	DistributedStorage Value = "distributed_storage"

	// Transient is a Placement on preemptible resources
	Transient Value = "transient"
	// Reserved is a Placement on non-preemptible resources
	Reserved Value = "reserved"
	// Compute is a Placement on compute-optimized resources
	Compute Value = "compute"
	// Storage is a Placement co-located with stored input data
	Storage Value = "storage"

	// Push is a ChannelTransferPolicy where data is sent as it is produced
	Push Value = "push"
	// Pull is a ChannelTransferPolicy where data is fetched on demand
	Pull Value = "pull"
)

package cluster

import (
	"encoding/json"
)

// ControlMessage is the wire representation of a control-plane message exchanged
// between the compiler driver and a worker process. A reply carries the id of the
// request it answers in ReplyTo.
type ControlMessage struct {
	Id      int64           `json:"id"`
	ReplyTo int64           `json:"replyTo,omitempty"`
	Kind    string          `json:"kind"`
	Body    json.RawMessage `json:"body,omitempty"`
}

// MessageID returns the unique identifier for this ControlMessage
func (m *ControlMessage) MessageID() int64 {
	return m.Id
}

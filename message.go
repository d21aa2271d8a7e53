package nemo

import "context"

// A Message is a control-plane message exchanged between the compiler driver and
// worker processes, correlatable to a reply by its identifier.
type Message interface {
	MessageID() int64 // MessageID returns the unique identifier for this Message
}

// A ReplyFuture resolves to the reply for a previously-issued request. A ReplyFuture
// fails, rather than hanging forever, if the underlying connection is closed while
// the reply is still pending.
type ReplyFuture interface {
	Await(ctx context.Context) (Message, error) // Await blocks until the reply arrives, the connection fails, or ctx is done
}

// A MessageSender ships control-plane messages to a single remote listener over a
// persistent connection. Used by the scheduler to transmit compiled stage graphs to
// worker processes.
type MessageSender interface {
	Send(msg Message) error                 // Send transmits msg without expecting a reply
	Request(msg Message) (ReplyFuture, error) // Request transmits msg and returns a ReplyFuture for the correlated reply. The reply is registered for correlation before transmission, so a fast reply cannot be lost.
	Close() error                           // Close releases the underlying connection, failing any still-pending ReplyFutures
}

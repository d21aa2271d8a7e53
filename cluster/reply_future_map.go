package cluster

import (
	"context"
	"log"
	"sync"

	nemo "github.com/nikosnikolaidis/incubator-nemo"
	"github.com/nikosnikolaidis/incubator-nemo/errors"
)

// replyFuture resolves to the reply for one outstanding request
type replyFuture struct {
	done chan struct{}
	once sync.Once
	msg  nemo.Message
	err  error
}

func createReplyFuture() *replyFuture {
	return &replyFuture{done: make(chan struct{})}
}

// Await blocks until the reply arrives, the connection fails, or ctx is done
func (f *replyFuture) Await(ctx context.Context) (nemo.Message, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
		return f.msg, f.err
	}
}

// complete resolves this future exactly once
func (f *replyFuture) complete(msg nemo.Message, err error) {
	f.once.Do(func() {
		f.msg = msg
		f.err = err
		close(f.done)
	})
}

// A ReplyFutureMap correlates asynchronous replies to their requests by message id.
// A request registers its future via BeforeRequest prior to transmission, so a reply
// arriving on the read goroutine before the send returns still finds its future.
type ReplyFutureMap struct {
	mu      sync.Mutex
	pending map[int64]*replyFuture
	failed  error
}

// CreateReplyFutureMap returns an empty ReplyFutureMap
func CreateReplyFutureMap() *ReplyFutureMap {
	return &ReplyFutureMap{pending: make(map[int64]*replyFuture)}
}

// BeforeRequest registers a pending future for the request with the given id.
// An error is returned if a request with this id is already outstanding, or if
// the map has already been failed by a closed connection.
func (m *ReplyFutureMap) BeforeRequest(id int64) (*replyFuture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failed != nil {
		return nil, m.failed
	}
	if _, exists := m.pending[id]; exists {
		return nil, errors.DuplicateRequestError{ID: id}
	}
	future := createReplyFuture()
	m.pending[id] = future
	return future, nil
}

// OnReply resolves and removes the future registered for replyTo. Replies which
// match no outstanding request are logged and dropped.
func (m *ReplyFutureMap) OnReply(replyTo int64, msg nemo.Message) {
	m.mu.Lock()
	future, exists := m.pending[replyTo]
	delete(m.pending, replyTo)
	m.mu.Unlock()
	if !exists {
		log.Printf("Dropping reply to unknown or completed request %d", replyTo)
		return
	}
	future.complete(msg, nil)
}

// Fail resolves and removes the future registered for id with an error
func (m *ReplyFutureMap) Fail(id int64, err error) {
	m.mu.Lock()
	future, exists := m.pending[id]
	delete(m.pending, id)
	m.mu.Unlock()
	if exists {
		future.complete(nil, err)
	}
}

// FailAll fails every pending future and every future registered afterwards,
// releasing all waiters. Called when the underlying connection closes.
func (m *ReplyFutureMap) FailAll(err error) {
	m.mu.Lock()
	futures := make([]*replyFuture, 0, len(m.pending))
	for id, future := range m.pending {
		futures = append(futures, future)
		delete(m.pending, id)
	}
	if m.failed == nil {
		m.failed = err
	}
	m.mu.Unlock()
	for _, future := range futures {
		future.complete(nil, err)
	}
}

// NumPending returns the number of requests still awaiting replies
func (m *ReplyFutureMap) NumPending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

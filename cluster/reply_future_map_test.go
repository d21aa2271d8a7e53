package cluster

import (
	"context"
	"testing"
	"time"

	"github.com/nikosnikolaidis/incubator-nemo/errors"
	"github.com/stretchr/testify/require"
)

func TestReplyFutureMapResolvesRegisteredRequest(t *testing.T) {
	futures := CreateReplyFutureMap()
	future, err := futures.BeforeRequest(42)
	require.Nil(t, err)
	require.Equal(t, 1, futures.NumPending())

	reply := &ControlMessage{Id: 99, ReplyTo: 42, Kind: "ack"}
	futures.OnReply(42, reply)
	msg, err := future.Await(context.Background())
	require.Nil(t, err)
	require.Equal(t, int64(99), msg.MessageID())
	require.Equal(t, 0, futures.NumPending())
}

func TestReplyFutureMapRejectsDuplicateRequestIDs(t *testing.T) {
	futures := CreateReplyFutureMap()
	_, err := futures.BeforeRequest(7)
	require.Nil(t, err)
	_, err = futures.BeforeRequest(7)
	require.IsType(t, errors.DuplicateRequestError{}, err)
}

func TestReplyFutureMapDropsUnmatchedReplies(t *testing.T) {
	futures := CreateReplyFutureMap()
	futures.OnReply(1234, &ControlMessage{Id: 1, ReplyTo: 1234})
	require.Equal(t, 0, futures.NumPending())
}

func TestReplyFutureMapFailAllReleasesWaiters(t *testing.T) {
	futures := CreateReplyFutureMap()
	first, err := futures.BeforeRequest(1)
	require.Nil(t, err)
	second, err := futures.BeforeRequest(2)
	require.Nil(t, err)

	futures.FailAll(errors.ConnectionClosedError{})
	_, err = first.Await(context.Background())
	require.IsType(t, errors.ConnectionClosedError{}, err)
	_, err = second.Await(context.Background())
	require.IsType(t, errors.ConnectionClosedError{}, err)

	// registration after failure must not hang a new waiter
	_, err = futures.BeforeRequest(3)
	require.IsType(t, errors.ConnectionClosedError{}, err)
}

func TestReplyFutureAwaitHonoursContext(t *testing.T) {
	futures := CreateReplyFutureMap()
	future, err := futures.BeforeRequest(5)
	require.Nil(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = future.Await(ctx)
	require.Equal(t, context.DeadlineExceeded, err)
}

package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"time"

	nemo "github.com/nikosnikolaidis/incubator-nemo"
	"github.com/nikosnikolaidis/incubator-nemo/errors"
	"github.com/nikosnikolaidis/incubator-nemo/logging"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/semaphore"
)

// SenderOptions are options for a MessageSender, configuring its connection to one remote listener
type SenderOptions struct {
	Host                 string                 // [REQUIRED] hostname of the remote listener
	Port                 int                    // [REQUIRED] port of the remote listener
	DialTimeout          time.Duration          // how long to wait when establishing the connection
	MaxInFlight          int64                  // the maximum number of outstanding Requests
	MaxFrameSize         int                    // the largest frame accepted on the wire
	CompressionThreshold int                    // payloads at least this large are compressed before framing
	LogLevel             int                    // minimum criticality of connection events to log
	Handler              func(msg nemo.Message) // receives inbound messages which are not replies
}

func ensureDefaultSenderOptionsValues(opts *SenderOptions) {
	// crash if certain required options are not supplied
	if len(opts.Host) == 0 {
		log.Fatal("SenderOptions.Host must be supplied")
	}
	if opts.Port == 0 {
		log.Fatal("SenderOptions.Port must be supplied")
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.MaxInFlight == 0 {
		opts.MaxInFlight = 1024
	}
	if opts.MaxFrameSize == 0 {
		opts.MaxFrameSize = 4 * 1024 * 1024
	}
	if opts.CompressionThreshold == 0 {
		opts.CompressionThreshold = 4 * 1024
	}
}

func (o *SenderOptions) connectionString() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// messageSender ships control-plane messages to a single remote listener over a
// persistent framed connection, correlating replies to requests by message id.
type messageSender struct {
	opts      *SenderOptions
	conn      *frameConn
	futures   *ReplyFutureMap
	inflight  *semaphore.Weighted
	closeOnce sync.Once
	closed    chan struct{}
	readDone  chan struct{}
}

// CreateMessageSender connects to the remote listener described by opts and
// returns a MessageSender over that connection
func CreateMessageSender(opts *SenderOptions) (nemo.MessageSender, error) {
	ensureDefaultSenderOptionsValues(opts)
	conn, err := net.DialTimeout("tcp", opts.connectionString(), opts.DialTimeout)
	if err != nil {
		return nil, err
	}
	return createMessageSender(conn, opts), nil
}

// createMessageSender wraps an established connection, starting the read goroutine
func createMessageSender(conn net.Conn, opts *SenderOptions) *messageSender {
	s := &messageSender{
		opts:     opts,
		conn:     createFrameConn(conn, opts.MaxFrameSize, opts.CompressionThreshold),
		futures:  CreateReplyFutureMap(),
		inflight: semaphore.NewWeighted(opts.MaxInFlight),
		closed:   make(chan struct{}),
		readDone: make(chan struct{}),
	}
	go s.readLoop()
	return s
}

// Send transmits msg without expecting a reply
func (s *messageSender) Send(msg nemo.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.conn.writeFrame(data)
}

// Request transmits msg and returns a ReplyFuture for the correlated reply. The
// future is registered before transmission, so a reply arriving on the read
// goroutine while the send is still in progress cannot be lost.
func (s *messageSender) Request(msg nemo.Message) (nemo.ReplyFuture, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	if err := s.inflight.Acquire(context.Background(), 1); err != nil {
		return nil, err
	}
	future, err := s.futures.BeforeRequest(msg.MessageID())
	if err != nil {
		s.inflight.Release(1)
		return nil, err
	}
	go func() {
		<-future.done
		s.inflight.Release(1)
	}()
	if err := s.conn.writeFrame(data); err != nil {
		s.futures.Fail(msg.MessageID(), err)
		return nil, err
	}
	return future, nil
}

// Close releases the underlying connection. Any still-pending ReplyFutures fail
// with a ConnectionClosedError rather than hanging forever.
func (s *messageSender) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		err = s.conn.close()
		<-s.readDone
	})
	return err
}

func (s *messageSender) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

// readLoop receives frames until the connection fails or is closed, resolving
// reply futures and dispatching non-reply messages to the configured handler
func (s *messageSender) readLoop() {
	defer close(s.readDone)
	defer s.futures.FailAll(errors.ConnectionClosedError{})
	for {
		payload, err := s.conn.readFrame()
		if err != nil {
			if !s.isClosed() && err != io.EOF && s.opts.LogLevel <= logging.WarnLevel {
				log.Printf("%s: control connection to %s failed: %v",
					logging.LogLevelToString(logging.WarnLevel), s.opts.connectionString(), err)
			}
			return
		}
		// peek the correlation id before decoding the whole message
		replyTo := gjson.GetBytes(payload, "replyTo").Int()
		var msg ControlMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			if s.opts.LogLevel <= logging.WarnLevel {
				log.Printf("%s: dropping undecodable control message from %s: %v",
					logging.LogLevelToString(logging.WarnLevel), s.opts.connectionString(), err)
			}
			continue
		}
		if replyTo != 0 {
			s.futures.OnReply(replyTo, &msg)
		} else if s.opts.Handler != nil {
			s.opts.Handler(&msg)
		}
	}
}

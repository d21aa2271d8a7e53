package cluster

import (
	"bytes"
	"encoding/binary"
	"io"
	"net"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/nikosnikolaidis/incubator-nemo/errors"
	"github.com/pierrec/lz4"
)

const (
	frameHeaderSize     = 13 // 4 byte length, 1 byte flags, 8 byte checksum
	frameFlagCompressed = byte(1 << 0)
)

// frameConn carries discrete message frames over a stream connection. Each frame
// is a length-prefixed payload with an xxhash64 checksum; payloads at or above the
// compression threshold are lz4-compressed. Writes are serialized; reads are only
// safe from a single goroutine.
type frameConn struct {
	conn                 net.Conn
	reader               io.Reader
	writeMu              sync.Mutex
	maxFrameSize         int
	compressionThreshold int
	compressor           *lz4.Writer
	decompressor         *lz4.Reader
	reusableReadBuffer   *bytes.Buffer
}

// createFrameConn wraps conn for framed message exchange
func createFrameConn(conn net.Conn, maxFrameSize int, compressionThreshold int) *frameConn {
	return &frameConn{
		conn:                 conn,
		reader:               conn,
		maxFrameSize:         maxFrameSize,
		compressionThreshold: compressionThreshold,
		compressor:           lz4.NewWriter(new(bytes.Buffer)),
		decompressor:         lz4.NewReader(new(bytes.Buffer)),
		reusableReadBuffer:   new(bytes.Buffer),
	}
}

// writeFrame frames and transmits data, compressing large payloads
func (c *frameConn) writeFrame(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	payload := data
	flags := byte(0)
	if len(data) >= c.compressionThreshold {
		var compressed bytes.Buffer
		c.compressor.Reset(&compressed)
		if _, err := c.compressor.Write(data); err != nil {
			return err
		}
		if err := c.compressor.Close(); err != nil {
			return err
		}
		payload = compressed.Bytes()
		flags |= frameFlagCompressed
	}
	if len(payload) > c.maxFrameSize {
		return errors.FrameTooLargeError{Size: len(payload), Max: c.maxFrameSize}
	}
	if _, err := c.conn.Write(frameHeader(payload, flags)); err != nil {
		return err
	}
	_, err := c.conn.Write(payload)
	return err
}

// frameHeader builds the wire header for a payload as it will be transmitted
func frameHeader(payload []byte, flags byte) []byte {
	header := make([]byte, frameHeaderSize)
	binary.BigEndian.PutUint32(header[0:4], uint32(len(payload)))
	header[4] = flags
	binary.BigEndian.PutUint64(header[5:13], xxhash.Sum64(payload))
	return header
}

// readFrame receives and verifies the next frame, returning its decompressed payload.
// A checksum or size failure desynchronizes the stream and must be treated as fatal
// to the connection by the caller.
func (c *frameConn) readFrame() ([]byte, error) {
	header := make([]byte, frameHeaderSize)
	if _, err := io.ReadFull(c.reader, header); err != nil {
		return nil, err
	}
	length := int(binary.BigEndian.Uint32(header[0:4]))
	if length > c.maxFrameSize {
		return nil, errors.FrameTooLargeError{Size: length, Max: c.maxFrameSize}
	}
	flags := header[4]
	expected := binary.BigEndian.Uint64(header[5:13])
	payload := make([]byte, length)
	if _, err := io.ReadFull(c.reader, payload); err != nil {
		return nil, err
	}
	if actual := xxhash.Sum64(payload); actual != expected {
		return nil, errors.ChecksumMismatchError{Expected: expected, Actual: actual}
	}
	if flags&frameFlagCompressed == 0 {
		return payload, nil
	}
	c.decompressor.Reset(bytes.NewReader(payload))
	c.reusableReadBuffer.Reset()
	if _, err := c.reusableReadBuffer.ReadFrom(c.decompressor); err != nil {
		return nil, err
	}
	decompressed := make([]byte, c.reusableReadBuffer.Len())
	copy(decompressed, c.reusableReadBuffer.Bytes())
	return decompressed, nil
}

// close releases the underlying connection
func (c *frameConn) close() error {
	return c.conn.Close()
}

package cluster

import (
	"bytes"
	"net"
	"testing"

	"github.com/nikosnikolaidis/incubator-nemo/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func createFrameConnPair(maxFrameSize int, compressionThreshold int) (*frameConn, *frameConn) {
	left, right := net.Pipe()
	return createFrameConn(left, maxFrameSize, compressionThreshold),
		createFrameConn(right, maxFrameSize, compressionThreshold)
}

func TestFrameConnRoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t)
	sender, receiver := createFrameConnPair(1024, 1024)
	defer sender.close()
	defer receiver.close()

	sent := []byte(`{"id":1,"kind":"ping"}`)
	errs := make(chan error, 1)
	go func() {
		errs <- sender.writeFrame(sent)
	}()
	received, err := receiver.readFrame()
	require.Nil(t, err)
	require.Nil(t, <-errs)
	require.Equal(t, sent, received)
}

func TestFrameConnCompressesLargePayloads(t *testing.T) {
	defer goleak.VerifyNone(t)
	sender, receiver := createFrameConnPair(64*1024, 128)
	defer sender.close()
	defer receiver.close()

	// compressible payload well above the threshold
	sent := bytes.Repeat([]byte("stage partitioning "), 512)
	errs := make(chan error, 1)
	go func() {
		errs <- sender.writeFrame(sent)
	}()
	received, err := receiver.readFrame()
	require.Nil(t, err)
	require.Nil(t, <-errs)
	require.Equal(t, sent, received)
}

func TestFrameConnRejectsOversizedFrames(t *testing.T) {
	defer goleak.VerifyNone(t)
	sender, receiver := createFrameConnPair(16, 1024)
	defer sender.close()
	defer receiver.close()

	err := sender.writeFrame(bytes.Repeat([]byte("x"), 64))
	require.IsType(t, errors.FrameTooLargeError{}, err)
}

func TestFrameConnDetectsCorruptedPayloads(t *testing.T) {
	defer goleak.VerifyNone(t)
	left, right := net.Pipe()
	receiver := createFrameConn(right, 1024, 1024)
	defer left.Close()
	defer receiver.close()

	payload := []byte(`{"id":7,"kind":"ping"}`)
	errs := make(chan error, 1)
	go func() {
		// frame the payload, then flip a payload byte so the checksum no
		// longer covers what is on the wire
		corrupted := make([]byte, len(payload))
		copy(corrupted, payload)
		corrupted[0] ^= 0xff
		if _, err := left.Write(frameHeader(payload, 0)); err != nil {
			errs <- err
			return
		}
		_, err := left.Write(corrupted)
		errs <- err
	}()
	_, err := receiver.readFrame()
	require.IsType(t, errors.ChecksumMismatchError{}, err)
	require.Nil(t, <-errs)
}

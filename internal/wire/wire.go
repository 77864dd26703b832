// Package wire frames codec payloads for storage. The envelope lets the
// proxy distinguish its own entries from foreign or truncated store bytes
// and self-heal instead of handing garbage to a codec.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("cacheproxy: corrupt entry")
	magic4     = [...]byte{'C', 'P', 'R', 'X'}
)

// Entry: magic(4) | ver(1) | vlen(u32 be) | payload(vlen)
func Encode(payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode validates the frame and returns the payload. Strict framing:
// trailing bytes are rejected.
func Decode(b []byte) ([]byte, error) {
	const hdr = 4 + 1 + 4
	if len(b) < hdr || !bytes.Equal(b[:4], magic4[:]) || b[4] != version {
		return nil, ErrCorrupt
	}
	vlen := int(binary.BigEndian.Uint32(b[5:hdr]))
	if vlen < 0 || hdr+vlen != len(b) {
		return nil, ErrCorrupt
	}
	return b[hdr:], nil
}

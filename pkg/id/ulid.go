package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID returns a 26 character, lexicographically sortable identifier:
// 48 bits of millisecond time followed by 80 random bits, Crockford base32.
func NewULID() string {
	return newULID(time.Now())
}

func newULID(now time.Time) string {
	var raw [16]byte
	binary.BigEndian.PutUint16(raw[0:2], uint16(uint64(now.UnixMilli())>>32))
	binary.BigEndian.PutUint32(raw[2:6], uint32(now.UnixMilli()))
	if _, err := rand.Read(raw[6:]); err != nil {
		binary.BigEndian.PutUint64(raw[6:14], uint64(now.UnixNano()))
	}

	// 128 bits encode to 26 chars; the first char carries only 3 bits.
	var out [26]byte
	hi := binary.BigEndian.Uint64(raw[0:8])
	lo := binary.BigEndian.Uint64(raw[8:16])
	for i := 25; i >= 0; i-- {
		out[i] = crockford[lo&0x1F]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}

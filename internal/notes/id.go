package notes

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"sync"
	"time"
)

// idSource issues ids built from a monotonically non-decreasing
// UnixNano timestamp and a random suffix, both base-36 encoded. Good
// enough for a single writer process at note-taking volumes; no
// coordination with other processes is attempted.
type idSource struct {
	mu   sync.Mutex
	last int64
}

func (s *idSource) next() string {
	s.mu.Lock()
	ts := time.Now().UnixNano()
	if ts <= s.last {
		ts = s.last + 1
	}
	s.last = ts
	s.mu.Unlock()

	var buf [8]byte
	_, _ = rand.Read(buf[:])
	// 48 random bits keep the suffix short.
	suffix := binary.BigEndian.Uint64(buf[:]) >> 16

	return strconv.FormatInt(ts, 36) + "-" + strconv.FormatUint(suffix, 36)
}

var ids idSource

// newID returns a fresh collision-resistant note id.
func newID() string { return ids.next() }

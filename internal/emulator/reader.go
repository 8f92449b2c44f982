package emulator

import (
	"sync"
	"time"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/models"
)

// Reader simulates the RC522 card reader. Presented cards queue up and are
// consumed one per read; a read with nothing queued falls back to the
// last card read within constants.ScanCacheWindow.
type Reader struct {
	mu       sync.Mutex
	queue    []string
	lastUID  string
	lastRead time.Time
	now      func() time.Time
}

// NewReader returns an empty reader using the wall clock.
func NewReader() *Reader {
	return &Reader{now: time.Now}
}

// Present queues a card as if it were held to the reader.
func (r *Reader) Present(uid string) {
	uid = models.NormalizeUID(uid)
	if uid == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, uid)
}

// Pending returns how many presented cards have not been read yet.
func (r *Reader) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Read returns the next card uid, or "" when none is available.
func (r *Reader) Read() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if len(r.queue) > 0 {
		uid := r.queue[0]
		r.queue = r.queue[1:]
		r.lastUID = uid
		r.lastRead = now
		return uid
	}
	if r.lastUID != "" && now.Sub(r.lastRead) < constants.ScanCacheWindow {
		return r.lastUID
	}
	return ""
}

// Last returns the most recently read uid, if any.
func (r *Reader) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastUID
}

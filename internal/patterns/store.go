package patterns

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/iamwavecut/wordguard/internal/observability"
)

// Store owns the banned words file and the currently published Set.
// Readers take the snapshot without locking; writers are serialized so an
// append and the reload that follows it are never interleaved with another
// writer.
type Store struct {
	path    string
	timeout time.Duration

	current atomic.Pointer[Set]
	writeMu sync.Mutex
}

func NewStore(path string, timeout time.Duration) *Store {
	s := &Store{
		path:    path,
		timeout: timeout,
	}
	s.current.Store(NewSet())
	return s
}

// Path returns the backing words file.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns the set in effect right now. The returned set is never
// modified; a concurrent reload publishes a new one instead.
func (s *Store) Snapshot() *Set {
	return s.current.Load()
}

// Load rebuilds the set from the file and publishes it. An unreadable file is
// logged and yields whatever was parsed before the failure.
func (s *Store) Load() *Set {
	set, err := ParseFile(s.path, s.timeout)
	if err != nil {
		log.WithField("context", "patterns").WithError(err).Error("cant load banned words")
	}
	s.current.Store(set)
	observability.SetPatternsLoaded(set.Len())
	return set
}

// Append writes word as a new line at the end of the file, creating the file
// if needed. It does not refresh the published set.
func (s *Store) Append(word string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open words file for append")
	}
	if _, err := f.WriteString(word + "\n"); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "append banned word")
	}
	return errors.Wrap(f.Close(), "close words file")
}

// AddWord appends word and reloads the set.
func (s *Store) AddWord(word string) (*Set, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.Append(word); err != nil {
		return s.Snapshot(), err
	}
	return s.Load(), nil
}

func (s *Store) Start(context.Context) error {
	set := s.Load()
	log.WithFields(log.Fields{
		"context": "patterns",
		"path":    s.path,
		"count":   set.Len(),
	}).Infof("loaded %d patterns", set.Len())
	return nil
}

func (s *Store) Stop(context.Context) error {
	return nil
}

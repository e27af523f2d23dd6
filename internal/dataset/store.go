package dataset

import (
	"crypto/md5"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/logger"
	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/metrics"
	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/types"
)

// Store caches one loaded Dataset, keyed by the file's mtime, size and
// an md5 content fingerprint. The cached Dataset is immutable, so any
// number of concurrent readers may filter against it while a reload is
// in flight. A load failure empties the cache; callers receive a nil
// Dataset plus the typed error and degrade to an empty view.
type Store struct {
	path string
	log  *logger.Logger

	mu          sync.RWMutex
	ds          *types.Dataset
	fingerprint string
	modTime     time.Time
	size        int64
}

func NewStore(path string, log *logger.Logger) *Store {
	return &Store{path: path, log: log.WithComponent("dataset.store")}
}

// Path returns the file this store watches.
func (s *Store) Path() string { return s.path }

// Dataset returns the cached Dataset, reloading only when the file
// changed since the last load.
func (s *Store) Dataset() (*types.Dataset, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		s.clear()
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Path: s.path}
		}
		return nil, &ReadError{Path: s.path, Err: err}
	}

	s.mu.RLock()
	if s.ds != nil && info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		ds := s.ds
		s.mu.RUnlock()
		return ds, nil
	}
	s.mu.RUnlock()

	return s.reload(info)
}

func (s *Store) reload(info os.FileInfo) (*types.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// another caller may have reloaded while we waited on the lock
	if s.ds != nil && info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		return s.ds, nil
	}

	var (
		ds *types.Dataset
		fp string
	)
	op := func() error {
		data, err := os.ReadFile(s.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return backoff.Permanent(&NotFoundError{Path: s.path})
			}
			return &ReadError{Path: s.path, Err: err}
		}
		fp = fmt.Sprintf("%x", md5.Sum(data))
		if s.ds != nil && fp == s.fingerprint {
			// mtime changed, content did not
			ds = s.ds
			return nil
		}
		d, err := Load(s.path)
		if err != nil {
			if IsNotFound(err) || IsParse(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		ds = d
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 5 * time.Second
	if err := backoff.Retry(op, bo); err != nil {
		s.log.WithError(err).Warn("dataset reload failed")
		metrics.DatasetReloads.WithLabelValues("error").Inc()
		s.ds = nil
		s.fingerprint = ""
		return nil, err
	}

	fresh := ds != s.ds
	s.ds = ds
	s.fingerprint = fp
	s.modTime = info.ModTime()
	s.size = info.Size()
	if fresh {
		metrics.DatasetReloads.WithLabelValues("ok").Inc()
		metrics.DatasetRows.Set(float64(len(ds.Leads)))
		s.log.WithField("rows", len(ds.Leads)).WithField("path", s.path).Info("dataset loaded")
	}
	return ds, nil
}

func (s *Store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ds != nil {
		s.log.WithField("path", s.path).Warn("dataset file gone, dropping cache")
		metrics.DatasetRows.Set(0)
	}
	s.ds = nil
	s.fingerprint = ""
}

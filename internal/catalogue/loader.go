package catalogue

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"resty.dev/v3"
)

// Loader fetches the raw catalogue document from either a local file path or
// an HTTP(S) URL.
type Loader struct {
	source string
	client *resty.Client
}

func NewLoader(source string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Cache-Control", "no-store")

	return &Loader{
		source: source,
		client: client,
	}
}

func (l *Loader) Source() string {
	return l.source
}

// Fetch returns the raw catalogue bytes.
func (l *Loader) Fetch(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		resp, err := l.client.R().SetContext(ctx).Get(l.source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch catalogue from %s: %w", l.source, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("catalogue fetch returned HTTP %d", resp.StatusCode())
		}
		return resp.Bytes(), nil
	}

	data, err := os.ReadFile(l.source)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue file: %w", err)
	}
	return data, nil
}

// Store holds the most recently built Index. Refreshes that fail leave the
// previous index serving: last successful fetch wins. Concurrent refresh
// calls are collapsed into a single fetch via singleflight.
type Store struct {
	loader *Loader

	mu       sync.RWMutex
	idx      *Index
	cat      *Catalogue
	loadedAt time.Time

	group singleflight.Group
}

func NewStore(loader *Loader) *Store {
	return &Store{loader: loader}
}

// Refresh fetches, parses and indexes the catalogue, swapping the held index
// only on success.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.group.Do("refresh", func() (any, error) {
		data, err := s.loader.Fetch(ctx)
		if err != nil {
			return nil, err
		}

		cat, err := Parse(data)
		if err != nil {
			return nil, err
		}

		idx := BuildIndex(cat)

		s.mu.Lock()
		s.cat = cat
		s.idx = idx
		s.loadedAt = time.Now()
		s.mu.Unlock()

		slog.Info("catalogue refreshed",
			"source", s.loader.Source(),
			"categories", len(cat.Categories),
			"products", idx.Len(),
		)
		return nil, nil
	})
	return err
}

// Source reports where the catalogue is loaded from.
func (s *Store) Source() string {
	return s.loader.Source()
}

// Index returns the last successfully built index, or nil before the first
// successful load.
func (s *Store) Index() *Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx
}

// Catalogue returns the last successfully loaded document, or nil.
func (s *Store) Catalogue() *Catalogue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// LoadedAt reports when the current index was built; zero before first load.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

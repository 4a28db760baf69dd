// Package cache implements the substrate's on-disk, shared-cache-semantics
// HTTP cache (spec §4.1 "Cache"). It never stores responses served to
// authenticated requests and honors standard cache-control headers plus the
// substrate's default max-stale=86400 directive.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"
)

// DefaultMaxStale is the substrate's default staleness grace period applied
// when an upstream response carries no explicit cache directives.
const DefaultMaxStale = 24 * time.Hour

// Entry is one cached HTTP response. The on-disk format is intentionally
// opaque to callers outside this package (spec §3 "persistence is limited to
// an opaque on-disk HTTP cache").
type Entry struct {
	Status    int
	Header    http.Header
	Body      []byte
	StoredAt  time.Time
	ExpiresAt time.Time
}

// Fresh reports whether the entry may be served without revalidation at now.
func (e *Entry) Fresh(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// Store is the substrate's layered cache: an in-memory LRU hot layer in
// front of an on-disk SQLite store, keyed by request URL+method.
type Store struct {
	mu   sync.Mutex
	hot  *lru.Cache[string, *Entry]
	db   *sql.DB
	path string
}

// Dir returns the per-user cache directory biomcp uses for the HTTP cache,
// honoring XDG_CACHE_HOME indirectly through os.UserCacheDir (spec §6).
func Dir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "biomcp", "http-cacache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Open creates (lazily, tolerating races per spec §4.1 "Concurrency &
// safety") the on-disk cache database under dir and wraps it with a 512-entry
// in-memory hot layer.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	path := filepath.Join(dir, "cache.db")
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	hot, err := lru.New[string, *Entry](512)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{hot: hot, db: db, path: path}, nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS http_cache (
	key         TEXT PRIMARY KEY,
	status      INTEGER NOT NULL,
	header      TEXT NOT NULL,
	body        BLOB NOT NULL,
	stored_at   INTEGER NOT NULL,
	expires_at  INTEGER NOT NULL
);`

// Key derives the opaque cache key for a method+URL pair.
func Key(method, url string) string {
	sum := sha256.Sum256([]byte(method + " " + url))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached entry for key, if present. Database reads and
// writes are serialized by the Store's mutex (spec §5 "Writes to the HTTP
// cache are serialized by the cache manager"); reads try the hot layer
// first without taking it.
func (s *Store) Get(ctx context.Context, key string) (*Entry, bool) {
	if e, ok := s.hot.Get(key); ok {
		return e, true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.db.QueryRowContext(ctx, `SELECT status, header, body, stored_at, expires_at FROM http_cache WHERE key = ?`, key)
	var status int
	var headerRaw string
	var body []byte
	var storedAt, expiresAt int64
	if err := row.Scan(&status, &headerRaw, &body, &storedAt, &expiresAt); err != nil {
		return nil, false
	}
	e := &Entry{
		Status:    status,
		Header:    decodeHeader(headerRaw),
		Body:      body,
		StoredAt:  time.Unix(storedAt, 0).UTC(),
		ExpiresAt: time.Unix(expiresAt, 0).UTC(),
	}
	s.hot.Add(key, e)
	return e, true
}

// Put stores (or overwrites) the entry for key. authenticated requests must
// never be passed to Put (enforced by the caller per spec's shared-cache
// semantics; see substrate.cacheRoundTripper).
func (s *Store) Put(ctx context.Context, key string, e *Entry) error {
	s.hot.Add(key, e)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO http_cache (key, status, header, body, stored_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET status=excluded.status, header=excluded.header,
		   body=excluded.body, stored_at=excluded.stored_at, expires_at=excluded.expires_at`,
		key, e.Status, encodeHeader(e.Header), e.Body, e.StoredAt.Unix(), e.ExpiresAt.Unix())
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func encodeHeader(h http.Header) string {
	var b strings.Builder
	for k, vs := range h {
		for _, v := range vs {
			b.WriteString(k)
			b.WriteByte('\n')
			b.WriteString(v)
			b.WriteByte('\x00')
		}
	}
	return b.String()
}

func decodeHeader(raw string) http.Header {
	h := http.Header{}
	for _, pair := range strings.Split(raw, "\x00") {
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "\n", 2)
		if len(parts) != 2 {
			continue
		}
		h.Add(parts[0], parts[1])
	}
	return h
}

// Expiry computes the expiration time for a response given its headers and
// the time it was received, applying the substrate's default max-stale
// directive when the upstream supplies no cache directives of its own.
func Expiry(header http.Header, now time.Time) time.Time {
	cc := header.Get("Cache-Control")
	if cc != "" {
		for _, directive := range strings.Split(cc, ",") {
			directive = strings.TrimSpace(strings.ToLower(directive))
			if strings.HasPrefix(directive, "max-age=") {
				if secs, err := strconv.Atoi(strings.TrimPrefix(directive, "max-age=")); err == nil {
					return now.Add(time.Duration(secs) * time.Second)
				}
			}
			if directive == "no-store" || directive == "no-cache" {
				return now
			}
		}
	}
	if expires := header.Get("Expires"); expires != "" {
		if t, err := http.ParseTime(expires); err == nil {
			return t
		}
	}
	return now.Add(DefaultMaxStale)
}

// Cacheable reports whether a response may be stored under shared-cache
// semantics: never for authenticated requests, never for explicit no-store.
func Cacheable(authenticated bool, header http.Header) bool {
	if authenticated {
		return false
	}
	cc := strings.ToLower(header.Get("Cache-Control"))
	return !strings.Contains(cc, "no-store") && !strings.Contains(cc, "private")
}

package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"bookshelf/internal/domain/book"
	"bookshelf/internal/domain/zone"
)

const defaultListenInterval = 5 * time.Second

var (
	ErrZoneNotOpen = errors.New("zone is not open")
	ErrNoCache     = errors.New("local cache is disabled")
)

// Policy selects where a read is served from.
type Policy int

const (
	// PolicyCloudOnly reads from the store and refreshes the cache.
	PolicyCloudOnly Policy = iota
	// PolicyLocalOnly reads the cache only.
	PolicyLocalOnly
	// PolicyCloudPrior reads from the store and falls back to the cache
	// when the store cannot be reached.
	PolicyCloudPrior
)

func (p Policy) String() string {
	switch p {
	case PolicyLocalOnly:
		return "local"
	case PolicyCloudPrior:
		return "prior"
	default:
		return "cloud"
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "cloud":
		return PolicyCloudOnly, nil
	case "local":
		return PolicyLocalOnly, nil
	case "prior":
		return PolicyCloudPrior, nil
	}
	return 0, fmt.Errorf("unknown query policy %q", s)
}

// zoneHandle is one open zone. Listeners of the zone register on its
// WaitGroup, so closing it never waits on listeners of a later zone.
type zoneHandle struct {
	cfg       zone.Config
	stop      chan struct{}
	listeners sync.WaitGroup
}

func (h *zoneHandle) local() bool {
	return h.cfg.Sync == zone.SyncLocalOnly
}

// CloudDB is the data-access facade over the store and the local cache.
// CRUD calls return immediately with a Task; the work itself is detached
// from the caller's cancellation.
type CloudDB struct {
	backend Backend
	cache   Cache
	counter IDCounter
	log     *slog.Logger

	mu     sync.RWMutex
	handle *zoneHandle

	tasks sync.WaitGroup
}

// NewCloudDB builds the facade. cache may be nil to disable persistence.
func NewCloudDB(backend Backend, cache Cache, log *slog.Logger) *CloudDB {
	return &CloudDB{
		backend: backend,
		cache:   cache,
		log:     log.With("component", "cloud_db"),
	}
}

// RegisterSchema registers the book object types. Failures are logged and
// returned; nothing is retried.
func (db *CloudDB) RegisterSchema(ctx context.Context) error {
	if err := db.backend.RegisterSchema(ctx, book.ObjectTypeInfo()); err != nil {
		db.log.Error("failed to register schema", "error", err)
		return fmt.Errorf("register schema: %w", err)
	}
	db.log.Info("schema registered", "type", book.TypeName)
	return nil
}

// OpenZone opens cfg on the store, or only in the cache for local_only
// zones. A zone that is already open is closed first. On failure no zone
// is open.
func (db *CloudDB) OpenZone(ctx context.Context, cfg zone.Config) error {
	_ = db.CloseZone()

	if err := cfg.Validate(); err != nil {
		db.log.Error("failed to open zone", "zone", cfg.Name, "error", err)
		return err
	}

	if cfg.Sync == zone.SyncLocalOnly {
		if db.cache == nil {
			db.log.Error("failed to open zone", "zone", cfg.Name, "error", ErrNoCache)
			return ErrNoCache
		}
	} else if err := db.backend.OpenZone(ctx, cfg); err != nil {
		db.log.Error("failed to open zone", "zone", cfg.Name, "error", err)
		return fmt.Errorf("open zone: %w", err)
	}

	db.mu.Lock()
	db.handle = &zoneHandle{cfg: cfg, stop: make(chan struct{})}
	db.mu.Unlock()

	db.log.Info("zone opened", "zone", cfg.Name, "sync", cfg.Sync, "access", cfg.Access)
	return nil
}

// CloseZone stops live listeners and forgets the zone. It is a no-op when
// no zone is open.
func (db *CloudDB) CloseZone() error {
	db.mu.Lock()
	h := db.handle
	db.handle = nil
	db.mu.Unlock()

	if h == nil {
		return nil
	}
	close(h.stop)
	h.listeners.Wait()

	db.log.Info("zone closed", "zone", h.cfg.Name)
	return nil
}

// ZoneOpen reports whether a zone is open.
func (db *CloudDB) ZoneOpen() bool {
	return db.current() != nil
}

// FetchAll reads every book of the open zone according to policy and
// observes each id. Without an open zone the task fails with ErrZoneNotOpen
// and the backend is not called.
func (db *CloudDB) FetchAll(ctx context.Context, policy Policy) *Task[[]book.Book] {
	h := db.current()
	if h == nil {
		db.log.Warn("fetch skipped", "error", ErrZoneNotOpen)
		return completedTask[[]book.Book](nil, ErrZoneNotOpen)
	}

	t := newTask[[]book.Book]()
	db.run(ctx, func(ctx context.Context) {
		t.resolve(db.fetch(ctx, h, policy))
	})
	return t
}

// InsertOrUpdate writes b under its id. The task resolves with b once the
// write is acknowledged.
func (db *CloudDB) InsertOrUpdate(ctx context.Context, b book.Book) *Task[book.Book] {
	h := db.current()
	if h == nil {
		db.log.Warn("upsert skipped", "id", b.ID, "error", ErrZoneNotOpen)
		return completedTask(book.Book{}, ErrZoneNotOpen)
	}

	t := newTask[book.Book]()
	db.run(ctx, func(ctx context.Context) {
		if err := db.upsert(ctx, h, b); err != nil {
			db.log.Error("failed to upsert book", "zone", h.cfg.Name, "id", b.ID, "error", err)
			t.resolve(book.Book{}, err)
			return
		}
		db.counter.Observe(b.ID)
		db.log.Info("book upserted", "zone", h.cfg.Name, "id", b.ID)
		t.resolve(b, nil)
	})
	return t
}

// Delete removes books by id. The task resolves with the number of deleted books.
func (db *CloudDB) Delete(ctx context.Context, books []book.Book) *Task[int] {
	h := db.current()
	if h == nil {
		db.log.Warn("delete skipped", "count", len(books), "error", ErrZoneNotOpen)
		return completedTask(0, ErrZoneNotOpen)
	}
	if len(books) == 0 {
		return completedTask(0, nil)
	}

	ids := make([]int, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}

	t := newTask[int]()
	db.run(ctx, func(ctx context.Context) {
		n, err := db.delete(ctx, h, ids)
		if err != nil {
			db.log.Error("failed to delete books", "zone", h.cfg.Name, "ids", ids, "error", err)
			t.resolve(0, err)
			return
		}
		db.log.Info("books deleted", "zone", h.cfg.Name, "count", n)
		t.resolve(n, nil)
	})
	return t
}

// CurrentMaxID returns the largest book id seen so far. The next new book
// takes CurrentMaxID()+1.
func (db *CloudDB) CurrentMaxID() int {
	return db.counter.Current()
}

// RecordObserved raises the max id to b.ID if it is larger.
func (db *CloudDB) RecordObserved(b book.Book) {
	db.counter.Observe(b.ID)
}

// Listen polls the zone and sends every changed snapshot. The channel is
// closed when the zone is closed or ctx is done.
func (db *CloudDB) Listen(ctx context.Context, interval time.Duration) <-chan []book.Book {
	out := make(chan []book.Book, 1)

	// Add under the lock: CloseZone clears the handle before it waits.
	db.mu.RLock()
	h := db.handle
	if h != nil {
		h.listeners.Add(1)
	}
	db.mu.RUnlock()

	if h == nil {
		db.log.Warn("listen skipped", "error", ErrZoneNotOpen)
		close(out)
		return out
	}
	if interval <= 0 {
		interval = defaultListenInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		select {
		case <-h.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	go func() {
		defer h.listeners.Done()
		defer close(out)
		defer cancel()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var last []book.Book
		sent := false
		for {
			books, err := db.fetch(ctx, h, PolicyCloudOnly)
			if err == nil && (!sent || !slices.Equal(books, last)) {
				select {
				case out <- books:
					last, sent = books, true
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Close closes the zone, waits for in-flight operations and closes the cache.
func (db *CloudDB) Close() error {
	_ = db.CloseZone()
	db.tasks.Wait()
	if db.cache != nil {
		return db.cache.Close()
	}
	return nil
}

func (db *CloudDB) current() *zoneHandle {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.handle
}

func (db *CloudDB) run(ctx context.Context, fn func(ctx context.Context)) {
	db.tasks.Add(1)
	go func() {
		defer db.tasks.Done()
		fn(context.WithoutCancel(ctx))
	}()
}

func (db *CloudDB) fetch(ctx context.Context, h *zoneHandle, policy Policy) ([]book.Book, error) {
	if h.local() || policy == PolicyLocalOnly {
		return db.fetchLocal(ctx, h.cfg.Name)
	}

	books, err := db.fetchCloud(ctx, h.cfg.Name)
	if err != nil && policy == PolicyCloudPrior && db.cache != nil && !isAPIError(err) {
		db.log.Warn("store unreachable, reading cache", "zone", h.cfg.Name, "error", err)
		return db.fetchLocal(ctx, h.cfg.Name)
	}
	return books, err
}

func (db *CloudDB) fetchCloud(ctx context.Context, zoneName string) ([]book.Book, error) {
	snap, err := db.backend.Query(ctx, zoneName)
	if err != nil {
		db.log.Error("failed to query books", "zone", zoneName, "error", err)
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer snap.Release()

	books := make([]book.Book, 0, snap.Len())
	for snap.HasNext() {
		b, _ := snap.Next()
		db.counter.Observe(b.ID)
		books = append(books, b)
	}

	if db.cache != nil {
		if err := db.cache.Replace(ctx, zoneName, books); err != nil {
			db.log.Warn("failed to refresh cache", "zone", zoneName, "error", err)
		}
	}

	db.log.Debug("books fetched", "zone", zoneName, "count", len(books))
	return books, nil
}

func (db *CloudDB) fetchLocal(ctx context.Context, zoneName string) ([]book.Book, error) {
	if db.cache == nil {
		return nil, ErrNoCache
	}

	books, err := db.cache.List(ctx, zoneName)
	if err != nil {
		db.log.Error("failed to read cache", "zone", zoneName, "error", err)
		return nil, err
	}
	for _, b := range books {
		db.counter.Observe(b.ID)
	}
	return books, nil
}

func (db *CloudDB) upsert(ctx context.Context, h *zoneHandle, b book.Book) error {
	batch := []book.Book{b}
	if h.local() {
		return db.cache.Upsert(ctx, h.cfg.Name, batch)
	}

	if _, err := db.backend.Upsert(ctx, h.cfg.Name, batch); err != nil {
		return err
	}
	if db.cache != nil {
		if err := db.cache.Upsert(ctx, h.cfg.Name, batch); err != nil {
			db.log.Warn("failed to update cache", "zone", h.cfg.Name, "id", b.ID, "error", err)
		}
	}
	return nil
}

func (db *CloudDB) delete(ctx context.Context, h *zoneHandle, ids []int) (int, error) {
	if h.local() {
		if err := db.cache.Delete(ctx, h.cfg.Name, ids); err != nil {
			return 0, err
		}
		return len(ids), nil
	}

	n, err := db.backend.Delete(ctx, h.cfg.Name, ids)
	if err != nil {
		return 0, err
	}
	if db.cache != nil {
		if err := db.cache.Delete(ctx, h.cfg.Name, ids); err != nil {
			db.log.Warn("failed to update cache", "zone", h.cfg.Name, "error", err)
		}
	}
	return n, nil
}

func isAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-clock/internal/config"
	"github.com/tartampluch/go-clock/internal/engine"
)

// Status is the JSON document served to clients.
type Status struct {
	Time      string                `json:"time"`
	Date      string                `json:"date"`
	TimeParts *engine.TimeBreakdown `json:"time_parts,omitempty"`
	DateParts *engine.DateBreakdown `json:"date_parts,omitempty"`
	Updated   time.Time             `json:"updated"`
}

// cacheItem stores the rendered status and its metadata for HTTP caching.
type cacheItem struct {
	status Status
	data   []byte
	etag   string
}

// StatusServer exposes the strings currently on screen over HTTP.
// It implements engine.Display and engine.Committer so the display loop
// feeds it directly, one document per tick.
type StatusServer struct {
	// cache uses atomic.Pointer for lock-free reads. Only Commit writes it.
	cache atomic.Pointer[cacheItem]
	Port  string

	// Extractor, when set, adds the field breakdowns of each committed instant.
	Extractor *engine.Extractor

	// pending holds the strings staged since the last Commit.
	mu      sync.Mutex
	pending Status
	hasTime bool
	hasDate bool

	// now stamps updates; replaced in tests.
	now func() time.Time
}

// NewStatusServer creates a new instance of the server.
func NewStatusServer(port string) *StatusServer {
	return &StatusServer{
		Port: port,
		now:  time.Now,
	}
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *StatusServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleStatusRequest)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// UpdateTime stages a new time string. It is served after the next Commit.
func (s *StatusServer) UpdateTime(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Time = value
	s.hasTime = true
}

// UpdateDate stages a new date string. It is served after the next Commit.
func (s *StatusServer) UpdateDate(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Date = value
	s.hasDate = true
}

// Commit publishes the staged strings, rendered from inst, as one document.
// Nothing is published until both fields have been staged.
func (s *StatusServer) Commit(inst engine.Instant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasTime || !s.hasDate {
		return
	}

	st := Status{Time: s.pending.Time, Date: s.pending.Date}
	if s.Extractor != nil {
		tp, dp := s.Extractor.TimeOf(inst), s.Extractor.DateOf(inst)
		st.TimeParts, st.DateParts = &tp, &dp
	}
	st.Updated = s.now().UTC()
	s.publish(st)
}

// Snapshot returns the served status and whether anything was published yet.
func (s *StatusServer) Snapshot() (Status, bool) {
	item := s.cache.Load()
	if item == nil {
		return Status{}, false
	}
	return item.status, true
}

// publish renders st and swaps it into the cache.
func (s *StatusServer) publish(st Status) {
	data, err := json.Marshal(st)
	if err != nil {
		slog.Error(config.ErrEncodeStatus,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
		return
	}

	// The ETag only covers what is displayed, not the update stamp.
	shown := st
	shown.Updated = time.Time{}
	key, err := json.Marshal(shown)
	if err != nil {
		key = data
	}
	hash := sha256.Sum256(key)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	s.cache.Store(&cacheItem{status: st, data: data, etag: etag})

	slog.Debug(config.MsgStatusUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleStatusRequest serves the status JSON with ETag support.
func (s *StatusServer) handleStatusRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.cache.Load()

	// Nothing is served before the first committed tick.
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNo)
	w.Header().Set(config.HeaderETag, item.etag)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

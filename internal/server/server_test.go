package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-clock/internal/config"
	"github.com/tartampluch/go-clock/internal/engine"
	"github.com/tidwall/gjson"
)

// Compile-time checks: the loop can feed the server.
var (
	_ engine.Display   = (*StatusServer)(nil)
	_ engine.Committer = (*StatusServer)(nil)
)

var testInstant = engine.NewInstant(time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC))

func newTestServer() *StatusServer {
	srv := NewStatusServer("0")
	srv.now = testInstant.Time
	return srv
}

// show stages both strings and commits them, as one loop tick does.
func show(srv *StatusServer, timeText, dateText string) {
	srv.UpdateTime(timeText)
	srv.UpdateDate(dateText)
	srv.Commit(testInstant)
}

func get(t *testing.T, srv *StatusServer, method string, header map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, "/", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.handleStatusRequest(w, req)
	resp := w.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHandler_ServingContent(t *testing.T) {
	srv := newTestServer()
	show(srv, "02:07:09 PM", "05 Mar, 2024")

	resp := get(t, srv, http.MethodGet, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeJSON, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.Equal(t, config.CacheControlNo, resp.Header.Get(config.HeaderCacheControl))
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "02:07:09 PM", gjson.GetBytes(body, "time").String())
	assert.Equal(t, "05 Mar, 2024", gjson.GetBytes(body, "date").String())
	assert.Equal(t, "2024-03-05T14:07:09Z", gjson.GetBytes(body, "updated").String())
	assert.False(t, gjson.GetBytes(body, "time_parts").Exists(), "No breakdowns without an Extractor")
}

func TestHandler_Breakdowns(t *testing.T) {
	srv := newTestServer()
	srv.Extractor = engine.NewExtractor(engine.NewTimeSource(engine.FixedClock{T: testInstant.Time()}, time.UTC))
	show(srv, "14:07", "2024")

	body, err := io.ReadAll(get(t, srv, http.MethodGet, nil).Body)
	require.NoError(t, err)

	assert.Equal(t, "02", gjson.GetBytes(body, "time_parts.hour").String())
	assert.Equal(t, "07", gjson.GetBytes(body, "time_parts.minute").String())
	assert.Equal(t, "09", gjson.GetBytes(body, "time_parts.second").String())
	assert.Equal(t, "00", gjson.GetBytes(body, "time_parts.sub_second").String())
	assert.Equal(t, "PM", gjson.GetBytes(body, "time_parts.session").String())
	assert.Equal(t, "05", gjson.GetBytes(body, "date_parts.day").String())
	assert.Equal(t, "Mar", gjson.GetBytes(body, "date_parts.month").String())
	assert.Equal(t, "2024", gjson.GetBytes(body, "date_parts.year").String())
}

func TestHandler_PartialUpdatesKeepOtherField(t *testing.T) {
	srv := newTestServer()
	show(srv, "02:07:09 PM", "05 Mar, 2024")
	srv.UpdateTime("02:07:10 PM")
	srv.Commit(testInstant)

	st, ok := srv.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "02:07:10 PM", st.Time)
	assert.Equal(t, "05 Mar, 2024", st.Date, "A time update must not clear the date")
}

func TestHandler_NotServedUntilBothFields(t *testing.T) {
	srv := newTestServer()
	srv.UpdateTime("02:07:09 PM")
	srv.Commit(testInstant)

	resp := get(t, srv, http.MethodGet, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, "A time without a date is not served")

	srv.UpdateDate("05 Mar, 2024")
	srv.Commit(testInstant)
	assert.Equal(t, http.StatusOK, get(t, srv, http.MethodGet, nil).StatusCode)
}

func TestHandler_StagedUpdatesWaitForCommit(t *testing.T) {
	srv := newTestServer()
	show(srv, "11:59:59 PM", "05 Mar, 2024")

	// Midnight: the new time must never be served next to the old date.
	srv.UpdateTime("12:00:00 AM")
	st, _ := srv.Snapshot()
	assert.Equal(t, "11:59:59 PM", st.Time)

	srv.UpdateDate("06 Mar, 2024")
	srv.Commit(testInstant)
	st, _ = srv.Snapshot()
	assert.Equal(t, "12:00:00 AM", st.Time)
	assert.Equal(t, "06 Mar, 2024", st.Date)
}

func TestHandler_Caching(t *testing.T) {
	srv := newTestServer()
	show(srv, "02:07:09 PM", "05 Mar, 2024")

	etag := get(t, srv, http.MethodGet, nil).Header.Get(config.HeaderETag)
	require.NotEmpty(t, etag, "Server must provide an ETag")

	resp := get(t, srv, http.MethodGet, map[string]string{config.HeaderIfNoneMatch: etag})
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body, "Body must be empty on 304 Not Modified")

	srv.UpdateTime("02:07:10 PM")
	srv.Commit(testInstant)
	resp = get(t, srv, http.MethodGet, map[string]string{config.HeaderIfNoneMatch: etag})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "A new time invalidates the ETag")
}

func TestHandler_NotReady(t *testing.T) {
	resp := get(t, newTestServer(), http.MethodGet, nil)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))

	_, ok := newTestServer().Snapshot()
	assert.False(t, ok)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := newTestServer()
	show(srv, "x", "y")

	resp := get(t, srv, http.MethodPost, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, config.AllowedMethods, resp.Header.Get(config.HeaderAllow))
}

func TestHandler_Head(t *testing.T) {
	srv := newTestServer()
	show(srv, "x", "y")

	resp := get(t, srv, http.MethodHead, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body)
}

// TestServer_FedByLoop runs one loop tick against the server.
func TestServer_FedByLoop(t *testing.T) {
	srv := newTestServer()
	src := engine.NewTimeSource(engine.FixedClock{T: testInstant.Time()}, time.UTC)
	srv.Extractor = engine.NewExtractor(src)
	loop := engine.NewLoop(src, engine.Displays{srv}, config.DisplayTimePattern, config.DisplayDatePattern)

	require.NoError(t, loop.Tick())

	st, ok := srv.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "02:07:09 PM", st.Time)
	assert.Equal(t, "05 Mar, 2024", st.Date)
	require.NotNil(t, st.TimeParts)
	assert.Equal(t, engine.TimeBreakdown{Hour: "02", Minute: "07", Second: "09", SubSecond: "00", Session: "PM"}, *st.TimeParts)
}

// TestServer_Lifecycle starts the real listener and shuts it down via context.
func TestServer_Lifecycle(t *testing.T) {
	l, err := net.Listen("tcp", config.LocalhostBindAddr+":0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	srv := NewStatusServer(fmt.Sprint(port))
	show(srv, "12:00:00 PM", "05 Mar, 2024")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	url := fmt.Sprintf("http://%s:%d/", config.LocalhostBindAddr, port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(resp.Body)
		return gjson.GetBytes(body, "time").String() == "12:00:00 PM"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(config.ShutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_PortRequired(t *testing.T) {
	err := NewStatusServer("").Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPortRequired)
}

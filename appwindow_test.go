package tether

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppNilHandler(t *testing.T) {
	assert.Error(t, App(AppOptions{}))
}

func testMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, "<h1>home</h1>")
	})
	mux.HandleFunc("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, "pong")
	})
	return mux
}

func TestAppHandlerServe(t *testing.T) {
	h := newAppHandler(AppOptions{Host: "app.test", Handler: testMux()})

	tests := []struct {
		name       string
		uri        string
		wantOK     bool
		wantStatus int
		wantBody   string
	}{
		{name: "root", uri: "http://app.test/", wantOK: true, wantStatus: 200, wantBody: "<h1>home</h1>"},
		{name: "api", uri: "http://app.test/api/ping?x=1", wantOK: true, wantStatus: 202, wantBody: "pong"},
		{name: "not found", uri: "http://app.test/nope", wantOK: true, wantStatus: 404, wantBody: "404 page not found\n"},
		{name: "other host", uri: "https://example.com/", wantOK: false},
		{name: "host with port", uri: "http://app.test:8080/", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok, err := h.serve(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantStatus, res.StatusCode)
			assert.Equal(t, tt.wantBody, string(res.Content))
		})
	}
}

func TestAppHandlerBadURI(t *testing.T) {
	h := newAppHandler(AppOptions{Host: "app.test", Handler: testMux()})

	_, ok, err := h.serve("http://app.test/%zz")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestAppHandlerInWindow(t *testing.T) {
	f := startFake(t)

	var got []string
	h := newAppHandler(AppOptions{
		Host:      "app.test",
		Handler:   testMux(),
		OnMessage: func(_ Window, msg string) { got = append(got, msg) },
	})
	w := NewWindow(Options{Handler: h})

	res, ok := f.request(w.s.ref, []byte("http://app.test/"))
	require.True(t, ok)
	assert.Equal(t, 200, res.status)
	assert.Equal(t, "<h1>home</h1>", string(res.content))

	_, ok = f.request(w.s.ref, []byte("http://cdn.example.com/lib.js"))
	assert.False(t, ok)

	f.message(w.s.ref, []byte("ready"))
	assert.Equal(t, []string{"ready"}, got)

	// Reclaiming the window stops the loop.
	f.closed(w.s.ref)
	assert.Len(t, f.callsFor("exit"), 1)
}

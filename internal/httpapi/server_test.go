package httpapi

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHealthz(t *testing.T) {
	_, ts := setupServer(t, &fakeChecker{})
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
}

func TestWS_PushesStateTransitions(t *testing.T) {
	chk := &fakeChecker{rs: sampleResults()}
	srv, ts := setupServer(t, chk)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var first stateResponse
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial state: %v", err)
	}
	if first.Loading || first.HasResults {
		t.Fatalf("unexpected initial state: %+v", first)
	}

	submit(t, ts, "https://example.com")
	srv.Wait()

	for {
		var st stateResponse
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		if err := conn.ReadJSON(&st); err != nil {
			t.Fatalf("read update: %v", err)
		}
		if !st.Loading {
			if !st.HasResults || len(st.Results) != 2 {
				t.Fatalf("final state should carry results: %+v", st)
			}
			return
		}
	}
}

func TestWS_RejectsForeignOrigin(t *testing.T) {
	_, ts := setupServer(t, &fakeChecker{})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	h := http.Header{}
	h.Set("Origin", "https://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, h)
	if err == nil {
		t.Fatalf("want handshake failure for foreign origin")
	}
	if resp != nil && resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403, got %d", resp.StatusCode)
	}
}

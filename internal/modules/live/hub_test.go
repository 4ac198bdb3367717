package live

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialSubscriber(t *testing.T, serverURL string, ready <-chan struct{}) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/feed"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("subscription was never registered")
	}
	return conn
}

// Broadcasts arrive from whichever request goroutine committed, so
// writes to one subscriber must be serialized even when commits race.
func TestBroadcastToEvent_ConcurrentCommits(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	defer hub.Close()

	const eventID = int64(7)
	ready := make(chan struct{}, 2)

	r := gin.New()
	r.GET("/feed", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		require.NoError(t, err)
		hub.Subscribe(eventID, conn)
		ready <- struct{}{}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	server := httptest.NewServer(r)
	defer server.Close()

	clientA := dialSubscriber(t, server.URL, ready)
	clientB := dialSubscriber(t, server.URL, ready)

	const writers = 4
	const perWriter = 10

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				hub.BroadcastToEvent(eventID, map[string]int{"writer": w, "seq": i})
			}
		}(w)
	}
	wg.Wait()

	for _, client := range []*websocket.Conn{clientA, clientB} {
		require.NoError(t, client.SetReadDeadline(time.Now().Add(5*time.Second)))
		received := 0
		for received < writers*perWriter {
			var msg map[string]int
			require.NoError(t, client.ReadJSON(&msg), "after %d messages", received)
			received++
		}
		assert.Equal(t, writers*perWriter, received)
	}
}

func TestBroadcastToEvent_DropsDeadSubscriber(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	defer hub.Close()

	const eventID = int64(9)
	ready := make(chan struct{}, 1)

	r := gin.New()
	r.GET("/feed", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		require.NoError(t, err)
		hub.Subscribe(eventID, conn)
		ready <- struct{}{}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	server := httptest.NewServer(r)
	defer server.Close()

	client := dialSubscriber(t, server.URL, ready)
	require.NoError(t, client.Close())

	// both calls must survive the closed connection; the first write
	// failure evicts the subscriber
	hub.BroadcastToEvent(eventID, map[string]string{"kind": "slot.claimed"})
	hub.BroadcastToEvent(eventID, map[string]string{"kind": "slot.released"})
}

package rpcclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nspcc-dev/neo-go-sdk/pkg/neorpc"
	"github.com/stretchr/testify/require"
)

func TestWSClientRequestResponse(t *testing.T) {
	var upgrader websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		var req neorpc.Request
		require.NoError(t, conn.ReadJSON(&req))
		resp := neorpc.Response{JSONRPC: neorpc.JSONRPCVersion, ID: req.ID, Result: json.RawMessage("1000")}
		require.NoError(t, conn.WriteJSON(resp))
		time.Sleep(50 * time.Millisecond)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, err := NewWS(context.Background(), wsURL, Options{})
	require.NoError(t, err)
	defer c.Close()

	count, err := c.GetBlockCount()
	require.NoError(t, err)
	require.EqualValues(t, 1000, count)
}

func TestWSClientNotification(t *testing.T) {
	var upgrader websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		n := neorpc.Notification{JSONRPC: neorpc.JSONRPCVersion, Method: "block_added", Params: json.RawMessage(`[{"index":1}]`)}
		require.NoError(t, conn.WriteJSON(n))
		time.Sleep(50 * time.Millisecond)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, err := NewWS(context.Background(), wsURL, Options{})
	require.NoError(t, err)
	defer c.Close()

	ch := make(chan neorpc.Notification, 1)
	c.Subscribe("block_added", ch)

	select {
	case n := <-ch:
		require.Equal(t, "block_added", n.Method)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
	}
}

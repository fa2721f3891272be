package assistant

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// ChatMessage is one turn on the chat socket.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// wsConn maintains a chat WebSocket connection with one client.
type wsConn struct {
	conn      *websocket.Conn
	send      chan []byte
	mu        sync.Mutex
	assistant *Assistant
}

// HandleWebSocket upgrades the connection and serves the chat loop.
func (a *Assistant) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	ws := &wsConn{
		conn:      conn,
		send:      make(chan []byte, 256),
		assistant: a,
	}

	// The request context dies with the handler; the hijacked connection
	// outlives it.
	go ws.writePump()
	go ws.readPump(context.Background())
}

// readPump reads user prompts off the socket and queues replies.
func (w *wsConn) readPump(ctx context.Context) {
	defer func() {
		close(w.send)
		w.conn.Close()
	}()

	w.conn.SetReadLimit(64 * 1024)
	w.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	w.conn.SetPongHandler(func(string) error {
		w.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := w.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}

		var msg ChatMessage
		if err := json.Unmarshal(message, &msg); err != nil || msg.Text == "" {
			continue
		}

		reply, _ := w.assistant.Chat(ctx, msg.Text)
		out, err := json.Marshal(ChatMessage{Role: "model", Text: reply})
		if err != nil {
			continue
		}
		w.send <- out
	}
}

// writePump pushes queued replies and keeps the connection alive with pings.
func (w *wsConn) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		w.conn.Close()
	}()

	for {
		select {
		case message, ok := <-w.send:
			w.mu.Lock()
			w.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				w.conn.WriteMessage(websocket.CloseMessage, []byte{})
				w.mu.Unlock()
				return
			}
			err := w.conn.WriteMessage(websocket.TextMessage, message)
			w.mu.Unlock()
			if err != nil {
				return
			}
		case <-ticker.C:
			w.mu.Lock()
			w.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			err := w.conn.WriteMessage(websocket.PingMessage, nil)
			w.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

package controllers

import (
	"log"
	"net/http"

	"communitypulse-be/live"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// The change feed is public read-only data, so any origin may subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamIssues upgrades the connection and forwards every issue event as
// {"type": ..., "issue": ...} until the client goes away. Events are not
// filtered here: spam flows through and consumers decide what to show.
func StreamIssues(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Failed to upgrade websocket:", err)
		return
	}
	defer ws.Close()

	sub := live.Events.Subscribe()
	defer sub.Close()

	// Read loop whose only job is noticing the peer hanging up.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case evt, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := ws.WriteJSON(evt); err != nil {
				log.Println("Websocket write error:", err)
				return
			}
		case <-done:
			return
		}
	}
}

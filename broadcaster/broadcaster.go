package broadcaster

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"
)

const writeWait = 10 * time.Second

// Manages connected browser WebSocket clients and broadcasts next-race payloads.
type Broadcaster struct {
	clients map[*websocket.Conn]string
	sync.RWMutex
	upgrader websocket.Upgrader
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[*websocket.Conn]string),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// the countdown is public; any page may embed it
				return true
			},
		},
	}
}

// HandleConnections upgrades the request, sends initialMessage and keeps the
// client registered until it disconnects.
func (b *Broadcaster) HandleConnections(w http.ResponseWriter, r *http.Request, initialMessage []byte) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("failed to upgrade HTTP to WebSocket")
		return
	}
	defer conn.Close()

	id := ksuid.New().String()

	// Register under the write lock so a concurrent Broadcast cannot interleave
	// with the initial message.
	b.Lock()
	if initialMessage != nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, initialMessage); err != nil {
			b.Unlock()
			log.Warn().Err(err).Str("client", id).Msg("error sending initial state to browser client")
			return
		}
	}
	b.clients[conn] = id
	total := len(b.clients)
	b.Unlock()

	log.Info().Str("client", id).Str("remote", conn.RemoteAddr().String()).Int("clients", total).Msg("browser client connected")

	// Clients never send anything; ReadMessage only returns on disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("client", id).Msg("browser client read error")
			}
			break
		}
	}

	b.Lock()
	delete(b.clients, conn)
	total = len(b.clients)
	b.Unlock()
	log.Info().Str("client", id).Int("clients", total).Msg("browser client removed")
}

// Broadcast writes message to every connected client. gorilla connections
// allow one concurrent writer, so writes happen under the exclusive lock.
func (b *Broadcaster) Broadcast(message []byte) {
	b.Lock()
	defer b.Unlock()

	for client, id := range b.clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
			// the read loop in HandleConnections removes the client
			log.Warn().Err(err).Str("client", id).Msg("error sending message to browser client")
		}
	}
}

func (b *Broadcaster) ClientCount() int {
	b.RLock()
	defer b.RUnlock()
	return len(b.clients)
}

package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"
)

// DefaultWriteTimeout bounds the time spent writing to one client.
const DefaultWriteTimeout = 100 * time.Millisecond

// Hub implements PacketWriter by broadcasting every packet to all
// connected clients as a binary message. A client failing a write is
// dropped.
type Hub struct {
	WriteTimeout time.Duration

	lock    sync.Mutex
	clients map[*ReadWriter]chan struct{}
}

// NewHub creates a Hub.
func NewHub() *Hub {
	return &Hub{
		WriteTimeout: DefaultWriteTimeout,
		clients:      make(map[*ReadWriter]chan struct{}),
	}
}

// Handler returns the http.Handler accepting websocket clients.
// Any origin is accepted, including none, so bench tools which are not
// browsers can connect.
func (h *Hub) Handler() http.Handler {
	return websocket.Server{Handler: h.serve, Handshake: acceptAnyOrigin}
}

func acceptAnyOrigin(config *websocket.Config, r *http.Request) error {
	config.Origin, _ = websocket.Origin(config, r)
	return nil
}

// ServeHTTP implements http.Handler.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Handler().ServeHTTP(w, r)
}

// NumClients returns the number of connected clients.
func (h *Hub) NumClients() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.clients)
}

// WritePacket implements PacketWriter.
func (h *Hub) WritePacket(pkt []byte) error {
	h.lock.Lock()
	defer h.lock.Unlock()
	for client, done := range h.clients {
		if err := client.WritePacketTimeout(pkt, h.WriteTimeout); err != nil {
			glog.V(1).Infof("websocket client %s dropped: %v", client.remote(), err)
			delete(h.clients, client)
			close(done)
		}
	}
	return nil
}

// Close disconnects all clients.
func (h *Hub) Close() error {
	h.lock.Lock()
	defer h.lock.Unlock()
	for client, done := range h.clients {
		delete(h.clients, client)
		close(done)
	}
	return nil
}

func (h *Hub) serve(conn *websocket.Conn) {
	conn.PayloadType = websocket.BinaryFrame
	client := New(conn)
	done := make(chan struct{})
	h.lock.Lock()
	h.clients[client] = done
	h.lock.Unlock()
	glog.V(1).Infof("websocket client %s connected", client.remote())

	// Clients don't send anything, reading only detects disconnection.
	go func() {
		for {
			if _, err := client.ReadPacket(); err != nil {
				h.remove(client)
				return
			}
		}
	}()
	<-done
	conn.Close()
}

func (h *Hub) remove(client *ReadWriter) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if done, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(done)
	}
}

func (p *ReadWriter) remote() string {
	if r := (*websocket.Conn)(p).Request(); r != nil {
		return r.RemoteAddr
	}
	return "?"
}

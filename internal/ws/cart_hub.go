package ws

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	readLimit          = 1 << 10
	readDeadline       = 120 * time.Second
	writeDeadline      = 5 * time.Second
	pingInterval       = 15 * time.Second
	firstHelloDeadline = 30 * time.Second
)

// CartUpdate is the frame pushed to badge subscribers after every cart
// mutation.
type CartUpdate struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type client struct {
	token string
	conn  *websocket.Conn
}

type push struct {
	token string
	count int
}

// CartHub fans live cart counts out to every open page of a shopper. Clients
// subscribe with their cart token; one token may have several tabs open.
type CartHub struct {
	clients    map[string]map[*websocket.Conn]struct{}
	register   chan client
	unregister chan client
	updates    chan push
}

func NewCartHub() *CartHub {
	return &CartHub{
		clients:    make(map[string]map[*websocket.Conn]struct{}),
		register:   make(chan client),
		unregister: make(chan client),
		updates:    make(chan push),
	}
}

// Run owns the client map; all access happens on this goroutine.
func (h *CartHub) Run() {
	for {
		select {
		case c := <-h.register:
			conns, ok := h.clients[c.token]
			if !ok {
				conns = make(map[*websocket.Conn]struct{})
				h.clients[c.token] = conns
			}
			conns[c.conn] = struct{}{}
			log.Printf("WS register token=%s conns=%d", c.token, len(conns))

		case c := <-h.unregister:
			if conns, ok := h.clients[c.token]; ok {
				if _, ok := conns[c.conn]; ok {
					_ = c.conn.Close()
					delete(conns, c.conn)
					if len(conns) == 0 {
						delete(h.clients, c.token)
					}
					log.Printf("WS unregister token=%s", c.token)
				}
			}

		case u := <-h.updates:
			frame := CartUpdate{Type: "cart_updated", Count: u.count}
			conns := h.clients[u.token]
			for conn := range conns {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(frame); err != nil {
					log.Printf("cart push error token=%s: %v", u.token, err)
					_ = conn.Close()
					delete(conns, conn)
				}
			}
			if len(conns) == 0 {
				delete(h.clients, u.token)
			}
		}
	}
}

// CartChanged implements the cart service notifier: every persisted mutation
// lands here with the new badge count.
func (h *CartHub) CartChanged(token string, count int) {
	h.updates <- push{token: token, count: count}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// ServeWS upgrades a badge subscription. The first frame must carry the cart
// token: {"cart_token": "..."}.
func (h *CartHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(firstHelloDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	var hello struct {
		CartToken string `json:"cart_token"`
	}
	if err := conn.ReadJSON(&hello); err != nil || hello.CartToken == "" {
		log.Println("invalid hello payload:", err)
		_ = writeClose(conn, websocket.ClosePolicyViolation, "hello required")
		_ = conn.Close()
		return
	}
	conn.SetReadDeadline(time.Now().Add(readDeadline))

	c := client{token: hello.CartToken, conn: conn}
	h.register <- c

	go h.pingLoop(c)
	go h.readLoop(c)
}

func (h *CartHub) pingLoop(c client) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for range t.C {
		// WriteControl is safe next to the hub's WriteJSON
		if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil {
			_ = writeClose(c.conn, websocket.CloseGoingAway, "ping error")
			h.unregister <- c
			return
		}
	}
}

// readLoop consumes frames so close and pong frames are processed; badge
// clients send nothing after the hello.
func (h *CartHub) readLoop(c client) {
	defer func() {
		h.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeDeadline),
	)
}

package advisor

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/NhatMinh0311/G02-PokerBot/internal/bot"
	"github.com/NhatMinh0311/G02-PokerBot/internal/deck"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// defaults applied when a decide request omits search parameters
const (
	defaultDepth       = 2
	defaultSimulations = 2000
)

// Connection wraps a WebSocket client of the advisor. Each connection
// owns its bot instance, so requests on one connection never contend
// with another.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	bot       *bot.Bot
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, b *bot.Bot) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		bot:    b,
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "requestId", msg.RequestID)

	switch msg.Type {
	case MessageTypeDecide:
		var data DecideRequest
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "Failed to parse decide request")
			return
		}
		c.handleDecide(msg.RequestID, data)

	default:
		c.sendError(msg.RequestID, "unknown_message_type", "Unknown message type: "+string(msg.Type))
	}
}

func (c *Connection) handleDecide(requestID string, data DecideRequest) {
	state, err := stateFromRequest(data)
	if err != nil {
		c.sendError(requestID, "invalid_request", err.Error())
		return
	}

	depth := data.Depth
	if depth == 0 {
		depth = defaultDepth
	}
	sims := data.Simulations
	if sims == 0 {
		sims = defaultSimulations
	}

	decision, err := c.bot.Decide(state, depth, sims)
	if err != nil {
		c.sendError(requestID, "decide_failed", err.Error())
		return
	}

	response, err := NewMessage(MessageTypeDecision, DecisionResponse{
		Action:    decision.Action.String(),
		Amount:    decision.Amount,
		WinProb:   decision.WinProb,
		ElapsedMs: float64(decision.Elapsed) / float64(time.Millisecond),
		Fallback:  decision.Fallback,
	})
	if err != nil {
		c.logger.Error("Failed to create decision message", "error", err)
		return
	}
	response.RequestID = requestID
	_ = c.SendMessage(response)
}

// stateFromRequest parses card notation and builds a decision state
func stateFromRequest(data DecideRequest) (bot.DecisionState, error) {
	hole, err := deck.ParseCards(data.Hole)
	if err != nil {
		return bot.DecisionState{}, err
	}

	var community []deck.Card
	if data.Community != "" {
		community, err = deck.ParseCards(data.Community)
		if err != nil {
			return bot.DecisionState{}, err
		}
	}

	state := bot.DecisionState{
		Hole:          hole,
		Community:     community,
		Pot:           data.Pot,
		CurrentBet:    data.CurrentBet,
		BotCommitted:  data.BotCommitted,
		BotStack:      data.BotStack,
		OppStack:      data.OppStack,
		RaiseAmount:   data.RaiseAmount,
		EarlyPosition: data.EarlyPosition,
	}
	return state, state.Validate()
}

// sendError sends an error message to the client
func (c *Connection) sendError(requestID, code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}
	errorMsg.RequestID = requestID

	_ = c.SendMessage(errorMsg)
}

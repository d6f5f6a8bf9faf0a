package advisor

import (
	"encoding/json"
	"time"
)

// MessageType identifies the kind of payload a message carries
type MessageType string

const (
	MessageTypeDecide   MessageType = "decide"
	MessageTypeDecision MessageType = "decision"
	MessageTypeError    MessageType = "error"
)

// Message is the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

// DecideRequest describes a betting situation to advise on. Cards use
// compact notation, e.g. "AsKh" for hole and "2c7d9h" for the board.
type DecideRequest struct {
	Hole          string `json:"hole"`
	Community     string `json:"community,omitempty"`
	Pot           int    `json:"pot"`
	CurrentBet    int    `json:"currentBet,omitempty"`
	BotCommitted  int    `json:"botCommitted,omitempty"`
	BotStack      int    `json:"botStack"`
	OppStack      int    `json:"oppStack"`
	RaiseAmount   int    `json:"raiseAmount"`
	EarlyPosition bool   `json:"earlyPosition,omitempty"`
	Depth         int    `json:"depth,omitempty"`
	Simulations   int    `json:"simulations,omitempty"`
}

// Server → Client Messages

type DecisionResponse struct {
	Action    string  `json:"action"`
	Amount    int     `json:"amount,omitempty"`
	WinProb   float64 `json:"winProb"`
	ElapsedMs float64 `json:"elapsedMs"`
	Fallback  bool    `json:"fallback,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

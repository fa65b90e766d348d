package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionUpsert Action = "upsert"
	ActionDelete Action = "delete"
)

// TransactionMessage carries only the ID; the worker reloads the row itself.
type TransactionMessage struct {
	MessageID string    `json:"message_id"`
	Action    Action    `json:"action"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionMessage(action Action, id int64) *TransactionMessage {
	return &TransactionMessage{
		MessageID: uuid.NewString(),
		Action:    action,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

func (m *TransactionMessage) Validate() error {
	if m.Action != ActionUpsert && m.Action != ActionDelete {
		return fmt.Errorf("unknown action %q", m.Action)
	}
	if m.ID <= 0 {
		return fmt.Errorf("invalid transaction id %d", m.ID)
	}
	return nil
}

func (m *TransactionMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionMessageFromJSON decodes and validates a message body.
func TransactionMessageFromJSON(data []byte) (*TransactionMessage, error) {
	var msg TransactionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}

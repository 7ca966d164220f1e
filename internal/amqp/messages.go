package amqp

import (
	"encoding/json"
	"time"
)

// SeedCompletedMessage announces that the record store was replaced with a
// fresh dataset snapshot.
type SeedCompletedMessage struct {
	SeedID      string    `json:"seedId"`
	Records     int       `json:"records"`
	Source      string    `json:"source"`
	CompletedAt time.Time `json:"completedAt"`
}

// NewSeedCompletedMessage stamps the message with the current time.
func NewSeedCompletedMessage(seedID string, records int, source string) *SeedCompletedMessage {
	return &SeedCompletedMessage{
		SeedID:      seedID,
		Records:     records,
		Source:      source,
		CompletedAt: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SeedCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SeedCompletedMessageFromJSON creates a message from JSON bytes
func SeedCompletedMessageFromJSON(data []byte) (*SeedCompletedMessage, error) {
	var msg SeedCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

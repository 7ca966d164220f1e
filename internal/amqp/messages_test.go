package amqp

import (
	"testing"
	"time"
)

func TestSeedCompletedMessageJSON(t *testing.T) {
	msg := NewSeedCompletedMessage("seed-1", 60, "http://example.com/data.json")
	if msg.CompletedAt.IsZero() || msg.CompletedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", msg.CompletedAt)
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := SeedCompletedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.SeedID != "seed-1" || got.Records != 60 || got.Source != msg.Source {
		t.Errorf("unexpected message: %+v", got)
	}
	if !got.CompletedAt.Equal(msg.CompletedAt) {
		t.Errorf("CompletedAt = %v, want %v", got.CompletedAt, msg.CompletedAt)
	}
}

func TestSeedCompletedMessageFromInvalidJSON(t *testing.T) {
	if _, err := SeedCompletedMessageFromJSON([]byte("{")); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestCloseNilClient(t *testing.T) {
	c := &Client{}
	if err := c.Close(); err != nil {
		t.Fatalf("Close on empty client: %v", err)
	}
}

package events

import "testing"

func TestIsConnectedWithoutConnection(t *testing.T) {
	if Connection() != nil {
		t.Fatal("expected no connection in a fresh test process")
	}
	if IsConnected() {
		t.Fatal("IsConnected should be false without a connection")
	}
}

func TestPublishWithoutConnection(t *testing.T) {
	// Best-effort contract: publishing with no connection is a silent no-op.
	UserSignedUp("u-1", "user@example.com", "BPO")
	ComplaintCreated("c-1", "BPO", "Medium", 0)
}

func TestCloseWithoutConnection(t *testing.T) {
	if err := Close(); err != nil {
		t.Fatalf("Close without a connection should be a no-op, got %v", err)
	}
}

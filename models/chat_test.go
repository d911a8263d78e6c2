package models

import "testing"

func TestMarkReadBy(t *testing.T) {
	msg := &Message{}

	if ids := msg.ReadByIDs(); len(ids) != 0 {
		t.Fatalf("fresh message should have no readers, got %v", ids)
	}

	if !msg.MarkReadBy(7) {
		t.Fatal("first mark should report a change")
	}
	if msg.MarkReadBy(7) {
		t.Fatal("marking the same reader twice should be a no-op")
	}
	if !msg.MarkReadBy(12) {
		t.Fatal("a second reader should be appended")
	}

	ids := msg.ReadByIDs()
	if len(ids) != 2 || ids[0] != 7 || ids[1] != 12 {
		t.Errorf("expected readers [7 12], got %v", ids)
	}
}

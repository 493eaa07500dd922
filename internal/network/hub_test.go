package network

import (
	"os"
	"testing"

	"dune-core/pkg/api"
	"dune-core/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestBroadcaster_RegisterSendUnregister(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("alice")

	if !b.HasSubscriber("alice") || b.SubscriberCount() != 1 {
		t.Fatal("alice not registered")
	}

	b.SendTo("alice", api.ServerResponse{Type: api.TypeResult, Tick: 3})
	b.SendTo("bob", api.ServerResponse{Type: api.TypeResult})

	msg := <-ch
	if msg.Tick != 3 {
		t.Errorf("got tick %d, want 3", msg.Tick)
	}

	b.Unregister("alice")
	if _, ok := <-ch; ok {
		t.Error("channel must be closed after Unregister")
	}
	if b.HasSubscriber("alice") {
		t.Error("alice still registered")
	}
}

func TestBroadcaster_ReRegisterClosesOldChannel(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("alice")
	fresh := b.Register("alice")

	if _, ok := <-old; ok {
		t.Error("old channel must be closed")
	}
	b.Broadcast(api.ServerResponse{Type: api.TypeChanges})
	if msg := <-fresh; msg.Type != api.TypeChanges {
		t.Errorf("fresh channel got %q", msg.Type)
	}
}

func TestBroadcaster_FullChannelDropsFrames(t *testing.T) {
	b := NewBroadcaster()
	b.Register("slow")

	for i := 0; i < 105; i++ {
		b.Broadcast(api.ServerResponse{Tick: uint32(i)})
	}
	if got := b.Dropped(); got != 5 {
		t.Errorf("Dropped() = %d, want 5", got)
	}
}

package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bbbang105/flowershop-admin-sub001/models"
)

func makeSubs(n int) []models.PushSubscription {
	subs := make([]models.PushSubscription, n)
	for i := range subs {
		subs[i] = models.PushSubscription{
			ID:       uint(i + 1),
			Endpoint: "https://push.example/" + string(rune('a'+i)),
			P256dh:   "p256dh-key",
			Auth:     "auth-key",
			IsActive: true,
		}
	}
	return subs
}

func TestFanOut_CountsAndFailureIsolation(t *testing.T) {
	subs := makeSubs(5)
	failing := map[uint]bool{2: true, 4: true}

	dispatcher := NewPushDispatcherWithSender(func(sub models.PushSubscription, payload string) error {
		if failing[sub.ID] {
			return errors.New("endpoint rejected")
		}
		return nil
	})

	result, failedIDs := dispatcher.fanOut(subs, "payload")

	if result.Sent != 3 {
		t.Fatalf("expected 3 sent, got %d", result.Sent)
	}
	if result.Failed != 2 {
		t.Fatalf("expected 2 failed, got %d", result.Failed)
	}

	got := map[uint]bool{}
	for _, id := range failedIDs {
		got[id] = true
	}
	if len(got) != 2 || !got[2] || !got[4] {
		t.Fatalf("expected failed IDs {2, 4}, got %v", failedIDs)
	}
}

func TestFanOut_AllSucceed(t *testing.T) {
	dispatcher := NewPushDispatcherWithSender(func(models.PushSubscription, string) error {
		return nil
	})

	result, failedIDs := dispatcher.fanOut(makeSubs(4), "payload")
	if result.Sent != 4 || result.Failed != 0 {
		t.Fatalf("expected 4/0, got %d/%d", result.Sent, result.Failed)
	}
	if len(failedIDs) != 0 {
		t.Fatalf("expected no failed IDs, got %v", failedIDs)
	}
}

func TestFanOut_SlowEndpointDoesNotBlockOthers(t *testing.T) {
	subs := makeSubs(6)

	var mu sync.Mutex
	started := 0
	allStarted := make(chan struct{})

	dispatcher := NewPushDispatcherWithSender(func(sub models.PushSubscription, payload string) error {
		mu.Lock()
		started++
		if started == len(subs) {
			close(allStarted)
		}
		mu.Unlock()

		// Every send blocks until all have started: passes only if the
		// fan-out issues them concurrently rather than one at a time.
		select {
		case <-allStarted:
			return nil
		case <-time.After(5 * time.Second):
			return errors.New("fan-out was serialized")
		}
	})

	result, _ := dispatcher.fanOut(subs, "payload")
	if result.Failed != 0 {
		t.Fatalf("sends were serialized: %d failed", result.Failed)
	}
	if result.Sent != len(subs) {
		t.Fatalf("expected %d sent, got %d", len(subs), result.Sent)
	}
}

func TestFanOut_PayloadDeliveredToEverySubscription(t *testing.T) {
	subs := makeSubs(3)

	var mu sync.Mutex
	seen := map[string]string{}
	dispatcher := NewPushDispatcherWithSender(func(sub models.PushSubscription, payload string) error {
		mu.Lock()
		seen[sub.Endpoint] = payload
		mu.Unlock()
		return nil
	})

	dispatcher.fanOut(subs, `{"title":"t"}`)

	if len(seen) != 3 {
		t.Fatalf("expected 3 endpoints to receive the payload, got %d", len(seen))
	}
	for endpoint, payload := range seen {
		if payload != `{"title":"t"}` {
			t.Fatalf("%s received wrong payload %q", endpoint, payload)
		}
	}
}

package services

import (
	"fmt"
	"log"
	"sync"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/bbbang105/flowershop-admin-sub001/config"
	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
)

// SendFunc delivers one payload to one subscription. Swappable in tests.
type SendFunc func(sub models.PushSubscription, payload string) error

// PushDispatcher fans a payload out to every active subscription. One
// endpoint's failure never blocks or aborts delivery to the others; failing
// endpoints are deactivated in a single batched update after the fan-out.
type PushDispatcher struct {
	send SendFunc
}

// DispatchResult aggregates a fan-out. Individual endpoint outcomes are not
// reported beyond the counts.
type DispatchResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

func NewPushDispatcher() *PushDispatcher {
	return &PushDispatcher{send: sendWebPush}
}

// NewPushDispatcherWithSender is used by tests to inject a fake transport.
func NewPushDispatcherWithSender(send SendFunc) *PushDispatcher {
	return &PushDispatcher{send: send}
}

// sendWebPush delivers one notification over the web push protocol using the
// VAPID keys from config. A non-2xx response counts as a transport rejection;
// 404/410 in particular mean the subscription is gone.
func sendWebPush(sub models.PushSubscription, payload string) error {
	resp, err := webpush.SendNotification([]byte(payload), &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      config.AppConfig.Push.Subscriber,
		VAPIDPublicKey:  config.AppConfig.Push.VAPIDPublicKey,
		VAPIDPrivateKey: config.AppConfig.Push.VAPIDPrivateKey,
		TTL:             3600,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}
	return nil
}

// SendToAllActive dispatches payload to every active subscription and returns
// aggregate counts. The error is non-nil only for storage failures; transport
// failures are folded into the Failed count.
func (d *PushDispatcher) SendToAllActive(payload string) (DispatchResult, error) {
	var subs []models.PushSubscription
	if err := database.DB.Where("is_active = ?", true).Find(&subs).Error; err != nil {
		log.Printf("❌ Failed to load push subscriptions: %v", err)
		return DispatchResult{}, err
	}

	if len(subs) == 0 {
		return DispatchResult{}, nil
	}

	result, failedIDs := d.fanOut(subs, payload)

	if len(failedIDs) > 0 {
		// One batched update, not one per failure
		if err := database.DB.Model(&models.PushSubscription{}).
			Where("id IN ?", failedIDs).
			Update("is_active", false).Error; err != nil {
			log.Printf("❌ Failed to deactivate %d push subscriptions: %v", len(failedIDs), err)
		} else {
			log.Printf("🔕 Deactivated %d rejected push subscriptions", len(failedIDs))
		}
	}

	return result, nil
}

// fanOut issues every send before waiting on any, so the per-endpoint I/O
// overlaps; it returns once the slowest send has finished or failed.
func (d *PushDispatcher) fanOut(subs []models.PushSubscription, payload string) (DispatchResult, []uint) {
	type outcome struct {
		id  uint
		err error
	}

	outcomes := make(chan outcome, len(subs))
	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(sub models.PushSubscription) {
			defer wg.Done()
			outcomes <- outcome{id: sub.ID, err: d.send(sub, payload)}
		}(sub)
	}
	wg.Wait()
	close(outcomes)

	var result DispatchResult
	var failedIDs []uint
	for o := range outcomes {
		if o.err != nil {
			result.Failed++
			failedIDs = append(failedIDs, o.id)
		} else {
			result.Sent++
		}
	}
	return result, failedIDs
}

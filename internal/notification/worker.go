package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"sciequip-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real implementation backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool fans booking notifications out to all push subscriptions. Jobs
// carry booking IDs; the worker loads the details itself.
type WorkerPool struct {
	size    int
	jobs    chan string
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case bookingID := <-wp.jobs:
			wp.notifyBooking(ctx, bookingID)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a booking for notification. Non-blocking: when the queue is
// full the notification is dropped rather than stalling the request.
func (wp *WorkerPool) Dispatch(bookingID string) {
	select {
	case wp.jobs <- bookingID:
	default:
		log.Printf("Notification queue full, dropping job for booking %s", bookingID)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}

// notifyBooking renders the message for a booking and pushes it to every
// stored subscription.
func (wp *WorkerPool) notifyBooking(ctx context.Context, bookingID string) {
	var subscriptions []model.PushSubscription
	if err := wp.db.WithContext(ctx).Find(&subscriptions).Error; err != nil {
		log.Printf("Error fetching subscriptions for booking %s: %v", bookingID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	var booking model.Booking
	if err := wp.db.WithContext(ctx).First(&booking, "id = ?", bookingID).Error; err != nil {
		log.Printf("Error fetching booking %s: %v", bookingID, err)
		return
	}

	equipmentLabel := booking.EquipmentID
	var equipment model.Equipment
	if err := wp.db.WithContext(ctx).Select("name").First(&equipment, "id = ?", booking.EquipmentID).Error; err == nil && equipment.Name != "" {
		equipmentLabel = equipment.Name
	}

	message := fmt.Sprintf("Yêu cầu mượn thiết bị mới: %s", equipmentLabel)
	log.Printf("Sending %d notifications for booking %s", len(subscriptions), bookingID)
	for _, sub := range subscriptions {
		wp.send(ctx, sub, []byte(message))
	}
}

func (wp *WorkerPool) send(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Expired subscriptions are pruned on the spot.
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}

// SetSender overrides the push sender, for tests.
func (wp *WorkerPool) SetSender(s Sender) {
	wp.sender = s
}

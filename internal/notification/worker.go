package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"airline-ops-backend/internal/access"
	"airline-ops-backend/internal/model"
)

// Kind identifies what a notice is about.
type Kind string

const (
	KindReservation        Kind = "reservation"
	KindMaintenanceRequest Kind = "maintenance_request"
)

// Notice is addressed to every subscription of Role, narrowed to RoleID when set.
type Notice struct {
	Kind    Kind
	Role    access.Role
	RoleID  string
	Subject string // flight instance or plane ID
	Detail  string // reservation status or repair code
}

// Notifier accepts notices for asynchronous delivery.
type Notifier interface {
	Notify(n Notice)
}

// Nop discards every notice. It is used when push keys are not configured.
type Nop struct{}

func (Nop) Notify(Notice) {}

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan Notice
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Notice, size*16),
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

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case n := <-wp.jobs:
			wp.deliver(ctx, n)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Notify queues a notice. It never blocks the caller; when the queue is full
// the notice is dropped.
func (wp *WorkerPool) Notify(n Notice) {
	select {
	case wp.jobs <- n:
	default:
		log.Printf("Notification queue full, dropping %s notice for %s %s", n.Kind, n.Role, n.RoleID)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Notice {
	return wp.jobs
}

type payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// deliver fetches the matching subscriptions and pushes the notice to each.
func (wp *WorkerPool) deliver(ctx context.Context, n Notice) {
	q := wp.db.WithContext(ctx).Where("role = ?", n.Role)
	if n.RoleID != "" {
		q = q.Where("role_id = ?", n.RoleID)
	}
	var subscriptions []model.PushSubscription
	if err := q.Find(&subscriptions).Error; err != nil {
		log.Printf("Error fetching subscriptions for %s %s: %v", n.Role, n.RoleID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	body, err := json.Marshal(wp.render(ctx, n))
	if err != nil {
		log.Printf("Error encoding %s notice: %v", n.Kind, err)
		return
	}

	log.Printf("Sending %d %s notifications", len(subscriptions), n.Kind)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, body)
	}
}

func (wp *WorkerPool) render(ctx context.Context, n Notice) payload {
	switch n.Kind {
	case KindReservation:
		if n.Detail == string(model.StatusReserved) {
			return payload{Title: "Booking confirmed", Body: fmt.Sprintf("Your seat on %s is confirmed.", n.Subject)}
		}
		return payload{Title: "Booking waitlisted", Body: fmt.Sprintf("Flight %s is full; you are on the waitlist.", n.Subject)}
	case KindMaintenanceRequest:
		return payload{Title: "New maintenance request", Body: fmt.Sprintf("%s requested for %s.", n.Detail, wp.planeLabel(ctx, n.Subject))}
	}
	return payload{Title: string(n.Kind), Body: n.Subject}
}

// planeLabel describes a plane by make and model, falling back to its ID.
func (wp *WorkerPool) planeLabel(ctx context.Context, planeID string) string {
	var plane model.Plane
	if err := wp.db.WithContext(ctx).
		Select("make", "model").
		Where("plane_id = ?", planeID).
		Take(&plane).Error; err != nil {
		log.Printf("Error fetching plane %s: %v", planeID, err)
		return planeID
	}
	return fmt.Sprintf("%s (%s %s)", planeID, plane.Make, plane.Model)
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
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

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}

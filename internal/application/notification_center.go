package application

import (
	"strings"
	"sync"
	"time"

	"github.com/bnema/walletdash/internal/domain"
	"github.com/bnema/walletdash/internal/ports"
	"github.com/google/uuid"
)

const (
	DefaultNotificationDuration = 5 * time.Second
	defaultErrorMessage         = "An error occurred. Please try again."
)

// NotifyOptions overrides notification defaults. Nil fields keep the default;
// a zero Duration keeps the notification until it is dismissed.
type NotifyOptions struct {
	Title       string
	Duration    *time.Duration
	Dismissible *bool
}

type notificationSubscriber struct {
	id int
	fn func([]domain.Notification)
}

// NotificationCenter is an ordered queue of transient user messages.
type NotificationCenter struct {
	clock ports.Clock

	mu          sync.Mutex
	items       []domain.Notification
	timers      map[uuid.UUID]ports.Timer
	subscribers []notificationSubscriber
	nextSubID   int
	closed      bool
}

var _ ports.Notifier = (*NotificationCenter)(nil)

func NewNotificationCenter(clock ports.Clock) *NotificationCenter {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &NotificationCenter{
		clock:  clock,
		timers: make(map[uuid.UUID]ports.Timer),
	}
}

// Add queues a message and returns its id. Empty messages are ignored and
// yield uuid.Nil.
func (c *NotificationCenter) Add(kind domain.NotificationKind, message string, opts NotifyOptions) uuid.UUID {
	if strings.TrimSpace(message) == "" {
		return uuid.Nil
	}

	notification := domain.Notification{
		ID:          uuid.New(),
		Kind:        kind,
		Title:       opts.Title,
		Message:     message,
		Duration:    DefaultNotificationDuration,
		Dismissible: true,
	}
	if opts.Duration != nil {
		notification.Duration = *opts.Duration
	}
	if opts.Dismissible != nil {
		notification.Dismissible = *opts.Dismissible
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return uuid.Nil
	}
	c.items = append(c.items, notification)
	if !notification.Persistent() {
		id := notification.ID
		c.timers[id] = c.clock.AfterFunc(notification.Duration, func() {
			c.Remove(id)
		})
	}
	items, subscribers := c.publishLocked()
	c.mu.Unlock()

	notifyNotificationSubscribers(subscribers, items)
	return notification.ID
}

// Remove dismisses a notification. It reports whether id was queued.
func (c *NotificationCenter) Remove(id uuid.UUID) bool {
	c.mu.Lock()
	index := -1
	for i, item := range c.items {
		if item.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		c.mu.Unlock()
		return false
	}

	c.items = append(c.items[:index:index], c.items[index+1:]...)
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	items, subscribers := c.publishLocked()
	c.mu.Unlock()

	notifyNotificationSubscribers(subscribers, items)
	return true
}

func (c *NotificationCenter) Clear() {
	c.mu.Lock()
	c.stopTimersLocked()
	c.items = nil
	items, subscribers := c.publishLocked()
	c.mu.Unlock()

	notifyNotificationSubscribers(subscribers, items)
}

func (c *NotificationCenter) List() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.Notification, len(c.items))
	copy(items, c.items)
	return items
}

// Subscribe calls fn with the full queue after every change.
func (c *NotificationCenter) Subscribe(fn func([]domain.Notification)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || fn == nil {
		return func() {}
	}

	c.nextSubID++
	id := c.nextSubID
	c.subscribers = append(c.subscribers, notificationSubscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, sub := range c.subscribers {
				if sub.id == id {
					c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// Close stops pending removal timers and drops subscribers. Queued
// notifications stay listed.
func (c *NotificationCenter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.stopTimersLocked()
	c.subscribers = nil
}

func (c *NotificationCenter) Success(message string) {
	c.Add(domain.NotificationSuccess, message, NotifyOptions{})
}

func (c *NotificationCenter) Error(message string) {
	if strings.TrimSpace(message) == "" {
		message = defaultErrorMessage
	}
	c.Add(domain.NotificationError, message, NotifyOptions{})
}

func (c *NotificationCenter) Warning(message string) {
	c.Add(domain.NotificationWarning, message, NotifyOptions{})
}

func (c *NotificationCenter) Info(message string) {
	c.Add(domain.NotificationInfo, message, NotifyOptions{})
}

func (c *NotificationCenter) stopTimersLocked() {
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
}

func (c *NotificationCenter) publishLocked() ([]domain.Notification, []notificationSubscriber) {
	items := make([]domain.Notification, len(c.items))
	copy(items, c.items)
	subscribers := make([]notificationSubscriber, len(c.subscribers))
	copy(subscribers, c.subscribers)
	return items, subscribers
}

func notifyNotificationSubscribers(subscribers []notificationSubscriber, items []domain.Notification) {
	for _, sub := range subscribers {
		sub.fn(items)
	}
}

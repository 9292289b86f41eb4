package application

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/bnema/walletdash/internal/adapters/cache/memory"
	"github.com/bnema/walletdash/internal/domain"
	"github.com/bnema/walletdash/internal/ports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Success(message string) {
	n.record("success: " + message)
}

func (n *recordingNotifier) Error(message string) {
	n.record("error: " + message)
}

func (n *recordingNotifier) record(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// manualClock fires timers only when Advance moves past their deadline.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	timer := &manualTimer{clock: c, at: c.now.Add(d), fn: f}
	c.timers = append(c.timers, timer)
	return timer
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	due := make([]*manualTimer, 0, len(c.timers))
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired && !timer.at.After(c.now) {
			timer.fired = true
			due = append(due, timer)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, timer := range due {
		timer.fn()
	}
}

func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired {
			count++
		}
	}
	return count
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func fullProfile(id string, role domain.Role) domain.UserProfile {
	return domain.UserProfile{
		ID:        id,
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Role:      role,
		CreatedAt: "2026-01-02T03:04:05Z",
		Wallet: domain.Wallet{
			TotalBalance:    domain.Balance{BTC: decimal.RequireFromString("1.5"), USD: decimal.RequireFromString("90000")},
			AssetBalance:    domain.Balance{BTC: decimal.RequireFromString("1"), USD: decimal.RequireFromString("60000")},
			ExchangeBalance: domain.Balance{BTC: decimal.RequireFromString("0.5"), USD: decimal.RequireFromString("30000")},
		},
	}
}

func cachedProfile(t *testing.T, cache *memory.Store) domain.UserProfile {
	t.Helper()

	raw, err := cache.Get(context.Background(), UserKey)
	require.NoError(t, err)

	var profile domain.UserProfile
	require.NoError(t, json.Unmarshal([]byte(raw), &profile))
	return profile
}

func seedToken(t *testing.T, cache *memory.Store, token string) {
	t.Helper()
	require.NoError(t, cache.Put(context.Background(), TokenKey, token))
}

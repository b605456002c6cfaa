package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chucky-1/trackers/internal/model"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification)
}

type NotifierFunc func(ctx context.Context, n model.Notification)

func (f NotifierFunc) Notify(ctx context.Context, n model.Notification) {
	f(ctx, n)
}

// LogNotifier writes notifications to the log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n model.Notification) {
	logrus.Infof("notification [%s]: %s", n.Level, n.Message)
}

// IDGenerator issues record ids from the millisecond clock. Ids are strictly
// increasing even when two records are created within one millisecond.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	return &IDGenerator{now: now}
}

func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

type options struct {
	now      func() time.Time
	notifier Notifier
}

type Option func(*options)

// WithClock replaces time.Now for ids, creation dates and the current month.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithNotifier(n Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		now:      time.Now,
		notifier: LogNotifier{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

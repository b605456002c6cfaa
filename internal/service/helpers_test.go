package service

import (
	"context"
	"time"

	"github.com/chucky-1/trackers/internal/model"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	t := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

type recordedNotifications struct {
	list []model.Notification
}

func (r *recordedNotifications) Notify(_ context.Context, n model.Notification) {
	r.list = append(r.list, n)
}

// Package memstore keeps users and announcements in process memory. It backs
// DB_CONN=memory:// and the unit tests.
package memstore

import "time"

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock 替换时间来源，用于测试排序等与时间相关的行为
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

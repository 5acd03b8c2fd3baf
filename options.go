package observerx

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Option configures subjects and observers via functional options.
// Options that do not apply to the value being built are ignored.
type Option func(*options)

type options struct {
	name   string
	logger logrus.FieldLogger
	notice io.Writer
}

func newOptions(opts []Option) *options {
	o := &options{
		name:   DefaultSubjectName,
		logger: logrus.StandardLogger(),
		notice: os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithName names a subject in logs and snapshots.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger a subject reports list changes and notify passes to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithNoticeWriter sets where an observer writes its update notice.
func WithNoticeWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.notice = w
		}
	}
}

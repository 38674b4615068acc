package httpapi

import (
	"context"

	"github.com/sirupsen/logrus"

	"mannerisms/internal/auth"
	"mannerisms/internal/quiz"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type API struct {
	auth    *auth.Service
	quiz    *quiz.Service
	ready   []Pinger
	metrics *metrics
	logger  logrus.FieldLogger
}

type Option func(*API)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(a *API) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithReadiness adds dependencies that /ready must be able to reach.
func WithReadiness(pingers ...Pinger) Option {
	return func(a *API) {
		a.ready = append(a.ready, pingers...)
	}
}

func NewAPI(authService *auth.Service, quizService *quiz.Service, opts ...Option) *API {
	a := &API{
		auth:    authService,
		quiz:    quizService,
		metrics: newMetrics(),
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

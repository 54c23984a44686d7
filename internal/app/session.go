package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/timeline/internal/adapters/dataset"
	"github.com/okian/timeline/pkg/logger"
)

// Session is one explored dataset: the data plus the controller drawing it.
// Switching datasets starts a new session.
type Session struct {
	ID         string
	Dataset    *dataset.Dataset
	Controller *Controller
	Started    time.Time
}

// NewSession builds a controller for ds and draws it once.
func NewSession(ctx context.Context, ds *dataset.Dataset, settings Settings, deps Deps, opts ...Option) (*Session, error) {
	if ds == nil || len(ds.Events) == 0 {
		return nil, ErrNoEvents
	}

	id := uuid.NewString()
	log := logger.Get().Named("session")
	loc := ds.Location
	opts = append([]Option{
		WithLogger(log.Named("controller")),
		WithTimeFormat(func(ts int64) string { return dataset.FormatTimeLabel(ts, loc) }),
	}, opts...)

	if deps.Colors == nil && ds.Palette != nil {
		deps.Colors = ds.Palette
	}

	c, err := New(settings, ds.Events, ds.Summary, deps, opts...)
	if err != nil {
		return nil, fmt.Errorf("create controller: %w", err)
	}

	s := &Session{
		ID:         id,
		Dataset:    ds,
		Controller: c,
		Started:    time.Now(),
	}

	ctx = s.Context(ctx)
	c.Draw(ctx)

	counts := ds.Summary.Counts()
	log.Info(ctx, "session started",
		logger.String("scrobbles", ds.Source.Scrobbles),
		logger.String("year", ds.Source.Year),
		logger.Int("events", counts.Scrobbles),
		logger.Int("artists", counts.Artists),
		logger.Float64("per_day", counts.PerDay),
	)

	return s, nil
}

// Context tags the records logged with the returned context with the
// session id.
func (s *Session) Context(parent context.Context) context.Context {
	return logger.ContextWith(parent, logger.String("session_id", s.ID))
}

package dashboard

import (
	"context"
	"time"

	"log/slog"
)

func (s *Service) worker(ctx context.Context) {
	defer close(s.doneCh)

	s.refreshWindow(ctx)

	ticker := time.NewTicker(s.c.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refreshWindow(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) refreshWindow(ctx context.Context) {
	now := time.Now()
	if _, err := s.Refresh(ctx, now.Add(-s.c.DefaultWindow), now); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Default().ErrorContext(ctx, "can't refresh dashboard summary",
			slog.String("err", err.Error()),
		)
	}
}

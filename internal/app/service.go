package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/RitAreaSciencePark/ExO/internal/domain"
	"github.com/RitAreaSciencePark/ExO/internal/metrics"
	"github.com/RitAreaSciencePark/ExO/internal/sampler"
)

// Archive triggers, used as the metric label.
const (
	triggerExhaustion = "exhaustion"
	triggerForced     = "forced"
)

// Service is the application layer, the only component that references
// multiple domain components. It owns the session state: the sampler's used
// set and the archive transition are mutated behind a single mutex, so
// concurrent requests cannot race the exhaustion check against the reset.
type Service struct {
	mu      sync.Mutex
	assets  domain.AssetStore
	log     domain.ChoiceLog
	sampler *sampler.PairSampler
}

// NewService creates the application layer service.
func NewService(assets domain.AssetStore, log domain.ChoiceLog) *Service {
	return &Service{
		assets:  assets,
		log:     log,
		sampler: sampler.New(),
	}
}

// NextComparison re-enumerates the pool and draws the next unseen pair. When
// every pair has been shown (or fewer than two images exist), it archives the
// choice log, clears the used set, and reports the session finished. The
// finished state is transient: the very next call starts a fresh session over
// whatever the pool holds then.
func (s *Service) NextComparison(ctx context.Context) (domain.Comparison, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, err := s.assets.List()
	if err != nil {
		return domain.Comparison{}, fmt.Errorf("enumerate pool: %w", err)
	}
	metrics.PoolSize.Set(float64(len(pool)))

	if pair, ok := s.sampler.Next(pool); ok {
		metrics.ComparisonsServedTotal.Inc()
		return domain.Comparison{Pair: pair}, nil
	}

	archive, err := s.finishLocked(ctx, triggerExhaustion)
	if err != nil {
		return domain.Comparison{}, err
	}
	return domain.Comparison{Finished: true, ArchivePath: archive}, nil
}

// RecordChoice appends one rating decision to the active log.
//
// The submitted identifiers are not checked against the pair actually issued
// by the sampler; any two values are accepted. Known gap, kept deliberately:
// fixing it would mean issuing pair tokens and verifying them here.
func (s *Service) RecordChoice(ctx context.Context, selected, other string) error {
	if err := s.log.Append(ctx, domain.ChoiceRecord{Selected: selected, Other: other}); err != nil {
		return fmt.Errorf("record choice: %w", err)
	}
	metrics.ChoicesRecordedTotal.Inc()
	return nil
}

// ForceFinish archives and resets the session without waiting for exhaustion.
func (s *Service) ForceFinish(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishLocked(ctx, triggerForced)
}

// finishLocked performs the archive+reset+clear transition. Callers hold s.mu.
func (s *Service) finishLocked(ctx context.Context, trigger string) (string, error) {
	archive, err := s.log.ArchiveAndReset(ctx)
	if err != nil {
		return "", fmt.Errorf("archive session: %w", err)
	}
	s.sampler.Reset()

	metrics.ArchivesCreatedTotal.WithLabelValues(trigger).Inc()
	slog.InfoContext(ctx, "Session archived", "archive", archive, "trigger", trigger)
	return archive, nil
}

// LatestArchive returns the newest archive path.
func (s *Service) LatestArchive() (string, error) {
	return s.log.LatestArchive()
}

// OpenAsset opens one pool image for reading.
func (s *Service) OpenAsset(name string) (io.ReadCloser, error) {
	return s.assets.Open(name)
}

// StoreAsset adds one image to the pool.
func (s *Service) StoreAsset(name string, r io.Reader) error {
	if err := s.assets.Store(name, r); err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return err
	}
	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	return nil
}

// DeleteAllAssets empties the image pool. Already-issued pairs stay in the
// used set; the count-based exhaustion check makes the next comparison
// request finish and reset the session.
func (s *Service) DeleteAllAssets(ctx context.Context) error {
	if err := s.assets.DeleteAll(); err != nil {
		return fmt.Errorf("delete pool: %w", err)
	}
	slog.InfoContext(ctx, "Image pool emptied")
	return nil
}

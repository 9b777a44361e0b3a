// Package reporting composes the normalizer and the analysis engine into
// the service the CLI and the web API share. It keeps the latest report of
// the process in memory; historical persistence is the caller's concern.
package reporting

import (
	"context"
	"sync"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
	"github.com/Trujillofa/depotru-database-sub000/pkg/normalize"
	"github.com/Trujillofa/depotru-database-sub000/pkg/services/analysis"
	"github.com/rs/zerolog"
)

type Service struct {
	normalizer *normalize.Normalizer
	engine     *analysis.Engine
	cfg        domain.ThresholdConfig

	mu     sync.RWMutex
	latest *domain.Report
}

func NewService(cfg domain.ThresholdConfig, excluded domain.ExclusionSet) *Service {
	return &Service{
		normalizer: normalize.New(excluded),
		engine:     analysis.NewEngine(),
		cfg:        cfg,
	}
}

// AnalyzeRecords normalizes a raw extract and runs the full engine over it.
func (s *Service) AnalyzeRecords(ctx context.Context, records []domain.RawRecord) (domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	lines := s.normalizer.NormalizeAll(records)
	if dropped := len(records) - len(lines); dropped > 0 {
		logger.Info().Int("dropped", dropped).Msg("excluded internal document lines")
	}

	report, err := s.engine.AnalyzeAll(ctx, lines, s.cfg)
	if err != nil {
		return domain.Report{}, err
	}

	s.mu.Lock()
	s.latest = &report
	s.mu.Unlock()
	return report, nil
}

// Latest returns the most recent report computed by this process.
func (s *Service) Latest(ctx context.Context) (domain.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return domain.Report{}, false
	}
	return *s.latest, true
}

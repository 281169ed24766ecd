package citymigrate

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"jpchat/internal/locality"
	"jpchat/internal/model"
	"jpchat/internal/repository"
)

const defaultWorkers = 5

// Store is the slice of the lead repository the migration needs.
type Store interface {
	ListCities(ctx context.Context) ([]repository.StoredCity, error)
	UpdateCity(ctx context.Context, sessionID, city string) error
	Get(ctx context.Context, sessionID string) (model.Lead, error)
}

type Stats struct {
	Analyzed     int
	Corrected    int
	PalhocaFixed int
	Unchanged    int
	Errors       int
}

// Decide returns the city that should be stored for current and whether it differs.
//   - resolved: the official name
//   - unresolved, non-empty: the trimmed text, capped
//   - empty: locality.OtherCities
func Decide(n *locality.Normalizer, current string) (string, bool) {
	next := n.Migrated(current)
	return next, next != current
}

type Migrator struct {
	Store      Store
	Normalizer *locality.Normalizer
	Workers    int
	// Apply writes the corrections; otherwise the run only reports them.
	Apply  bool
	Logger *zap.Logger
}

func (m *Migrator) Run(ctx context.Context) (Stats, error) {
	log := m.Logger
	if log == nil {
		log = zap.NewNop()
	}
	leads, err := m.Store.ListCities(ctx)
	if err != nil {
		return Stats{}, err
	}
	log.Info("[Migração] Leads carregados", zap.Int("total", len(leads)), zap.Bool("apply", m.Apply))

	workers := m.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	var (
		stats Stats
		mu    sync.Mutex
		wg    sync.WaitGroup
	)
	jobs := make(chan repository.StoredCity)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for l := range jobs {
				res := m.process(ctx, log, l)
				mu.Lock()
				stats.add(res)
				mu.Unlock()
			}
		}()
	}

	for _, l := range leads {
		jobs <- l
	}
	close(jobs)
	wg.Wait()

	return stats, ctx.Err()
}

type result struct {
	changed bool
	palhoca bool
	failed  bool
}

func (s *Stats) add(r result) {
	s.Analyzed++
	switch {
	case r.failed:
		s.Errors++
	case r.changed:
		s.Corrected++
		if r.palhoca {
			s.PalhocaFixed++
		}
	default:
		s.Unchanged++
	}
}

func (m *Migrator) process(ctx context.Context, log *zap.Logger, l repository.StoredCity) result {
	next, changed := Decide(m.Normalizer, l.City)
	if !changed {
		return result{}
	}
	res := result{changed: true, palhoca: next == "Palhoça"}

	log.Info("[Migração] Cidade corrigida",
		zap.String("session_id", l.SessionID),
		zap.String("antes", l.City),
		zap.String("depois", next),
	)
	if !m.Apply {
		return res
	}
	if err := ctx.Err(); err != nil {
		return result{failed: true}
	}
	if err := m.Store.UpdateCity(ctx, l.SessionID, next); err != nil {
		log.Error("[Migração] Erro ao atualizar lead", zap.String("session_id", l.SessionID), zap.Error(err))
		return result{failed: true}
	}

	// read back so a write that matched no row is reported as an error
	stored, err := m.Store.Get(ctx, l.SessionID)
	if err != nil || stored.City != next {
		log.Error("[Migração] Cidade não confirmada após atualização",
			zap.String("session_id", l.SessionID),
			zap.String("esperado", next),
			zap.String("gravado", stored.City),
			zap.Error(err),
		)
		return result{failed: true}
	}
	return res
}

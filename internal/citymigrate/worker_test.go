package citymigrate

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"jpchat/internal/locality"
	"jpchat/internal/model"
	"jpchat/internal/repository"
)

type memStore struct {
	mu      sync.Mutex
	leads   []repository.StoredCity
	updates map[string]string
	failOn  string
	// lost accepts the update for this id without storing it
	lost string
}

func (s *memStore) ListCities(context.Context) ([]repository.StoredCity, error) {
	return s.leads, nil
}

func (s *memStore) UpdateCity(_ context.Context, id, city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == s.failOn {
		return errors.New("write failed")
	}
	if s.updates == nil {
		s.updates = map[string]string{}
	}
	if id != s.lost {
		s.updates[id] = city
	}
	return nil
}

func (s *memStore) Get(_ context.Context, id string) (model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if city, ok := s.updates[id]; ok {
		return model.Lead{City: city}, nil
	}
	for _, l := range s.leads {
		if l.SessionID == id {
			return model.Lead{City: l.City}, nil
		}
	}
	return model.Lead{}, sql.ErrNoRows
}

func TestDecide(t *testing.T) {
	n := locality.Default()
	tests := []struct {
		current string
		want    string
		changed bool
	}{
		{"palhoca", "Palhoça", true},
		{"Palhoça", "Palhoça", false},
		{"centro de palhoca", "Palhoça", true},
		{"floripa", "Florianópolis", true},
		{"Porto Alegre", "Porto Alegre", false},
		{"  Porto Alegre ", "Porto Alegre", true},
		{"", locality.OtherCities, true},
		{locality.OtherCities, locality.OtherCities, false},
		{strings.Repeat("z", 150), strings.Repeat("z", 100), true},
	}
	for _, tt := range tests {
		t.Run(tt.current, func(t *testing.T) {
			got, changed := Decide(n, tt.current)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func leadsFixture() []repository.StoredCity {
	return []repository.StoredCity{
		{SessionID: "1", City: "palhoca"},
		{SessionID: "2", City: "Palhoça"},
		{SessionID: "3", City: "palhoça-sc"},
		{SessionID: "4", City: "joinvile"},
		{SessionID: "5", City: ""},
		{SessionID: "6", City: "Curitiba"},
	}
}

func TestMigrator_DryRun(t *testing.T) {
	store := &memStore{leads: leadsFixture()}
	m := &Migrator{Store: store, Normalizer: locality.Default(), Workers: 3, Logger: zaptest.NewLogger(t)}

	stats, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Analyzed: 6, Corrected: 4, PalhocaFixed: 2, Unchanged: 2}, stats)
	assert.Empty(t, store.updates)
}

func TestMigrator_Apply(t *testing.T) {
	store := &memStore{leads: leadsFixture(), failOn: "5"}
	m := &Migrator{Store: store, Normalizer: locality.Default(), Apply: true}

	stats, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Analyzed: 6, Corrected: 3, PalhocaFixed: 2, Unchanged: 2, Errors: 1}, stats)
	assert.Equal(t, map[string]string{
		"1": "Palhoça",
		"3": "Palhoça",
		"4": "Joinville",
	}, store.updates)
}

func TestMigrator_ApplyReportsUnconfirmedWrites(t *testing.T) {
	store := &memStore{leads: leadsFixture(), lost: "4"}
	m := &Migrator{Store: store, Normalizer: locality.Default(), Apply: true, Logger: zaptest.NewLogger(t)}

	stats, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Analyzed: 6, Corrected: 3, PalhocaFixed: 2, Unchanged: 2, Errors: 1}, stats)
	assert.NotContains(t, store.updates, "4")
}

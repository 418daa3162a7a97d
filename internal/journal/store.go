// Package journal provides trade record storage for the journal backend.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sherintbrody/journal-backend/pkg/types"
	"go.uber.org/zap"
)

const tradesFile = "trades.json"

// ChangeListener is notified after every successful mutation.
type ChangeListener func(trade types.TradeRecord)

// Store keeps the trade journal in memory, mirrored to a JSON file.
// All records pass validation on the way in, so consumers downstream
// never see a malformed trade.
type Store struct {
	mu        sync.RWMutex
	logger    *zap.Logger
	dataDir   string
	trades    map[string]types.TradeRecord
	listeners []ChangeListener
}

// NewStore creates a trade store rooted at dataDir, loading any
// existing journal file.
func NewStore(logger *zap.Logger, dataDir string) (*Store, error) {
	store := &Store{
		logger:  logger,
		dataDir: dataDir,
		trades:  make(map[string]types.TradeRecord),
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

// OnChange registers a listener invoked after add, update and delete.
// Listeners must be registered before the store is shared.
func (s *Store) OnChange(fn ChangeListener) {
	s.listeners = append(s.listeners, fn)
}

// List returns all trades sorted ascending by timestamp.
func (s *Store) List() []types.TradeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.TradeRecord, 0, len(s.trades))
	for _, t := range s.trades {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// Get returns a trade by ID.
func (s *Store) Get(id string) (types.TradeRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trades[id]
	return t, ok
}

// Count returns the number of stored trades.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trades)
}

// Add validates and stores a new trade, assigning an ID when the
// record has none. Returns the stored record.
func (s *Store) Add(trade types.TradeRecord) (types.TradeRecord, error) {
	if trade.ID == "" {
		trade.ID = uuid.New().String()
	}
	if err := trade.Validate(); err != nil {
		return types.TradeRecord{}, fmt.Errorf("invalid trade: %w", err)
	}

	s.mu.Lock()
	if _, exists := s.trades[trade.ID]; exists {
		s.mu.Unlock()
		return types.TradeRecord{}, fmt.Errorf("trade %s already exists", trade.ID)
	}
	s.trades[trade.ID] = trade
	err := s.persistLocked()
	s.mu.Unlock()

	if err != nil {
		return types.TradeRecord{}, err
	}

	s.logger.Debug("trade added", zap.String("id", trade.ID), zap.String("instrument", trade.Instrument))
	s.notify(trade)
	return trade, nil
}

// Update validates and replaces an existing trade.
func (s *Store) Update(trade types.TradeRecord) error {
	if err := trade.Validate(); err != nil {
		return fmt.Errorf("invalid trade: %w", err)
	}

	s.mu.Lock()
	if _, exists := s.trades[trade.ID]; !exists {
		s.mu.Unlock()
		return fmt.Errorf("trade %s not found", trade.ID)
	}
	s.trades[trade.ID] = trade
	err := s.persistLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.logger.Debug("trade updated", zap.String("id", trade.ID))
	s.notify(trade)
	return nil
}

// Delete removes a trade by ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	trade, exists := s.trades[id]
	if !exists {
		s.mu.Unlock()
		return fmt.Errorf("trade %s not found", id)
	}
	delete(s.trades, id)
	err := s.persistLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.logger.Debug("trade deleted", zap.String("id", id))
	s.notify(trade)
	return nil
}

func (s *Store) notify(trade types.TradeRecord) {
	for _, fn := range s.listeners {
		fn(trade)
	}
}

// load reads the journal file into memory. A missing file is an
// empty journal, not an error. Records failing validation are
// dropped with a warning instead of poisoning the analytics.
func (s *Store) load() error {
	filename := filepath.Join(s.dataDir, tradesFile)

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read journal file: %w", err)
	}

	var trades []types.TradeRecord
	if err := json.Unmarshal(data, &trades); err != nil {
		return fmt.Errorf("failed to parse journal file: %w", err)
	}

	for _, t := range trades {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if err := t.Validate(); err != nil {
			s.logger.Warn("dropping malformed trade",
				zap.String("id", t.ID),
				zap.Error(err),
			)
			continue
		}
		s.trades[t.ID] = t
	}

	s.logger.Info("journal loaded",
		zap.String("file", filename),
		zap.Int("trades", len(s.trades)),
	)
	return nil
}

// persistLocked writes the journal file. Callers hold s.mu.
func (s *Store) persistLocked() error {
	trades := make([]types.TradeRecord, 0, len(s.trades))
	for _, t := range s.trades {
		trades = append(trades, t)
	}
	sort.Slice(trades, func(i, j int) bool {
		return trades[i].Timestamp.Before(trades[j].Timestamp)
	})

	data, err := json.MarshalIndent(trades, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}

	filename := filepath.Join(s.dataDir, tradesFile)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write journal file: %w", err)
	}
	return nil
}

// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package activity

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const backendBadger = "badger"

// Key prefixes. Every event is written twice in one transaction: once under
// the time-ordered global key and once under the per-user index key. The
// append sequence keeps events with equal timestamps in append order.
//
//	evt:<ts><seq><id>
//	usr:<user_id><ts><seq><id>
var (
	prefixEvent = []byte("evt:")
	prefixUser  = []byte("usr:")
	sequenceKey = []byte("seq:append")
)

// sequenceBandwidth is how many sequence numbers are leased per write.
const sequenceBandwidth = 1000

// BadgerConfig holds options for the BadgerDB backend.
type BadgerConfig struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is set.
	Path string

	// InMemory keeps the whole database in memory (tests).
	InMemory bool

	// SyncWrites forces fsync after every append.
	SyncWrites bool

	// Compression enables Snappy compression of values.
	Compression bool
}

// BadgerStore is a durable Store backed by BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// OpenBadger opens (or creates) a BadgerDB-backed store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenBadger(cfg BadgerConfig, logger zerolog.Logger) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger path is required")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	if cfg.Compression {
		opts.Compression = options.Snappy
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	seq, err := db.GetSequence(sequenceKey, sequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("lease append sequence: %w", err)
	}

	logger = logger.With().Str("component", "activity").Str("backend", backendBadger).Logger()
	logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("activity store opened")

	return &BadgerStore{db: db, seq: seq, logger: logger}, nil
}

// Append writes the event and its user index entry atomically.
func (s *BadgerStore) Append(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := event.Validate(); err != nil {
		recordAppendFailure(backendBadger)
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		recordAppendFailure(backendBadger)
		return ErrStoreClosed
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.Timestamp = event.Timestamp.UTC()

	data, err := json.Marshal(&event)
	if err != nil {
		recordAppendFailure(backendBadger)
		return fmt.Errorf("marshal event: %w", err)
	}

	seq, err := s.seq.Next()
	if err != nil {
		recordAppendFailure(backendBadger)
		return fmt.Errorf("next append sequence: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(eventKey(&event, seq), data); err != nil {
			return err
		}
		return txn.Set(userKey(&event, seq), data)
	})
	if err != nil {
		recordAppendFailure(backendBadger)
		return fmt.Errorf("write to BadgerDB: %w", err)
	}

	recordAppend(backendBadger, event.Type)
	return nil
}

// Scan iterates matching events inside a read-only transaction.
func (s *BadgerStore) Scan(ctx context.Context, filter Filter, fn func(Event) error) error {
	start := time.Now()
	defer func() {
		recordScanLatency(backendBadger, time.Since(start).Seconds())
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}

	prefix := prefixEvent
	if filter.UserID > 0 {
		prefix = userPrefix(filter.UserID)
	}

	seek := prefix
	if !filter.Since.IsZero() {
		seek = appendTime(bytes.Clone(prefix), filter.Since)
	}
	var until []byte
	if !filter.Until.IsZero() {
		until = appendTime(nil, filter.Until)
	}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			key := it.Item().Key()
			if until != nil && len(key) >= len(prefix)+8 &&
				bytes.Compare(key[len(prefix):len(prefix)+8], until) >= 0 {
				return nil
			}

			var event Event
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &event)
			}); err != nil {
				return fmt.Errorf("decode event %q: %w", key, err)
			}

			if !filter.Match(&event) {
				continue
			}
			if err := fn(event); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.closed = true

	if err := s.seq.Release(); err != nil {
		s.logger.Warn().Err(err).Msg("release append sequence")
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	s.logger.Info().Msg("activity store closed")
	return nil
}

// appendTime encodes t as 8 big-endian bytes that sort in time order,
// including instants before the Unix epoch.
func appendTime(dst []byte, t time.Time) []byte {
	return binary.BigEndian.AppendUint64(dst, uint64(t.UnixNano())^(1<<63))
}

func userPrefix(userID int) []byte {
	p := bytes.Clone(prefixUser)
	return binary.BigEndian.AppendUint64(p, uint64(userID))
}

func eventKey(e *Event, seq uint64) []byte {
	k := appendTime(bytes.Clone(prefixEvent), e.Timestamp)
	k = binary.BigEndian.AppendUint64(k, seq)
	return append(k, e.ID...)
}

func userKey(e *Event, seq uint64) []byte {
	k := appendTime(userPrefix(e.UserID), e.Timestamp)
	k = binary.BigEndian.AppendUint64(k, seq)
	return append(k, e.ID...)
}

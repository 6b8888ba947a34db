package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/skyway-booking/internal/model"
)

// MemorySessionStore keeps seat sessions in process memory. Updates to a
// session are serialised by a single mutex; expired sessions are treated
// as missing and removed when touched.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]model.SeatSession
	now      func() time.Time
}

// NewMemorySessionStore returns an empty store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]model.SeatSession),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new session, replacing any session with the same ID.
func (s *MemorySessionStore) Create(ctx context.Context, sess model.SeatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

// Get returns the session or ErrSessionNotFound.
func (s *MemorySessionStore) Get(ctx context.Context, id string) (model.SeatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(id)
}

// Update applies fn to the stored session under the store lock and saves
// the result. When fn returns an error nothing is saved.
func (s *MemorySessionStore) Update(ctx context.Context, id string, fn func(*model.SeatSession) error) (model.SeatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id)
	if err != nil {
		return model.SeatSession{}, err
	}
	if err := fn(&sess); err != nil {
		return model.SeatSession{}, err
	}
	s.sessions[id] = sess
	return sess, nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// lookup must be called with mu held.
func (s *MemorySessionStore) lookup(id string) (model.SeatSession, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return model.SeatSession{}, ErrSessionNotFound
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, id)
		return model.SeatSession{}, ErrSessionNotFound
	}
	return sess, nil
}

// maxUpdateRetries bounds optimistic retries in RedisSessionStore.Update.
const maxUpdateRetries = 5

// RedisSessionStore keeps seat sessions as JSON strings in Redis under
// "<prefix>:<id>". Keys expire with the session. Updates use WATCH/MULTI so
// concurrent toggles on the same session never overwrite each other.
type RedisSessionStore struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisSessionStore returns a store using rdb. An empty prefix defaults
// to "seatsession".
func NewRedisSessionStore(rdb *redis.Client, prefix string) *RedisSessionStore {
	if prefix == "" {
		prefix = "seatsession"
	}
	return &RedisSessionStore{rdb: rdb, prefix: prefix, now: func() time.Time { return time.Now().UTC() }}
}

func (s *RedisSessionStore) key(id string) string { return s.prefix + ":" + id }

// ttl returns how long the key should live; zero means no expiry.
func (s *RedisSessionStore) ttl(sess model.SeatSession) time.Duration {
	if sess.ExpiresAt.IsZero() {
		return 0
	}
	if d := sess.ExpiresAt.Sub(s.now()); d > 0 {
		return d
	}
	return time.Millisecond
}

// Create stores the session with a TTL matching its expiry.
func (s *RedisSessionStore) Create(ctx context.Context, sess model.SeatSession) error {
	payload, err := encodeSession(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(sess.ID), payload, s.ttl(sess)).Err()
}

// Get returns the session or ErrSessionNotFound.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (model.SeatSession, error) {
	bs, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.SeatSession{}, ErrSessionNotFound
	}
	if err != nil {
		return model.SeatSession{}, err
	}
	return decodeSession(bs)
}

// Update reads, modifies and writes the session inside a WATCH transaction,
// retrying when another writer got there first.
func (s *RedisSessionStore) Update(ctx context.Context, id string, fn func(*model.SeatSession) error) (model.SeatSession, error) {
	key := s.key(id)
	var out model.SeatSession
	txf := func(tx *redis.Tx) error {
		bs, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		sess, err := decodeSession(bs)
		if err != nil {
			return err
		}
		if err := fn(&sess); err != nil {
			return err
		}
		payload, err := encodeSession(sess)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, payload, s.ttl(sess))
			return nil
		})
		if err == nil {
			out = sess
		}
		return err
	}
	for i := 0; i < maxUpdateRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return model.SeatSession{}, err
		}
		return out, nil
	}
	return model.SeatSession{}, ErrSessionConflict
}

// Delete removes the session key.
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}

func encodeSession(sess model.SeatSession) ([]byte, error) { return json.Marshal(sess) }

func decodeSession(bs []byte) (model.SeatSession, error) {
	var sess model.SeatSession
	err := json.Unmarshal(bs, &sess)
	return sess, err
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shri-jewellery/storefront/internal/domain"
)

// SessionMutator edits a session in place. Returning an error discards the edit.
type SessionMutator func(*domain.Session) error

// SessionRepository owns per-browser session state.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Update applies fn atomically to the session, creating it when absent.
	Update(ctx context.Context, id string, fn SessionMutator) (*domain.Session, error)
}

type memorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

// NewMemorySessionRepository builds a process-local session store.
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[string]*domain.Session)}
}

func (r *memorySessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(sess), nil
}

func (r *memorySessionRepository) Update(_ context.Context, id string, fn SessionMutator) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	working := &domain.Session{ID: id}
	if existing, ok := r.sessions[id]; ok {
		working = cloneSession(existing)
	}
	if err := fn(working); err != nil {
		return nil, err
	}
	r.sessions[id] = working
	return cloneSession(working), nil
}

func cloneSession(s *domain.Session) *domain.Session {
	cp := *s
	if s.User != nil {
		u := *s.User
		cp.User = &u
	}
	return &cp
}

const (
	sessionKeyPrefix = "storefront:session:"
	maxWatchRetries  = 5
)

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type redisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository stores sessions as JSON documents with a sliding TTL.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{client: client, ttl: ttl}
}

func (r *redisSessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	return loadSession(ctx, r.client, id)
}

func (r *redisSessionRepository) Update(ctx context.Context, id string, fn SessionMutator) (*domain.Session, error) {
	key := sessionKeyPrefix + id
	var result *domain.Session

	txf := func(tx *redis.Tx) error {
		sess, err := loadSession(ctx, tx, id)
		if errors.Is(err, ErrNotFound) {
			sess = &domain.Session{ID: id}
		} else if err != nil {
			return err
		}
		if err := fn(sess); err != nil {
			return err
		}
		data, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err == nil {
			result = sess
		}
		return err
	}

	for attempt := 0; attempt < maxWatchRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("session %s: %w", id, ErrContention)
}

func loadSession(ctx context.Context, cmd stringGetter, id string) (*domain.Session, error) {
	raw, err := cmd.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	sess.ID = id
	return &sess, nil
}

package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"calbot/models"
)

const sessionKeyPrefix = "chatSession:"

// ErrSessionNotFound is returned when a session id is unknown or its TTL
// has elapsed.
var ErrSessionNotFound = errors.New("chat session not found or expired")

// SessionStore keeps conversational state between turns, keyed by session
// id. Each session belongs to exactly one conversation.
type SessionStore interface {
	Save(ctx context.Context, session models.ChatSession) error
	Get(ctx context.Context, sessionID string) (*models.ChatSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore stores sessions as JSON blobs with a sliding TTL.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) Save(ctx context.Context, session models.ChatSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal chat session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKeyPrefix+session.SessionID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store chat session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	data, err := s.Client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch chat session: %w", err)
	}
	var session models.ChatSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse chat session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// MemorySessionStore is the in-process store used for tests and
// single-instance deployments without Redis.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	session   models.ChatSession
	expiresAt time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemorySessionStore) Save(_ context.Context, session models.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = memoryEntry{
		session:   session,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*models.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.ttl > 0 && time.Now().After(entry.expiresAt) {
		delete(s.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	session := entry.session
	return &session, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Sweep drops expired sessions. Run periodically; Get already treats
// expired entries as missing, this just reclaims memory.
func (s *MemorySessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ttl <= 0 {
		return 0
	}
	now := time.Now()
	removed := 0
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

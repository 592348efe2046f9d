package training

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// SessionStore keeps training sessions keyed by operator identifier.
// Implementations may expire idle sessions; callers must tolerate a
// fresh session appearing where an expired one used to be.
type SessionStore interface {
	GetOrCreate(operator string) *Session
	Save(session *Session)
	Clear(operator string)
	Len() int
	// Reset drops every session and reports how many were dropped.
	Reset() int
}

const (
	DefaultSessionTTL  = time.Hour
	DefaultSweepPeriod = 10 * time.Minute
)

// CacheSessionStore is a SessionStore on an expiring in-memory cache.
type CacheSessionStore struct {
	cache *gocache.Cache
}

func NewCacheSessionStore(ttl, sweep time.Duration) *CacheSessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if sweep <= 0 {
		sweep = DefaultSweepPeriod
	}
	return &CacheSessionStore{cache: gocache.New(ttl, sweep)}
}

var _ SessionStore = &CacheSessionStore{}

func (s *CacheSessionStore) GetOrCreate(operator string) *Session {
	if v, ok := s.cache.Get(operator); ok {
		if session, ok := v.(*Session); ok {
			return session
		}
	}
	session := NewSession(operator)
	s.cache.Set(operator, session, gocache.DefaultExpiration)
	return session
}

func (s *CacheSessionStore) Save(session *Session) {
	s.cache.Set(session.Operator, session, gocache.DefaultExpiration)
}

func (s *CacheSessionStore) Clear(operator string) {
	s.cache.Delete(operator)
}

func (s *CacheSessionStore) Len() int {
	return s.cache.ItemCount()
}

func (s *CacheSessionStore) Reset() int {
	count := s.cache.ItemCount()
	s.cache.Flush()
	return count
}

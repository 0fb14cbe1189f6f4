// Package session mantém o estado de cada navegador: o relatório carregado e os filtros atuais.
// Sessões nunca compartilham tabelas entre si.
package session

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/pkg/utils"
)

// Session é uma cópia do estado da sessão no momento da leitura
type Session struct {
	ID        string
	Table     *domain.Table
	Filter    domain.FilterSpec
	CreatedAt time.Time
	LastSeen  time.Time
}

//go:generate mockgen -source=session.go -destination=mocks/store_mock.go -package=mocks

// Store define as operações sobre as sessões ativas
type Store interface {
	// Create abre uma nova sessão para a tabela carregada
	Create(table *domain.Table) (Session, error)
	// Get retorna a sessão e renova seu prazo de expiração
	Get(id string) (Session, bool)
	// Replace troca a tabela de uma sessão existente e limpa os filtros
	Replace(id string, table *domain.Table) (Session, bool)
	// SetFilter guarda a seleção atual do usuário
	SetFilter(id string, filter domain.FilterSpec) bool
	Delete(id string)
	// EvictExpired remove as sessões inativas há mais tempo que o TTL
	EvictExpired(now time.Time) int
	Len() int
}

type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock troca a fonte de tempo usada para expiração
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Create(table *domain.Table) (Session, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return Session{}, errors.Wrap(err, "session: failed to generate id")
	}

	now := s.now()
	sess := &Session{
		ID:        id,
		Table:     table,
		CreatedAt: now,
		LastSeen:  now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = sess
	return *sess, nil
}

func (s *MemoryStore) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess, s.now()) {
		return Session{}, false
	}

	sess.LastSeen = s.now()
	return *sess, true
}

func (s *MemoryStore) Replace(id string, table *domain.Table) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess, s.now()) {
		return Session{}, false
	}

	sess.Table = table
	sess.Filter = domain.FilterSpec{}
	sess.LastSeen = s.now()
	return *sess, true
}

func (s *MemoryStore) SetFilter(id string, filter domain.FilterSpec) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}

	sess.Filter = filter
	sess.LastSeen = s.now()
	return true
}

func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

func (s *MemoryStore) EvictExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

func (s *MemoryStore) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.LastSeen) > s.ttl
}

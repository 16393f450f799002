// Package memory is an in-process implementation of the storage ports.
// It is used when STORAGE_DRIVER=memory and by service tests.
package memory

import (
	"sync"

	"github.com/SscSPs/p2p_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/p2p_ledger/internal/core/ports/repositories"
)

// Store keeps committed state in maps guarded by mu. Money movements additionally
// serialise on one mutex per user ID, taken in ascending order by LockAccounts.
type Store struct {
	mu           sync.RWMutex
	users        map[string]domain.User
	accounts     map[string]domain.Account
	transactions []domain.Transaction

	accountLocks sync.Map // user ID -> *sync.Mutex
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		accounts: make(map[string]domain.Account),
	}
}

// NewRepositoryProvider exposes one Store through every storage port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     s,
		TransactionRepo: s,
		UserRepo:        s,
		Ledger:          s,
	}
}

var (
	_ portsrepo.AccountRepositoryFacade     = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade        = (*Store)(nil)
	_ portsrepo.UnitOfWork                  = (*Store)(nil)
)

func (s *Store) accountLock(userID string) *sync.Mutex {
	m, _ := s.accountLocks.LoadOrStore(userID, &sync.Mutex{})
	return m.(*sync.Mutex)
}

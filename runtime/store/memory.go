package store

import (
	"sync"

	"github.com/pkg/errors"

	"gopallet/runtime"
)

var ErrNilRuntime = errors.New("runtime is nil")

type MemoryStateStore struct {
	runtime *runtime.Runtime
	mu      sync.RWMutex
}

func NewMemoryStateStore(opts ...runtime.Option) *MemoryStateStore {
	return &MemoryStateStore{
		runtime: runtime.New(opts...),
	}
}

func (m *MemoryStateStore) ExecuteBlock(block runtime.Block) (*runtime.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rt, err := m.getRuntimeUnsafe()
	if err != nil {
		return nil, err
	}

	// Module and block-number errors are returned as-is so callers can match
	// them with errors.Is.
	return rt.ExecuteBlock(block)
}

func (m *MemoryStateStore) SetBalance(who runtime.AccountID, amount runtime.Balance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rt, err := m.getRuntimeUnsafe()
	if err != nil {
		return err
	}

	rt.SetBalance(who, amount)
	return nil
}

func (m *MemoryStateStore) ApplyGenesis(balances map[runtime.AccountID]runtime.Balance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rt, err := m.getRuntimeUnsafe()
	if err != nil {
		return err
	}

	rt.ApplyGenesis(balances)
	return nil
}

func (m *MemoryStateStore) BlockNumber() (runtime.BlockNumber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rt, err := m.getRuntimeUnsafe()
	if err != nil {
		return 0, err
	}

	return rt.BlockNumber(), nil
}

func (m *MemoryStateStore) BalanceOf(who runtime.AccountID) (runtime.Balance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rt, err := m.getRuntimeUnsafe()
	if err != nil {
		return 0, err
	}

	return rt.BalanceOf(who), nil
}

func (m *MemoryStateStore) NonceOf(who runtime.AccountID) (runtime.Nonce, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rt, err := m.getRuntimeUnsafe()
	if err != nil {
		return 0, err
	}

	return rt.NonceOf(who), nil
}

func (m *MemoryStateStore) GetClaim(content runtime.Content) (runtime.AccountID, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rt, err := m.getRuntimeUnsafe()
	if err != nil {
		return "", false, err
	}

	owner, ok := rt.GetClaim(content)
	return owner, ok, nil
}

func (m *MemoryStateStore) Snapshot() (runtime.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rt, err := m.getRuntimeUnsafe()
	if err != nil {
		return runtime.Snapshot{}, err
	}

	return rt.Snapshot(), nil
}

// getRuntimeUnsafe returns the runtime without locking - must be called with lock held
func (m *MemoryStateStore) getRuntimeUnsafe() (*runtime.Runtime, error) {
	if m.runtime == nil {
		return nil, ErrNilRuntime
	}
	return m.runtime, nil
}

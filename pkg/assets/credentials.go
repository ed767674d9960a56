package assets

import (
	"context"
	"errors"
	"sync"
)

// ErrNoCredential は API キーが保存されていないことを示します。
var ErrNoCredential = errors.New("credential not found")

// CredentialStore は文字列キーの永続ストアを抽象化するインターフェースです。
// コアが要求するのは「キーの取得が失敗し得る」ことだけで、実際の保存先
// （localStorage、Secret Manager 等）はシェル側の実装に委ねます。
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Has(ctx context.Context) (bool, error)
	Save(ctx context.Context, key string) error
	Delete(ctx context.Context) error
}

// MemoryCredentialStore はプロセス内メモリに保持する CredentialStore 実装です。
// テストと、シェルが永続化を担わない構成のための既定実装です。
type MemoryCredentialStore struct {
	mu  sync.RWMutex
	key string
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

func (s *MemoryCredentialStore) Get(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key == "" {
		return "", ErrNoCredential
	}
	return s.key, nil
}

func (s *MemoryCredentialStore) Has(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key != "", nil
}

func (s *MemoryCredentialStore) Save(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
	return nil
}

func (s *MemoryCredentialStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
	return nil
}

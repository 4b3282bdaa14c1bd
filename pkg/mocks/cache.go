package mocks

import (
	"encoding/json"
	"time"
)

// MockCache is an in-memory services.Cache. Values round-trip through JSON
// like the Redis adapter, so cached and fresh responses share a shape.
type MockCache struct {
	Data map[string][]byte
	Sets int
	Hits int
	Dels int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string, dest interface{}) bool {
	raw, ok := m.Data[key]
	if !ok {
		return false
	}
	if json.Unmarshal(raw, dest) != nil {
		return false
	}
	m.Hits++
	return true
}

func (m *MockCache) Set(key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	m.Data[key] = raw
	m.Sets++
}

func (m *MockCache) Del(keys ...string) {
	for _, k := range keys {
		delete(m.Data, k)
	}
	m.Dels++
}

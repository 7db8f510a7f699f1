package store

import (
	"encoding/json"
	"fmt"
)

// Memory is an in-memory KV used as a test double and as the degraded mode
// when no durable store is available.
type Memory struct {
	values map[string]json.RawMessage
}

// NewMemory creates an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]json.RawMessage)}
}

// Get decodes the value stored at key into out.
func (m *Memory) Get(key string, out any) bool {
	raw, ok := m.values[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false
	}
	return true
}

// Set stores v at key.
func (m *Memory) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	m.values[key] = raw
	return nil
}

// SetRaw stores a pre-encoded value, useful for injecting corrupt data in
// tests.
func (m *Memory) SetRaw(key string, raw []byte) {
	m.values[key] = json.RawMessage(raw)
}

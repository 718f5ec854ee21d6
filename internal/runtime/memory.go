package runtime

import (
	"context"
	"sync"

	"github.com/roach88/phpunitxml/internal/ir"
)

// MemoryEnvironment is an in-process Environment.
//
// Thread-safety: All methods are safe for concurrent use.
type MemoryEnvironment struct {
	mu        sync.RWMutex
	ini       map[string]string
	constants map[string]ir.Value
	globals   map[string]ir.Value
}

// NewMemoryEnvironment creates an empty environment.
func NewMemoryEnvironment() *MemoryEnvironment {
	return &MemoryEnvironment{
		ini:       make(map[string]string),
		constants: make(map[string]ir.Value),
		globals:   make(map[string]ir.Value),
	}
}

// SetIni implements Environment.
func (m *MemoryEnvironment) SetIni(_ context.Context, name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ini[name] = value
	return nil
}

// Constant implements Environment.
func (m *MemoryEnvironment) Constant(_ context.Context, name string) (ir.Value, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.constants[name]
	return v, ok, nil
}

// DefineConstant implements Environment.
func (m *MemoryEnvironment) DefineConstant(_ context.Context, name string, v ir.Value) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.constants[name]; exists {
		return false, nil
	}
	m.constants[name] = v
	return true, nil
}

// SetGlobal implements Environment.
func (m *MemoryEnvironment) SetGlobal(_ context.Context, name string, v ir.Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.globals[name] = v
	return nil
}

// Ini returns the current value of an ini option.
func (m *MemoryEnvironment) Ini(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.ini[name]
	return v, ok
}

// Global returns the current value of a global variable.
func (m *MemoryEnvironment) Global(name string) (ir.Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.globals[name]
	return v, ok
}

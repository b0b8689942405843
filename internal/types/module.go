package types

import (
	"maps"
	"strings"
)

// ModuleKey identifies one resolved dependency as "<name>@<version>".
type ModuleKey string

func NewModuleKey(name string, version string) ModuleKey {
	return ModuleKey(name + "@" + version)
}

// Name returns everything before the last "@", so scoped names such as
// "@scope/pkg@1.0.0" keep their leading "@".
func (k ModuleKey) Name() string {
	idx := strings.LastIndex(string(k), "@")
	if idx <= 0 {
		return string(k)
	}
	return string(k)[:idx]
}

func (k ModuleKey) Version() string {
	idx := strings.LastIndex(string(k), "@")
	if idx <= 0 {
		return ""
	}
	return string(k)[idx+1:]
}

// DependencyTree is one node of the package manager's dependency output.
// Dependencies keeps document order; nodes may be shared or cyclic.
type DependencyTree struct {
	Name         string
	Version      string
	Licenses     string
	Metadata     map[string]string
	Dependencies []*DependencyTree
}

// ModuleRecord is the flattened view of a dependency node. An empty
// Licenses value marks the module as unprocessed.
type ModuleRecord struct {
	Licenses string
	Metadata map[string]string
}

func (r ModuleRecord) Unprocessed() bool {
	return strings.TrimSpace(r.Licenses) == ""
}

// FlatModuleMap maps module keys to records and remembers the order in
// which keys were first added.
type FlatModuleMap struct {
	keys    []ModuleKey
	records map[ModuleKey]ModuleRecord
}

func NewFlatModuleMap() *FlatModuleMap {
	return &FlatModuleMap{records: map[ModuleKey]ModuleRecord{}}
}

// Add records key once. It reports false and leaves the existing record
// untouched when key is already present.
func (m *FlatModuleMap) Add(key ModuleKey, record ModuleRecord) bool {
	if _, ok := m.records[key]; ok {
		return false
	}
	record.Metadata = maps.Clone(record.Metadata)
	m.records[key] = record
	m.keys = append(m.keys, key)
	return true
}

func (m *FlatModuleMap) Get(key ModuleKey) (ModuleRecord, bool) {
	if m == nil {
		return ModuleRecord{}, false
	}
	record, ok := m.records[key]
	return record, ok
}

func (m *FlatModuleMap) Keys() []ModuleKey {
	if m == nil {
		return nil
	}
	return append([]ModuleKey(nil), m.keys...)
}

func (m *FlatModuleMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Range calls fn for every entry in insertion order until fn returns false.
func (m *FlatModuleMap) Range(fn func(key ModuleKey, record ModuleRecord) bool) {
	if m == nil {
		return
	}
	for _, key := range m.keys {
		if !fn(key, m.records[key]) {
			return
		}
	}
}

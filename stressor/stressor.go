// Package stressor defines the plugin contract that every workload
// generator in stressmark implements: registration, option validation,
// lifecycle states, stop-condition accounting, and metric reporting.
package stressor

import (
	"fmt"
	"sort"
	"strings"
)

// Class is a bitmask describing which subsystems a stressor exercises.
type Class uint32

const (
	ClassCPU Class = 1 << iota
	ClassCPUCache
	ClassMemory
	ClassVM
)

func (c Class) String() string {
	names := []struct {
		class Class
		name  string
	}{
		{ClassCPU, "cpu"},
		{ClassCPUCache, "cpu-cache"},
		{ClassMemory, "memory"},
		{ClassVM, "vm"},
	}

	var parts []string
	for _, n := range names {
		if c&n.class != 0 {
			parts = append(parts, n.name)
		}
	}

	if len(parts) == 0 {
		return "none"
	}

	return strings.Join(parts, ",")
}

// Opt describes one configurable option a stressor accepts. Set parses
// the raw flag value and stores the validated result in the settings
// registry; a parse or range error aborts the run before any stressor
// starts.
type Opt struct {
	Name  string
	Usage string
	Set   func(*Settings, string) error
}

// Info describes a registered stressor. Run executes one instance until
// its stop condition is reached and returns nil on success, ErrNoResource
// (possibly wrapped) to skip, or any other error on failure.
type Info struct {
	Name  string
	Class Class
	Opts  []Opt
	Run   func(*Args) error
}

// The registry is populated from package init functions and is read-only
// once the process is up.
var registry = map[string]Info{}

// Register adds a stressor to the registry. It panics if the name is
// already taken, which indicates a programming error.
func Register(info Info) {
	if info.Name == "" || info.Run == nil {
		panic("stressor: Register with empty name or nil Run")
	}
	if _, ok := registry[info.Name]; ok {
		panic(fmt.Sprintf("stressor: %q registered twice", info.Name))
	}

	registry[info.Name] = info
}

// Lookup returns the stressor registered under name.
func Lookup(name string) (Info, bool) {
	info, ok := registry[name]

	return info, ok
}

// All returns every registered stressor, ordered by name.
func All() []Info {
	infos := make([]Info, 0, len(registry))
	for _, info := range registry {
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	return infos
}

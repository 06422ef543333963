package prefetch

import (
	"fmt"
	"strings"
)

// method describes one hardware-assist technique for bringing data into
// cache ahead of use. checkRate marks methods whose effect is validated
// by requiring the best prefetch rate to beat the non-prefetch rate.
type method struct {
	name      string
	tag       int
	available func() bool
	checkRate bool
}

const (
	tagBuiltin = iota
	tagBuiltinL0
	tagBuiltinL3
	tagPrefetchT0
	tagPrefetchT1
	tagPrefetchT2
	tagPrefetchNTA
	tagPLDL1Keep
	tagPLDL1Strm
)

func alwaysAvailable() bool {
	return true
}

func commonMethods() []method {
	return []method{
		{name: "builtin", tag: tagBuiltin, available: alwaysAvailable},
		{name: "builtinl0", tag: tagBuiltinL0, available: alwaysAvailable},
		{name: "builtinl3", tag: tagBuiltinL3, available: alwaysAvailable},
	}
}

// methods is the ordered method table, built once at process start for
// the target architecture and read-only afterwards. Index 0 (builtin)
// is the default method.
var methods = append(commonMethods(), archMethods()...)

// LookupMethod maps a method name to its table index. Unknown names are
// a configuration error listing every valid choice.
func LookupMethod(name string) (int, error) {
	for i, m := range methods {
		if m.name == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("prefetch-method must be one of: %s",
		strings.Join(MethodNames(), " "))
}

// MethodNames returns the names of all methods registered for this
// architecture, in table order.
func MethodNames() []string {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.name
	}

	return names
}

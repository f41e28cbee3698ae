// SPDX-License-Identifier: MPL-2.0

package params

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Parameters are the raw name/value pairs supplied by the caller. Resolution
// never modifies them.
type Parameters map[string]string

// Get returns the raw value of name.
func (p Parameters) Get(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// Clone returns a copy that can be modified freely.
func (p Parameters) Clone() Parameters {
	out := make(Parameters, len(p))
	maps.Copy(out, p)
	return out
}

// Names returns the parameter names in sorted order.
func (p Parameters) Names() []string {
	names := maps.Keys(p)
	slices.Sort(names)
	return names
}

// SPDX-License-Identifier: MPL-2.0

package profile

import "golang.org/x/exp/slices"

// Set merges profiles from any number of files. It is built once at startup
// and not mutated afterwards.
type Set struct {
	profiles []*Profile
}

// NewSet merges files in order.
func NewSet(files ...*File) *Set {
	s := &Set{}
	for _, f := range files {
		for _, p := range f.Profiles {
			s.Add(p)
		}
	}
	return s
}

// Add merges p into the set. The set keeps its own copy of the profile, so
// later merges never modify the caller's value.
func (s *Set) Add(p *Profile) {
	existing := s.Profile(p.Name)
	if existing == nil {
		s.profiles = append(s.profiles, &Profile{Name: p.Name, Commands: slices.Clone(p.Commands)})
		return
	}
	for _, cmd := range p.Commands {
		existing.Put(cmd)
	}
}

// Ensure returns the named profile, creating an empty one if needed.
func (s *Set) Ensure(name string) *Profile {
	if p := s.Profile(name); p != nil {
		return p
	}
	p := &Profile{Name: name}
	s.profiles = append(s.profiles, p)
	return p
}

// Profile returns the named profile, or nil.
func (s *Set) Profile(name string) *Profile {
	i := slices.IndexFunc(s.profiles, func(p *Profile) bool { return p.Name == name })
	if i < 0 {
		return nil
	}
	return s.profiles[i]
}

// Profiles returns the profiles in the order they were first defined.
func (s *Set) Profiles() []*Profile {
	return slices.Clone(s.profiles)
}

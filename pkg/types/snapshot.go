// SPDX-FileCopyrightText: 2025 Chen Linxuan <me@black-desk.cn>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package types

import (
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// Snapshot is the set of stable file names
// present in a directory at one instant.
// Names are relative to that directory.
type Snapshot map[string]struct{}

func NewSnapshot(names ...string) Snapshot {
	s := make(Snapshot, len(names))
	for i := range names {
		s[names[i]] = struct{}{}
	}
	return s
}

func (s Snapshot) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the names in s in lexical order.
func (s Snapshot) Names() []string {
	ret := slices.Sorted(maps.Keys(s))
	if ret == nil {
		ret = []string{}
	}
	return ret
}

// Diff returns the names in s which are not in before, in lexical order.
func (s Snapshot) Diff(before Snapshot) (ret []string) {
	for name := range s {
		if before.Has(name) {
			continue
		}
		ret = append(ret, name)
	}
	slices.Sort(ret)
	return
}

func (s Snapshot) MarshalYAML() (any, error) {
	return s.Names(), nil
}

func (s *Snapshot) UnmarshalYAML(value *yaml.Node) (err error) {
	var names []string
	err = value.Decode(&names)
	if err != nil {
		return
	}

	*s = NewSnapshot(names...)
	return
}

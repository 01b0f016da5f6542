// Package varset provides immutable sets of variable indices.
//
// A Set identifies a candidate parent set for a variable in a DAG. Sets are
// value types: every operation returns a new Set and the members of an
// existing Set never change. Equality and hashing are by membership, not by
// construction order - Key returns a canonical string usable as a map key.
package varset

import (
	"slices"
	"strconv"
	"strings"
)

// Set is an immutable set of variable indices.
// The zero value is the empty set and is ready to use.
type Set struct {
	members []int // sorted ascending, no duplicates
}

// New creates a Set from the given indices.
// Duplicates are dropped and order does not matter.
func New(members ...int) Set {
	if len(members) == 0 {
		return Set{}
	}
	m := slices.Clone(members)
	slices.Sort(m)
	m = slices.Compact(m)
	return Set{members: m}
}

// Len returns the number of members.
func (s Set) Len() int { return len(s.members) }

// Empty reports whether the set has no members.
func (s Set) Empty() bool { return len(s.members) == 0 }

// Members returns the members in ascending order.
// The returned slice is a copy and can be modified freely.
func (s Set) Members() []int { return slices.Clone(s.members) }

// Contains reports whether v is a member.
func (s Set) Contains(v int) bool {
	_, ok := slices.BinarySearch(s.members, v)
	return ok
}

// Add returns a new Set with v included.
func (s Set) Add(v int) Set {
	if s.Contains(v) {
		return s
	}
	m := make([]int, 0, len(s.members)+1)
	m = append(m, s.members...)
	m = append(m, v)
	slices.Sort(m)
	return Set{members: m}
}

// Disjoint reports whether s and other share no members.
// Both slices are sorted, so this is a single merge walk.
func (s Set) Disjoint(other Set) bool {
	i, j := 0, 0
	for i < len(s.members) && j < len(other.members) {
		switch {
		case s.members[i] < other.members[j]:
			i++
		case s.members[i] > other.members[j]:
			j++
		default:
			return false
		}
	}
	return true
}

// Equal reports whether s and other have the same members.
func (s Set) Equal(other Set) bool {
	return slices.Equal(s.members, other.members)
}

// Key returns a canonical string encoding of the membership, suitable
// as a map key. Two sets have the same Key iff they are Equal.
// The empty set's key is the empty string.
func (s Set) Key() string {
	if len(s.members) == 0 {
		return ""
	}
	parts := make([]string, len(s.members))
	for i, v := range s.members {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// String returns a human-readable form like "{1 3 7}".
func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range s.members {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte('}')
	return b.String()
}

// Subsets enumerates every subset of {0..n-1} \ {exclude} with at most
// maxSize members, including the empty set. The order is deterministic:
// by size, then lexicographically by members. Pass exclude < 0 to keep
// all n indices eligible.
func Subsets(n, maxSize, exclude int) []Set {
	pool := make([]int, 0, n)
	for v := 0; v < n; v++ {
		if v != exclude {
			pool = append(pool, v)
		}
	}
	if maxSize > len(pool) {
		maxSize = len(pool)
	}

	out := []Set{{}}
	for size := 1; size <= maxSize; size++ {
		idx := make([]int, size)
		for i := range idx {
			idx[i] = i
		}
		for {
			members := make([]int, size)
			for i, p := range idx {
				members[i] = pool[p]
			}
			out = append(out, Set{members: members})

			// Advance to the next combination.
			i := size - 1
			for i >= 0 && idx[i] == len(pool)-size+i {
				i--
			}
			if i < 0 {
				break
			}
			idx[i]++
			for k := i + 1; k < size; k++ {
				idx[k] = idx[k-1] + 1
			}
		}
	}
	return out
}

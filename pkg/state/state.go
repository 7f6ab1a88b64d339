// Package state implements the Reachability State attached to every
// program element: a bundle of independent flags plus a keep-reason log,
// mutated only by the root seeders (internal/hierarchy, internal/annotate,
// internal/manifestseed, internal/layoutseed, internal/reflectscan,
// internal/rootseed) during the seeding phase.
package state

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// KeepReason tags why an element was set as a root. When set_root observes
// an element that already has a reason recorded, the first reason seen is
// kept (see State.SetRoot).
type KeepReason int32

const (
	ReasonNone KeepReason = iota
	ReasonReflection
	ReasonManifest
	ReasonSerializable
)

func (r KeepReason) String() string {
	switch r {
	case ReasonReflection:
		return "Reflection"
	case ReasonManifest:
		return "Manifest"
	case ReasonSerializable:
		return "Serializable"
	default:
		return "None"
	}
}

// flag bits, OR'd into a single atomic word so concurrent writers never race
// (see spec §5: "a monotonic OR of bits").
const (
	flagByType uint32 = 1 << iota
	flagByString
	flagByXML
	flagIsSerde
	flagIsRoot
	flagAllowObfuscation // set by default; cleared, never re-set
)

// originEntry is one append to the root's debug log: who tried to set_root
// after the first call already won.
type originEntry struct {
	Reason    KeepReason
	Originator string
}

// State is the per-element reachability record described in spec §3.
// All mutators are safe for concurrent use; none of them are suspension
// points.
type State struct {
	flags     atomic.Uint32
	keepCount atomic.Int64

	mu        sync.Mutex
	rootReason KeepReason
	originator string
	log        []originEntry
}

// New creates a State with allow_obfuscation set, matching the default a
// freshly loaded program element carries before any seeder runs.
func New() *State {
	s := &State{}
	s.flags.Store(flagAllowObfuscation)
	return s
}

func (s *State) setFlag(f uint32) {
	for {
		old := s.flags.Load()
		if old&f == f {
			return
		}
		if s.flags.CompareAndSwap(old, old|f) {
			return
		}
	}
}

func (s *State) clearFlag(f uint32) {
	for {
		old := s.flags.Load()
		if old&f == 0 {
			return
		}
		if s.flags.CompareAndSwap(old, old&^f) {
			return
		}
	}
}

func (s *State) hasFlag(f uint32) bool {
	return s.flags.Load()&f != 0
}

// MarkByType sets referenced_by_type: a type-named root, not subject to
// string-obfuscation considerations.
func (s *State) MarkByType() { s.setFlag(flagByType) }

// ReferencedByType reports the referenced_by_type flag.
func (s *State) ReferencedByType() bool { return s.hasFlag(flagByType) }

// MarkByString sets referenced_by_string: a stringly-named root; renaming
// this element would break whatever refers to it by name.
func (s *State) MarkByString() { s.setFlag(flagByString) }

// ReferencedByString reports the referenced_by_string flag.
func (s *State) ReferencedByString() bool { return s.hasFlag(flagByString) }

// MarkByXML sets referenced_by_resource_xml: kept due to a resource binding.
// This is the only flag clearable by UnmarkByXML (spec I1).
func (s *State) MarkByXML() { s.setFlag(flagByXML) }

// UnmarkByXML clears referenced_by_resource_xml, ahead of a recompute pass.
func (s *State) UnmarkByXML() { s.clearFlag(flagByXML) }

// ReferencedByXML reports the referenced_by_resource_xml flag.
func (s *State) ReferencedByXML() bool { return s.hasFlag(flagByXML) }

// SetIsSerde marks the element as participating in a serializer/
// deserializer family.
func (s *State) SetIsSerde() { s.setFlag(flagIsSerde) }

// IsSerde reports the is_serde flag.
func (s *State) IsSerde() bool { return s.hasFlag(flagIsSerde) }

// SetRoot records that this element is a root for the given reason.
// Idempotent with respect to the root flag itself; on a duplicate call the
// first reason observed is kept and originator is appended to the debug
// log (spec §4.1 — "keeps the first reason and appends the originator").
func (s *State) SetRoot(reason KeepReason, originator string) {
	s.setFlag(flagIsRoot)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rootReason == ReasonNone {
		s.rootReason = reason
		s.originator = originator
	}
	s.log = append(s.log, originEntry{Reason: reason, Originator: originator})
}

// IsRoot reports whether set_root has ever been called on this element.
func (s *State) IsRoot() bool { return s.hasFlag(flagIsRoot) }

// RootReason returns the strongest (first-seen) reason passed to SetRoot,
// or ReasonNone if SetRoot was never called.
func (s *State) RootReason() KeepReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rootReason
}

// RootOriginator returns the originator recorded with the first SetRoot
// call, for diagnostics.
func (s *State) RootOriginator() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.originator
}

// IncrementKeepCount bumps the monotonic keep counter. A non-zero
// keep_count forbids renaming (spec I4); the seeder only sets it, it never
// combines it with allow_obfuscation — that policy belongs to the shrinker.
func (s *State) IncrementKeepCount() { s.keepCount.Add(1) }

// KeepCount returns the current keep_count.
func (s *State) KeepCount() int64 { return s.keepCount.Load() }

// ClearAllowObfuscation clears allow_obfuscation, pinning the element's name.
func (s *State) ClearAllowObfuscation() { s.clearFlag(flagAllowObfuscation) }

// AllowObfuscation reports the allow_obfuscation flag.
func (s *State) AllowObfuscation() bool { return s.hasFlag(flagAllowObfuscation) }

// String renders the diagnostic textual form described in spec §6: each
// flag's value concatenated, followed by the keep count.
func (s *State) String() string {
	var b strings.Builder
	writeBool(&b, s.ReferencedByType())
	writeBool(&b, s.ReferencedByString())
	writeBool(&b, s.ReferencedByXML())
	writeBool(&b, s.IsSerde())
	writeBool(&b, s.IsRoot())
	writeBool(&b, s.AllowObfuscation())
	b.WriteByte(' ')
	b.WriteString(strconv.FormatInt(s.KeepCount(), 10))
	return b.String()
}

func writeBool(b *strings.Builder, v bool) {
	if v {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
}

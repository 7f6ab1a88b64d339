package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestState_New(t *testing.T) {
	s := New()
	require.False(t, s.ReferencedByType())
	require.False(t, s.ReferencedByString())
	require.False(t, s.ReferencedByXML())
	require.False(t, s.IsSerde())
	require.False(t, s.IsRoot())
	require.True(t, s.AllowObfuscation())
	require.Equal(t, int64(0), s.KeepCount())
}

func TestState_MarkByXML_Recomputable(t *testing.T) {
	s := New()
	s.MarkByXML()
	require.True(t, s.ReferencedByXML())
	s.UnmarkByXML()
	require.False(t, s.ReferencedByXML())

	// Clearing referenced_by_xml must not disturb any other flag (spec I1).
	s.MarkByType()
	s.MarkByString()
	s.UnmarkByXML()
	require.True(t, s.ReferencedByType())
	require.True(t, s.ReferencedByString())
}

func TestState_SetRoot_KeepsFirstReason(t *testing.T) {
	tests := []struct {
		name         string
		calls        []KeepReason
		expectReason KeepReason
	}{
		{
			name:         "single call",
			calls:        []KeepReason{ReasonManifest},
			expectReason: ReasonManifest,
		},
		{
			name:         "duplicate calls keep first reason",
			calls:        []KeepReason{ReasonReflection, ReasonManifest, ReasonSerializable},
			expectReason: ReasonReflection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for i, reason := range tt.calls {
				s.SetRoot(reason, "origin"+string(rune('0'+i)))
			}
			require.True(t, s.IsRoot())
			require.Equal(t, tt.expectReason, s.RootReason())
			require.Equal(t, "origin0", s.RootOriginator())
		})
	}
}

func TestState_IncrementKeepCount_ConcurrentWriteSafe(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	const writers = 50
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			s.IncrementKeepCount()
			s.MarkByString()
			s.SetRoot(ReasonReflection, "concurrent")
		}()
	}
	wg.Wait()
	require.Equal(t, int64(writers), s.KeepCount())
	require.True(t, s.ReferencedByString())
	require.True(t, s.IsRoot())
}

func TestState_ClearAllowObfuscation_KeepCountIndependent(t *testing.T) {
	// Spec I4: keep_count > 0 does not force allow_obfuscation either way.
	s := New()
	s.IncrementKeepCount()
	require.True(t, s.AllowObfuscation())

	s2 := New()
	s2.IncrementKeepCount()
	s2.ClearAllowObfuscation()
	require.False(t, s2.AllowObfuscation())
}

func TestState_String(t *testing.T) {
	s := New()
	require.Equal(t, "000001 0", s.String())

	s.MarkByType()
	s.MarkByString()
	s.SetRoot(ReasonManifest, "m")
	s.IncrementKeepCount()
	s.IncrementKeepCount()
	require.Equal(t, "110011 2", s.String())
}

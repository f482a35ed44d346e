package kernel

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func TestRegistryLookupPrefersHigherPriority(t *testing.T) {
	reg := &Registry{}
	reg.Register(Backend{Name: "generic", SIMDLevel: cpu.SIMDNone, Priority: 0})
	reg.Register(Backend{Name: "sse2", SIMDLevel: cpu.SIMDSSE2, Priority: 10})
	reg.Register(Backend{Name: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20})

	if b := reg.Lookup(cpu.Features{HasSSE2: true, HasAVX2: true}); b == nil || b.Name != "avx2" {
		t.Fatalf("expected avx2, got %#v", b)
	}
	if b := reg.Lookup(cpu.Features{HasSSE2: true}); b == nil || b.Name != "sse2" {
		t.Fatalf("expected sse2, got %#v", b)
	}
	if b := reg.Lookup(cpu.Features{}); b == nil || b.Name != "generic" {
		t.Fatalf("expected generic, got %#v", b)
	}
	if b := reg.Lookup(cpu.Features{HasAVX2: true, ForceGeneric: true}); b == nil || b.Name != "generic" {
		t.Fatalf("expected generic with ForceGeneric, got %#v", b)
	}
}

func TestSelectByName(t *testing.T) {
	b, err := Global.Select("generic")
	if err != nil {
		t.Fatalf("Select(generic) error = %v", err)
	}
	if b.Name != "generic" {
		t.Fatalf("Select(generic) = %q", b.Name)
	}

	if _, err := Global.Select("fpga"); !errors.Is(err, spectrum.ErrConfiguration) {
		t.Fatalf("Select(fpga) err = %v, want ErrConfiguration", err)
	}
}

func TestSelectAutoHonoursForcedFeatures(t *testing.T) {
	cpu.SetForcedFeatures(cpu.Features{ForceGeneric: true})
	defer cpu.ResetDetection()

	b, err := Global.Select(Auto)
	if err != nil {
		t.Fatalf("Select(auto) error = %v", err)
	}
	if b.Name != "generic" {
		t.Fatalf("Select(auto) with ForceGeneric = %q, want generic", b.Name)
	}
}

func TestNamesIncludeGeneric(t *testing.T) {
	names := Global.Names()
	if len(names) == 0 || names[len(names)-1] != "generic" {
		t.Fatalf("Names() = %v, want generic last", names)
	}
}

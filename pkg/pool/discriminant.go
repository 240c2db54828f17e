package pool

import (
	"fmt"
	"math/bits"

	"github.com/ajitpratap0/poolshark/pkg/poolerrors"
)

// LocationID identifies a container "shape" — e.g. "a slice-like
// container", "a map-like container" — independent of its element type.
// LocationID values are assigned at process init time by NewLocationID,
// one per container shape defined in source.
type LocationID uint16

// ULayout packs one generic element's memory layout into 16 bits: a 12-bit
// size (0-4095 bytes) and a 4-bit alignment exponent (0-15, i.e. alignments
// up to 32768). Types whose element size or alignment exceeds these bounds
// cannot participate in isomorphic pooling; PackLayout reports that case.
type ULayout uint16

const (
	maxLayoutSize     = 0x0FFF
	maxLayoutAlignLog = 0xF
)

// PackLayout packs an element's size and alignment into a ULayout. align
// must be a power of two (as every Go type's alignment is). Returns false
// if size exceeds 4095 bytes or alignment exceeds 2^15.
func PackLayout(size, align uintptr) (ULayout, bool) {
	if size > maxLayoutSize {
		return 0, false
	}
	if align == 0 || align&(align-1) != 0 {
		return 0, false
	}
	alignLog2 := bits.TrailingZeros(uint(align))
	if alignLog2 > maxLayoutAlignLog {
		return 0, false
	}
	return ULayout(uint16(size)<<4 | uint16(alignLog2)), true
}

// Size returns the packed element size in bytes.
func (l ULayout) Size() int {
	return int(l >> 4)
}

// AlignLog2 returns the packed alignment exponent.
func (l ULayout) AlignLog2() int {
	return int(l & 0xF)
}

// Align returns the packed alignment in bytes.
func (l ULayout) Align() int {
	return 1 << l.AlignLog2()
}

// Discriminant is the 8-byte packed key that lets the registries in
// pool/local and pool/global share one recycled slot across distinct
// generic instantiations whose memory layout is identical. It is
// comparable and usable directly as a map key.
//
// Size is NoSize for every ordinary container built by NewDiscriminant.
// Only NewSizedDiscriminant ever sets it to something else, which is what
// lets two otherwise-identical instantiations with different const sizes
// land in different slots instead of colliding.
type Discriminant struct {
	Container LocationID
	Elements  [2]ULayout
	Size      uint16
}

// NoSize is Discriminant.Size's sentinel value for every container with no
// const-size type parameter. Every container built by NewDiscriminant
// carries this value; only NewSizedDiscriminant's callers deliberately
// replace it.
const NoSize uint16 = 0xFFFF

func packElements(elements []ULayout) [2]ULayout {
	if len(elements) > 2 {
		panic(fmt.Sprintf("pool: at most 2 element layouts supported, got %d", len(elements)))
	}
	var packed [2]ULayout
	copy(packed[:], elements)
	return packed
}

// NewDiscriminant builds a Discriminant for a container identified by
// container, with up to two generic element layouts (pass none, one, or
// two — more than two is a programmer error and panics, since no container
// this module supports has more than two independent type parameters).
// Size is always NoSize: use NewSizedDiscriminant for a container whose
// identity also depends on a caller-supplied const size.
//
// A single variadic constructor covers "zero, one, or two of the same kind
// of argument", the more idiomatic Go shape than a family of differently
// arity'd constructors.
func NewDiscriminant(container LocationID, elements ...ULayout) Discriminant {
	return Discriminant{
		Container: container,
		Elements:  packElements(elements),
		Size:      NoSize,
	}
}

// NewSizedDiscriminant builds a Discriminant whose identity also carries a
// const size: two containers with identical elements but different size
// never collapse onto the same slot.
//
// This is the Go equivalent of the original's new_p1_size/new_p2_size: Go
// generics have no const type parameters, so there is nothing for the
// compiler to monomorphize over. Callers that need the same separation —
// TakeSized, InsertSized, and the fixed-size fallback in pool/containers
// when an element's own layout is too large to pack — pass the
// distinguishing size explicitly instead. Returns false if size collides
// with the NoSize sentinel or exceeds it.
func NewSizedDiscriminant(container LocationID, size uintptr, elements ...ULayout) (Discriminant, bool) {
	if size >= uintptr(NoSize) {
		return Discriminant{}, false
	}
	return Discriminant{
		Container: container,
		Elements:  packElements(elements),
		Size:      uint16(size),
	}, true
}

// String renders a Discriminant for logging and debugging.
func (d Discriminant) String() string {
	return fmt.Sprintf("Discriminant{container=%d, elements=[%d,%d], size=%d}",
		d.Container, d.Elements[0], d.Elements[1], d.Size)
}

// PackFailureHook, when set, is called every time a registered container's
// element layout cannot be packed into a ULayout. The container itself
// still falls back to a non-colliding Discriminant and keeps pooling
// correctly on its own; this hook is the one caller-observable signal for a
// condition the admission path otherwise absorbs silently. Set it once,
// e.g. at pool construction time, to log or alert on it.
var PackFailureHook func(err *poolerrors.Error)

// ReportPackFailure builds a structured error describing a failed
// PackLayout call and hands it to PackFailureHook, if one is set. Container
// adapters call this from their Discriminant fallback path instead of
// discarding PackLayout's ok bool outright.
func ReportPackFailure(container LocationID, what string, size, align uintptr) {
	if PackFailureHook == nil {
		return
	}
	err := poolerrors.New(poolerrors.ErrorTypeCapacity, what+" layout does not pack into a Discriminant").
		WithDetail("container", container).
		WithDetail("size", size).
		WithDetail("align", align)
	PackFailureHook(err)
}

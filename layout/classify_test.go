package layout

import (
	"reflect"
	"testing"
	"unsafe"
)

type pair struct{ A, B unsafe.Pointer }

type rawPair struct{ A, B uintptr }

type wide struct{ A, B, C uint64 }

type handle struct{ p *int }

type dropping struct{ n int }

func (d *dropping) Drop() {}

type cloning struct{ n int }

func (c cloning) Clone() cloning { return c }

type badClone struct{ n int }

func (b badClone) Clone() int { return b.n }

type aligned8 struct {
	_ [0]complex128
	a uint32
}

func TestClassify(t *testing.T) {
	tests := []struct {
		typ         reflect.Type
		class       Class
		hasPointers bool
	}{
		{reflect.TypeFor[bool](), ClassInline, false},
		{reflect.TypeFor[uint64](), ClassInline, false},
		{reflect.TypeFor[complex128](), ClassInline, false},
		{reflect.TypeFor[rawPair](), ClassInline, false},
		{reflect.TypeFor[[16]byte](), ClassInline, false},
		{reflect.TypeFor[struct{}](), ClassInline, false},
		{reflect.TypeFor[[0]*int](), ClassInline, false},
		{reflect.TypeFor[aligned8](), ClassInline, false},
		{reflect.TypeFor[[17]byte](), ClassHeap, false},
		{reflect.TypeFor[wide](), ClassHeap, false},
		{reflect.TypeFor[*string](), ClassInlineRef, true},
		{reflect.TypeFor[unsafe.Pointer](), ClassInlineRef, true},
		{reflect.TypeFor[map[string]int](), ClassInlineRef, true},
		{reflect.TypeFor[chan int](), ClassInlineRef, true},
		{reflect.TypeFor[func()](), ClassInlineRef, true},
		{reflect.TypeFor[handle](), ClassInlineRef, true},
		{reflect.TypeFor[[1]*int](), ClassInlineRef, true},
		{reflect.TypeFor[string](), ClassHeap, true},
		{reflect.TypeFor[[]byte](), ClassHeap, true},
		{reflect.TypeFor[error](), ClassHeap, true},
		{reflect.TypeFor[pair](), ClassHeap, true},
		{reflect.TypeFor[dropping](), ClassHeap, false},
		{reflect.TypeFor[cloning](), ClassHeap, false},
		{reflect.TypeFor[badClone](), ClassInline, false},
	}

	for _, tc := range tests {
		t.Run(tc.typ.String(), func(t *testing.T) {
			info := Classify(tc.typ)
			if info.Class != tc.class {
				t.Errorf("Class = %s, want %s", info.Class, tc.class)
			}
			if info.HasPointers != tc.hasPointers {
				t.Errorf("HasPointers = %v, want %v", info.HasPointers, tc.hasPointers)
			}
			if info.Size != tc.typ.Size() {
				t.Errorf("Size = %d, want %d", info.Size, tc.typ.Size())
			}
			if info.Trivial() != (tc.class == ClassInline) {
				t.Errorf("Trivial = %v for class %s", info.Trivial(), tc.class)
			}
		})
	}
}

func TestClassifyCustomOps(t *testing.T) {
	d := Classify(reflect.TypeFor[dropping]())
	if !d.Drops || d.Clones {
		t.Errorf("dropping: Drops=%v Clones=%v", d.Drops, d.Clones)
	}
	if d.TriviallyDestructible() {
		t.Error("dropping should not be trivially destructible")
	}
	if !d.TriviallyConstructible() {
		t.Error("dropping should be trivially constructible")
	}

	c := Classify(reflect.TypeFor[cloning]())
	if !c.Clones || c.Drops {
		t.Errorf("cloning: Drops=%v Clones=%v", c.Drops, c.Clones)
	}

	b := Classify(reflect.TypeFor[badClone]())
	if b.Clones {
		t.Error("Clone with the wrong result type should be ignored")
	}

	// A pointer to a dropping type does not own it.
	p := Classify(reflect.TypeFor[*dropping]())
	if p.Drops || p.Class != ClassInlineRef {
		t.Errorf("*dropping: Drops=%v Class=%s", p.Drops, p.Class)
	}
}

func TestTrivialityOfReferences(t *testing.T) {
	s := Classify(reflect.TypeFor[string]())
	if s.TriviallyConstructible() || s.TriviallyDestructible() {
		t.Error("string holds a pointer and is not trivial")
	}
	u := Classify(reflect.TypeFor[uint64]())
	if !u.TriviallyConstructible() || !u.TriviallyDestructible() {
		t.Error("uint64 is trivial")
	}
}

func TestForMemoises(t *testing.T) {
	a := For[rawPair]()
	b := For[rawPair]()
	if a != b {
		t.Error("For should return the memoised Info")
	}
	if a.Class != ClassInline {
		t.Errorf("Class = %s, want inline", a.Class)
	}
	if a.Type != reflect.TypeFor[rawPair]() {
		t.Errorf("Type = %s", a.Type)
	}
}

func TestClassString(t *testing.T) {
	tests := map[Class]string{
		ClassInline:    "inline",
		ClassInlineRef: "inline-ref",
		ClassHeap:      "heap",
		Class(9):       "unknown",
	}
	for c, want := range tests {
		if got := c.String(); got != want {
			t.Errorf("Class(%d).String() = %q, want %q", c, got, want)
		}
	}
}

func TestInlineBudget(t *testing.T) {
	if InlineSize != 2*8 {
		t.Errorf("InlineSize = %d, want two 64-bit words", InlineSize)
	}
	if PtrSize != unsafe.Sizeof(unsafe.Pointer(nil)) {
		t.Errorf("PtrSize = %d", PtrSize)
	}
}

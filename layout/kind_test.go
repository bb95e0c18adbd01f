package layout

import (
	"reflect"
	"testing"
	"unsafe"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		want string
		kind Kind
	}{
		{"invalid", KindInvalid},
		{"bool", KindBool},
		{"int", KindInt},
		{"uint", KindUint},
		{"float", KindFloat},
		{"complex", KindComplex},
		{"string", KindString},
		{"pointer", KindPointer},
		{"map", KindMap},
		{"chan", KindChan},
		{"func", KindFunc},
		{"slice", KindSlice},
		{"interface", KindInterface},
		{"array", KindArray},
		{"struct", KindStruct},
		{"unknown", Kind(255)},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.kind.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKindIsScalar(t *testing.T) {
	scalars := []Kind{KindBool, KindInt, KindUint, KindFloat, KindComplex}
	for _, k := range scalars {
		if !k.IsScalar() {
			t.Errorf("%s should be scalar", k)
		}
	}

	others := []Kind{KindInvalid, KindString, KindPointer, KindSlice, KindStruct, KindArray}
	for _, k := range others {
		if k.IsScalar() {
			t.Errorf("%s should not be scalar", k)
		}
	}
}

func TestKindIsReference(t *testing.T) {
	refs := []Kind{KindPointer, KindMap, KindChan, KindFunc}
	for _, k := range refs {
		if !k.IsReference() {
			t.Errorf("%s should be a reference", k)
		}
	}
	for _, k := range []Kind{KindString, KindSlice, KindInterface, KindStruct} {
		if k.IsReference() {
			t.Errorf("%s should not be a reference", k)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		want Kind
	}{
		{reflect.TypeFor[bool](), KindBool},
		{reflect.TypeFor[int8](), KindInt},
		{reflect.TypeFor[uint64](), KindUint},
		{reflect.TypeFor[uintptr](), KindUint},
		{reflect.TypeFor[float32](), KindFloat},
		{reflect.TypeFor[complex128](), KindComplex},
		{reflect.TypeFor[string](), KindString},
		{reflect.TypeFor[*int](), KindPointer},
		{reflect.TypeFor[unsafe.Pointer](), KindPointer},
		{reflect.TypeFor[map[string]int](), KindMap},
		{reflect.TypeFor[chan int](), KindChan},
		{reflect.TypeFor[func()](), KindFunc},
		{reflect.TypeFor[[]byte](), KindSlice},
		{reflect.TypeFor[error](), KindInterface},
		{reflect.TypeFor[[4]byte](), KindArray},
		{reflect.TypeFor[struct{}](), KindStruct},
	}

	for _, tc := range tests {
		t.Run(tc.typ.String(), func(t *testing.T) {
			if got := kindOf(tc.typ); got != tc.want {
				t.Errorf("kindOf(%s) = %s, want %s", tc.typ, got, tc.want)
			}
		})
	}
}

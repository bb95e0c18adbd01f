package layout

import "reflect"

// Kind groups Go kinds by how they matter for storage.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindComplex
	KindString
	KindPointer
	KindMap
	KindChan
	KindFunc
	KindSlice
	KindInterface
	KindArray
	KindStruct
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindBool:      "bool",
	KindInt:       "int",
	KindUint:      "uint",
	KindFloat:     "float",
	KindComplex:   "complex",
	KindString:    "string",
	KindPointer:   "pointer",
	KindMap:       "map",
	KindChan:      "chan",
	KindFunc:      "func",
	KindSlice:     "slice",
	KindInterface: "interface",
	KindArray:     "array",
	KindStruct:    "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether k is a boolean or numeric kind.
func (k Kind) IsScalar() bool {
	return k >= KindBool && k <= KindComplex
}

// IsReference reports whether values of kind k are a single pointer word.
func (k Kind) IsReference() bool {
	switch k {
	case KindPointer, KindMap, KindChan, KindFunc:
		return true
	default:
		return false
	}
}

func kindOf(t reflect.Type) Kind {
	switch t.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Complex64, reflect.Complex128:
		return KindComplex
	case reflect.String:
		return KindString
	case reflect.Pointer, reflect.UnsafePointer:
		return KindPointer
	case reflect.Map:
		return KindMap
	case reflect.Chan:
		return KindChan
	case reflect.Func:
		return KindFunc
	case reflect.Slice:
		return KindSlice
	case reflect.Interface:
		return KindInterface
	case reflect.Array:
		return KindArray
	case reflect.Struct:
		return KindStruct
	default:
		return KindInvalid
	}
}

package typeid

import (
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
)

// Info describes a registered type.
type Info struct {
	Type reflect.Type
	Name string
	ID   ID
}

// registry lives for the whole process; entries are never removed.
var registry = xsync.NewMapOf[ID, *Info]()

// Register records T in the registry and returns its Info.
// The first call for a type creates the entry; every later call returns the
// same pointer.
func Register[T any]() *Info {
	id := Of[T]()
	if info, ok := registry.Load(id); ok {
		return info
	}
	info, loaded := registry.LoadOrCompute(id, func() *Info {
		t := reflect.TypeFor[T]()
		return &Info{ID: id, Type: t, Name: typeName(t)}
	})
	if !loaded {
		Logger().Debug("type registered",
			zap.String("type", info.Name),
			zap.Stringer("id", info.ID))
	}
	return info
}

// Lookup returns the Info for a registered identity.
func Lookup(id ID) (*Info, bool) {
	if id == Empty {
		return nil, false
	}
	return registry.Load(id)
}

// Len returns the number of registered types.
func Len() int {
	return registry.Size()
}

// Each calls fn for every registered type until fn returns false.
func Each(fn func(*Info) bool) {
	registry.Range(func(_ ID, info *Info) bool {
		return fn(info)
	})
}

func typeName(t reflect.Type) string {
	if s := t.String(); s != "" {
		return s
	}
	return t.Kind().String()
}

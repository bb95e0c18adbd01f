package optable

import (
	"reflect"
	"sync/atomic"
	"unsafe"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"github.com/wippyai/anybox"
	"github.com/wippyai/anybox/errors"
	"github.com/wippyai/anybox/layout"
	"github.com/wippyai/anybox/typeid"
)

// OperationSet is the per-type bundle used across the type-erasure boundary.
type OperationSet struct {
	Type reflect.Type
	Name string
	ID   typeid.ID

	// New allocates a zeroed cell.
	New func() unsafe.Pointer
	// Copy copy-constructs *src into the zeroed cell dst.
	Copy func(dst, src unsafe.Pointer)
	// Move transfers *src into the zeroed cell dst and zeroes src.
	Move func(dst, src unsafe.Pointer)
	// Destroy runs the type's drop operation, if any, and zeroes p after it.
	Destroy func(p unsafe.Pointer)
}

// Overrides replaces the default operations for one type.
// A nil field keeps the default.
type Overrides[T any] struct {
	Copy    func(dst, src *T)
	Destroy func(p *T)
}

var (
	table = xsync.NewMapOf[typeid.ID, *OperationSet]()

	cellsAllocated atomic.Uint64
	cellsDestroyed atomic.Uint64
)

// For returns the operation set for T, binding it on first use.
func For[T any]() *OperationSet {
	id := typeid.Of[T]()
	if ops, ok := table.Load(id); ok {
		return ops
	}
	ops, loaded := table.LoadOrCompute(id, func() *OperationSet {
		return bind(Overrides[T]{})
	})
	if !loaded {
		logBound(ops, false)
	}
	return ops
}

// Register installs custom operations for T.
// It fails if T is already bound or if T is stored inline, where the
// operations would never run.
func Register[T any](o Overrides[T]) error {
	info := layout.For[T]()
	name := typeid.Register[T]().Name
	if info.Class != layout.ClassHeap {
		return errors.Registration(errors.PhaseRegister, name,
			"type is stored "+info.Class.String()+" and never uses an operation set")
	}

	ops, loaded := table.LoadOrCompute(typeid.Of[T](), func() *OperationSet {
		return bind(o)
	})
	if loaded {
		return errors.Registration(errors.PhaseRegister, name, "operations already bound")
	}
	logBound(ops, true)
	return nil
}

// Lookup returns the operation set bound to id.
func Lookup(id typeid.ID) (*OperationSet, bool) {
	if id == typeid.Empty {
		return nil, false
	}
	return table.Load(id)
}

// Len returns the number of bound operation sets.
func Len() int {
	return table.Size()
}

// Counters returns how many cells have been allocated and destroyed through
// operation sets since the process started.
func Counters() (allocated, destroyed uint64) {
	return cellsAllocated.Load(), cellsDestroyed.Load()
}

func bind[T any](o Overrides[T]) *OperationSet {
	info := layout.For[T]()
	ti := typeid.Register[T]()

	cp := o.Copy
	if cp == nil {
		if info.Clones {
			cp = func(dst, src *T) { *dst = any(src).(anybox.Cloner[T]).Clone() }
		} else {
			cp = func(dst, src *T) { *dst = *src }
		}
	}

	drop := o.Destroy
	if drop == nil && info.Drops {
		drop = func(p *T) { any(p).(anybox.Dropper).Drop() }
	}

	return &OperationSet{
		Type: ti.Type,
		Name: ti.Name,
		ID:   ti.ID,
		New: func() unsafe.Pointer {
			cellsAllocated.Add(1)
			return unsafe.Pointer(new(T))
		},
		Copy: func(dst, src unsafe.Pointer) {
			cp((*T)(dst), (*T)(src))
		},
		Move: func(dst, src unsafe.Pointer) {
			var zero T
			*(*T)(dst) = *(*T)(src)
			*(*T)(src) = zero
		},
		Destroy: func(p unsafe.Pointer) {
			// Plain cells are left intact; they become garbage once the
			// container forgets them. A dropped value is zeroed so use
			// after Drop sees no stale state.
			if drop != nil {
				var zero T
				v := (*T)(p)
				drop(v)
				*v = zero
			}
			cellsDestroyed.Add(1)
		},
	}
}

func logBound(ops *OperationSet, custom bool) {
	Logger().Debug("operations bound",
		zap.String("type", ops.Name),
		zap.Bool("custom", custom))
}

package anybox

// Cloner is implemented by payload types whose copy needs more than an
// assignment, typically because they own slices or maps.
type Cloner[T any] interface {
	Clone() T
}

// Dropper is implemented by payload types that release something when the
// container holding them is reset or overwritten.
type Dropper interface {
	Drop()
}

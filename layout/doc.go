// Package layout decides where values of a Go type are stored inside a box.
//
// The decision is made once per type and memoised. A type is trivial for
// storage when it holds no GC pointers, has no custom Clone or Drop, and fits
// the inline budget:
//
//	InlineSize   16 bytes (two 64-bit words)
//	InlineAlign   8 bytes
//
// A larger budget would keep more types off the heap but would grow every
// container, empty or not. Two words covers every scalar, complex128, small
// pointer-free structs and tuples of two raw words.
//
// Pointer-shaped types (one GC pointer word and nothing else) get their own
// class so pointers, maps, channels and funcs avoid the heap too. They are
// kept in a dedicated pointer slot because the collector must see them.
//
// # Classes
//
//	ClassInline     pointer-free bytes in the inline words
//	ClassInlineRef  a single pointer word in the pointer slot
//	ClassHeap       a separately allocated cell
//
// This package is used by box and optable.
package layout

// Package system defines the system object contract: a name, a borrow
// declaration (via its Handle) and a body that runs once that borrow has
// been granted.
//
// Go has no variadic generics, so the fixed-arity SystemN types below
// stand in for tonks's macro-generated SystemData tuple impls (arities 1
// through 25 in the original); this module caps out at eight borrowed
// resources per system and documents nesting as the escape hatch beyond
// that.
package system

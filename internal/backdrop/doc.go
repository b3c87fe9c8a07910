// Package backdrop manages the lifecycle of the ambient background.
//
// A [Scene] is a small state machine:
//
//	Uninitialized --Mount(theme)--> Active(theme) --Unmount--> Uninitialized
//
// While Active it owns exactly one surface controller, particle field and
// frame driver. A theme change tears the whole set down (cancel the
// loop, release the surface) before building the next one, so two loops
// never draw to the same surface.
package backdrop

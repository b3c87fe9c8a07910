// Package viz runs the ambient backdrop as a full-terminal Bubble Tea
// program.
//
// The [Model] owns a [backdrop.Scene] driven by a [frame.TeaSource], so
// every frame runs inside Update and the canvas is only touched on the
// program goroutine.
//
// # Key Bindings
//
//	T     - Cycle themes (rebuilds the particle field)
//	Space - Pause/Resume (unmount/remount)
//	S     - Toggle stats panel
//	G     - Toggle GIF recording
//	Q     - Quit
//
// # Recording
//
// Recordings are written to the configured GIF path when G is pressed
// again, or on quit.
package viz

// Package frame drives the per-frame step/draw loop.
//
// A [Driver] runs one frame each time its [Source] fires and re-arms a
// single pending request afterwards, the same contract as a browser's
// animation-frame callback. Sources:
//
//   - [Manual]: fires only when told to; used by tests and headless runs
//   - [Timer]: wall-clock frames on a timer goroutine
//   - [TeaSource]: frames delivered as Bubble Tea messages
//
// # State Machine
//
//	Idle --Start--> Running --Cancel--> Cancelled
//
// Cancel revokes the pending request. Once it returns no further frame
// runs, though a frame already executing is allowed to finish.
package frame

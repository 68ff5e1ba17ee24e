// Package l6editor owns Layer 6 (Editor) of the optical-train model.
//
// Responsibilities: holding the placed elements of a scene and running the
// full recomputation pipeline (snap, membership and order, composition) on
// every committed edit, then handing the result to listeners such as the
// renderer.
// Key types: Scene, Result, Listener.
//
// A Scene is driven from a single event loop and is not safe for
// concurrent use. Every trigger recomputes synchronously and from scratch,
// so a listener never observes a partially updated train.
//
// Dependency rule: L6 may depend on L1-L5 and internal/config.
package l6editor

// Package l1geom owns Layer 1 (Geometry) of the optical-train model.
//
// Responsibilities: 2-D positions, axis-aligned bounding boxes, overlap
// tests, and snapping free positions onto the placement lattice.
// Key types: Position, GridPoint, BoundingBox, Snapper.
//
// Dependency rule: L1 depends on nothing else in internal/optics.
package l1geom

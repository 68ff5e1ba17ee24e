// Package l3elements owns Layer 3 (Elements) of the optical-train model.
//
// Responsibilities: the closed set of optical element kinds, immutable
// element models carrying a derived Jones matrix, and placed elements that
// tie a model to a lattice position on the scene.
// Key types: Kind, Model, Placed.
//
// Dependency rule: L3 may depend on L1-L2, but never on L4+.
package l3elements

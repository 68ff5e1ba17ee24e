// Package l4train owns Layer 4 (Beam train) of the optical-train model.
//
// Responsibilities: deciding which placed elements intersect the beam
// region and ordering them along the propagation axis.
// Key types: BeamTrain.
//
// Membership is always recomputed from the full element set; nothing is
// patched incrementally.
//
// Dependency rule: L4 may depend on L1-L3, but never on L5+.
package l4train

// Package optics holds the optical-train evaluation engine.
//
// The engine is split into numbered layers, each in its own package:
//
//	l1geom      positions, bounding boxes, grid snapping
//	l2jones     Jones vectors, Jones matrices, Stokes projection
//	l3elements  optical element models and placed elements
//	l4train     beam membership and propagation order
//	l5compose   operator composition along the train
//	l6editor    recomputation pipeline driven by scene edits
//
// Package sweep sits beside the layers and re-runs L5 composition while one
// element rotates.
//
// Dependency rule: a layer may depend on lower layers, never on higher ones.
package optics

// Package l2jones owns Layer 2 (Jones calculus) of the optical-train model.
//
// Responsibilities: Jones vectors (polarization states), 2x2 complex Jones
// matrices, closed-form operators for wave plates and polarizers, and the
// Stokes / Poincaré-sphere projection consumed by the renderer.
// Key types: State, Matrix, Stokes.
//
// Angles are in degrees and measure the fast (or transmission) axis from
// the horizontal.
//
// Dependency rule: L2 depends on nothing else in internal/optics.
package l2jones

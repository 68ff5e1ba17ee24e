// Package l5compose owns Layer 5 (Composition) of the optical-train model.
//
// Responsibilities: propagating an input polarization state through an
// ordered beam train, one Jones operator at a time, from the lowest-x
// element to the highest.
// Key functions: Evaluate, Trace, Operator.
//
// Dependency rule: L5 may depend on L1-L4, but never on L6.
package l5compose

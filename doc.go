// Package orbitcore implements closed-form two-body orbital mechanics: the
// Kepler geometry of an orbit, conversion between anomalies, determination
// of an orbit from a state vector, relative-motion and encounter analysis
// between two trajectories, a tree of CelestialBody gravity sources with
// sphere-of-influence boundaries, and a Rocket that propagates across those
// boundaries under patched conics.
package orbitcore

// Package geo defines the geometry model consumed by the schema exporter.
// A geometry has four element domains (points, vertices, primitives and the
// detail) and each domain carries an ordered set of named, typed attributes.
package geo

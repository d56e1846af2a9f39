// Package kernel contains shared value objects used across the domain model:
// identifiers and geographic points. All types are immutable and must be
// created through their constructors; zero values fail validation.
package kernel

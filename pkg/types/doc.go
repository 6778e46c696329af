// Package types defines the entity structs, column descriptors, standard
// errors, and configuration for the partsbin persistence layer.
package types

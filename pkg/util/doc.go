// Package util provides common utility functions and data structures
//
// This package includes the generic set implementation used for validity
// checks and registries throughout the flow console
package util

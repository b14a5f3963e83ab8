// Package api defines the core data types for the flow console
//
// This package contains all the shared types used across the console,
// including crew and task references, listeners, router configuration,
// derived actions, the flow configuration document, and HTTP messages
package api

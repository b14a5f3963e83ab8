// Package console identifies the flow console service
package console

const (
	// Name is the service name reported in logs and health responses
	Name = "flow-console"

	// Version is the service version reported in logs and health responses
	Version = "0.1.0"
)

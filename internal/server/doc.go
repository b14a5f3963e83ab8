// Package server implements the HTTP API of the flow console
//
// This package provides REST endpoints for flow editing sessions, stored
// flow management, catalog lookups, export snapshots, health checks, and
// WebSocket change notifications
package server

// Package formatter renders a station's arrival boards for display.
//
// This package is organized into:
// - wrapper.go: read-only snapshot of a station and its boards
// - json.go: JSON and plain text serialization
//
// Rendering never mutates the station; arrivals are sorted on the snapshot.
package formatter

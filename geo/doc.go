// Package geo provides the coordinate type used across the network model,
// great-circle distance, and decoding of the bracketed coordinate-path
// strings found in TfL line route documents.
//
// Coordinates are always latitude first. The path encoding is longitude
// first; ParsePath swaps the pair order while decoding.
package geo

// Package provider supplies raw document bytes to the ingestion parsers.
//
// Line documents usually come from files shipped with the application and
// arrivals from the TfL unified API; both sit behind DataProvider so the
// parsers never know where their bytes came from.
package provider

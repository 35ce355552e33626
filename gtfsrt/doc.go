// Package gtfsrt reads GTFS-Realtime TripUpdates feeds as an alternative
// source of arrival predictions.
//
// A Feed indexes the trip updates of one FeedMessage. ArrivalsAt turns the
// updates that call at a stop into ingest.ArrivalEntry values, so feed
// predictions go through the same validation and board filing as TfL
// arrivals documents.
package gtfsrt

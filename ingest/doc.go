/*
Package ingest turns TfL JSON documents into network model objects.

Two documents are understood:

  - a line route document (lineName, lineId, lineStrings, stopPointSequences),
    ingested by Parser.Line into a populated model.Line whose stations are
    deduplicated against, and then added to, the registry;
  - a station arrivals document (an array of predictions), ingested by
    Parser.Arrivals onto the boards of one station.

Documents are decoded and checked against their schema before anything
shared is touched, then applied in a single registry.Update so readers
never observe half a line or half a set of boards.

# Missing data

A stop point or arrival missing required fields is skipped and counted.
The call fails with ErrRequiredDataMissing when a whole structure is
unusable: a missing top-level field, a stop-point sequence without its
stopPoint array or with no usable stop points, or an arrivals document in
which no entry is usable. Documents that do not decode at all, and route
paths that do not match the coordinate grammar, fail with
ErrMalformedInput.
*/
package ingest

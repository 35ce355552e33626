// Package mindthegap wires the tube network model into an application.
//
// A Service owns one registry and its parser. LoadLines ingests every
// configured line document, NearestStation answers proximity queries and
// RefreshArrivals replaces a station's boards with live predictions from
// the TfL API or a GTFS-Realtime feed. Handler exposes the boards over HTTP
// for display clients.
//
//	svc := mindthegap.NewService(cfg, metrics.NewCollector())
//	if _, err := svc.LoadLines(ctx); err != nil {
//		log.Printf("some lines failed to load: %v", err)
//	}
//	stn, err := svc.NearestStation(geo.NewCoordinate(51.5152, -0.1419))
package mindthegap

package mindthegap

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/mindthegap/geo"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// boardsQuery is a validated /api/boards request. Exactly one of stationID
// and point is set.
type boardsQuery struct {
	stationID string
	point     *geo.Coordinate
	refresh   bool
}

func parseBoardsQuery(params map[string]string) (boardsQuery, error) {
	m := map[string]string{}
	for k, v := range params {
		m[strings.ToLower(k)] = strings.TrimSpace(v)
	}

	q := boardsQuery{stationID: m["stationid"], refresh: true}
	if r := m["refresh"]; r != "" {
		v, err := strconv.ParseBool(r)
		if err != nil {
			return boardsQuery{}, &QueryError{Msg: "refresh must be true or false."}
		}
		q.refresh = v
	}

	lat, lon := m["lat"], m["lon"]
	switch {
	case q.stationID != "" && (lat != "" || lon != ""):
		return boardsQuery{}, &QueryError{Msg: "Provide either stationId or lat and lon, not both."}
	case q.stationID != "":
		return q, nil
	case lat == "" || lon == "":
		return boardsQuery{}, &QueryError{Msg: "You must provide a stationId or both lat and lon."}
	}

	la, err := parseDegrees(lat, 90)
	if err != nil {
		return boardsQuery{}, &QueryError{Msg: "lat must be a number between -90 and 90."}
	}
	lo, err := parseDegrees(lon, 180)
	if err != nil {
		return boardsQuery{}, &QueryError{Msg: "lon must be a number between -180 and 180."}
	}
	pt := geo.NewCoordinate(la, lo)
	q.point = &pt
	return q, nil
}

func parseDegrees(s string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < -limit || v > limit {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func buildErrorPayload(msg string) []byte {
	type errorResponse struct {
		Error string `json:"error"`
	}
	b, _ := json.Marshal(errorResponse{Error: msg})
	return b
}

package formatter

import (
	"fmt"
	"slices"
	"time"

	"github.com/theoremus-urban-solutions/mindthegap/geo"
	"github.com/theoremus-urban-solutions/mindthegap/model"
)

// StationBoards is a point-in-time view of a station's arrival boards.
type StationBoards struct {
	ResponseTimestamp string         `json:"responseTimestamp"`
	StationID         string         `json:"stationId"`
	StationName       string         `json:"stationName"`
	Location          geo.Coordinate `json:"location"`
	Lines             []string       `json:"lines"`
	Boards            []Board        `json:"boards"`
}

type Board struct {
	LineID    string    `json:"lineId"`
	LineName  string    `json:"lineName"`
	Colour    string    `json:"colour,omitempty"`
	Direction string    `json:"direction"`
	Arrivals  []Arrival `json:"arrivals"`
}

type Arrival struct {
	Destination   string `json:"destination"`
	Platform      string `json:"platform"`
	TimeToStation int    `json:"timeToStation"`
	Minutes       int    `json:"minutes"`
}

// Snapshot copies stn's boards with each board's arrivals sorted soonest
// first. Boards keep the order in which they were discovered. The caller
// must hold the registry read lock when stn is registered.
func Snapshot(stn *model.Station, now time.Time) StationBoards {
	out := StationBoards{
		ResponseTimestamp: now.UTC().Format(time.RFC3339),
		StationID:         stn.ID(),
		StationName:       stn.Name(),
		Location:          stn.Location(),
		Lines:             []string{},
		Boards:            []Board{},
	}
	for _, l := range stn.Lines() {
		out.Lines = append(out.Lines, l.ID())
	}

	for _, b := range stn.ArrivalBoards() {
		arrivals := b.Arrivals()
		slices.SortStableFunc(arrivals, model.Arrival.Compare)

		board := Board{
			LineID:    b.Line().ID(),
			LineName:  b.Line().Name(),
			Colour:    colourHex(b.Line().Colour()),
			Direction: b.TravelDirection(),
			Arrivals:  make([]Arrival, 0, len(arrivals)),
		}
		for _, a := range arrivals {
			board.Arrivals = append(board.Arrivals, Arrival{
				Destination:   a.Destination(),
				Platform:      a.PlatformName(),
				TimeToStation: a.TimeToStation(),
				Minutes:       a.TimeToStationInMins(),
			})
		}
		out.Boards = append(out.Boards, board)
	}
	return out
}

// colourHex drops the alpha channel of an ARGB colour. Lines without a
// styled resource have no colour.
func colourHex(argb uint32) string {
	if argb == 0 {
		return ""
	}
	return fmt.Sprintf("#%06X", argb&0xFFFFFF)
}

package ingest

import (
	"encoding/json"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/mindthegap/model"
	"github.com/theoremus-urban-solutions/mindthegap/registry"
)

// Report counts what happened to the entries of an arrivals document.
type Report struct {
	Attached   int // filed on a board
	Skipped    int // missing required data
	Unresolved int // line id not served by the station; dropped
}

// Arrivals parses an arrivals document and replaces stn's arrival boards
// with its predictions. stn resolves to the registered station with the
// same id when there is one.
func (p *Parser) Arrivals(stn *model.Station, data []byte) (Report, error) {
	var entries []ArrivalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		err = &MalformedInputError{Err: err}
		p.metrics.Failed("arrivals", failureReason(err))
		return Report{}, err
	}
	return p.AttachArrivals(stn, entries)
}

// AttachArrivals applies already-decoded entries to stn. Entries missing
// required data are skipped; if every entry is skipped the call fails and
// stn's boards are left untouched. Arrivals on a line the station is not
// known to be served by are dropped and counted as unresolved.
func (p *Parser) AttachArrivals(stn *model.Station, entries []ArrivalEntry) (Report, error) {
	start := time.Now()

	type staged struct {
		lineID  string
		arrival model.Arrival
	}
	var rep Report
	missing := fieldSet{}
	accepted := make([]staged, 0, len(entries))
	for _, e := range entries {
		if err := p.validate.Struct(e); err != nil {
			missing.add(invalidFields(err))
			rep.Skipped++
			continue
		}
		accepted = append(accepted, staged{
			lineID:  *e.LineID,
			arrival: model.NewArrival(*e.TimeToStation, e.Destination(), *e.PlatformName),
		})
	}
	if len(accepted) == 0 {
		err := &MissingDataError{Path: "arrivals", Fields: missing.sorted()}
		p.metrics.Failed("arrivals", failureReason(err))
		return rep, err
	}

	_ = p.reg.Update(func(tx *registry.Tx) error {
		target := stn
		if canonical, ok := tx.StationWithID(stn.ID()); ok {
			target = canonical
		}
		target.ClearArrivalBoards()
		for _, s := range accepted {
			line, ok := target.LineWithID(s.lineID)
			if !ok || !target.AddArrival(line, s.arrival) {
				rep.Unresolved++
				continue
			}
			rep.Attached++
		}
		return nil
	})

	if rep.Unresolved > 0 {
		log.Printf("station %s: dropped %d arrivals on lines not serving the station", stn.ID(), rep.Unresolved)
	}
	p.metrics.ArrivalsIngested(rep.Attached, rep.Skipped, rep.Unresolved, time.Since(start))
	return rep, nil
}

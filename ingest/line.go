package ingest

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/mindthegap/geo"
	"github.com/theoremus-urban-solutions/mindthegap/model"
	"github.com/theoremus-urban-solutions/mindthegap/registry"
)

// stagedStop is a validated stop point waiting to be attached to a line.
type stagedStop struct {
	id   string
	name string
	locn geo.Coordinate
}

// Line parses a line route document and registers the resulting line and
// its stations. Stations already in the registry are reused as they are.
// On error nothing is registered and no line is returned.
func (p *Parser) Line(res model.LineResource, data []byte) (*model.Line, error) {
	start := time.Now()
	line, skipped, err := p.line(res, data)
	if err != nil {
		p.metrics.Failed("line", failureReason(err))
		return nil, err
	}
	if skipped > 0 {
		log.Printf("line %s: skipped %d stop points with missing data", line.ID(), skipped)
	}
	p.metrics.LineIngested(skipped, p.reg.NumStations(), time.Since(start))
	return line, nil
}

func (p *Parser) line(res model.LineResource, data []byte) (*model.Line, int, error) {
	var doc lineDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, &MalformedInputError{Err: err}
	}
	if err := p.validate.Struct(doc); err != nil {
		return nil, 0, &MissingDataError{Fields: invalidFields(err)}
	}

	branches := make([]model.Branch, 0, len(doc.LineStrings))
	for i, raw := range doc.LineStrings {
		b, err := model.ParseBranch(raw)
		if err != nil {
			return nil, 0, &MalformedInputError{Path: fmt.Sprintf("lineStrings[%d]", i), Err: err}
		}
		branches = append(branches, b)
	}

	stops, skipped, err := p.stageStops(doc.StopPointSequences)
	if err != nil {
		return nil, 0, err
	}

	line := model.NewLine(res, *doc.LineID, *doc.LineName)
	for _, b := range branches {
		line.AddBranch(b)
	}
	_ = p.reg.Update(func(tx *registry.Tx) error {
		for _, s := range stops {
			if existing, ok := tx.StationWithID(s.id); ok {
				line.AddStation(existing)
				continue
			}
			line.AddStation(model.NewStation(s.id, s.name, s.locn))
		}
		tx.AddStationsOnLine(line)
		return nil
	})
	return line, skipped, nil
}

// stageStops validates every sequence and returns the usable stop points in
// encounter order. Any sequence that is unusable fails the whole line.
func (p *Parser) stageStops(seqs []stopPointSequence) ([]stagedStop, int, error) {
	var stops []stagedStop
	skipped := 0
	for i, seq := range seqs {
		path := fmt.Sprintf("stopPointSequences[%d]", i)
		if err := p.validate.Struct(seq); err != nil {
			return nil, 0, &MissingDataError{Path: path, Fields: invalidFields(err)}
		}

		missing := fieldSet{}
		usable := 0
		for _, sp := range seq.StopPoint {
			if err := p.validate.Struct(sp); err != nil {
				missing.add(invalidFields(err))
				skipped++
				continue
			}
			usable++
			stops = append(stops, stagedStop{
				id:   *sp.StationID,
				name: ShortName(*sp.Name),
				locn: geo.NewCoordinate(*sp.Lat, *sp.Lon),
			})
		}
		if usable == 0 {
			return nil, 0, &MissingDataError{Path: path + ".stopPoint", Fields: missing.sorted()}
		}
	}
	return stops, skipped, nil
}

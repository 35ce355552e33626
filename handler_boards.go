package mindthegap

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/theoremus-urban-solutions/mindthegap/formatter"
	"github.com/theoremus-urban-solutions/mindthegap/provider"
	"github.com/theoremus-urban-solutions/mindthegap/registry"
)

// refreshTimeout bounds the upstream arrivals call made by one request.
const refreshTimeout = 10 * time.Second

func (s *Service) handleBoardsJSON(w http.ResponseWriter, r *http.Request) {
	s.serveBoards(w, r, queryParams(r), "json")
}

func (s *Service) handleBoardsText(w http.ResponseWriter, r *http.Request) {
	s.serveBoards(w, r, queryParams(r), "text")
}

func (s *Service) handleStation(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	params["stationId"] = chi.URLParam(r, "stationID")
	s.serveBoards(w, r, params, "json")
}

func (s *Service) serveBoards(w http.ResponseWriter, r *http.Request, params map[string]string, format string) {
	if format == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	fail := func(status int, msg string) {
		w.WriteHeader(status)
		if format == "text" {
			_, _ = w.Write([]byte(msg + "\n"))
			return
		}
		_, _ = w.Write(buildErrorPayload(msg))
	}

	q, err := parseBoardsQuery(params)
	if err != nil {
		fail(http.StatusBadRequest, err.Error())
		return
	}

	stationID := q.stationID
	if q.point != nil {
		stn, err := s.NearestStation(*q.point)
		if err != nil {
			fail(http.StatusNotFound, err.Error())
			return
		}
		stationID = stn.ID()
	}
	stn, ok := s.Registry.StationWithID(stationID)
	if !ok {
		fail(http.StatusNotFound, "No such station: "+stationID+".")
		return
	}

	if q.refresh {
		ctx, cancel := context.WithTimeout(r.Context(), refreshTimeout)
		defer cancel()
		if _, err := s.RefreshArrivals(ctx, stn); err != nil {
			log.Printf("refresh %s: %v", stationID, err)
			status := http.StatusBadGateway
			if errors.Is(err, provider.ErrNoLines) || errors.Is(err, registry.ErrNotRegistered) {
				status = http.StatusNotFound
			}
			fail(status, err.Error())
			return
		}
	}

	sb, err := s.Boards(stationID)
	if err != nil {
		fail(http.StatusNotFound, err.Error())
		return
	}
	rb := formatter.NewResponseBuilder()
	if format == "text" {
		_, _ = w.Write(rb.BuildText(sb))
		return
	}
	_, _ = w.Write(rb.BuildJSON(sb))
}

func queryParams(r *http.Request) map[string]string {
	params := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}

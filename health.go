package mindthegap

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status             string `json:"status"`
	Stations           int    `json:"stations"`
	Lines              int    `json:"lines"`
	LatestRefreshEpoch int64  `json:"latest_refresh_epoch"`
}

// handleHealth reports "empty" until at least one line has loaded.
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:   "ok",
		Stations: s.Registry.NumStations(),
		Lines:    len(s.Registry.Lines()),
	}
	if resp.Stations == 0 {
		resp.Status = "empty"
	}
	if t := s.LastRefresh(); !t.IsZero() {
		resp.LatestRefreshEpoch = t.Unix()
	}
	_ = json.NewEncoder(w).Encode(resp)
}

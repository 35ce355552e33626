package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/mindthegap/model"
)

// DefaultBaseURL is the TfL unified API.
const DefaultBaseURL = "https://api.tfl.gov.uk"

// ErrNoLines is returned for a station that no line serves.
var ErrNoLines = errors.New("station is not served by any line")

// Credentials identify the application to the TfL API. Both may be empty
// for anonymous, rate-limited access.
type Credentials struct {
	AppID  string
	AppKey string
}

// ArrivalsProvider fetches live arrivals for one station on every line
// serving it.
type ArrivalsProvider struct {
	url    string
	client *http.Client
}

// NewArrivalsProvider builds the request for stn. An empty baseURL means
// DefaultBaseURL and a zero timeout means no client timeout.
func NewArrivalsProvider(baseURL string, creds Credentials, timeout time.Duration, stn *model.Station) (*ArrivalsProvider, error) {
	u, err := ArrivalsURL(baseURL, creds, stn)
	if err != nil {
		return nil, err
	}
	return &ArrivalsProvider{url: u, client: &http.Client{Timeout: timeout}}, nil
}

func (p *ArrivalsProvider) Fetch(ctx context.Context) ([]byte, error) {
	data, err := HTTPProvider{URL: p.url, Client: p.client}.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("arrivals: %w", err)
	}
	return data, nil
}

// ArrivalsURL returns
//
//	{base}/Line/{line ids}/Arrivals?stopPointId={station id}&app_id=..&app_key=..
//
// with the line ids comma-separated in id order.
func ArrivalsURL(baseURL string, creds Credentials, stn *model.Station) (string, error) {
	if stn == nil {
		return "", errors.New("arrivals: nil station")
	}
	lines := stn.Lines()
	if len(lines) == 0 {
		return "", fmt.Errorf("arrivals for %s: %w", stn.ID(), ErrNoLines)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, url.PathEscape(l.ID()))
	}
	q := url.Values{}
	q.Set("stopPointId", stn.ID())
	q.Set("app_id", creds.AppID)
	q.Set("app_key", creds.AppKey)
	return strings.TrimSuffix(baseURL, "/") + "/Line/" + strings.Join(ids, ",") + "/Arrivals?" + q.Encode(), nil
}

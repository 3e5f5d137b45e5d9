package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fenn-labs/ipo-monitor/models"
	"github.com/fenn-labs/ipo-monitor/shared"
	"github.com/sirupsen/logrus"
)

const (
	finnhubIPOCalendarURL = "https://finnhub.io/api/v1/calendar/ipo"
	fetchTimeout          = 30 * time.Second
)

// ipoCalendarResponse is the upstream payload shape. A missing
// ipoCalendar key decodes to a nil slice, which callers treat as an
// empty calendar rather than an error.
type ipoCalendarResponse struct {
	IPOCalendar []models.IPORecord `json:"ipoCalendar"`
}

// FinnhubService fetches the IPO calendar from the Finnhub REST API.
type FinnhubService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	factory *shared.HTTPClientFactory
}

// NewFinnhubService creates a calendar client using the shared pooled
// HTTP client factory.
func NewFinnhubService(apiKey string) *FinnhubService {
	factory := shared.NewHTTPClientFactory(fetchTimeout)
	return &FinnhubService{
		apiKey:  apiKey,
		baseURL: finnhubIPOCalendarURL,
		client:  factory.CreateOptimizedHTTPClient(fetchTimeout),
		factory: factory,
	}
}

// Close releases the pooled HTTP connections. Call on shutdown.
func (s *FinnhubService) Close() {
	s.factory.CleanupAllClients()
}

// FetchSameDayIPOs returns the raw calendar records for a single date
// (from and to both set to the target date). The fetch is a single
// point operation: network errors, non-2xx responses and malformed
// payloads are fatal for the run, with no retries here.
func (s *FinnhubService) FetchSameDayIPOs(ctx context.Context, date string) ([]models.IPORecord, error) {
	query := url.Values{
		"from":  {date},
		"to":    {date},
		"token": {s.apiKey},
	}
	requestURL := s.baseURL + "?" + query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryNetwork, "REQUEST_BUILD_FAILED", "Finnhub_Service", "FetchSameDayIPOs")
	}
	shared.SetDefaultAPIHeaders(request)

	response, err := s.client.Do(request)
	if err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryNetwork, "CALENDAR_FETCH_FAILED", "Finnhub_Service", "FetchSameDayIPOs")
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, shared.NewServiceError(
			shared.ErrorCategoryNetwork,
			"CALENDAR_FETCH_NON_2XX",
			fmt.Sprintf("IPO calendar request for %s returned HTTP %d", date, response.StatusCode),
			"Finnhub_Service",
			"FetchSameDayIPOs",
			nil,
		)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryNetwork, "CALENDAR_READ_FAILED", "Finnhub_Service", "FetchSameDayIPOs")
	}

	var payload ipoCalendarResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryProcessing, "CALENDAR_DECODE_FAILED", "Finnhub_Service", "FetchSameDayIPOs")
	}

	logrus.WithFields(logrus.Fields{
		"date":         date,
		"record_count": len(payload.IPOCalendar),
	}).Info("Fetched IPO calendar from Finnhub")

	return payload.IPOCalendar, nil
}

package services

import (
	"strings"
	"time"

	"github.com/fenn-labs/ipo-monitor/models"
	"github.com/fenn-labs/ipo-monitor/shared"
	"github.com/sirupsen/logrus"
)

// MinOfferAmountUSD is the qualification threshold. Offers exactly at
// the threshold qualify (inclusive lower bound).
const MinOfferAmountUSD float64 = 200_000_000

// usExchanges is the fixed set of exchanges treated as US listings.
var usExchanges = map[string]bool{
	"NASDAQ": true,
	"NYSE":   true,
	"AMEX":   true,
}

// AnalyzerService classifies raw calendar records for a single target
// date into qualified, annotated-US, missing-data and non-US buckets.
type AnalyzerService struct {
	utility        *UtilityService
	serviceMetrics *shared.ServiceMetrics
}

// NewAnalyzerService creates a new analyzer backed by the given
// utility service for numeric parsing.
func NewAnalyzerService(utility *UtilityService) *AnalyzerService {
	return &AnalyzerService{
		utility:        utility,
		serviceMetrics: shared.NewServiceMetrics("Analyzer_Service"),
	}
}

// Analyze runs the qualification filter over records in a single pass,
// preserving input order. It returns the qualified set, the broader
// annotated US set (below-threshold listings included, for the HTML
// report), and the per-run stats. Input records are never mutated.
//
// Every record lands in exactly one bucket: non-US-excluded,
// missing-data, qualified, or non-qualified-but-US.
func (s *AnalyzerService) Analyze(records []models.IPORecord) ([]models.QualifiedIPO, []models.USListing, models.AnalysisStats) {
	start := time.Now()

	var stats models.AnalysisStats
	var qualified []models.QualifiedIPO
	var usListings []models.USListing

	for _, record := range records {
		stats.TotalSeen++

		exchange := strings.ToUpper(strings.TrimSpace(record.Exchange))
		if !usExchanges[exchange] {
			continue
		}
		stats.USExchangeCount++

		amount := s.utility.OfferAmountUSD(record)
		if amount == nil {
			stats.MissingDataCount++
			logrus.WithFields(logrus.Fields{
				"symbol":   record.Symbol,
				"exchange": exchange,
				"price":    record.Price,
			}).Debug("Skipping US listing with unparseable price/shares")
			continue
		}

		meetsThreshold := *amount >= MinOfferAmountUSD
		usListings = append(usListings, models.USListing{
			Record:         record,
			OfferAmountUSD: *amount,
			Qualified:      meetsThreshold,
		})

		if meetsThreshold {
			qualified = append(qualified, models.QualifiedIPO{
				Record:         record,
				OfferAmountUSD: *amount,
			})
			stats.QualifiedCount++
		}
	}

	s.serviceMetrics.RecordRequest(true, time.Since(start))

	logrus.WithFields(logrus.Fields{
		"total_seen":         stats.TotalSeen,
		"us_exchange_count":  stats.USExchangeCount,
		"missing_data_count": stats.MissingDataCount,
		"qualified_count":    stats.QualifiedCount,
	}).Info("Analyzed IPO calendar records")

	return qualified, usListings, stats
}

// GetServiceMetrics returns the current service metrics
func (s *AnalyzerService) GetServiceMetrics() *shared.ServiceMetrics {
	return s.serviceMetrics
}

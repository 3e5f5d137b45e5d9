package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/fenn-labs/ipo-monitor/models"
	"github.com/fenn-labs/ipo-monitor/shared"
)

// UtilityService provides text normalization and numeric parsing for
// noisy upstream calendar fields. Parse failures are recoverable: every
// method returns nil instead of erroring so a single bad record never
// aborts a pipeline run.
type UtilityService struct {
	serviceMetrics *shared.ServiceMetrics
}

// NewUtilityService creates a new utility service instance
func NewUtilityService() *UtilityService {
	return &UtilityService{
		serviceMetrics: shared.NewServiceMetrics("Utility_Service"),
	}
}

// ParseOfferPrice converts a raw offer price string into a single
// conservative estimate. Upstream prices often encode a range like
// "20-22"; the high end is taken. Currency symbols and thousands
// separators are stripped. Returns nil for empty, placeholder, or
// unparseable input.
func (s *UtilityService) ParseOfferPrice(priceText string) *float64 {
	cleaned := strings.TrimSpace(priceText)
	if cleaned == "" || s.IsNotAvailable(cleaned) {
		return nil
	}

	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}

	if strings.Contains(cleaned, "-") {
		var segments []string
		for _, part := range strings.Split(cleaned, "-") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				segments = append(segments, trimmed)
			}
		}
		if len(segments) == 0 {
			return nil
		}

		// Last non-empty segment is the high end of the range.
		value, err := strconv.ParseFloat(segments[len(segments)-1], 64)
		if err != nil {
			return nil
		}
		return &value
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}

// ParseShareCount parses a share count that may arrive as a string with
// thousands separators or as a plain number. Counts of zero or below
// are treated as missing. Returns nil when the count is absent or
// unparseable.
func (s *UtilityService) ParseShareCount(sharesText string) *float64 {
	cleaned := strings.TrimSpace(sharesText)
	if cleaned == "" || s.IsNotAvailable(cleaned) {
		return nil
	}

	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	if value <= 0 {
		return nil
	}
	return &value
}

// OfferAmountUSD estimates the USD offer size of a record as
// price x shares. Requires both a parseable price and a positive share
// count; otherwise returns nil. Prices are assumed USD, no conversion.
func (s *UtilityService) OfferAmountUSD(record models.IPORecord) *float64 {
	start := time.Now()

	price := s.ParseOfferPrice(record.Price)
	if price == nil {
		s.RecordOperation("offer_amount_missing_price", false, time.Since(start))
		return nil
	}

	shares := s.ParseShareCount(record.NumberOfShares.String())
	if shares == nil {
		s.RecordOperation("offer_amount_missing_shares", false, time.Since(start))
		return nil
	}

	amount := *price * *shares
	s.RecordOperation("offer_amount_computed", true, time.Since(start))
	return &amount
}

// IsNotAvailable checks if a value indicates "not available"
func (s *UtilityService) IsNotAvailable(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))

	notAvailableValues := []string{
		"tba",
		"tbd",
		"n/a",
		"na",
		"not available",
		"not disclosed",
		"pending",
		"--",
		"-",
		"",
	}

	for _, na := range notAvailableValues {
		if text == na {
			return true
		}
	}

	return false
}

// FormatUSDAmount renders an amount with thousands separators and no
// decimal places, e.g. 250000000 -> "250,000,000". Ties round to the
// even digit.
func (s *UtilityService) FormatUSDAmount(amount float64) string {
	digits := strconv.FormatFloat(amount, 'f', 0, 64)

	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}

	if negative {
		return "-" + sb.String()
	}
	return sb.String()
}

// GetServiceMetrics returns the current service metrics
func (s *UtilityService) GetServiceMetrics() *shared.ServiceMetrics {
	return s.serviceMetrics
}

// RecordOperation records a utility service operation with metrics tracking
func (s *UtilityService) RecordOperation(operationName string, success bool, processingTime time.Duration) {
	if s.serviceMetrics != nil {
		s.serviceMetrics.RecordRequest(success, processingTime)
		s.serviceMetrics.IncrementCustomCounter(operationName)
	}
}

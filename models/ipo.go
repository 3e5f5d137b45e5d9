package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// IPORecord is a single raw entry from the upstream IPO calendar.
// All fields are optional upstream; string fields arrive noisy
// (price may encode a range like "20-22"). Records are never mutated
// after decoding - derived values live in QualifiedIPO / USListing.
type IPORecord struct {
	Symbol         string     `json:"symbol"`
	Name           string     `json:"name"`
	Exchange       string     `json:"exchange"`
	Price          string     `json:"price"`
	NumberOfShares FlexString `json:"numberOfShares"`
}

// FlexString decodes a JSON value that may be either a string or a
// number into its textual form. Upstream is inconsistent about whether
// share counts are quoted.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the decoded textual value.
func (f FlexString) String() string {
	return string(f)
}

// QualifiedIPO wraps a record that passed the qualification filter
// together with its computed offer amount. The wrapper keeps the raw
// record immutable instead of annotating it in place.
type QualifiedIPO struct {
	Record         IPORecord `json:"record"`
	OfferAmountUSD float64   `json:"offer_amount_usd"`
}

// USListing is a US-exchange record annotated for reporting. Unlike
// QualifiedIPO it is produced for every US record with a computable
// offer amount, below-threshold ones included.
type USListing struct {
	Record         IPORecord `json:"record"`
	OfferAmountUSD float64   `json:"offer_amount_usd"`
	Qualified      bool      `json:"qualified"`
}

// AnalysisStats summarizes one analyzer pass. Counts are non-negative
// and satisfy QualifiedCount <= USExchangeCount <= TotalSeen and
// MissingDataCount <= USExchangeCount.
type AnalysisStats struct {
	TotalSeen        int `json:"total_seen"`
	USExchangeCount  int `json:"us_exchange_count"`
	MissingDataCount int `json:"missing_data_count"`
	QualifiedCount   int `json:"qualified_count"`
}

// RunReport captures the outcome of one pipeline run for the run log
// and the status API. It lives only for the process lifetime.
type RunReport struct {
	RunID            uuid.UUID     `json:"run_id"`
	Date             string        `json:"date"`
	Stats            AnalysisStats `json:"stats"`
	Subject          string        `json:"subject"`
	TextBody         string        `json:"text_body"`
	QualifiedSymbols []string      `json:"qualified_symbols"`
	StartedAt        time.Time     `json:"started_at"`
	FinishedAt       time.Time     `json:"finished_at"`
	Error            string        `json:"error,omitempty"`
}

// Succeeded reports whether the run completed without a fatal error.
func (r *RunReport) Succeeded() bool {
	return r.Error == ""
}

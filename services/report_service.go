package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/fenn-labs/ipo-monitor/models"
)

// Placeholders substituted for missing record fields in reports.
const (
	placeholderSymbol = "UNKNOWN"
	placeholderName   = "Unknown"
	placeholderValue  = "N/A"
)

// ReportService renders the daily report deterministically: a plain
// text body over the qualified set (the email's primary content) and an
// HTML alternative tabulating the broader annotated US set.
type ReportService struct {
	utility *UtilityService
	tmpl    *template.Template
}

// NewReportService creates a renderer with the default HTML template.
func NewReportService(utility *UtilityService) *ReportService {
	return &ReportService{
		utility: utility,
		tmpl:    template.Must(template.New("report").Parse(reportHTMLTemplate)),
	}
}

// Subject derives the email subject line for a run.
func (s *ReportService) Subject(date string, qualifiedCount int) string {
	return fmt.Sprintf("IPO Monitor %s - %d qualifying IPO(s)", date, qualifiedCount)
}

// summaryLines is the summary block shared by every report variant.
func (s *ReportService) summaryLines(date string, stats models.AnalysisStats) []string {
	return []string{
		fmt.Sprintf("Date (Dubai): %s", date),
		fmt.Sprintf("Total IPOs returned: %d", stats.TotalSeen),
		fmt.Sprintf("U.S. exchanges (NASDAQ/NYSE/AMEX): %d", stats.USExchangeCount),
		fmt.Sprintf("Missing price/shares: %d", stats.MissingDataCount),
		fmt.Sprintf("Offer >= USD %s: %d", s.utility.FormatUSDAmount(MinOfferAmountUSD), stats.QualifiedCount),
		"",
	}
}

// BuildTextReport renders the plain text report body. An empty
// qualified set produces a fixed no-result sentence followed by the
// summary block; otherwise a dated header, the summary block, and one
// line per qualified record in input order.
func (s *ReportService) BuildTextReport(qualified []models.QualifiedIPO, date string, stats models.AnalysisStats) string {
	summary := s.summaryLines(date, stats)

	if len(qualified) == 0 {
		lines := append([]string{
			fmt.Sprintf("No U.S. same-day IPOs with offer amount above USD %s.", s.utility.FormatUSDAmount(MinOfferAmountUSD)),
			"",
		}, summary...)
		return strings.Join(lines, "\n")
	}

	lines := append([]string{
		fmt.Sprintf("U.S. Same-Day IPOs on %s (> USD 200M)", date),
		"",
	}, summary...)

	for _, q := range qualified {
		lines = append(lines, fmt.Sprintf("- %s | %s | USD %s",
			orPlaceholder(q.Record.Symbol, placeholderSymbol),
			orPlaceholder(q.Record.Name, placeholderName),
			s.utility.FormatUSDAmount(q.OfferAmountUSD),
		))
	}

	return strings.Join(lines, "\n")
}

// reportHTMLData feeds the HTML template.
type reportHTMLData struct {
	Date     string
	Summary  []string
	Listings []reportHTMLRow
}

type reportHTMLRow struct {
	Symbol      string
	Name        string
	Exchange    string
	Price       string
	Shares      string
	OfferAmount string
	Qualified   bool
}

// BuildHTMLReport renders the HTML alternative: the summary block as a
// bullet list plus one table row per annotated US listing (qualified or
// not), in input order.
func (s *ReportService) BuildHTMLReport(listings []models.USListing, date string, stats models.AnalysisStats) (string, error) {
	data := reportHTMLData{
		Date:    date,
		Summary: s.summaryLines(date, stats),
	}

	for _, l := range listings {
		data.Listings = append(data.Listings, reportHTMLRow{
			Symbol:      orPlaceholder(l.Record.Symbol, placeholderSymbol),
			Name:        orPlaceholder(l.Record.Name, placeholderName),
			Exchange:    orPlaceholder(l.Record.Exchange, placeholderValue),
			Price:       orPlaceholder(l.Record.Price, placeholderValue),
			Shares:      orPlaceholder(l.Record.NumberOfShares.String(), placeholderValue),
			OfferAmount: "USD " + s.utility.FormatUSDAmount(l.OfferAmountUSD),
			Qualified:   l.Qualified,
		})
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}
	return buf.String(), nil
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

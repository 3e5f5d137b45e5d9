package services

import (
	"testing"

	"github.com/fenn-labs/ipo-monitor/models"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer() *AnalyzerService {
	return NewAnalyzerService(NewUtilityService())
}

func TestAnalyzeQualification(t *testing.T) {
	analyzer := newTestAnalyzer()

	records := []models.IPORecord{
		{Symbol: "BIGX", Name: "Big Exchange Inc", Exchange: "NASDAQ", Price: "20-22", NumberOfShares: "20,000,000"},   // 440M, qualifies
		{Symbol: "TINY", Name: "Tiny Co", Exchange: "NYSE", Price: "10", NumberOfShares: "1,000,000"},                  // 10M, below threshold
		{Symbol: "LOND", Name: "London Listing", Exchange: "LSE", Price: "50", NumberOfShares: "100,000,000"},          // non-US, excluded entirely
		{Symbol: "NODATA", Name: "No Data Corp", Exchange: "AMEX", Price: "TBD", NumberOfShares: "5,000,000"},          // missing price
		{Symbol: "EDGE", Name: "Edge Case Ltd", Exchange: "nasdaq", Price: "200", NumberOfShares: "1,000,000"},         // exactly 200M, qualifies
		{Symbol: "BADSH", Name: "Bad Shares Inc", Exchange: "NYSE", Price: "25", NumberOfShares: "0"},                  // zero shares = missing
	}

	qualified, usListings, stats := analyzer.Analyze(records)

	assert.Equal(t, 6, stats.TotalSeen)
	assert.Equal(t, 5, stats.USExchangeCount)
	assert.Equal(t, 2, stats.MissingDataCount)
	assert.Equal(t, 2, stats.QualifiedCount)

	require.Len(t, qualified, 2)
	assert.Equal(t, "BIGX", qualified[0].Record.Symbol)
	assert.Equal(t, 440_000_000.0, qualified[0].OfferAmountUSD)
	assert.Equal(t, "EDGE", qualified[1].Record.Symbol)
	assert.Equal(t, 200_000_000.0, qualified[1].OfferAmountUSD)

	// The annotated US sequence includes below-threshold listings but
	// not missing-data or non-US ones, in input order.
	require.Len(t, usListings, 3)
	assert.Equal(t, "BIGX", usListings[0].Record.Symbol)
	assert.True(t, usListings[0].Qualified)
	assert.Equal(t, "TINY", usListings[1].Record.Symbol)
	assert.False(t, usListings[1].Qualified)
	assert.Equal(t, "EDGE", usListings[2].Record.Symbol)
	assert.True(t, usListings[2].Qualified)
}

func TestAnalyzeThresholdBoundaryInclusive(t *testing.T) {
	analyzer := newTestAnalyzer()

	qualified, _, stats := analyzer.Analyze([]models.IPORecord{
		{Symbol: "EXACT", Exchange: "NYSE", Price: "200", NumberOfShares: "1000000"},
	})

	require.Len(t, qualified, 1)
	assert.Equal(t, MinOfferAmountUSD, qualified[0].OfferAmountUSD)
	assert.Equal(t, 1, stats.QualifiedCount)
}

func TestAnalyzeNonUSNeverCountedAsMissing(t *testing.T) {
	analyzer := newTestAnalyzer()

	// Unparseable price on a non-US exchange must not reach the
	// missing-data counter.
	_, _, stats := analyzer.Analyze([]models.IPORecord{
		{Symbol: "FRA", Exchange: "XETRA", Price: "garbage", NumberOfShares: "garbage"},
	})

	assert.Equal(t, 1, stats.TotalSeen)
	assert.Equal(t, 0, stats.USExchangeCount)
	assert.Equal(t, 0, stats.MissingDataCount)
	assert.Equal(t, 0, stats.QualifiedCount)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	analyzer := newTestAnalyzer()

	qualified, usListings, stats := analyzer.Analyze(nil)

	assert.Empty(t, qualified)
	assert.Empty(t, usListings)
	assert.Equal(t, models.AnalysisStats{}, stats)
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	analyzer := newTestAnalyzer()

	records := []models.IPORecord{
		{Symbol: "BIGX", Name: "Big Exchange Inc", Exchange: "NASDAQ", Price: "20-22", NumberOfShares: "20,000,000"},
	}
	original := records[0]

	analyzer.Analyze(records)

	assert.Equal(t, original, records[0])
}

func TestAnalyzeStatsProperties(t *testing.T) {
	analyzer := newTestAnalyzer()
	properties := gopter.NewProperties(nil)

	exchangeGen := gen.OneConstOf("NASDAQ", "NYSE", "AMEX", "nasdaq", "LSE", "TSX", "XETRA", "")
	priceGen := gen.OneConstOf("20-22", "$20.50", "abc", "", "15", "200", "1,250", "TBD")
	sharesGen := gen.OneConstOf("1,000,000", "20,000,000", "0", "", "garbage", "1000000")

	recordGen := gopter.CombineGens(exchangeGen, priceGen, sharesGen).Map(func(values []interface{}) models.IPORecord {
		return models.IPORecord{
			Exchange:       values[0].(string),
			Price:          values[1].(string),
			NumberOfShares: models.FlexString(values[2].(string)),
		}
	})

	properties.Property("stats ordering invariants hold for any input", prop.ForAll(
		func(records []models.IPORecord) bool {
			qualified, usListings, stats := analyzer.Analyze(records)

			if stats.QualifiedCount > stats.USExchangeCount || stats.USExchangeCount > stats.TotalSeen {
				return false
			}
			if stats.MissingDataCount > stats.USExchangeCount {
				return false
			}
			if stats.TotalSeen != len(records) {
				return false
			}
			if len(qualified) != stats.QualifiedCount {
				return false
			}

			// Accounting: every US record is either missing-data or an
			// annotated listing; every listing is qualified or not.
			if stats.USExchangeCount != stats.MissingDataCount+len(usListings) {
				return false
			}
			qualifiedListings := 0
			for _, l := range usListings {
				if l.Qualified {
					qualifiedListings++
				}
			}
			return qualifiedListings == stats.QualifiedCount
		},
		gen.SliceOf(recordGen),
	))

	properties.TestingRun(t)
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPORecordDecodeSharesAsNumber(t *testing.T) {
	payload := `{"symbol":"ABCD","name":"Acme Corp","exchange":"NASDAQ","price":"20-22","numberOfShares":20000000}`

	var record IPORecord
	require.NoError(t, json.Unmarshal([]byte(payload), &record))

	assert.Equal(t, "ABCD", record.Symbol)
	assert.Equal(t, "20-22", record.Price)
	assert.Equal(t, "20000000", record.NumberOfShares.String())
}

func TestIPORecordDecodeSharesAsString(t *testing.T) {
	payload := `{"symbol":"ABCD","numberOfShares":"1,000,000"}`

	var record IPORecord
	require.NoError(t, json.Unmarshal([]byte(payload), &record))

	assert.Equal(t, "1,000,000", record.NumberOfShares.String())
}

func TestIPORecordDecodeMissingAndNullFields(t *testing.T) {
	var record IPORecord
	require.NoError(t, json.Unmarshal([]byte(`{"numberOfShares":null}`), &record))
	assert.Equal(t, "", record.NumberOfShares.String())

	require.NoError(t, json.Unmarshal([]byte(`{}`), &record))
	assert.Equal(t, "", record.Symbol)
	assert.Equal(t, "", record.NumberOfShares.String())
}

func TestRunReportSucceeded(t *testing.T) {
	report := RunReport{}
	assert.True(t, report.Succeeded())

	report.Error = "fetching IPO calendar: boom"
	assert.False(t, report.Succeeded())
}

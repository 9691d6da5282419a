package output

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "£70000.00", FormatCurrency(decimal.NewFromInt(70000)))
	assert.Equal(t, "£1234.57", FormatCurrency(decimal.NewFromFloat(1234.567)))
	assert.Equal(t, "£-500.00", FormatCurrency(decimal.NewFromInt(-500)))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.5%", FormatPercent(12.5))
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "-14.3%", FormatPercent(-14.2857))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	record := map[string]any{"employee_id": 1, "salary": "70000"}

	require.NoError(t, WriteJSON(&buf, record))
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")), "output ends with a newline")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "70000", decoded["salary"])
}

func TestWriteJSON_Unencodable(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteJSON(&buf, make(chan int)))
}

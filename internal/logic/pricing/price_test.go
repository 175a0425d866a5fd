package pricing

import (
	"testing"

	"bond-pricer-sol/internal/logic/decoder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oracle(v string) *decoder.OracleValueRecord {
	return &decoder.OracleValueRecord{Value: decimal.RequireFromString(v)}
}

func TestMarketPrice_NoQuoteReturnsBase(t *testing.T) {
	base := oracle("1.000000000000000001")
	got := MarketPrice(base, nil)
	assert.True(t, got.Equal(base.Value))
	assert.Equal(t, base.Value.String(), got.String())
}

func TestMarketPrice_CrossRate(t *testing.T) {
	got := MarketPrice(oracle("0.92"), oracle("1.08"))
	assert.Equal(t, "0.9936", got.String())
}

func TestCostInReference(t *testing.T) {
	cost, err := CostInReference(decimal.RequireFromString("1.0005"), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, "1.0005", cost.String())

	cost, err = CostInReference(decimal.NewFromInt(1), decimal.RequireFromString("0.9936"))
	require.NoError(t, err)
	assert.Equal(t, "1.006441", cost.Round(6).String())
}

func TestCostInReference_InvalidMarket(t *testing.T) {
	for _, m := range []string{"0", "-0.5", "-1"} {
		_, err := CostInReference(decimal.NewFromInt(1), decimal.RequireFromString(m))
		assert.ErrorIs(t, err, ErrInvalidPrice, "market=%s", m)
	}
}

package decoder_test

import (
	"testing"

	"bond-pricer-sol/internal/consts"
	"bond-pricer-sol/internal/logic/decoder"
	"bond-pricer-sol/internal/logic/decoder/decodertest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOracleValue_Fixture(t *testing.T) {
	tests := []string{"1", "0.92", "1.08", "17.123456789012345678", "-3.5"}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			want := decimal.RequireFromString(s)
			rec, err := decoder.DecodeOracleValue(decodertest.OracleAccount(want, 100))
			require.NoError(t, err)
			assert.True(t, rec.Value.Equal(want), "got %s want %s", rec.Value, want)
			assert.Equal(t, uint64(100), rec.Slot)
		})
	}
}

func TestDecodeOracleValue_UnalignedSource(t *testing.T) {
	// 源切片起始地址故意错开 1 字节
	raw := append([]byte{0xff}, decodertest.OracleAccount(decimal.RequireFromString("0.92"), 7)...)
	rec, err := decoder.DecodeOracleValue(raw[1:])
	require.NoError(t, err)
	assert.True(t, rec.Value.Equal(decimal.RequireFromString("0.92")))
}

func TestDecodeOracleValue_ExtraBytesIgnored(t *testing.T) {
	data := append(decodertest.OracleAccount(decimal.NewFromInt(2), 7), 0xAA, 0xBB)
	rec, err := decoder.DecodeOracleValue(data)
	require.NoError(t, err)
	assert.True(t, rec.Value.Equal(decimal.NewFromInt(2)))
}

func TestDecodeOracleValue_TooShort(t *testing.T) {
	full := decodertest.OracleAccount(decimal.NewFromInt(1), 7)
	require.Len(t, full, consts.SwitchboardHeaderSize+consts.SwitchboardPullFeedSize)

	for _, n := range []int{0, consts.SwitchboardHeaderSize, len(full) - 4, len(full) - 1} {
		_, err := decoder.DecodeOracleValue(full[:n])
		var de *decoder.DecodeError
		require.ErrorAs(t, err, &de, "len=%d", n)
		assert.Equal(t, decoder.KindOracle, de.Kind)
		assert.Contains(t, de.Reason, "too short")
	}
}

func TestDecodeOracleValue_Uninitialized(t *testing.T) {
	_, err := decoder.DecodeOracleValue(decodertest.OracleAccount(decimal.NewFromInt(1), 0))
	var de *decoder.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, decoder.KindOracle, de.Kind)
}

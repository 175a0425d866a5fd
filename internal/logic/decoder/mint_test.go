package decoder_test

import (
	"testing"

	"bond-pricer-sol/internal/logic/decoder"
	"bond-pricer-sol/internal/logic/decoder/decodertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testInterestConfig = decoder.InterestBearingConfig{
	InitializationTimestamp: 1_700_000_000,
	PreUpdateAverageRate:    950,
	LastUpdateTimestamp:     1_710_000_000,
	CurrentRate:             1000,
}

func TestDecodeMint_Plain(t *testing.T) {
	mint, err := decoder.DecodeMint(decodertest.PlainMintAccount(6))
	require.NoError(t, err)
	assert.Equal(t, uint8(6), mint.Decimals)
	assert.Equal(t, uint64(1_000_000_000), mint.Supply)
	require.NotNil(t, mint.MintAuthority)
	assert.Nil(t, mint.FreezeAuthority)
	assert.Empty(t, mint.Extensions)

	_, err = mint.InterestBearingConfig()
	assert.ErrorIs(t, err, decoder.ErrExtensionNotFound)
}

func TestDecodeMint_Token2022WithInterest(t *testing.T) {
	data := decodertest.Token2022MintAccount(6,
		decodertest.MetadataPointerExtension(),
		decodertest.InterestBearingExtension(testInterestConfig),
	)

	mint, cfg, err := decoder.DecodeInterestBearingMint(data)
	require.NoError(t, err)
	assert.Equal(t, []decoder.ExtensionType{
		decoder.ExtensionMetadataPointer,
		decoder.ExtensionInterestBearingConfig,
	}, mint.Extensions)
	assert.Equal(t, testInterestConfig, *cfg)
}

func TestDecodeMint_ExtensionNotFound(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"plain spl mint", decodertest.PlainMintAccount(6)},
		{"token2022 without interest", decodertest.Token2022MintAccount(6, decodertest.MetadataPointerExtension())},
		{"token2022 empty tlv", decodertest.Token2022MintAccount(6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mint, cfg, err := decoder.DecodeInterestBearingMint(tt.data)
			assert.ErrorIs(t, err, decoder.ErrExtensionNotFound)
			assert.False(t, decoder.IsDecodeError(err), "缺少扩展不是格式错误")
			assert.NotNil(t, mint)
			assert.Nil(t, cfg)
		})
	}
}

func TestDecodeMint_Invalid(t *testing.T) {
	withInterest := decodertest.Token2022MintAccount(6, decodertest.InterestBearingExtension(testInterestConfig))

	dirtyPadding := append([]byte(nil), withInterest...)
	dirtyPadding[100] = 1

	tokenAccountType := append([]byte(nil), withInterest...)
	tokenAccountType[165] = 2

	uninitialized := decodertest.PlainMintAccount(6)
	uninitialized[45] = 0

	multisigSized := decodertest.Token2022MintAccount(6, decodertest.Extension{
		Type:  decoder.ExtensionMetadataPointer,
		Value: make([]byte, 355-166-4),
	})
	require.Len(t, multisigSized, 355)

	badInterestLen := decodertest.Token2022MintAccount(6, decodertest.Extension{
		Type:  decoder.ExtensionInterestBearingConfig,
		Value: make([]byte, 40),
	})

	tests := []struct {
		name string
		data []byte
		kind decoder.AccountKind
	}{
		{"too short", withInterest[:81], decoder.KindMint},
		{"between base and account length", withInterest[:120], decoder.KindMint},
		{"dirty padding", dirtyPadding, decoder.KindMint},
		{"token account type", tokenAccountType, decoder.KindMint},
		{"uninitialized", uninitialized, decoder.KindMint},
		{"multisig length", multisigSized, decoder.KindMint},
		{"tlv out of bounds", withInterest[:len(withInterest)-10], decoder.KindMint},
		{"interest config length", badInterestLen, decoder.KindInterestBearingConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decoder.DecodeMint(tt.data)
			var de *decoder.DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.kind, de.Kind)
		})
	}
}

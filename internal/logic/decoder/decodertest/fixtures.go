// Package decodertest 构造链上账户字节，供解析与定价测试使用
package decodertest

import (
	"encoding/binary"
	"math/big"

	"bond-pricer-sol/internal/consts"
	"bond-pricer-sol/internal/logic/decoder"
	"bond-pricer-sol/internal/pkg/types"

	"github.com/near/borsh-go"
	"github.com/shopspring/decimal"
)

// PullFeedAccountData 内关键字段偏移（不含 8 字节 discriminator）
const (
	OffsetLastUpdateTimestamp = 2208
	OffsetResultValue         = 2256
	OffsetResultStdDev        = 2272
	OffsetResultNumSamples    = 2352
	OffsetResultSlot          = 2360
)

// OracleAccountSize 完整 oracle 账户长度
const OracleAccountSize = consts.SwitchboardHeaderSize + consts.SwitchboardPullFeedSize

var oracleDiscriminator = []byte{196, 27, 108, 196, 10, 215, 219, 40}

// BondAccount 构造 bond 账户
func BondAccount(mint types.Pubkey, feedType uint8) []byte {
	return mustSerialize(decoder.BondRecord{
		AccountType:     consts.AccountTypeBond,
		Version:         1,
		Mint:            mint,
		IssuanceNumber:  1,
		PaymentFeedType: feedType,
		Bump:            254,
	})
}

// PaymentFeedAccount 构造 payment feed 账户，quote 传 types.ZeroPubkey 表示无 quote
func PaymentFeedAccount(feedType uint8, base, quote types.Pubkey) []byte {
	return mustSerialize(decoder.PaymentFeedRecord{
		AccountType:     consts.AccountTypePaymentFeed,
		PaymentFeedType: feedType,
		BasePriceFeed:   base,
		QuotePriceFeed:  quote,
		Bump:            255,
	})
}

// OracleStdDev OracleAccount 写入的 result.std_dev
var OracleStdDev = decimal.RequireFromString("0.001")

// OracleAccount 构造 Switchboard pull feed 账户，value 按 18 位精度写入 result.value
func OracleAccount(value decimal.Decimal, slot uint64) []byte {
	data := make([]byte, OracleAccountSize)
	copy(data, oracleDiscriminator)

	body := data[consts.SwitchboardHeaderSize:]
	putI128(body[OffsetResultValue:], value.Shift(consts.SwitchboardPrecision).BigInt())
	putI128(body[OffsetResultStdDev:], OracleStdDev.Shift(consts.SwitchboardPrecision).BigInt())
	body[OffsetResultNumSamples] = 3
	binary.LittleEndian.PutUint64(body[OffsetResultSlot:], slot)
	binary.LittleEndian.PutUint64(body[OffsetLastUpdateTimestamp:], 1_700_000_000)
	return data
}

// PlainMintAccount 构造不带扩展区的 82 字节 mint
func PlainMintAccount(decimals uint8) []byte {
	data := make([]byte, 82)
	binary.LittleEndian.PutUint32(data[0:4], 1) // mint_authority: Some
	data[4] = 7
	binary.LittleEndian.PutUint64(data[36:44], 1_000_000_000)
	data[44] = decimals
	data[45] = 1 // is_initialized
	return data
}

// Extension 一条 TLV 扩展
type Extension struct {
	Type  decoder.ExtensionType
	Value []byte
}

// Token2022MintAccount 构造带扩展区的 Token-2022 mint
func Token2022MintAccount(decimals uint8, exts ...Extension) []byte {
	data := make([]byte, 166)
	copy(data, PlainMintAccount(decimals))
	data[165] = 1 // AccountType::Mint
	for _, ext := range exts {
		var header [4]byte
		binary.LittleEndian.PutUint16(header[0:2], uint16(ext.Type))
		binary.LittleEndian.PutUint16(header[2:4], uint16(len(ext.Value)))
		data = append(data, header[:]...)
		data = append(data, ext.Value...)
	}
	return data
}

// InterestBearingExtension 构造计息扩展 TLV
func InterestBearingExtension(cfg decoder.InterestBearingConfig) Extension {
	return Extension{Type: decoder.ExtensionInterestBearingConfig, Value: mustSerialize(cfg)}
}

// MetadataPointerExtension 构造一个与计息无关的扩展（64 字节）
func MetadataPointerExtension() Extension {
	return Extension{Type: decoder.ExtensionMetadataPointer, Value: make([]byte, 64)}
}

func putI128(dst []byte, v *big.Int) {
	n := new(big.Int).Set(v)
	if n.Sign() < 0 {
		n.Add(n, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	be := n.FillBytes(make([]byte, 16))
	for i := 0; i < 16; i++ {
		dst[i] = be[15-i]
	}
}

func mustSerialize(v interface{}) []byte {
	data, err := borsh.Serialize(v)
	if err != nil {
		panic(err)
	}
	return data
}

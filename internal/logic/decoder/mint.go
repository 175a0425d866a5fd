package decoder

import (
	"encoding/binary"

	"bond-pricer-sol/internal/pkg/types"

	sdktoken "github.com/blocto/solana-go-sdk/program/token"
)

// Token-2022 账户布局
// 参考: https://github.com/solana-program/token-2022/blob/main/program/src/extension/mod.rs
//
// [0:82]    基础 Mint
// [82:165]  padding（必须为 0，使 Mint 与 Account 的扩展区起点对齐）
// [165]     AccountType（1 = Mint, 2 = Account）
// [166:]    TLV：type(u16) | length(u16) | value
const (
	baseAccountLength   = 165 // spl token Account::LEN
	multisigLength      = 355 // spl token Multisig::LEN，该长度的账户不可能是带扩展的 mint
	accountTypeMint     = 1
	tlvHeaderLength     = 4
	extensionTypeUninit = 0
)

// ExtensionType Token-2022 扩展类型编号
type ExtensionType uint16

const (
	ExtensionInterestBearingConfig ExtensionType = 10
	ExtensionMetadataPointer       ExtensionType = 18
)

// MintRecord Token-2022 mint 的基础信息与扩展
type MintRecord struct {
	MintAuthority   *types.Pubkey
	FreezeAuthority *types.Pubkey
	Supply          uint64
	Decimals        uint8
	Extensions      []ExtensionType // 按链上顺序出现的扩展类型

	interestBearing *InterestBearingConfig
}

// InterestBearingConfig 返回计息扩展，不存在时返回 ErrExtensionNotFound
func (m *MintRecord) InterestBearingConfig() (*InterestBearingConfig, error) {
	if m.interestBearing == nil {
		return nil, ErrExtensionNotFound
	}
	return m.interestBearing, nil
}

// DecodeMint 解析 mint 账户（兼容 SPL Token 与 Token-2022）
func DecodeMint(data []byte) (*MintRecord, error) {
	if len(data) < sdktoken.MintAccountSize {
		return nil, newDecodeError(KindMint, "data too short: got %d, want >= %d", len(data), sdktoken.MintAccountSize)
	}

	base, err := sdktoken.MintAccountFromData(data[:sdktoken.MintAccountSize])
	if err != nil {
		return nil, &DecodeError{Kind: KindMint, Reason: "invalid base mint", Err: err}
	}
	if !base.IsInitialized {
		return nil, newDecodeError(KindMint, "mint is not initialized")
	}

	mint := &MintRecord{
		Supply:   base.Supply,
		Decimals: base.Decimals,
	}
	if base.MintAuthority != nil {
		pk := types.Pubkey(*base.MintAuthority)
		mint.MintAuthority = &pk
	}
	if base.FreezeAuthority != nil {
		pk := types.Pubkey(*base.FreezeAuthority)
		mint.FreezeAuthority = &pk
	}

	// 纯 SPL mint，无扩展区
	if len(data) == sdktoken.MintAccountSize {
		return mint, nil
	}
	if err := parseMintExtensions(mint, data); err != nil {
		return nil, err
	}
	return mint, nil
}

// DecodeInterestBearingMint 解析 mint 并取出计息扩展，缺失时返回 ErrExtensionNotFound
func DecodeInterestBearingMint(data []byte) (*MintRecord, *InterestBearingConfig, error) {
	mint, err := DecodeMint(data)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := mint.InterestBearingConfig()
	if err != nil {
		return mint, nil, err
	}
	return mint, cfg, nil
}

func parseMintExtensions(mint *MintRecord, data []byte) error {
	if len(data) <= baseAccountLength || len(data) == multisigLength {
		return newDecodeError(KindMint, "invalid extended mint length %d", len(data))
	}
	for i := sdktoken.MintAccountSize; i < baseAccountLength; i++ {
		if data[i] != 0 {
			return newDecodeError(KindMint, "non-zero padding at offset %d", i)
		}
	}
	if data[baseAccountLength] != accountTypeMint {
		return newDecodeError(KindMint, "account type mismatch: got %d, want %d", data[baseAccountLength], accountTypeMint)
	}

	offset := baseAccountLength + 1
	for offset+tlvHeaderLength <= len(data) {
		extType := ExtensionType(binary.LittleEndian.Uint16(data[offset : offset+2]))
		length := int(binary.LittleEndian.Uint16(data[offset+2 : offset+4]))
		if extType == extensionTypeUninit {
			break
		}

		start := offset + tlvHeaderLength
		end := start + length
		if end > len(data) {
			return newDecodeError(KindMint, "extension %d out of bounds: [%d:%d], len=%d", extType, start, end, len(data))
		}
		mint.Extensions = append(mint.Extensions, extType)

		if extType == ExtensionInterestBearingConfig {
			cfg, err := decodeInterestBearingConfig(data[start:end])
			if err != nil {
				return err
			}
			mint.interestBearing = cfg
		}
		offset = end
	}
	return nil
}

package decoder

import (
	"bond-pricer-sol/internal/consts"
	"bond-pricer-sol/internal/pkg/types"
)

// BondAccountSize bond 账户固定布局长度
// [0]      account_type (u8)
// [1]      version (u8)
// [2:34]   mint (Pubkey)
// [34:42]  issuance_number (u64)
// [42]     payment_feed_type (u8)
// [43]     bump (u8)
const BondAccountSize = 44

// BondRecord stablebond 程序中一个债券的链上元数据
type BondRecord struct {
	AccountType     uint8
	Version         uint8
	Mint            types.Pubkey
	IssuanceNumber  uint64
	PaymentFeedType uint8
	Bump            uint8
}

// DecodeBond 解析 bond 账户，账户可能有 realloc 预留空间，尾部多余字节忽略
func DecodeBond(data []byte) (*BondRecord, error) {
	if len(data) < BondAccountSize {
		return nil, newDecodeError(KindBond, "data too short: got %d, want >= %d", len(data), BondAccountSize)
	}

	var bond BondRecord
	if err := borshDecode(KindBond, data[:BondAccountSize], &bond); err != nil {
		return nil, err
	}
	if bond.AccountType != consts.AccountTypeBond {
		return nil, newDecodeError(KindBond, "account type mismatch: got %d, want %d",
			bond.AccountType, consts.AccountTypeBond)
	}
	return &bond, nil
}

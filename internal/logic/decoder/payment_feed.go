package decoder

import (
	"bond-pricer-sol/internal/consts"
	"bond-pricer-sol/internal/pkg/types"
)

// PaymentFeedAccountSize payment feed 账户固定布局长度
// [0]      account_type (u8)
// [1]      payment_feed_type (u8)
// [2:34]   base_price_feed (Pubkey)
// [34:66]  quote_price_feed (Pubkey)，全 0 表示不存在
// [66]     bump (u8)
const PaymentFeedAccountSize = 67

// PaymentFeedRecord 一对 base / quote 预言机地址
type PaymentFeedRecord struct {
	AccountType     uint8
	PaymentFeedType uint8
	BasePriceFeed   types.Pubkey
	QuotePriceFeed  types.Pubkey
	Bump            uint8
}

// HasQuote quote 地址不是全 0 哨兵时，价格需要 base × quote
func (p *PaymentFeedRecord) HasQuote() bool {
	return !p.QuotePriceFeed.IsZero()
}

// DecodePaymentFeed 解析 payment feed 账户
func DecodePaymentFeed(data []byte) (*PaymentFeedRecord, error) {
	if len(data) < PaymentFeedAccountSize {
		return nil, newDecodeError(KindPaymentFeed, "data too short: got %d, want >= %d", len(data), PaymentFeedAccountSize)
	}

	var feed PaymentFeedRecord
	if err := borshDecode(KindPaymentFeed, data[:PaymentFeedAccountSize], &feed); err != nil {
		return nil, err
	}
	if feed.AccountType != consts.AccountTypePaymentFeed {
		return nil, newDecodeError(KindPaymentFeed, "account type mismatch: got %d, want %d",
			feed.AccountType, consts.AccountTypePaymentFeed)
	}
	if feed.BasePriceFeed.IsZero() {
		return nil, newDecodeError(KindPaymentFeed, "base price feed is not set")
	}
	return &feed, nil
}

package consts

const (
	// StablebondDecimals stablebond 统一为 6 位精度
	StablebondDecimals uint8 = 6

	// OneTokenRawAmount 表示 "1 个 token" 的最小单位数量（10^6）
	OneTokenRawAmount uint64 = 1_000_000
)

// PDA 种子前缀
const (
	BondSeed        = "bond"
	PaymentFeedSeed = "payment_feed"
)

package consts

// Switchboard on-demand PullFeedAccountData 布局
// 参考: https://github.com/switchboard-xyz/solana-sdk/blob/main/rust/switchboard-on-demand/src/on_demand/accounts/pull_feed.rs
const (
	// SwitchboardHeaderSize 账户数据前 8 字节为 Anchor discriminator，不属于结构体
	SwitchboardHeaderSize = 8

	// SwitchboardPullFeedSize PullFeedAccountData 结构体大小（不含 discriminator）
	SwitchboardPullFeedSize = 3200

	// SwitchboardPrecision CurrentResult.value 为 i128，隐含 18 位小数
	SwitchboardPrecision = 18
)

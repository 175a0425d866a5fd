package consts

import "bond-pricer-sol/internal/pkg/types"

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	// Etherfuse stablebond 程序，bond / payment feed 账户均为其 PDA
	StablebondProgramStr = "SBondMDrcV3K4kxZR1HNVT7osZxAHVHgYXL5Ze1oMUv"

	// 默认 RPC 节点
	DefaultRpcEndpoint = "https://rpc.etherfuse.com"
)

// 已知的 stablebond mint（Token-2022，带 InterestBearingConfig 扩展）
const (
	CETESMintStr   = "CETES7CKqqKQizuSN6iWQwmTeFRjbJR6Vw2XRKfEDR8f" // 墨西哥国债
	USTRYMintStr   = "USTRYnGgcHAhdWsanv8BG6vHGd4p7UGgoB9NRd8ei7j"  // 美国国债
	EUROBMintStr   = "EuroszHk1AL7fHBBsxgeGHsamUqwBpb26oEyt9BcfZ6G" // 欧元区债券
	TESOUROMintStr = "BRNTNaZeTJANz9PeuD8drNbBHwGgg7ZTjiQYrFgWQ48p" // 巴西国债
	GILTSMintStr   = "GiLTSeSFnNse7xQVYeKdMyckGw66AoRmyggGg1NNd4yr" // 英国国债
)

var (
	StablebondProgram = types.PubkeyFromBase58(StablebondProgramStr)

	CETESMint   = types.PubkeyFromBase58(CETESMintStr)
	USTRYMint   = types.PubkeyFromBase58(USTRYMintStr)
	EUROBMint   = types.PubkeyFromBase58(EUROBMintStr)
	TESOUROMint = types.PubkeyFromBase58(TESOUROMintStr)
	GILTSMint   = types.PubkeyFromBase58(GILTSMintStr)
)

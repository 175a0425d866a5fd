package resolver

import (
	"fmt"

	"bond-pricer-sol/internal/consts"
	"bond-pricer-sol/internal/pkg/types"

	"github.com/blocto/solana-go-sdk/common"
)

// Resolver 推导 stablebond 程序下的 PDA 地址
type Resolver struct {
	programID common.PublicKey
}

func NewResolver(programID types.Pubkey) *Resolver {
	return &Resolver{programID: common.PublicKey(programID)}
}

func (r *Resolver) ProgramID() types.Pubkey {
	return types.Pubkey(r.programID)
}

// BondAddress seeds = ["bond", mint]
func (r *Resolver) BondAddress(mint types.Pubkey) types.Pubkey {
	return r.mustFind([]byte(consts.BondSeed), mint[:])
}

// PaymentFeedAddress seeds = ["payment_feed", [feedType]]
func (r *Resolver) PaymentFeedAddress(feedType uint8) types.Pubkey {
	return r.mustFind([]byte(consts.PaymentFeedSeed), []byte{feedType})
}

func (r *Resolver) mustFind(seeds ...[]byte) types.Pubkey {
	addr, _, err := common.FindProgramAddress(seeds, r.programID)
	if err != nil {
		// 255 个 bump 全部落在曲线上，属于程序错误
		panic(fmt.Sprintf("find program address failed: program=%s, err=%v", r.programID.ToBase58(), err))
	}
	return types.Pubkey(addr)
}

package decoder

import (
	"bytes"
	"encoding/binary"
	"math/big"

	"bond-pricer-sol/internal/consts"

	"github.com/shopspring/decimal"
)

// OracleValueRecord Switchboard pull feed 的一次快照
type OracleValueRecord struct {
	Value               decimal.Decimal // result.value，18 位精度
	StdDev              decimal.Decimal
	NumSamples          uint8
	Slot                uint64 // 最近一次结果所在 slot
	LastUpdateTimestamp int64
}

// 以下结构体与链上 #[repr(C)] 布局逐字节对应（小端），名为 _ 的字段为 padding，读取时跳过
type oracleSubmission struct {
	Oracle   [32]byte
	Slot     uint64
	LandedAt uint64
	Value    [16]byte // i128
}

type currentResult struct {
	Value         [16]byte // i128
	StdDev        [16]byte
	Mean          [16]byte
	Range         [16]byte
	MinValue      [16]byte
	MaxValue      [16]byte
	NumSamples    uint8
	SubmissionIdx uint8
	_             [6]byte
	Slot          uint64
	MinSlot       uint64
	MaxSlot       uint64
}

type compactResult struct {
	StdDev float32
	Mean   float32
	Slot   uint64
}

type pullFeedAccountData struct {
	Submissions         [32]oracleSubmission
	Authority           [32]byte
	Queue               [32]byte
	FeedHash            [32]byte
	InitializedAt       int64
	Permissions         uint64
	MaxVariance         uint64
	MinResponses        uint32
	Name                [32]byte
	_                   [2]byte
	HistoricalResultIdx uint8
	MinSampleSize       uint8
	LastUpdateTimestamp int64
	LutSlot             uint64
	_                   [32]byte
	Result              currentResult
	MaxStaleness        uint32
	_                   [12]byte
	HistoricalResults   [32]compactResult
	_                   [288]byte
}

// DecodeOracleValue 解析 Switchboard on-demand pull feed 账户
//
// 账户数据 = 8 字节 discriminator + PullFeedAccountData。
// 先校验长度，再把结构体部分拷贝到独立的定长缓冲区后解释，不直接在原始切片上按偏移读取。
func DecodeOracleValue(data []byte) (*OracleValueRecord, error) {
	const required = consts.SwitchboardHeaderSize + consts.SwitchboardPullFeedSize
	if len(data) < required {
		return nil, newDecodeError(KindOracle, "data too short: got %d, want >= %d", len(data), required)
	}

	var aligned [consts.SwitchboardPullFeedSize]byte
	copy(aligned[:], data[consts.SwitchboardHeaderSize:required])

	var feed pullFeedAccountData
	if err := binary.Read(bytes.NewReader(aligned[:]), binary.LittleEndian, &feed); err != nil {
		return nil, &DecodeError{Kind: KindOracle, Reason: "read pull feed", Err: err}
	}

	// slot == 0 说明 feed 从未产生过结果
	if feed.Result.Slot == 0 {
		return nil, newDecodeError(KindOracle, "feed has no result (slot=0)")
	}

	return &OracleValueRecord{
		Value:               i128ToDecimal(feed.Result.Value, consts.SwitchboardPrecision),
		StdDev:              i128ToDecimal(feed.Result.StdDev, consts.SwitchboardPrecision),
		NumSamples:          feed.Result.NumSamples,
		Slot:                feed.Result.Slot,
		LastUpdateTimestamp: feed.LastUpdateTimestamp,
	}, nil
}

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

// i128ToDecimal 小端补码 i128 → decimal（value × 10^-scale）
func i128ToDecimal(le [16]byte, scale int32) decimal.Decimal {
	var be [16]byte
	for i := range le {
		be[i] = le[15-i]
	}
	n := new(big.Int).SetBytes(be[:])
	if be[0]&0x80 != 0 {
		n.Sub(n, two128)
	}
	return decimal.NewFromBigInt(n, -scale)
}

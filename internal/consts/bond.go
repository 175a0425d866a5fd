package consts

// AccountType stablebond 程序账户的第一个字节
const (
	AccountTypeUninitialized uint8 = iota // 0
	AccountTypeBond                       // 1
	AccountTypeIssuance                   // 2
	AccountTypePayment                    // 3
	AccountTypePaymentFeed                // 4
)

// PaymentFeedType 决定 payment feed PDA 的种子
const (
	PaymentFeedUsdMxn uint8 = iota // 0
	PaymentFeedUsdBrl              // 1
	PaymentFeedUsdEur              // 2
	PaymentFeedUsdGbp              // 3
	PaymentFeedUsd                 // 4
	PaymentFeedStub                // 5
)

var PaymentFeedNames = []string{
	"UsdMxn", // 0
	"UsdBrl", // 1
	"UsdEur", // 2
	"UsdGbp", // 3
	"Usd",    // 4
	"Stub",   // 5
}

func PaymentFeedName(feedType uint8) string {
	if int(feedType) < len(PaymentFeedNames) {
		return PaymentFeedNames[feedType]
	}
	return "Unknown"
}

package core

import "errors"

// ErrInsufficientFunds 付款方余额不足以覆盖全部支出
var ErrInsufficientFunds = errors.New("insufficient funds")

// Payout 单笔支出
type Payout struct {
	To     string
	Amount uint64
}

// Bank 资金划转协作方。Pay 必须整体生效或整体失败，
// 不允许只完成部分支出后返回错误。
type Bank interface {
	Pay(from string, payouts []Payout) error
}

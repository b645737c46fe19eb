// Package bank 提供core.Bank的内存实现，用于本地模式与测试。
package bank

import (
	"sync"

	"github.com/blues/ncp/internal/core"
)

// MemoryBank 内存余额账本。Pay整体生效或整体失败：
// 先校验付款方余额覆盖全部支出，再一次性入账。
// 充值接口不经过logic层的全序锁，账本自带互斥锁。
type MemoryBank struct {
	mu       sync.Mutex
	balances map[string]uint64
}

// NewMemoryBank 创建空账本
func NewMemoryBank() *MemoryBank {
	return &MemoryBank{balances: make(map[string]uint64)}
}

// Deposit 充值，本地模式下由水龙头接口调用
func (b *MemoryBank) Deposit(account string, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[account] += amount
}

// Balance 查询余额
func (b *MemoryBank) Balance(account string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[account]
}

// Pay 实现core.Bank
func (b *MemoryBank) Pay(from string, payouts []core.Payout) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var total uint64
	for _, p := range payouts {
		next := total + p.Amount
		if next < total {
			return core.ErrInsufficientFunds
		}
		total = next
	}
	if b.balances[from] < total {
		return core.ErrInsufficientFunds
	}
	b.balances[from] -= total
	for _, p := range payouts {
		b.balances[p.To] += p.Amount
	}
	return nil
}

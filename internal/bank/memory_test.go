package bank

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/blues/ncp/internal/core"
)

func TestDepositAndBalance(t *testing.T) {
	b := NewMemoryBank()
	if b.Balance("0xa") != 0 {
		t.Fatal("fresh account should have zero balance")
	}

	b.Deposit("0xa", 100)
	b.Deposit("0xa", 50)
	if got := b.Balance("0xa"); got != 150 {
		t.Fatalf("expected balance 150, got %d", got)
	}
}

func TestPayMovesFunds(t *testing.T) {
	b := NewMemoryBank()
	b.Deposit("0xa", 1000)

	err := b.Pay("0xa", []core.Payout{
		{To: "0xb", Amount: 300},
		{To: "0xc", Amount: 700},
	})
	if err != nil {
		t.Fatalf("pay failed: %v", err)
	}

	if b.Balance("0xa") != 0 || b.Balance("0xb") != 300 || b.Balance("0xc") != 700 {
		t.Fatalf("unexpected balances: a=%d b=%d c=%d",
			b.Balance("0xa"), b.Balance("0xb"), b.Balance("0xc"))
	}
}

func TestPayExactBalance(t *testing.T) {
	b := NewMemoryBank()
	b.Deposit("0xa", 100)

	if err := b.Pay("0xa", []core.Payout{{To: "0xb", Amount: 100}}); err != nil {
		t.Fatalf("exact balance should be payable: %v", err)
	}
	if b.Balance("0xa") != 0 {
		t.Fatalf("payer should be drained, balance %d", b.Balance("0xa"))
	}
}

func TestPayAllOrNothing(t *testing.T) {
	b := NewMemoryBank()
	b.Deposit("0xa", 500)

	// 第一笔单独可覆盖，总额不够，整体必须失败
	err := b.Pay("0xa", []core.Payout{
		{To: "0xb", Amount: 400},
		{To: "0xc", Amount: 200},
	})
	if !errors.Is(err, core.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	if b.Balance("0xa") != 500 || b.Balance("0xb") != 0 || b.Balance("0xc") != 0 {
		t.Fatalf("failed pay must not move any funds: a=%d b=%d c=%d",
			b.Balance("0xa"), b.Balance("0xb"), b.Balance("0xc"))
	}
}

func TestPayEmptyPayouts(t *testing.T) {
	b := NewMemoryBank()
	if err := b.Pay("0xa", nil); err != nil {
		t.Fatalf("empty payout list should succeed: %v", err)
	}
}

func TestPayTotalOverflow(t *testing.T) {
	b := NewMemoryBank()
	b.Deposit("0xa", math.MaxUint64)

	// 支出总额回绕uint64，必须整体拒绝
	err := b.Pay("0xa", []core.Payout{
		{To: "0xb", Amount: math.MaxUint64},
		{To: "0xc", Amount: 2},
	})
	if !errors.Is(err, core.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds on wrapping total, got %v", err)
	}
	if b.Balance("0xa") != math.MaxUint64 || b.Balance("0xb") != 0 {
		t.Fatal("rejected pay must not move any funds")
	}
}

func TestConcurrentDepositAndPay(t *testing.T) {
	b := NewMemoryBank()
	b.Deposit("0xa", 1_000_000)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				b.Deposit("0xb", 1)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				_ = b.Pay("0xa", []core.Payout{{To: "0xc", Amount: 1}})
				_ = b.Balance("0xc")
			}
		}()
	}
	wg.Wait()

	if got := b.Balance("0xb"); got != 4000 {
		t.Fatalf("deposits lost under concurrency: got %d, want 4000", got)
	}
	if b.Balance("0xa")+b.Balance("0xc") != 1_000_000 {
		t.Fatalf("funds not conserved: a=%d c=%d", b.Balance("0xa"), b.Balance("0xc"))
	}
}

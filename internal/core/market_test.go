package core_test

import (
	"testing"

	"github.com/blues/ncp/internal/core"
)

func TestListByNonOwner(t *testing.T) {
	c, _ := newTestCore(t, 10)
	id, _ := c.Mint("ipfs://art-1", "art", alice)

	err := c.ListForSale(id, 1000, bob)
	assertCode(t, err, core.CodeNotTokenOwner)
	if _, ok := c.GetPrice(id); ok {
		t.Fatal("failed listing must not appear in the market")
	}
}

func TestListUnknownToken(t *testing.T) {
	c, _ := newTestCore(t, 10)
	err := c.ListForSale(42, 1000, alice)
	assertCode(t, err, core.CodeNotTokenOwner)
}

func TestListZeroPrice(t *testing.T) {
	c, _ := newTestCore(t, 10)
	id, _ := c.Mint("ipfs://art-1", "art", alice)

	err := c.ListForSale(id, 0, alice)
	assertCode(t, err, core.CodeInvalidPrice)
}

func TestListAndGetPrice(t *testing.T) {
	c, _ := newTestCore(t, 10)
	id, _ := c.Mint("ipfs://art-1", "art", alice)

	if err := c.ListForSale(id, 1000, alice); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	price, ok := c.GetPrice(id)
	if !ok || price != 1000 {
		t.Fatalf("expected price 1000, got %d (ok=%v)", price, ok)
	}

	// 重新挂单覆盖价格
	if err := c.ListForSale(id, 2000, alice); err != nil {
		t.Fatalf("relist failed: %v", err)
	}
	price, _ = c.GetPrice(id)
	if price != 2000 {
		t.Fatalf("expected updated price 2000, got %d", price)
	}
}

func TestBuyUnlistedToken(t *testing.T) {
	c, _ := newTestCore(t, 10)
	id, _ := c.Mint("ipfs://art-1", "art", alice)

	err := c.BuyNFT(id, bob)
	assertCode(t, err, core.CodeListingNotFound)
}

func TestBuySplitsPriceBetweenCharityAndSeller(t *testing.T) {
	c, b := newTestCore(t, 30)
	id, _ := c.Mint("ipfs://art-1", "art", alice)
	if err := c.ListForSale(id, 1000000, alice); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	b.Deposit(bob, 1000000)

	if err := c.BuyNFT(id, bob); err != nil {
		t.Fatalf("buy failed: %v", err)
	}

	if got := b.Balance(charity); got != 300000 {
		t.Fatalf("charity cut should be 300000, got %d", got)
	}
	if got := b.Balance(alice); got != 700000 {
		t.Fatalf("seller cut should be 700000, got %d", got)
	}
	if got := b.Balance(bob); got != 0 {
		t.Fatalf("buyer should have spent the full price, balance %d", got)
	}

	newOwner, _ := c.GetOwner(id)
	if newOwner != bob {
		t.Fatalf("buyer should own the token, owner=%s", newOwner)
	}
	if _, ok := c.GetPrice(id); ok {
		t.Fatal("listing must be cleared after a sale")
	}
}

func TestBuySplitTruncates(t *testing.T) {
	c, b := newTestCore(t, 33)
	id, _ := c.Mint("ipfs://art-1", "art", alice)
	if err := c.ListForSale(id, 100, alice); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	b.Deposit(bob, 100)

	if err := c.BuyNFT(id, bob); err != nil {
		t.Fatalf("buy failed: %v", err)
	}

	// 33% of 100 截断为33，卖家得67
	if got := b.Balance(charity); got != 33 {
		t.Fatalf("charity cut should be 33, got %d", got)
	}
	if got := b.Balance(alice); got != 67 {
		t.Fatalf("seller cut should be 67, got %d", got)
	}
}

func TestBuySplitAtLargePrice(t *testing.T) {
	c, b := newTestCore(t, 30)
	id, _ := c.Mint("ipfs://art-1", "art", alice)

	// wei量级的价格，朴素的price*pct会溢出uint64
	const price = uint64(1_000_000_000_000_000_000)
	if err := c.ListForSale(id, price, alice); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	b.Deposit(bob, price)

	if err := c.BuyNFT(id, bob); err != nil {
		t.Fatalf("buy failed: %v", err)
	}

	if got := b.Balance(charity); got != 300_000_000_000_000_000 {
		t.Fatalf("charity cut should be 300000000000000000, got %d", got)
	}
	if got := b.Balance(alice); got != 700_000_000_000_000_000 {
		t.Fatalf("seller cut should be 700000000000000000, got %d", got)
	}
}

func TestBuySplitTruncatesAtLargePrice(t *testing.T) {
	c, b := newTestCore(t, 33)
	id, _ := c.Mint("ipfs://art-1", "art", alice)

	// 不整除100的大额价格，分成向下取整且两笔之和等于价格
	const price = uint64(10_000_000_000_000_000_007)
	if err := c.ListForSale(id, price, alice); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	b.Deposit(bob, price)

	if err := c.BuyNFT(id, bob); err != nil {
		t.Fatalf("buy failed: %v", err)
	}

	const wantCharity = uint64(3_300_000_000_000_000_002) // floor(price*33/100)
	if got := b.Balance(charity); got != wantCharity {
		t.Fatalf("charity cut should be %d, got %d", wantCharity, got)
	}
	if got := b.Balance(alice); got != price-wantCharity {
		t.Fatalf("seller cut should be %d, got %d", price-wantCharity, got)
	}
}

func TestBuyWithInsufficientFunds(t *testing.T) {
	c, b := newTestCore(t, 10)
	id, _ := c.Mint("ipfs://art-1", "art", alice)
	if err := c.ListForSale(id, 1000, alice); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	b.Deposit(bob, 999)

	err := c.BuyNFT(id, bob)
	assertCode(t, err, core.CodeInsufficientFunds)

	// 状态完全不变
	gotOwner, _ := c.GetOwner(id)
	if gotOwner != alice {
		t.Fatalf("failed buy must not change ownership, owner=%s", gotOwner)
	}
	if price, ok := c.GetPrice(id); !ok || price != 1000 {
		t.Fatalf("failed buy must keep the listing, price=%d ok=%v", price, ok)
	}
	if b.Balance(bob) != 999 || b.Balance(alice) != 0 || b.Balance(charity) != 0 {
		t.Fatal("failed buy must not move funds")
	}
}

func TestBuyWhilePaused(t *testing.T) {
	c, b := newTestCore(t, 10)
	id, _ := c.Mint("ipfs://art-1", "art", alice)
	if err := c.ListForSale(id, 1000, alice); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	b.Deposit(bob, 1000)
	if _, err := c.TogglePause(owner); err != nil {
		t.Fatalf("toggle pause failed: %v", err)
	}

	err := c.BuyNFT(id, bob)
	assertCode(t, err, core.CodePaused)
}

func TestTransferClearsStaleListing(t *testing.T) {
	c, b := newTestCore(t, 10)
	id, _ := c.Mint("ipfs://art-1", "art", alice)
	if err := c.ListForSale(id, 1000, alice); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	// 挂单后直接转移，挂单随之失效
	if err := c.Transfer(id, bob, alice); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if _, ok := c.GetPrice(id); ok {
		t.Fatal("transfer must clear the listing")
	}

	buyer := "0x0000000000000000000000000000000000000003"
	b.Deposit(buyer, 1000)
	err := c.BuyNFT(id, buyer)
	assertCode(t, err, core.CodeListingNotFound)
}

package core_test

import (
	"testing"

	"github.com/blues/ncp/internal/bank"
	"github.com/blues/ncp/internal/core"
)

const (
	owner   = "0x00000000000000000000000000000000000000aa"
	charity = "0x00000000000000000000000000000000000000cc"
	alice   = "0x0000000000000000000000000000000000000001"
	bob     = "0x0000000000000000000000000000000000000002"
)

func newTestCore(t *testing.T, pct uint64) (*core.Core, *bank.MemoryBank) {
	t.Helper()
	b := bank.NewMemoryBank()
	c := core.New(core.Params{
		Owner:              owner,
		CharityAddress:     charity,
		DonationPercentage: pct,
	}, b)
	return c, b
}

func assertCode(t *testing.T, err error, want core.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", want)
	}
	code, ok := core.CodeOf(err)
	if !ok {
		t.Fatalf("expected domain error, got %v", err)
	}
	if code != want {
		t.Fatalf("expected code %d, got %d (%v)", want, code, err)
	}
}

func TestMintAssignsSequentialIDs(t *testing.T) {
	c, _ := newTestCore(t, 10)

	id1, err := c.Mint("ipfs://art-1", "art", alice)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if id1 != 1 {
		t.Fatalf("first token ID should be 1, got %d", id1)
	}

	id2, err := c.Mint("ipfs://art-2", "music", bob)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if id2 != 2 {
		t.Fatalf("second token ID should be 2, got %d", id2)
	}
	if c.TokenCount() != 2 {
		t.Fatalf("expected 2 tokens, got %d", c.TokenCount())
	}
}

func TestMintRecordsOwnerAndMetadata(t *testing.T) {
	c, _ := newTestCore(t, 10)

	id, err := c.Mint("ipfs://art-1", "art", alice)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	got, ok := c.GetOwner(id)
	if !ok || got != alice {
		t.Fatalf("expected owner %s, got %s (ok=%v)", alice, got, ok)
	}

	meta, ok := c.GetMetadata(id)
	if !ok {
		t.Fatal("metadata not found")
	}
	if meta.Creator != alice || meta.URI != "ipfs://art-1" || meta.Category != "art" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}

func TestMintWhilePaused(t *testing.T) {
	c, _ := newTestCore(t, 10)
	if _, err := c.TogglePause(owner); err != nil {
		t.Fatalf("toggle pause failed: %v", err)
	}

	_, err := c.Mint("ipfs://art-1", "art", alice)
	assertCode(t, err, core.CodePaused)
	if c.TokenCount() != 0 {
		t.Fatalf("paused mint must not allocate a token, count=%d", c.TokenCount())
	}
}

func TestTransferByNonOwner(t *testing.T) {
	c, _ := newTestCore(t, 10)
	id, _ := c.Mint("ipfs://art-1", "art", alice)

	err := c.Transfer(id, bob, bob)
	assertCode(t, err, core.CodeNotTokenOwner)

	got, _ := c.GetOwner(id)
	if got != alice {
		t.Fatalf("failed transfer must not change ownership, owner=%s", got)
	}
}

func TestTransferUnknownToken(t *testing.T) {
	c, _ := newTestCore(t, 10)
	err := c.Transfer(42, bob, alice)
	assertCode(t, err, core.CodeTokenNotFound)
}

func TestTransferWhilePaused(t *testing.T) {
	c, _ := newTestCore(t, 10)
	id, _ := c.Mint("ipfs://art-1", "art", alice)
	if _, err := c.TogglePause(owner); err != nil {
		t.Fatalf("toggle pause failed: %v", err)
	}

	err := c.Transfer(id, bob, alice)
	assertCode(t, err, core.CodePaused)
}

func TestTransferMovesOwnership(t *testing.T) {
	c, _ := newTestCore(t, 10)
	id, _ := c.Mint("ipfs://art-1", "art", alice)

	if err := c.Transfer(id, bob, alice); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	got, _ := c.GetOwner(id)
	if got != bob {
		t.Fatalf("expected owner %s, got %s", bob, got)
	}

	// 新所有者可以继续转移
	if err := c.Transfer(id, alice, bob); err != nil {
		t.Fatalf("second transfer failed: %v", err)
	}
	got, _ = c.GetOwner(id)
	if got != alice {
		t.Fatalf("expected owner %s, got %s", alice, got)
	}
}

func TestTokenIDsNeverReused(t *testing.T) {
	c, _ := newTestCore(t, 10)
	id1, _ := c.Mint("ipfs://art-1", "art", alice)
	if err := c.Transfer(id1, bob, alice); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	id2, _ := c.Mint("ipfs://art-2", "art", alice)
	if id2 <= id1 {
		t.Fatalf("token IDs must be strictly increasing: %d then %d", id1, id2)
	}
}

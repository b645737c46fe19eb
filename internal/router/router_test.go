package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blues/ncp/internal/bank"
	"github.com/blues/ncp/internal/config"
	"github.com/blues/ncp/internal/core"
	"github.com/blues/ncp/internal/handler"
	"github.com/blues/ncp/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	testSecret  = "test-secret"
	ownerAddr   = "0x00000000000000000000000000000000000000aa"
	charityAddr = "0x00000000000000000000000000000000000000cc"
	aliceAddr   = "0x0000000000000000000000000000000000000001"
	bobAddr     = "0x0000000000000000000000000000000000000002"
)

func newTestServer(t *testing.T) (*gin.Engine, *bank.MemoryBank) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	memBank := bank.NewMemoryBank()
	params := core.Params{
		Owner:              ownerAddr,
		CharityAddress:     charityAddr,
		DonationPercentage: 30,
	}
	platform, err := logic.Bootstrap(params, memBank, nil, nil)
	if err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Auth.JwtSecret = testSecret

	return Setup(platform, memBank, cfg), memBank
}

func tokenFor(t *testing.T, addr string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"addr": addr})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func doJSON(t *testing.T, r *gin.Engine, method, path, asAddr string, body interface{}) (*httptest.ResponseRecorder, handler.Response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if asAddr != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, asAddr))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func dataField(t *testing.T, resp handler.Response, key string) float64 {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("response data is not an object: %+v", resp)
	}
	value, ok := data[key].(float64)
	if !ok {
		t.Fatalf("response data has no numeric %q: %+v", key, data)
	}
	return value
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestMutatingRoutesRequireAuth(t *testing.T) {
	r, _ := newTestServer(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/nfts", "", handler.MintRequest{URI: "ipfs://x"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated mint should be 401, got %d", w.Code)
	}
}

func TestMintListBuyFlow(t *testing.T) {
	r, memBank := newTestServer(t)

	// 铸造
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/nfts", aliceAddr,
		handler.MintRequest{URI: "ipfs://art-1", Category: "art"})
	if w.Code != http.StatusCreated || !resp.Success {
		t.Fatalf("mint failed: %d %+v", w.Code, resp)
	}
	tokenID := uint64(dataField(t, resp, "token_id"))
	if tokenID != 1 {
		t.Fatalf("first token ID should be 1, got %d", tokenID)
	}

	// 挂单
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/market/listings", aliceAddr,
		handler.ListRequest{TokenId: tokenID, Price: 1000000})
	if w.Code != http.StatusCreated || !resp.Success {
		t.Fatalf("list failed: %d %+v", w.Code, resp)
	}

	// 余额不足时购买被拒
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/market/listings/1/buy", bobAddr, nil)
	if w.Code != http.StatusPaymentRequired || resp.Code != int(core.CodeInsufficientFunds) {
		t.Fatalf("underfunded buy should be 402/code 106, got %d %+v", w.Code, resp)
	}

	// 充值后购买成功
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/bank/deposits", "",
		handler.DepositRequest{Account: bobAddr, Amount: 1000000})
	if w.Code != http.StatusOK {
		t.Fatalf("deposit failed: %d %+v", w.Code, resp)
	}
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/market/listings/1/buy", bobAddr, nil)
	if w.Code != http.StatusOK || !resp.Success {
		t.Fatalf("buy failed: %d %+v", w.Code, resp)
	}

	// 分账30%
	if got := memBank.Balance(charityAddr); got != 300000 {
		t.Fatalf("charity cut should be 300000, got %d", got)
	}
	if got := memBank.Balance(aliceAddr); got != 700000 {
		t.Fatalf("seller cut should be 700000, got %d", got)
	}

	// 所有权已转移
	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/nfts/1/owner", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner query failed: %d", w.Code)
	}
	data := resp.Data.(map[string]interface{})
	if data["owner"] != bobAddr {
		t.Fatalf("buyer should own the token, got %v", data["owner"])
	}

	// 挂单已清除
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/market/listings/1/buy", aliceAddr, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("sold listing should be gone, got %d", w.Code)
	}
}

func TestCampaignFlow(t *testing.T) {
	r, memBank := newTestServer(t)

	// 非所有者不能创建活动
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/campaigns", aliceAddr,
		handler.CreateCampaignRequest{Name: "救助站", Goal: 1000000, Duration: 86400})
	if w.Code != http.StatusForbidden || resp.Code != int(core.CodeOwnerOnly) {
		t.Fatalf("non-owner create should be 403/code 100, got %d %+v", w.Code, resp)
	}

	// 所有者创建
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/campaigns", ownerAddr,
		handler.CreateCampaignRequest{Name: "救助站", Description: "流浪动物救助", Goal: 1000000, Duration: 86400})
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %+v", w.Code, resp)
	}
	campaignID := uint64(dataField(t, resp, "campaign_id"))
	if campaignID != 1 {
		t.Fatalf("first campaign ID should be 1, got %d", campaignID)
	}

	// 捐赠
	memBank.Deposit(aliceAddr, 500000)
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/donations", aliceAddr,
		handler.DonateRequest{Amount: 500000})
	if w.Code != http.StatusOK || !resp.Success {
		t.Fatalf("donate failed: %d %+v", w.Code, resp)
	}

	// 活动详情与捐赠记录
	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/campaigns/1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("campaign query failed: %d", w.Code)
	}
	if raised := dataField(t, resp, "raised"); raised != 500000 {
		t.Fatalf("raised should be 500000, got %v", raised)
	}
	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/campaigns/1/donations/"+aliceAddr, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("donation history query failed: %d", w.Code)
	}
	if amount := dataField(t, resp, "amount"); amount != 500000 {
		t.Fatalf("donation history should be 500000, got %v", amount)
	}

	// 里程碑
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/milestones", ownerAddr,
		handler.MilestoneRequest{Index: 0, Description: "first", TargetAmount: 500000})
	if w.Code != http.StatusCreated {
		t.Fatalf("add milestone failed: %d %+v", w.Code, resp)
	}
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/milestones/0/check", aliceAddr, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("check milestone failed: %d %+v", w.Code, resp)
	}
	data := resp.Data.(map[string]interface{})
	if data["reached"] != true {
		t.Fatalf("milestone should be reached, got %+v", data)
	}

	// 结束后捐赠被拒
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/end", ownerAddr, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("end failed: %d %+v", w.Code, resp)
	}
	memBank.Deposit(bobAddr, 1000)
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/campaigns/1/donations", bobAddr,
		handler.DonateRequest{Amount: 1000})
	if w.Code != http.StatusNotFound || resp.Code != int(core.CodeCampaignNotFound) {
		t.Fatalf("donation to ended campaign should be 404/code 104, got %d %+v", w.Code, resp)
	}
}

func TestPauseBlocksPublicWrites(t *testing.T) {
	r, _ := newTestServer(t)

	// 非所有者不能暂停
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/admin/pause", aliceAddr, nil)
	if w.Code != http.StatusForbidden || resp.Code != int(core.CodeOwnerOnly) {
		t.Fatalf("non-owner pause should be 403/code 100, got %d %+v", w.Code, resp)
	}

	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/admin/pause", ownerAddr, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pause failed: %d %+v", w.Code, resp)
	}

	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/nfts", aliceAddr,
		handler.MintRequest{URI: "ipfs://art-1"})
	if w.Code != http.StatusServiceUnavailable || resp.Code != int(core.CodePaused) {
		t.Fatalf("paused mint should be 503/code 108, got %d %+v", w.Code, resp)
	}

	// 恢复后可铸造
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/admin/pause", ownerAddr, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("resume failed: %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/nfts", aliceAddr,
		handler.MintRequest{URI: "ipfs://art-1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("mint after resume failed: %d", w.Code)
	}
}

func TestAdminStateEndpoint(t *testing.T) {
	r, _ := newTestServer(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/admin/state", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("state query failed: %d", w.Code)
	}
	data := resp.Data.(map[string]interface{})
	if data["owner"] != ownerAddr || data["charity_address"] != charityAddr {
		t.Fatalf("unexpected admin state: %+v", data)
	}
	if pct := dataField(t, resp, "donation_percentage"); pct != 30 {
		t.Fatalf("donation percentage should be 30, got %v", pct)
	}
}

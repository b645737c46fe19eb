package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/blues/ncp/internal/config"
	"github.com/blues/ncp/internal/core"
	"github.com/blues/ncp/internal/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client 链上结算客户端, 用平台结算私钥发送原生转账
type Client struct {
	client        *ethclient.Client
	privateKey    *ecdsa.PrivateKey
	chainID       *big.Int
	confirmations int
}

func Init(cfg config.ChainConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &Client{
		client:        client,
		privateKey:    privateKey,
		chainID:       big.NewInt(cfg.ChainId),
		confirmations: cfg.Confirmations,
	}, nil
}

// GetAccountAddress 获取结算账户地址
func (c *Client) GetAccountAddress() common.Address {
	return crypto.PubkeyToAddress(c.privateKey.PublicKey)
}

// GetLatestBlock 获取最新区块号
func (c *Client) GetLatestBlock() (uint64, error) {
	header, err := c.client.HeaderByNumber(context.Background(), nil)
	if err != nil {
		return 0, err
	}
	return header.Number.Uint64(), nil
}

// IsTransactionConfirmed 检查交易是否已确认
func (c *Client) IsTransactionConfirmed(txHash common.Hash) (bool, error) {
	receipt, err := c.client.TransactionReceipt(context.Background(), txHash)
	if err != nil {
		return false, err
	}
	if receipt == nil {
		return false, nil
	}

	latestBlock, err := c.GetLatestBlock()
	if err != nil {
		return false, err
	}

	return latestBlock >= receipt.BlockNumber.Uint64()+uint64(c.confirmations), nil
}

// sumPayouts 求支出总额，回绕uint64时按余额不足拒绝
func sumPayouts(payouts []core.Payout) (uint64, error) {
	var total uint64
	for _, p := range payouts {
		next := total + p.Amount
		if next < total {
			return 0, core.ErrInsufficientFunds
		}
		total = next
	}
	return total, nil
}

// Pay 托管模式结算：付款方的资金已预先充值到结算账户，
// 这里校验结算账户余额覆盖全部支出后由结算私钥逐笔划出。
// 第一笔交易广播前任何失败都整体拒绝，不产生链上效果；
// 第一笔广播后结算视为已提交，后续失败只记日志并继续发送剩余支出。
func (c *Client) Pay(from string, payouts []core.Payout) error {
	ctx := context.Background()

	total, err := sumPayouts(payouts)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	settlement := c.GetAccountAddress()
	balance, err := c.client.BalanceAt(ctx, settlement, nil)
	if err != nil {
		return fmt.Errorf("failed to query settlement balance: %w", err)
	}
	if balance.Cmp(new(big.Int).SetUint64(total)) < 0 {
		return core.ErrInsufficientFunds
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed to suggest gas price: %w", err)
	}

	nonce, err := c.client.PendingNonceAt(ctx, settlement)
	if err != nil {
		return fmt.Errorf("failed to fetch nonce: %w", err)
	}

	for i, p := range payouts {
		to := common.HexToAddress(p.To)
		tx := types.NewTransaction(nonce, to, new(big.Int).SetUint64(p.Amount), 21000, gasPrice, nil)

		signedTx, err := types.SignTx(tx, types.NewEIP155Signer(c.chainID), c.privateKey)
		if err == nil {
			err = c.client.SendTransaction(ctx, signedTx)
		}
		if err != nil {
			if i == 0 {
				// 尚无任何交易上链，整体拒绝是安全的
				return fmt.Errorf("failed to send settlement transaction: %w", err)
			}
			// 已有支出上链，结算不可回滚，剩余支出转入人工补偿
			logger.Error("settlement partially broadcast, payout to %s for %d failed, needs manual follow-up: %v",
				p.To, p.Amount, err)
			nonce++
			continue
		}

		logger.Info("settlement transaction sent, from: %s, to: %s, amount: %d, tx: %s",
			from, p.To, p.Amount, signedTx.Hash().Hex())
		nonce++
	}

	return nil
}

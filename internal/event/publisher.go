// Package event 负责已提交操作的领域事件分发：
// 事件在ants协程池上异步处理，落库为只追加的历史记录。
package event

import (
	"github.com/blues/ncp/internal/logger"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Event 领域事件，由logic层在操作提交后发出
type Event struct {
	Type       string
	Actor      string
	TokenId    uint64
	CampaignId uint64
	Amount     uint64
	Data       map[string]interface{}
}

// Publisher 事件分发器
type Publisher struct {
	pool      *ants.Pool
	processor *Processor
}

// NewPublisher 创建事件分发器，db为nil时只记日志不落库
func NewPublisher(db *gorm.DB, poolSize int) (*Publisher, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Publisher{
		pool:      pool,
		processor: NewProcessor(db),
	}, nil
}

// Publish 异步处理事件，提交失败时降级为同步处理，事件不丢失
func (p *Publisher) Publish(e Event) {
	err := p.pool.Submit(func() {
		p.processor.Process(e)
	})
	if err != nil {
		logger.Warn("Failed to submit event %s to pool, processing inline: %v", e.Type, err)
		p.processor.Process(e)
	}
}

// Close 释放协程池
func (p *Publisher) Close() {
	p.pool.Release()
}

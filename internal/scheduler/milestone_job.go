package scheduler

import (
	"time"

	"github.com/blues/ncp/internal/config"
	"github.com/blues/ncp/internal/logger"
	"github.com/blues/ncp/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// MilestoneJob 里程碑巡检任务, 核对未达成的里程碑
type MilestoneJob struct {
	campaignLogic *logic.CampaignLogic
	adminLogic    *logic.AdminLogic
	config        *config.Config
}

// NewMilestoneJob 创建里程碑巡检任务
func NewMilestoneJob(p *logic.Platform, cfg *config.Config) *MilestoneJob {
	return &MilestoneJob{
		campaignLogic: logic.NewCampaignLogic(p),
		adminLogic:    logic.NewAdminLogic(p),
		config:        cfg,
	}
}

// GetName 获取任务名称
func (j *MilestoneJob) GetName() string {
	return "milestone_checker"
}

// GetSchedule 获取调度配置
func (j *MilestoneJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *MilestoneJob) Execute() {
	logger.Debug("Starting milestone check task")

	owner := j.adminLogic.State().Owner

	for key, milestone := range j.campaignLogic.Milestones() {
		if milestone.Reached {
			continue
		}

		reached, err := j.campaignLogic.CheckMilestone(key.CampaignID, key.Index, owner)
		if err != nil {
			logger.Error("Failed to check milestone, campaign: %d, index: %d, error: %v",
				key.CampaignID, key.Index, err)
			continue
		}
		if reached {
			logger.Info("Milestone reached, campaign: %d, index: %d, target: %d",
				key.CampaignID, key.Index, milestone.TargetAmount)
		}
	}
}

package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"pharmacy_admin_v1_202608/internal/repository"
)

// ==================== PrescriptionAgingTask 处方滞留提醒任务 ====================

// 处方超过这个时长还没审核就算滞留
const staleThreshold = 4 * time.Hour

// PrescriptionAgingTask 定时统计滞留未审核的处方并告警
// 处方审核有时效要求，运营靠这条日志接入告警渠道
type PrescriptionAgingTask struct {
	prescriptionRepo repository.PrescriptionRepository
	cron             *cron.Cron
}

// NewPrescriptionAgingTask 创建处方滞留提醒任务
func NewPrescriptionAgingTask(prescriptionRepo repository.PrescriptionRepository) *PrescriptionAgingTask {
	return &PrescriptionAgingTask{
		prescriptionRepo: prescriptionRepo,
		cron:             cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *PrescriptionAgingTask) Start() {
	// 定时策略：每 10 分钟执行
	_, err := t.cron.AddFunc("0 */10 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.execute(ctx)
	})

	if err != nil {
		log.Fatalf("[PrescriptionAgingTask] 无法启动定时任务: %v", err)
	}

	t.cron.Start()
	log.Println("[PrescriptionAgingTask] 处方滞留提醒任务已启动 (每 10 分钟检查)")
}

// Stop 停止任务
func (t *PrescriptionAgingTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[PrescriptionAgingTask] 处方滞留提醒任务已停止")
}

func (t *PrescriptionAgingTask) execute(ctx context.Context) {
	count, err := t.prescriptionRepo.CountStaleUploaded(ctx, staleThreshold)
	if err != nil {
		log.Printf("[PrescriptionAgingTask] 滞留处方统计失败: %v", err)
		return
	}
	if count > 0 {
		log.Printf("[PrescriptionAgingTask] 警告: %d 份处方滞留超过 %v 未审核", count, staleThreshold)
	}
}

package data

import (
	"context"
	"time"

	"randkit/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// runPO 运行记录持久化对象
type runPO struct {
	ID        int64            `gorm:"column:id;primaryKey;autoIncrement:false"`
	Host      string           `gorm:"column:host;size:255"`
	Total     int              `gorm:"column:total"`
	Failed    int              `gorm:"column:failed"`
	ElapsedMs int64            `gorm:"column:elapsed_ms"`
	Report    string           `gorm:"column:report;type:text"`
	StartedAt time.Time        `gorm:"column:started_at;index"`
	Modules   []moduleResultPO `gorm:"foreignKey:RunID"`
}

func (runPO) TableName() string { return "prng_runs" }

// moduleResultPO 模块结果持久化对象
type moduleResultPO struct {
	ID         uint   `gorm:"column:id;primaryKey"`
	RunID      int64  `gorm:"column:run_id;index"`
	Name       string `gorm:"column:name;size:255"`
	Total      int    `gorm:"column:total"`
	Failed     int    `gorm:"column:failed"`
	Errors     int    `gorm:"column:errors"`
	DurationMs int64  `gorm:"column:duration_ms"`
}

func (moduleResultPO) TableName() string { return "prng_module_results" }

func toRunPO(run *biz.Run) *runPO {
	po := &runPO{
		ID:        run.ID,
		Host:      run.Host,
		Total:     run.Summary.Total(),
		Failed:    run.Summary.Failed(),
		ElapsedMs: run.Elapsed.Milliseconds(),
		Report:    run.Report,
		StartedAt: run.StartedAt,
	}
	for _, m := range run.Summary.Modules {
		po.Modules = append(po.Modules, moduleResultPO{
			RunID:      run.ID,
			Name:       m.Name,
			Total:      len(m.Tests),
			Failed:     m.Failed(),
			Errors:     m.ErrorCount(),
			DurationMs: m.Duration().Milliseconds(),
		})
	}
	return po
}

type runRepo struct {
	data *Data
	log  *log.Helper
}

// newRunRepo 创建运行记录仓储并迁移表结构
func newRunRepo(data *Data, logger log.Logger) (*runRepo, error) {
	if err := data.db.AutoMigrate(&runPO{}, &moduleResultPO{}); err != nil {
		return nil, err
	}
	return &runRepo{
		data: data,
		log:  log.NewHelper(log.With(logger, "module", "data/run")),
	}, nil
}

// Publish 在一个事务里写入运行记录和各模块结果
func (r *runRepo) Publish(ctx context.Context, run *biz.Run) error {
	po := toRunPO(run)
	err := r.data.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(po).Error
	})
	if err != nil {
		r.log.Errorf("create run failed: %v", err)
		return err
	}
	r.log.Infof("run %d stored in postgres: %d modules", run.ID, len(po.Modules))
	return nil
}

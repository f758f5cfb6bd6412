// Package conf 定义 prngtest 的配置结构，由 kratos config 从 YAML 扫描得到
package conf

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bootstrap 配置根节点
type Bootstrap struct {
	Harness *Harness `json:"harness"`
	Data    *Data    `json:"data"`
}

func (b *Bootstrap) GetHarness() *Harness {
	if b == nil {
		return nil
	}
	return b.Harness
}

func (b *Bootstrap) GetData() *Data {
	if b == nil {
		return nil
	}
	return b.Data
}

// Harness 测试框架配置
type Harness struct {
	Verbose     bool   `json:"verbose"`
	Color       *bool  `json:"color"`
	LogLevel    string `json:"log_level"`
	LogCapacity int    `json:"log_capacity"`
	MaxTests    int    `json:"max_tests"`
	MaxErrors   int    `json:"max_errors"`
	MaxMessage  int    `json:"max_message"`
	SampleSize  int    `json:"sample_size"`
}

func (h *Harness) GetVerbose() bool {
	if h == nil {
		return false
	}
	return h.Verbose
}

// GetColor 未配置时默认开启
func (h *Harness) GetColor() bool {
	if h == nil || h.Color == nil {
		return true
	}
	return *h.Color
}

func (h *Harness) GetLogLevel() string {
	if h == nil || h.LogLevel == "" {
		return "info"
	}
	return h.LogLevel
}

func (h *Harness) GetLogCapacity() int {
	if h == nil {
		return 0
	}
	return h.LogCapacity
}

func (h *Harness) GetMaxTests() int {
	if h == nil {
		return 0
	}
	return h.MaxTests
}

func (h *Harness) GetMaxErrors() int {
	if h == nil {
		return 0
	}
	return h.MaxErrors
}

func (h *Harness) GetMaxMessage() int {
	if h == nil {
		return 0
	}
	return h.MaxMessage
}

func (h *Harness) GetSampleSize() int {
	if h == nil {
		return 0
	}
	return h.SampleSize
}

// Data 报告落地配置，每一项都是可选的
type Data struct {
	Redis    *Data_Redis    `json:"redis"`
	Rabbitmq *Data_Rabbitmq `json:"rabbitmq"`
	Database *Data_Database `json:"database"`
}

func (d *Data) GetRedis() *Data_Redis {
	if d == nil {
		return nil
	}
	return d.Redis
}

func (d *Data) GetRabbitmq() *Data_Rabbitmq {
	if d == nil {
		return nil
	}
	return d.Rabbitmq
}

func (d *Data) GetDatabase() *Data_Database {
	if d == nil {
		return nil
	}
	return d.Database
}

type Data_Redis struct {
	Addr         string   `json:"addr"`
	Password     string   `json:"password"`
	Db           int32    `json:"db"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
	History      int64    `json:"history"`
}

func (r *Data_Redis) GetAddr() string {
	if r == nil {
		return ""
	}
	return r.Addr
}

func (r *Data_Redis) GetPassword() string {
	if r == nil {
		return ""
	}
	return r.Password
}

func (r *Data_Redis) GetDb() int32 {
	if r == nil {
		return 0
	}
	return r.Db
}

func (r *Data_Redis) GetReadTimeout() Duration {
	if r == nil {
		return 0
	}
	return r.ReadTimeout
}

func (r *Data_Redis) GetWriteTimeout() Duration {
	if r == nil {
		return 0
	}
	return r.WriteTimeout
}

// GetHistory 保留的历史运行条数，默认 100
func (r *Data_Redis) GetHistory() int64 {
	if r == nil || r.History <= 0 {
		return 100
	}
	return r.History
}

type Data_Rabbitmq struct {
	Url      string `json:"url"`
	Exchange string `json:"exchange"`
	Queue    string `json:"queue"`
}

func (r *Data_Rabbitmq) GetUrl() string {
	if r == nil {
		return ""
	}
	return r.Url
}

func (r *Data_Rabbitmq) GetExchange() string {
	if r == nil {
		return ""
	}
	return r.Exchange
}

func (r *Data_Rabbitmq) GetQueue() string {
	if r == nil {
		return ""
	}
	return r.Queue
}

type Data_Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

func (d *Data_Database) GetDriver() string {
	if d == nil {
		return ""
	}
	return d.Driver
}

func (d *Data_Database) GetSource() string {
	if d == nil {
		return ""
	}
	return d.Source
}

// Duration 支持 "200ms" 这样的字符串，也接受纳秒整数
type Duration time.Duration

// AsDuration 转换为 time.Duration
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("conf: invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
	case nil:
		*d = 0
	default:
		return fmt.Errorf("conf: invalid duration %v", v)
	}
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

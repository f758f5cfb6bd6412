package data

import (
	"context"
	"strconv"
	"time"

	"randkit/internal/biz"
	"randkit/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// RoutingKeyRunCompleted 运行结束事件的路由键
	RoutingKeyRunCompleted = "prng.run.completed"
	// EventTypeRunCompleted 事件类型
	EventTypeRunCompleted = "RUN_COMPLETED"
)

// mqSink 把运行结果以 Protobuf 编码发布到 RabbitMQ
type mqSink struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *log.Helper
}

// newMQSink 未配置或连接失败时返回 nil
func newMQSink(c *conf.Data, logger log.Logger) (*mqSink, func()) {
	helper := log.NewHelper(log.With(logger, "module", "data/mq"))

	rc := c.GetRabbitmq()
	if rc.GetUrl() == "" {
		return nil, func() {}
	}

	conn, err := amqp.Dial(rc.GetUrl())
	if err != nil {
		helper.Warnf("failed to connect rabbitmq: %v, mq sink disabled", err)
		return nil, func() {}
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		helper.Warnf("failed to open channel: %v, mq sink disabled", err)
		return nil, func() {}
	}

	err = ch.ExchangeDeclare(
		rc.GetExchange(), // exchange name
		"direct",         // type
		true,             // durable
		false,            // auto-deleted
		false,            // internal
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		helper.Warnf("failed to declare exchange: %v, mq sink disabled", err)
		return nil, func() {}
	}

	// 配置了队列时顺便声明并绑定，方便直接消费
	if q := rc.GetQueue(); q != "" {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			helper.Warnf("failed to declare queue: %v, mq sink disabled", err)
			return nil, func() {}
		}
		if err := ch.QueueBind(q, RoutingKeyRunCompleted, rc.GetExchange(), false, nil); err != nil {
			ch.Close()
			conn.Close()
			helper.Warnf("failed to bind queue: %v, mq sink disabled", err)
			return nil, func() {}
		}
	}

	helper.Infof("rabbitmq connected: exchange=%s queue=%s binding=%s",
		rc.GetExchange(), rc.GetQueue(), RoutingKeyRunCompleted)

	cleanup := func() {
		if err := ch.Close(); err != nil {
			helper.Errorf("failed to close channel: %v", err)
		}
		if err := conn.Close(); err != nil {
			helper.Errorf("failed to close connection: %v", err)
		}
		helper.Info("rabbitmq connection closed")
	}

	return &mqSink{
		conn:     conn,
		channel:  ch,
		exchange: rc.GetExchange(),
		log:      helper,
	}, cleanup
}

// encodeRun 把运行结果编码为 google.protobuf.Struct
func encodeRun(run *biz.Run) ([]byte, error) {
	modules := make([]any, 0, len(run.Summary.Modules))
	for _, m := range run.Summary.Modules {
		modules = append(modules, map[string]any{
			"name":        m.Name,
			"total":       len(m.Tests),
			"failed":      m.Failed(),
			"errors":      m.ErrorCount(),
			"duration_ms": m.Duration().Milliseconds(),
		})
	}
	event, err := structpb.NewStruct(map[string]any{
		"event_type": EventTypeRunCompleted,
		// int64 超出 float64 精度，用字符串传
		"run_id":     strconv.FormatInt(run.ID, 10),
		"host":       run.Host,
		"started_at": run.StartedAt.UTC().Format(time.RFC3339Nano),
		"elapsed_ms": run.Elapsed.Milliseconds(),
		"total":      run.Summary.Total(),
		"failed":     run.Summary.Failed(),
		"failing":    run.Summary.Failing(),
		"modules":    modules,
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(event)
}

// Publish 发布运行结束事件
func (p *mqSink) Publish(ctx context.Context, run *biz.Run) error {
	body, err := encodeRun(run)
	if err != nil {
		p.log.Errorf("marshal event failed: %v", err)
		return err
	}
	p.log.Debugf("event marshaled: size=%d bytes", len(body))

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,             // exchange
		RoutingKeyRunCompleted, // routing key
		false,                  // mandatory
		false,                  // immediate
		amqp.Publishing{
			ContentType:  "application/x-protobuf",
			Type:         EventTypeRunCompleted,
			MessageId:    strconv.FormatInt(run.ID, 10),
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    run.StartedAt,
		},
	)
	if err != nil {
		p.log.Errorf("publish message failed: %v", err)
		return err
	}
	p.log.Infof("run %d published to exchange=%s", run.ID, p.exchange)
	return nil
}

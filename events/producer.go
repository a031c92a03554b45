package events

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Event types published on the lifecycle topic.
const (
	PedidoCreado          = "pedido.creado"
	PedidoEstadoCambiado  = "pedido.estado_cambiado"
	ReservaCreada         = "reserva.creada"
	ReservaEstadoCambiada = "reserva.estado_cambiada"
)

// LifecycleEvent describes an order or reservation state change.
type LifecycleEvent struct {
	Tipo      string    `json:"tipo"`
	EntidadID uint      `json:"entidadId"`
	Estado    string    `json:"estado"`
	UsuarioID uint      `json:"usuarioId"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits lifecycle events. Publishing is best-effort: failures are
// logged, never surfaced to the request.
type Publisher interface {
	Publish(ctx context.Context, evt LifecycleEvent)
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaPublisher returns a publisher for the given brokers, or nil when
// brokers is empty (eventing disabled).
func NewKafkaPublisher(brokers, topic string) *KafkaPublisher {
	if brokers == "" {
		return nil
	}
	w := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	zap.L().Info("Kafka publisher initialized",
		zap.String("topic", topic), zap.String("brokers", brokers))
	return &KafkaPublisher{writer: w, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt LifecycleEvent) {
	if p == nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		zap.L().Warn("Failed to marshal lifecycle event", zap.Error(err))
		return
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(evt.EntidadID), 10)),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		zap.L().Warn("Failed to publish lifecycle event",
			zap.String("tipo", evt.Tipo), zap.Error(err))
	}
}

func (p *KafkaPublisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/jikkosoft/library-service/internal/domain"
	"github.com/jikkosoft/library-service/pkg/breaker"
)

// message is the wire format of a member notification event.
type message struct {
	MemberID int64     `json:"memberId"`
	Email    string    `json:"email"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sentAt"`
}

// KafkaNotifier publishes member notifications to a Kafka topic, guarded by a
// circuit breaker so a struggling broker cannot stall the use cases.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	breaker  *breaker.Breaker
	log      *zap.Logger
}

func NewKafkaNotifier(producer sarama.SyncProducer, topic string, log *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		topic:    topic,
		breaker:  breaker.New(10, 15*time.Second, 0.5, 3),
		log:      log.Named("notify"),
	}
}

func (n *KafkaNotifier) NotifyMember(_ context.Context, member *domain.Member, subject, body string) error {
	payload, err := json.Marshal(message{
		MemberID: member.ID(),
		Email:    member.Email().Value(),
		Subject:  subject,
		Body:     body,
		SentAt:   time.Now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "encode notification")
	}
	return n.breaker.Do(func() error {
		partition, offset, err := n.producer.SendMessage(&sarama.ProducerMessage{
			Topic: n.topic,
			Key:   sarama.StringEncoder(strconv.FormatInt(member.ID(), 10)),
			Value: sarama.ByteEncoder(payload),
		})
		if err != nil {
			return errors.Wrap(err, "send notification")
		}
		n.log.Debug("notification published",
			zap.Int32("partition", partition),
			zap.Int64("offset", offset),
			zap.Int64("member_id", member.ID()))
		return nil
	})
}

func (n *KafkaNotifier) Close() error {
	return n.producer.Close()
}

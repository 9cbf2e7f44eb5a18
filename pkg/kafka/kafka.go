package kafka

import (
	"github.com/IBM/sarama"
)

type Config struct {
	Addrs             []string `yaml:"addrs" envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
	NotificationTopic string   `yaml:"notificationTopic" envconfig:"KAFKA_NOTIFICATION_TOPIC" default:"member-notifications"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

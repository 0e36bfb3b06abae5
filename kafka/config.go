package kafka

import (
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	appconfig "blog-scout/config"
)

// Config Kafka 설정 구조체
type Config struct {
	BootstrapServers string
}

// Producer 기본값 상수 정의
const (
	DefaultProducerAcks      = "all"
	DefaultProducerRetries   = 5
	DefaultProducerBatchSize = 16384
	DefaultProducerLingerMs  = 10
)

// FromApp 은 앱 설정에서 Kafka 설정을 만든다.
// 이벤트 발행은 선택 기능이라 브로커가 비어 있으면 nil 을 반환한다.
func FromApp(cfg *appconfig.AppConfig) *Config {
	if cfg.KafkaBootstrapServers == "" {
		return nil
	}
	return &Config{BootstrapServers: cfg.KafkaBootstrapServers}
}

// ProducerConfig Producer 설정을 반환
func (c *Config) ProducerConfig() kafka.ConfigMap {
	return kafka.ConfigMap{
		"bootstrap.servers": c.BootstrapServers,
		"acks":              DefaultProducerAcks,
		"retries":           DefaultProducerRetries,
		"batch.size":        DefaultProducerBatchSize,
		"linger.ms":         DefaultProducerLingerMs,
	}
}

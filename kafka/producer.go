package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"blog-scout/config"
)

// Producer Kafka 프로듀서 인터페이스
type Producer interface {
	PublishEvent(topic string, key string, event interface{}) error
	Close()
}

// kafkaProducer 는 confluent-kafka-go 라이브러리를 사용한 Producer 구현체다.
type kafkaProducer struct {
	producer *kafka.Producer
}

// NewProducer 는 Kafka Producer 를 초기화한다.
func NewProducer(cfg *Config) (Producer, error) {
	conf := cfg.ProducerConfig()
	p, err := kafka.NewProducer(&conf)
	if err != nil {
		return nil, fmt.Errorf("kafka producer 생성 실패: %w", err)
	}

	// Producer 이벤트를 처리하는 고루틴 (전달 보고서 등)
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					config.Logger.Errorf("메시지 전달 실패 %v: %v", ev.TopicPartition, ev.TopicPartition.Error)
				}
			case kafka.Error:
				config.Logger.Errorf("Kafka 오류: %v", ev)
			}
		}
	}()

	return &kafkaProducer{producer: p}, nil
}

// PublishEvent 는 지정된 토픽에 이벤트를 발행하고 전달 결과를 기다린다.
func (k *kafkaProducer) PublishEvent(topic string, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("이벤트 마샬링 실패: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	defer close(deliveryChan)

	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          data,
		Key:            []byte(key),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("메시지 발행 실패: %w", err)
	}

	// 전달 성공/실패 대기
	ev := <-deliveryChan
	m := ev.(*kafka.Message)
	if m.TopicPartition.Error != nil {
		return fmt.Errorf("메시지 전달 실패: %w", m.TopicPartition.Error)
	}
	return nil
}

// Close 는 Producer 를 안전하게 종료한다.
func (k *kafkaProducer) Close() {
	if k.producer != nil {
		// 5초 동안 남은 메시지를 모두 플러시한다.
		if remaining := k.producer.Flush(5000); remaining > 0 {
			config.Logger.Warnf("플러시 후에도 %d개의 메시지가 남아 있습니다.", remaining)
		}
		k.producer.Close()
		config.Logger.Info("Kafka Producer 종료.")
	}
}

package consumer

import (
	"errors"
	"testing"
	"time"

	"collectionledger/internal/pkg/config"

	kafka "github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLowLevelConsumer struct {
	mock.Mock
}

func (m *MockLowLevelConsumer) SubscribeTopics(topics []string, rebalanceCb kafka.RebalanceCb) error {
	args := m.Called(topics, rebalanceCb)
	return args.Error(0)
}

func (m *MockLowLevelConsumer) ReadMessage(timeout time.Duration) (*kafka.Message, error) {
	args := m.Called(timeout)
	msg := args.Get(0)
	if msg == nil {
		return nil, args.Error(1)
	}
	return msg.(*kafka.Message), args.Error(1)
}

func (m *MockLowLevelConsumer) Close() error {
	args := m.Called()
	return args.Error(0)
}

func mockFactory(cfg *kafka.ConfigMap) (lowLevelConsumer, error) {
	return &MockLowLevelConsumer{}, nil
}

func mockFactoryError(cfg *kafka.ConfigMap) (lowLevelConsumer, error) {
	return nil, errors.New("factory error")
}

func testKafkaConfig() config.KafkaConfig {
	return config.KafkaConfig{
		Server:            "localhost:9092",
		DisbursementTopic: "loan-disbursements",
		SecurityProtocol:  "PLAINTEXT",
		SASLMechanism:     "PLAIN",
		SASLUsername:      "user",
		SASLPassword:      "pass",
		SessionTimeoutMs:  12000,
		ClientID:          "test-client",
		GroupID:           "test-group",
	}
}

func TestNewKafkaConsumerWithFactory(t *testing.T) {
	t.Run("successful creation with mock factory", func(t *testing.T) {
		consumer, err := NewKafkaConsumerWithFactory(testKafkaConfig(), mockFactory)

		assert.NoError(t, err)
		assert.NotNil(t, consumer)
		assert.NotNil(t, consumer.Consumer)
	})

	t.Run("factory error", func(t *testing.T) {
		consumer, err := NewKafkaConsumerWithFactory(testKafkaConfig(), mockFactoryError)

		assert.Error(t, err)
		assert.Nil(t, consumer)
		assert.Contains(t, err.Error(), "factory error")
	})
}

func TestKafkaConsumer_Subscribe(t *testing.T) {
	t.Run("successful subscription", func(t *testing.T) {
		mockConsumer := &MockLowLevelConsumer{}
		mockConsumer.On("SubscribeTopics", []string{"loan-disbursements"},
			mock.AnythingOfType("kafka.RebalanceCb")).Return(nil)

		kc := &KafkaConsumer{Consumer: mockConsumer}
		err := kc.Subscribe("loan-disbursements")

		assert.NoError(t, err)
		mockConsumer.AssertExpectations(t)
	})

	t.Run("subscription error", func(t *testing.T) {
		mockConsumer := &MockLowLevelConsumer{}
		mockConsumer.On("SubscribeTopics", []string{"loan-disbursements"},
			mock.AnythingOfType("kafka.RebalanceCb")).Return(errors.New("subscribe error"))

		kc := &KafkaConsumer{Consumer: mockConsumer}
		err := kc.Subscribe("loan-disbursements")

		assert.Error(t, err)
		mockConsumer.AssertExpectations(t)
	})
}

func TestKafkaConsumer_Consume(t *testing.T) {
	t.Run("successful message consumption", func(t *testing.T) {
		mockConsumer := &MockLowLevelConsumer{}
		mockMessage := &kafka.Message{Value: []byte("test message")}
		mockConsumer.On("ReadMessage", time.Duration(-1)).Return(mockMessage, nil)

		kc := &KafkaConsumer{Consumer: mockConsumer}
		msg, err := kc.Consume()

		assert.NoError(t, err)
		assert.Equal(t, mockMessage, msg)
		mockConsumer.AssertExpectations(t)
	})

	t.Run("consumption error", func(t *testing.T) {
		mockConsumer := &MockLowLevelConsumer{}
		mockConsumer.On("ReadMessage", time.Duration(-1)).Return(nil, errors.New("consume error"))

		kc := &KafkaConsumer{Consumer: mockConsumer}
		msg, err := kc.Consume()

		assert.Error(t, err)
		assert.Nil(t, msg)
		mockConsumer.AssertExpectations(t)
	})
}

func TestKafkaConsumer_Close(t *testing.T) {
	mockConsumer := &MockLowLevelConsumer{}
	mockConsumer.On("Close").Return(nil)

	kc := &KafkaConsumer{Consumer: mockConsumer}
	err := kc.Close()

	assert.NoError(t, err)
	mockConsumer.AssertExpectations(t)
}

func TestKafkaConsumer_Interface(t *testing.T) {
	var _ KafkaConsumerInterface = &KafkaConsumer{}
	var _ lowLevelConsumer = &MockLowLevelConsumer{}
}

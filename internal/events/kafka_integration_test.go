//go:build integration

package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"hrcore/internal/events"
	"hrcore/internal/platform/kafka/consumer"
	"hrcore/internal/platform/kafka/producer"
	id "hrcore/pkg/domain"
	"hrcore/pkg/testutil"
	"hrcore/pkg/testutil/containers"
)

// KafkaRoundTripSuite publishes lifecycle events and reads them back through the
// consumer used by `hrctl events tail`.
//
// Justification: partitioning by employee key and the event_type header are only
// visible on a real topic.
type KafkaRoundTripSuite struct {
	suite.Suite
	kafka *containers.KafkaContainer
}

func TestKafkaRoundTripSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaRoundTripSuite))
}

func (s *KafkaRoundTripSuite) SetupSuite() {
	s.kafka = containers.GetManager().GetKafka(s.T())
}

var errDone = errors.New("done")

func (s *KafkaRoundTripSuite) TestPublishedEventsAreConsumedInOrder() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	topic := "hr.lifecycle.roundtrip"
	s.Require().NoError(s.kafka.CreateTopic(ctx, topic, 3))

	prod, err := producer.New(producer.DefaultConfig(s.kafka.Brokers), nil)
	s.Require().NoError(err)
	metrics := events.NewMetrics(prometheus.NewRegistry())
	publisher := events.NewKafka(prod, topic, events.WithMetrics(metrics))

	employeeID := id.NewEmployeeID()
	published := []events.Type{events.EmployeeCreated, events.ProfessionUpdated, events.EmployeeDeactivated}
	for _, t := range published {
		publisher.Publish(ctx, events.New(t, employeeID, testutil.FixedNow, map[string]string{"source": "test"}))
	}
	s.Require().NoError(prod.Close())

	var (
		got     []events.Type
		headers []string
	)
	c, err := consumer.New(consumer.Config{
		Brokers:   s.kafka.Brokers,
		GroupID:   "roundtrip-test",
		Topics:    []string{topic},
		FromStart: true,
	}, consumer.HandlerFunc(func(_ context.Context, msg *consumer.Message) error {
		e, err := events.Decode(msg.Value)
		if err != nil {
			return err
		}
		s.Equal(employeeID.String(), string(msg.Key))
		got = append(got, e.Type)
		headers = append(headers, msg.Headers[events.HeaderEventType])
		if len(got) == len(published) {
			return errDone
		}
		return nil
	}), nil)
	s.Require().NoError(err)
	defer c.Close()

	s.ErrorIs(c.Run(ctx), errDone)
	s.Equal(published, got)
	s.Equal([]string{"employee.created", "profession.updated", "employee.deactivated"}, headers)
}

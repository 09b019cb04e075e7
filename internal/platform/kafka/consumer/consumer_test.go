package consumer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

func TestNewValidatesConfig(t *testing.T) {
	h := HandlerFunc(nil)
	cases := []Config{
		{},
		{Brokers: []string{"localhost:9092"}},
		{Brokers: []string{"localhost:9092"}, GroupID: "hrctl"},
	}
	for _, cfg := range cases {
		_, err := New(cfg, h, nil)
		assert.Error(t, err)
	}
}

func TestFromRecord(t *testing.T) {
	ts := time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)
	msg := fromRecord(&kgo.Record{
		Topic:     "hr.lifecycle",
		Partition: 2,
		Offset:    41,
		Key:       []byte("emp-1"),
		Value:     []byte(`{"type":"employee.created"}`),
		Headers:   []kgo.RecordHeader{{Key: "event_type", Value: []byte("employee.created")}},
		Timestamp: ts,
	})

	require.NotNil(t, msg)
	assert.Equal(t, int32(2), msg.Partition)
	assert.Equal(t, int64(41), msg.Offset)
	assert.Equal(t, "employee.created", msg.Headers["event_type"])
	assert.Equal(t, ts, msg.Timestamp)
}

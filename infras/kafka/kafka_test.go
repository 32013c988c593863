package kafka_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venus/infras/kafka"
)

type statusChanged struct {
	ReservationID string `json:"reservationId"`
	Status        string `json:"status"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "res1", Value: statusChanged{ReservationID: "res1", Status: "CONFIRMED"}}

	encoded, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"reservationId":"res1","status":"CONFIRMED"}`, string(encoded.Value))

	key, decoded, err := kafka.DecodeKafkaMessage[statusChanged](encoded)
	require.NoError(t, err)
	assert.Equal(t, "res1", key)
	assert.Equal(t, "CONFIRMED", decoded.Status)
}

func TestToKafkaMessage_Unmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "bad", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

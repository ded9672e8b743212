package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_QueuesJob(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	svc := &Service{redis: client, from: "noreply@example.com", fromName: "Activity Booking"}

	redisMock.Regexp().ExpectLPush(queueKey, `.*"subject":"Booking confirmed".*`).SetVal(1)

	err := svc.Send(context.Background(), "alice@example.com", "Alice", "Booking confirmed", "See you there.")
	require.NoError(t, err)
	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestSend_RedisDown(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	svc := &Service{redis: client}

	redisMock.Regexp().ExpectLPush(queueKey, `.*`).SetErr(assert.AnError)

	err := svc.Send(context.Background(), "alice@example.com", "Alice", "Booking confirmed", "See you there.")
	assert.Error(t, err)
}

func TestProcessNext_DeliversWithoutSMTP(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	// Empty smtpHost means delivery is a logged no-op, so the job must
	// leave the queue without being requeued or parked.
	svc := &Service{redis: client}

	payload, err := json.Marshal(Job{
		To:      "alice@example.com",
		Name:    "Alice",
		Subject: "Booking confirmed",
		Body:    "See you there.",
		Created: time.Now(),
	})
	require.NoError(t, err)

	redisMock.ExpectBRPop(2*time.Second, queueKey).SetVal([]string{queueKey, string(payload)})

	svc.processNext(context.Background())
	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProcessNext_EmptyQueue(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	svc := &Service{redis: client}

	redisMock.ExpectBRPop(2*time.Second, queueKey).RedisNil()

	svc.processNext(context.Background())
	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProcessNext_BadPayloadDropped(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	svc := &Service{redis: client}

	redisMock.ExpectBRPop(2*time.Second, queueKey).SetVal([]string{queueKey, "{not json"})

	svc.processNext(context.Background())
	require.NoError(t, redisMock.ExpectationsWereMet())
}

package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []Event
	err error
}

func (r *recorder) Publish(_ context.Context, e Event) error {
	r.got = append(r.got, e)
	return r.err
}

func TestNew(t *testing.T) {
	e := New(BookingCreated, 7, Data{BookingID: 3, ListingID: 2})

	assert.Len(t, e.ID, 36)
	assert.Equal(t, BookingCreated, e.Type)
	assert.Equal(t, int64(7), e.RecipientID)
	assert.False(t, e.OccurredAt.IsZero())
}

func TestMulti_DeliversToAllAndJoinsErrors(t *testing.T) {
	ok := &recorder{}
	failing := &recorder{err: errors.New("broker down")}
	m := Multi{ok, nil, failing, Nop{}}

	err := m.Publish(context.Background(), New(ReviewPosted, 1, Data{ReviewID: 9}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Len(t, ok.got, 1)
	assert.Len(t, failing.got, 1)
}

func TestKafkaMessage(t *testing.T) {
	e := New(BookingUpdated, 42, Data{BookingID: 5, Status: "confirmed"})

	msg, err := message(e)
	require.NoError(t, err)
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, "booking.updated", string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "booking.updated", decoded["type"])
	assert.Equal(t, map[string]any{"booking_id": float64(5), "status": "confirmed"}, decoded["data"])
}

package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	sent    []published
	err     error
	drained bool
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{subj, data})
	return nil
}

func (f *fakeConn) Drain() error {
	f.drained = true
	return nil
}

func TestNATSPublisher_Publish(t *testing.T) {
	nc := &fakeConn{}
	p := newPublisher(nc, "airline")

	p.Publish(ReservationCreated, map[string]string{"reservation_id": "R0001", "status": "reserved"})

	require.Len(t, nc.sent, 1)
	assert.Equal(t, "airline.reservation.created", nc.sent[0].subject)
	var got map[string]string
	require.NoError(t, json.Unmarshal(nc.sent[0].data, &got))
	assert.Equal(t, "R0001", got["reservation_id"])

	require.NoError(t, p.Close())
	assert.True(t, nc.drained)
}

func TestNATSPublisher_Subject(t *testing.T) {
	assert.Equal(t, "repair.logged", newPublisher(&fakeConn{}, "").Subject(RepairLogged))
	assert.Equal(t, "ops.maintenance_request.created", newPublisher(&fakeConn{}, "ops").Subject(MaintenanceRequestCreated))
}

func TestNATSPublisher_FailuresAreSwallowed(t *testing.T) {
	nc := &fakeConn{err: errors.New("connection closed")}
	p := newPublisher(nc, "airline")

	assert.NotPanics(t, func() {
		p.Publish(RepairLogged, map[string]int{"repair_id": 1})
		p.Publish(RepairLogged, func() {}) // not encodable
	})
	assert.Empty(t, nc.sent)
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect("nats://127.0.0.1:1", "airline")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	p.Publish(ReservationCreated, nil)
}

package parcel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusNext(t *testing.T) {
	assert.Equal(t, StatusPaid, StatusSubmitted.Next())
	assert.Equal(t, StatusAssigned, StatusPaid.Next())
	assert.Equal(t, StatusInTransit, StatusAssigned.Next())
	assert.Equal(t, StatusDelivered, StatusInTransit.Next())
	assert.Equal(t, Status(""), StatusDelivered.Next(), "delivered is terminal")
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range GetAllStatuses() {
		assert.True(t, s.IsValid())
	}
	assert.False(t, Status("picked-up").IsValid(), "picked-up is a ledger write value, not a parcel status")
	assert.False(t, Status("").IsValid())
}

func TestStatusCanAssign(t *testing.T) {
	assert.True(t, StatusSubmitted.CanAssign())
	assert.True(t, StatusPaid.CanAssign())
	assert.False(t, StatusAssigned.CanAssign())
	assert.False(t, StatusInTransit.CanAssign())
	assert.False(t, StatusDelivered.CanAssign())
}

func TestEarning(t *testing.T) {
	intra := Parcel{SenderRegion: "Dhaka", ReceiverRegion: "Dhaka", DeliveryCost: 100}
	assert.InDelta(t, 80.0, intra.Earning(), 1e-9)

	cross := Parcel{SenderRegion: "Dhaka", ReceiverRegion: "Sylhet", DeliveryCost: 100}
	assert.InDelta(t, 30.0, cross.Earning(), 1e-9)
}

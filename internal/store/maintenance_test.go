package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airline-ops-backend/internal/domain"
	"airline-ops-backend/internal/model"
)

func TestMaintenance_RequestThenRepairAreIndependent(t *testing.T) {
	db, store := newSQLiteStore(t)
	ctx := context.Background()

	req, err := store.SubmitRequest(ctx, RequestInput{PlaneID: "PL9", RepairCode: "RC3", PilotID: "P001"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), req.RequestID)
	assert.Equal(t, "2024-03-09", req.RequestDate)
	assert.Equal(t, "P001", req.PilotID)

	rep, err := store.LogRepair(ctx, RepairInput{PlaneID: "PL9", RepairCode: "RC3", TechnicianID: "T001"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rep.RepairID)
	assert.Equal(t, "2024-03-09", rep.RepairDate)
	assert.Equal(t, "T001", rep.TechnicianID)

	var stored model.MaintenanceRequest
	require.NoError(t, db.Take(&stored, "request_id = ?", req.RequestID).Error)
	assert.Equal(t, *req, stored, "logging a repair leaves the request untouched")

	var repairs int64
	require.NoError(t, db.Model(&model.Repair{}).Count(&repairs).Error)
	assert.Equal(t, int64(1), repairs)
}

func TestMaintenance_SequentialIDs(t *testing.T) {
	_, store := newSQLiteStore(t)

	for want := int64(1); want <= 3; want++ {
		rep, err := store.LogRepair(context.Background(), RepairInput{PlaneID: "PL10", RepairCode: "RC1", TechnicianID: "T001"})
		require.NoError(t, err)
		assert.Equal(t, want, rep.RepairID)
	}
}

func TestMaintenance_InvalidReferences(t *testing.T) {
	_, store := newSQLiteStore(t)
	ctx := context.Background()

	testCases := []struct {
		name     string
		run      func() error
		resource string
	}{
		{"unknown plane", func() error {
			_, err := store.SubmitRequest(ctx, RequestInput{PlaneID: "PL404", RepairCode: "RC3", PilotID: "P001"})
			return err
		}, "plane"},
		{"unknown pilot", func() error {
			_, err := store.SubmitRequest(ctx, RequestInput{PlaneID: "PL9", RepairCode: "RC3", PilotID: "P999"})
			return err
		}, "pilot"},
		{"unknown technician", func() error {
			_, err := store.LogRepair(ctx, RepairInput{PlaneID: "PL9", RepairCode: "RC3", TechnicianID: "T999"})
			return err
		}, "technician"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.Error(t, err)
			assert.True(t, domain.IsNotFound(err))
			assert.Equal(t, tc.resource, domain.NotFoundResource(err))
		})
	}

	_, err := store.LogRepair(ctx, RepairInput{PlaneID: "PL9", RepairCode: "", TechnicianID: "T001"})
	assert.True(t, domain.IsValidation(err))

	_, err = store.SubmitRequest(ctx, RequestInput{PlaneID: "PL9", RepairCode: "RC3", PilotID: "T001"})
	assert.True(t, domain.IsValidation(err))
}

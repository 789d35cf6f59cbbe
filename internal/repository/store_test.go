package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipstream/invoice-extractor/internal/entity"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	date := "2025-11-24"
	shipments := []entity.Shipment{
		{Identifier: "1Z999AA10123456784", ShipmentDate: &date, Costs: []entity.CostItem{}},
		{Identifier: "1Z888BB20123456789", Costs: []entity.CostItem{}},
	}
	run := RunFor(uuid.New(), "/invoices/nov.pdf", 6, len(shipments),
		[]string{"1Z888BB20123456789: shipment_date: unrecognized \"morgen\""},
		time.Now().UTC().Add(-time.Second))

	require.NoError(t, s.SaveRun(ctx, run, shipments))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, "/invoices/nov.pdf", runs[0].SourcePath)
	assert.Equal(t, 6, runs[0].Pages)
	assert.Equal(t, 2, runs[0].ShipmentCount)
	assert.Equal(t, "OK", runs[0].Status)
	require.Len(t, runs[0].Warnings, 1)
	require.NotNil(t, runs[0].FinishedAt)
}

func TestShipmentsByIdentifier(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	gross := 5.5
	sh := entity.Shipment{
		Identifier:  "1Z999AA10123456784",
		GrossWeight: &gross,
		Costs:       []entity.CostItem{},
	}
	run := RunFor(uuid.New(), "/invoices/nov.pdf", 2, 1, nil, time.Now().UTC())
	require.NoError(t, s.SaveRun(ctx, run, []entity.Shipment{sh}))

	got, err := s.ShipmentsByIdentifier(ctx, "1Z999AA10123456784")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sh, got[0])

	none, err := s.ShipmentsByIdentifier(ctx, "1Z000XX00000000000")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRunForStatus(t *testing.T) {
	started := time.Now().UTC()
	ok := RunFor(uuid.New(), "a.pdf", 3, 2, nil, started)
	assert.Equal(t, "OK", ok.Status)

	empty := RunFor(uuid.New(), "b.pdf", 1, 0, []string{"no shipments extracted"}, started)
	assert.Equal(t, "EMPTY", empty.Status)
}

package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caredesk/clinic-portal/internal/core"
	"github.com/caredesk/clinic-portal/internal/domain/model"
	"github.com/caredesk/clinic-portal/internal/testutil"
)

func TestLabOrderRepo_Lifecycle(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		clinic := createTestClinic(t, db)
		patient, err := NewPatientRepo(db).Create(ctx, clinic.ID, &model.CreatePatientRequest{Name: "Pat"})
		require.NoError(t, err)

		repo := NewLabOrderRepo(db)

		order, err := repo.Create(ctx, clinic.ID, "doc-1", &model.CreateLabOrderRequest{
			PatientID: patient.ID,
			TestName:  "CBC",
		})
		require.NoError(t, err)
		assert.Equal(t, model.LabOrderOrdered, order.Status)
		assert.Nil(t, order.CompletedAt)

		inProgress, err := repo.SetStatus(ctx, clinic.ID, order.ID, model.LabOrderInProgress)
		require.NoError(t, err)
		assert.Equal(t, model.LabOrderInProgress, inProgress.Status)

		done, err := repo.RecordResult(ctx, core.RecordLabResultParams{
			ClinicID:    clinic.ID,
			ID:          order.ID,
			Result:      json.RawMessage(`{"wbc": 15.2}`),
			Flags:       []string{"wbc_high"},
			CompletedAt: time.Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, model.LabOrderCompleted, done.Status)
		assert.Equal(t, []string{"wbc_high"}, done.Flags)
		require.NotNil(t, done.CompletedAt)

		list, err := repo.List(ctx, &model.LabOrdersListOptions{
			ClinicID:  clinic.ID,
			PatientID: &patient.ID,
		})
		require.NoError(t, err)
		require.Len(t, list, 1)

		_, err = repo.RecordResult(ctx, core.RecordLabResultParams{
			ClinicID:    clinic.ID,
			ID:          "00000000-0000-0000-0000-000000000000",
			Result:      json.RawMessage(`{}`),
			CompletedAt: time.Now(),
		})
		assert.ErrorIs(t, err, ErrLabOrderNotFound)
	})
}

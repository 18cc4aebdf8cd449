package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caredesk/clinic-portal/internal/domain/model"
	"github.com/caredesk/clinic-portal/internal/testutil"
)

func createTestClinic(t *testing.T, db *sql.DB) *model.Clinic {
	t.Helper()
	cr := NewClinicRepo(db)
	c, err := cr.Create(context.Background(), fmt.Sprintf("clinic-%d", time.Now().UnixNano()))
	require.NoError(t, err)
	return c
}

func TestPatientRepo_Create_Get_List_Update_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewPatientRepo(db)
		clinic := createTestClinic(t, db)

		p, err := repo.Create(ctx, clinic.ID, &model.CreatePatientRequest{
			Name:  "Jane Doe",
			Email: testutil.StringPtr("jane@example.com"),
			Phone: testutil.StringPtr("555-0100"),
		})
		require.NoError(t, err)
		require.NotEmpty(t, p.ID)
		assert.Equal(t, clinic.ID, p.ClinicID)
		assert.NotZero(t, p.CreatedAt)

		got, err := repo.GetByID(ctx, clinic.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.Name)

		// reads are clinic-scoped
		other := createTestClinic(t, db)
		_, err = repo.GetByID(ctx, other.ID, p.ID)
		assert.ErrorIs(t, err, ErrPatientNotFound)

		list, err := repo.List(ctx, &model.PatientsListOptions{
			ClinicID: clinic.ID,
			Q:        testutil.StringPtr("jane"),
		})
		require.NoError(t, err)
		require.Len(t, list, 1)

		count, err := repo.Count(ctx, &model.PatientsListOptions{ClinicID: clinic.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		updated, err := repo.Update(ctx, clinic.ID, p.ID, &model.UpdatePatientRequest{
			Name: testutil.StringPtr("Jane A. Doe"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Jane A. Doe", updated.Name)
		assert.Equal(t, "jane@example.com", *updated.Email)

		deleted, err := repo.Delete(ctx, clinic.ID, p.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, clinic.ID, p.ID)
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})
}

func TestPatientRepo_CreateValidation(t *testing.T) {
	repo := NewPatientRepo(nil)

	_, err := repo.Create(context.Background(), "c1", nil)
	assert.Error(t, err)

	_, err = repo.Create(context.Background(), "c1", &model.CreatePatientRequest{Name: "   "})
	assert.Error(t, err)

	_, err = repo.Create(context.Background(), "c1", &model.CreatePatientRequest{
		Name:  "Jane",
		Email: testutil.StringPtr("not-an-email"),
	})
	assert.Error(t, err)
}

func TestPatientRepo_DuplicateEmailInClinic(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewPatientRepo(db)
		clinic := createTestClinic(t, db)

		_, err := repo.Create(ctx, clinic.ID, &model.CreatePatientRequest{
			Name:  "Jane",
			Email: testutil.StringPtr("dup@example.com"),
		})
		require.NoError(t, err)

		_, err = repo.Create(ctx, clinic.ID, &model.CreatePatientRequest{
			Name:  "Other Jane",
			Email: testutil.StringPtr("dup@example.com"),
		})
		assert.ErrorIs(t, err, ErrDuplicateRecord)
	})
}

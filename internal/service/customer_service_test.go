package service_test

import (
	"context"
	"testing"

	"gamehouse/internal/apierror"
	"gamehouse/internal/dto"
	"gamehouse/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func newCustomerService() (service.CustomerService, *stubCustomerRepo) {
	repo := newStubCustomerRepo()
	return service.NewCustomerService(repo), repo
}

func TestCreateCustomer(t *testing.T) {
	svc, _ := newCustomerService()

	resp, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		FirstName: "Maria", LastName: "Lopez", Phone: "70000002",
	})
	require.NoError(t, err)
	assert.True(t, resp.Active)
	assert.Equal(t, "70000002", resp.Phone)
}

func TestCreateCustomerDuplicatePhone(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateCustomerRequest{FirstName: "Maria", LastName: "Lopez", Phone: "70000002"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateCustomerRequest{FirstName: "Marta", LastName: "Luna", Phone: "70000002"})
	assertKind(t, err, apierror.KindConflict)
}

func TestDeactivatedCustomerFreesPhone(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	first, err := svc.Create(ctx, dto.CreateCustomerRequest{FirstName: "Maria", LastName: "Lopez", Phone: "70000002"})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, mustUUID(t, first.ID)))

	// Phone is unique among ACTIVE customers only
	_, err = svc.Create(ctx, dto.CreateCustomerRequest{FirstName: "Marta", LastName: "Luna", Phone: "70000002"})
	require.NoError(t, err)

	// Reactivating the first now collides
	err = svc.Reactivate(ctx, mustUUID(t, first.ID))
	assertKind(t, err, apierror.KindConflict)
}

func TestUpdateCustomerPhoneCollision(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateCustomerRequest{FirstName: "Maria", LastName: "Lopez", Phone: "70000002"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, dto.CreateCustomerRequest{FirstName: "Marta", LastName: "Luna", Phone: "70000003"})
	require.NoError(t, err)

	taken := "70000002"
	_, err = svc.Update(ctx, mustUUID(t, second.ID), dto.UpdateCustomerRequest{Phone: &taken})
	assertKind(t, err, apierror.KindConflict)
}

func TestUpdateCustomerPartialFields(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateCustomerRequest{FirstName: "Maria", LastName: "Lopez", Phone: "70000002"})
	require.NoError(t, err)

	notes := "VIP, prefers station 3"
	resp, err := svc.Update(ctx, mustUUID(t, created.ID), dto.UpdateCustomerRequest{Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, "Maria", resp.FirstName)
	assert.Equal(t, "70000002", resp.Phone)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, notes, *resp.Notes)
}

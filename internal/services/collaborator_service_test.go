package services

import (
	"context"
	"testing"

	"backoffice/internal/pagination"
	"backoffice/internal/testutil"
)

func TestCollaboratorService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ctx := context.Background()
	svc := NewCollaboratorService(db)

	role, err := svc.CreateRole(ctx, RoleInput{Name: "Backend", Currency: "USD", FeeRate: testutil.Dec("60"), CostRate: testutil.Dec("35")})
	testutil.AssertNoError(t, err)

	c, err := svc.CreateCollaborator(ctx, CollaboratorInput{
		Name: "Ana Torres", DocumentNumber: "10456789", RoleID: &role.ID, WithholdingPercentage: testutil.Dec("8"),
	})
	testutil.AssertNoError(t, err)
	if c.RoleName == nil || *c.RoleName != "Backend" {
		t.Errorf("expected role name Backend, got %v", c.RoleName)
	}

	unassigned, err := svc.CreateCollaborator(ctx, CollaboratorInput{Name: "Luis Diaz"})
	testutil.AssertNoError(t, err)
	if unassigned.RoleName != nil {
		t.Errorf("expected no role name, got %v", *unassigned.RoleName)
	}

	page, err := svc.ListCollaborators(ctx, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if page.TotalCount != 2 {
		t.Errorf("expected 2 collaborators, got %d", page.TotalCount)
	}

	missing := "0190a1b2-0000-7000-8000-000000000321"
	_, err = svc.UpdateCollaborator(ctx, c.ID, CollaboratorInput{Name: "Ana", RoleID: &missing})
	testutil.AssertAppError(t, err, "COLLABORATOR_ROLE_NOT_FOUND")

	role, err = svc.UpdateRole(ctx, role.ID, RoleInput{Name: "Senior Backend", Currency: "USD", FeeRate: testutil.Dec("80"), CostRate: testutil.Dec("50")})
	testutil.AssertNoError(t, err)
	testutil.AssertDecimal(t, "feeRate", role.FeeRate, "80")
}

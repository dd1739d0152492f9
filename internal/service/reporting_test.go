package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbazaar/backend/internal/models"
)

func TestSalesSummary_CountsConfirmedOnly(t *testing.T) {
	r := newTestRepo(t)
	orders := &OrderService{Repo: r}
	vendors := &VendorService{Repo: r}
	ctx := context.Background()

	v1 := seedUser(t, r, "vendor1", models.RoleVendor, true)
	v2 := seedUser(t, r, "vendor2", models.RoleVendor, true)
	student := seedUser(t, r, "student1", models.RoleStudent, true)
	samosa := seedProduct(t, r, v1.ID, "samosa", 50, 100)
	chai := seedProduct(t, r, v1.ID, "chai", 20, 100)
	juice := seedProduct(t, r, v2.ID, "juice", 30, 100)

	confirmedA, err := orders.CreateOrder(ctx, student.ID, []OrderLine{
		{ProductID: samosa.ID, Quantity: 2},
		{ProductID: chai.ID, Quantity: 1},
	}, "")
	require.NoError(t, err)
	confirmedB, err := orders.CreateOrder(ctx, student.ID, []OrderLine{
		{ProductID: samosa.ID, Quantity: 1},
	}, "")
	require.NoError(t, err)
	// This one stays pending and must not count.
	_, err = orders.CreateOrder(ctx, student.ID, []OrderLine{
		{ProductID: chai.ID, Quantity: 5},
	}, "")
	require.NoError(t, err)
	// Another vendor's confirmed order must not leak into v1's report.
	other, err := orders.CreateOrder(ctx, student.ID, []OrderLine{
		{ProductID: juice.ID, Quantity: 1},
	}, "")
	require.NoError(t, err)

	for _, o := range []*models.Order{confirmedA, confirmedB} {
		_, err := orders.ConfirmPayment(ctx, v1.ID, o.ID)
		require.NoError(t, err)
	}
	_, err = orders.ConfirmPayment(ctx, v2.ID, other.ID)
	require.NoError(t, err)

	report, err := vendors.SalesSummary(ctx, v1.ID)
	require.NoError(t, err)

	assert.InDelta(t, 2*50+1*20+1*50, report.Summary.TotalSales, 1e-9)
	assert.EqualValues(t, 2, report.Summary.TotalOrders)

	require.Len(t, report.ProductSales, 2)
	byProduct := map[uint]ProductTotals{}
	for _, row := range report.ProductSales {
		byProduct[row.ProductID] = ProductTotals{Qty: row.TotalQuantitySold, Revenue: row.TotalRevenue}
	}
	assert.EqualValues(t, 3, byProduct[samosa.ID].Qty)
	assert.InDelta(t, 150, byProduct[samosa.ID].Revenue, 1e-9)
	assert.EqualValues(t, 1, byProduct[chai.ID].Qty)
	assert.InDelta(t, 20, byProduct[chai.ID].Revenue, 1e-9)
}

type ProductTotals struct {
	Qty     int64
	Revenue float64
}

func TestVendorProfileUpdate_KeepsUnsetFields(t *testing.T) {
	r := newTestRepo(t)
	svc := &VendorService{Repo: r}
	ctx := context.Background()

	vendor := seedUser(t, r, "vendor1", models.RoleVendor, true)
	_, err := svc.UpdateProfile(ctx, vendor.ID, ProfilePatch{UpiID: "vendor1@upi", QRCodeURL: "http://img.test/qr"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, vendor.ID, ProfilePatch{ShopName: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.ShopName)
	assert.Equal(t, "vendor1@upi", updated.UpiID)
	assert.Equal(t, "http://img.test/qr", updated.QRCodeURL)
}

func TestAdminApproval(t *testing.T) {
	r := newTestRepo(t)
	svc := &AdminService{Repo: r}
	ctx := context.Background()

	vendor := seedUser(t, r, "vendor1", models.RoleVendor, false)
	student := seedUser(t, r, "student1", models.RoleStudent, true)

	approved, err := svc.SetApproval(ctx, vendor.ID, ApprovalApprove)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	rejected, err := svc.SetApproval(ctx, vendor.ID, ApprovalReject)
	require.NoError(t, err)
	assert.False(t, rejected.IsApproved)

	_, err = svc.SetApproval(ctx, vendor.ID, "maybe")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SetApproval(ctx, student.ID, ApprovalApprove)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SetApproval(ctx, 999, ApprovalApprove)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboardStats(t *testing.T) {
	r := newTestRepo(t)
	adminSvc := &AdminService{Repo: r}
	orders := &OrderService{Repo: r}
	ctx := context.Background()

	v1 := seedUser(t, r, "vendor1", models.RoleVendor, true)
	seedUser(t, r, "vendor2", models.RoleVendor, false)
	s1 := seedUser(t, r, "student1", models.RoleStudent, true)
	seedUser(t, r, "student2", models.RoleStudent, true)
	samosa := seedProduct(t, r, v1.ID, "samosa", 50, 100)

	confirmed, err := orders.CreateOrder(ctx, s1.ID, []OrderLine{{ProductID: samosa.ID, Quantity: 2}}, "")
	require.NoError(t, err)
	_, err = orders.ConfirmPayment(ctx, v1.ID, confirmed.ID)
	require.NoError(t, err)
	pending, err := orders.CreateOrder(ctx, s1.ID, []OrderLine{{ProductID: samosa.ID, Quantity: 1}}, "")
	require.NoError(t, err)

	stats, err := adminSvc.Dashboard(ctx)
	require.NoError(t, err)

	// Only the approved vendor counts.
	assert.EqualValues(t, 1, stats.TotalVendors)
	assert.EqualValues(t, 2, stats.TotalStudents)
	assert.InDelta(t, 100, stats.TotalSales, 1e-9)
	assert.EqualValues(t, 1, stats.TotalOrders)

	// Latest invoices include pending ones, newest first.
	require.Len(t, stats.LatestInvoices, 2)
	assert.Equal(t, pending.ID, stats.LatestInvoices[0].ID)
	assert.Equal(t, "student1", stats.LatestInvoices[0].StudentName)

	invoices, err := adminSvc.Invoices(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
}

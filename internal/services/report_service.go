package services

import (
	"context"
	"io"

	"GearGodAPI/internal/model"
	"GearGodAPI/internal/repository"

	"github.com/pkg/errors"
	"github.com/tealeg/xlsx"
)

const topProductsLimit = 5

type ReportService struct {
	Repo    *repository.ReportRepository
	Coupons *repository.CouponRepository
	Orders  *repository.OrderRepository
}

func NewReportService(r *repository.ReportRepository, cr *repository.CouponRepository, or *repository.OrderRepository) *ReportService {
	return &ReportService{Repo: r, Coupons: cr, Orders: or}
}

// Dashboard aggregates the admin overview. Revenue counts processing and
// completed orders only.
func (s *ReportService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	count, revenue, err := s.Repo.OrderTotals(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.Repo.OrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.Coupons.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.Repo.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, err
	}
	return &model.DashboardStats{
		TotalOrders:   count,
		Revenue:       revenue,
		ActiveCoupons: active,
		ByStatus:      byStatus,
		TopProducts:   top,
	}, nil
}

var orderExportHeaders = []string{
	"Order ID", "User ID", "First Name", "Last Name", "Phone", "Shipping Address",
	"Payment Method", "Coupon", "Status", "Total", "Created At",
}

// WriteOrdersXLSX writes every order as one spreadsheet row.
func (s *ReportService) WriteOrdersXLSX(ctx context.Context, w io.Writer) error {
	orders, err := s.Orders.ListOrders(ctx, nil, 0, 0)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return errors.Wrap(err, "add sheet")
	}

	headerRow := sheet.AddRow()
	for _, h := range orderExportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.OrderID)
		if o.UserID != nil {
			row.AddCell().SetValue(*o.UserID)
		} else {
			row.AddCell().SetValue("guest")
		}
		row.AddCell().SetValue(o.FirstName)
		row.AddCell().SetValue(o.LastName)
		row.AddCell().SetValue(o.Phone)
		row.AddCell().SetValue(o.ShippingAddress)
		row.AddCell().SetValue(o.PaymentMethod)
		if o.CouponCode != nil {
			row.AddCell().SetValue(*o.CouponCode)
		} else {
			row.AddCell().SetValue("")
		}
		row.AddCell().SetValue(string(o.OrderStatus))
		row.AddCell().SetValue(o.TotalAmount)
		if o.CreatedAt != nil {
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		} else {
			row.AddCell().SetValue("")
		}
	}

	return errors.Wrap(file.Write(w), "write xlsx")
}

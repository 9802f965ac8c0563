package main

import (
	"fmt"
	"io"
	"strconv"

	"GearGodAPI/internal/model"

	"github.com/olekukonko/tablewriter"
)

func renderDashboard(w io.Writer, s *model.DashboardStats) error {
	summary := tablewriter.NewWriter(w)
	summary.Header("Metric", "Value")
	summary.Append([]string{"Total orders", strconv.FormatInt(s.TotalOrders, 10)})
	summary.Append([]string{"Revenue", fmt.Sprintf("%.2f", s.Revenue)})
	summary.Append([]string{"Active coupons", strconv.FormatInt(s.ActiveCoupons, 10)})
	if err := summary.Render(); err != nil {
		return err
	}

	byStatus := tablewriter.NewWriter(w)
	byStatus.Header("Status", "Orders")
	for _, sc := range s.ByStatus {
		byStatus.Append([]string{string(sc.Status), strconv.FormatInt(sc.Count, 10)})
	}
	if err := byStatus.Render(); err != nil {
		return err
	}

	top := tablewriter.NewWriter(w)
	top.Header("Product", "Name", "Qty")
	for _, p := range s.TopProducts {
		top.Append([]string{strconv.FormatInt(p.ProductID, 10), p.Name, strconv.FormatInt(p.Quantity, 10)})
	}
	return top.Render()
}

package reconciliation

import (
	"errors"
	"fmt"
	"time"

	"mutabakat-backend/internal/auth"
	"mutabakat-backend/internal/database"
	"mutabakat-backend/internal/models"
	"mutabakat-backend/internal/period"

	"github.com/gofiber/fiber/v2"
)

type RowResponse struct {
	Label              string   `json:"label"`
	Kind               string   `json:"kind"`
	Value              float64  `json:"value"`
	Percentage         *float64 `json:"percentage,omitempty"`
	FromPreviousPeriod bool     `json:"from_previous_period"`
	PeriodUsed         string   `json:"period_used"`
	Hidden             bool     `json:"hidden,omitempty"`
}

type DashboardResponse struct {
	BranchID           uint          `json:"branch_id"`
	Period             string        `json:"period"`
	Income             []RowResponse `json:"income"`
	Expense            []RowResponse `json:"expense"`
	TotalIncome        float64       `json:"total_income"`
	TotalExpense       float64       `json:"total_expense"`
	StockValue         float64       `json:"stock_value"`
	PreviousStockValue float64       `json:"previous_stock_value"`
	StockDelta         float64       `json:"stock_delta"`
	NetFromRevenue     float64       `json:"net_from_revenue"`
	PeriodProfit       float64       `json:"period_profit"`
	UnassignedCount    int           `json:"unassigned_count"`
	UnresolvedCount    int           `json:"unresolved_count"`
}

type StockItemResponse struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Value     float64 `json:"value"`
}

type StockGroupResponse struct {
	Group    string              `json:"group"`
	Items    []StockItemResponse `json:"items"`
	Subtotal float64             `json:"subtotal"`
}

type StockValuationResponse struct {
	BranchID uint                 `json:"branch_id"`
	Period   string               `json:"period"`
	Groups   []StockGroupResponse `json:"groups"`
	Total    float64              `json:"total"`
}

type VoucherAllocationResponse struct {
	VoucherID       uint    `json:"voucher_id"`
	FaceAmount      float64 `json:"face_amount"`
	FirstDate       string  `json:"first_date"`
	LastDate        string  `json:"last_date"`
	PriorRecognized float64 `json:"prior_recognized"`
	LaterRecognized float64 `json:"later_recognized"`
	Portion         float64 `json:"portion"`
	Invoiced        bool    `json:"invoiced"`
	InvoiceDate     *string `json:"invoice_date,omitempty"`
}

type VoucherGroupResponse struct {
	CategoryID    uint                        `json:"category_id"`
	CategoryName  string                      `json:"category_name"`
	MonthlyIncome float64                     `json:"monthly_income"`
	Vouchers      []VoucherAllocationResponse `json:"vouchers"`
	PeriodTotal   float64                     `json:"period_total"`
	Difference    float64                     `json:"difference"`
}

type VoucherReportResponse struct {
	BranchID           uint                   `json:"branch_id"`
	Period             string                 `json:"period"`
	Groups             []VoucherGroupResponse `json:"groups"`
	TotalMonthlyIncome float64                `json:"total_monthly_income"`
	TotalPeriod        float64                `json:"total_period"`
	TotalDifference    float64                `json:"total_difference"`
	VoucherCount       int                    `json:"voucher_count"`
}

type EditablePeriodsResponse struct {
	Current  string   `json:"current"`
	Editable []string `json:"editable"`
}

// -------------------------
// Yardımcı: branch ID çöz
// -------------------------
func resolveBranchIDFromQueryOrRole(c *fiber.Ctx) (uint, error) {
	roleVal := c.Locals(auth.CtxUserRoleKey)
	role, ok := roleVal.(models.UserRole)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
	}

	if role == models.RoleBranchAdmin {
		bVal := c.Locals(auth.CtxBranchIDKey)
		bPtr, ok := bVal.(*uint)
		if !ok || bPtr == nil {
			return 0, fiber.NewError(fiber.StatusForbidden, "Şube bilgisi bulunamadı")
		}
		return *bPtr, nil
	}

	// super_admin
	bidStr := c.Query("branch_id")
	if bidStr == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "branch_id zorunlu")
	}
	var bid uint
	if _, err := fmt.Sscan(bidStr, &bid); err != nil || bid == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "branch_id geçersiz")
	}
	return bid, nil
}

// donem query parametresini "YYMM" olarak çözer. Boşsa içinde bulunulan ay
// kullanılır.
func resolvePeriodFromQuery(c *fiber.Ctx) (period.Period, error) {
	donem := c.Query("donem")
	if donem == "" {
		return period.FromDate(time.Now()), nil
	}
	p, err := period.Parse(donem)
	if err != nil {
		if errors.Is(err, period.ErrInvalidPeriodKey) {
			return "", fiber.NewError(fiber.StatusBadRequest, "donem 'YYMM' formatında olmalı")
		}
		return "", err
	}
	return p, nil
}

func viewForRequest(c *fiber.Ctx) (*View, uint, period.Period, error) {
	branchID, err := resolveBranchIDFromQueryOrRole(c)
	if err != nil {
		return nil, 0, "", err
	}
	target, err := resolvePeriodFromQuery(c)
	if err != nil {
		return nil, 0, "", err
	}
	snap, err := LoadSnapshot(database.DB, branchID)
	if err != nil {
		return nil, 0, "", fiber.NewError(fiber.StatusInternalServerError, "Veriler yüklenemedi")
	}
	return NewView(branchID, snap), branchID, target, nil
}

// GET /reconciliation/dashboard?donem=2508&branch_id=1
func DashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, branchID, target, err := viewForRequest(c)
		if err != nil {
			return err
		}

		rep, err := v.Report(target, auth.CanViewHidden(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor hesaplanamadı")
		}

		resp := DashboardResponse{
			BranchID:           branchID,
			Period:             string(target),
			Income:             toRowResponses(rep.Income),
			Expense:            toRowResponses(rep.Expense),
			TotalIncome:        rep.TotalIncome.InexactFloat64(),
			TotalExpense:       rep.TotalExpense.InexactFloat64(),
			StockValue:         rep.StockValue.InexactFloat64(),
			PreviousStockValue: rep.PreviousStockValue.InexactFloat64(),
			StockDelta:         rep.StockDelta.InexactFloat64(),
			NetFromRevenue:     rep.NetFromRevenue.InexactFloat64(),
			PeriodProfit:       rep.PeriodProfit.InexactFloat64(),
			UnassignedCount:    rep.UnassignedCount,
			UnresolvedCount:    rep.UnresolvedCount,
		}
		return c.JSON(resp)
	}
}

// GET /reconciliation/stock-valuation?donem=2508&branch_id=1
func StockValuationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, branchID, target, err := viewForRequest(c)
		if err != nil {
			return err
		}

		groups := v.StockValuation(target)
		resp := StockValuationResponse{
			BranchID: branchID,
			Period:   string(target),
			Groups:   make([]StockGroupResponse, 0, len(groups)),
		}
		total := 0.0
		for _, g := range groups {
			gr := StockGroupResponse{
				Group:    g.Group,
				Items:    make([]StockItemResponse, 0, len(g.Items)),
				Subtotal: g.Subtotal.InexactFloat64(),
			}
			for _, it := range g.Items {
				gr.Items = append(gr.Items, StockItemResponse{
					Code:      it.Item.Code,
					Name:      it.Item.Name,
					Unit:      it.Item.Unit,
					Quantity:  it.Quantity.InexactFloat64(),
					UnitPrice: it.UnitPrice.InexactFloat64(),
					Value:     it.Value.InexactFloat64(),
				})
			}
			total += gr.Subtotal
			resp.Groups = append(resp.Groups, gr)
		}
		resp.Total = total
		return c.JSON(resp)
	}
}

// GET /reconciliation/vouchers?donem=2508&branch_id=1
func VoucherReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, branchID, target, err := viewForRequest(c)
		if err != nil {
			return err
		}

		sum := v.VoucherReport(target)
		resp := VoucherReportResponse{
			BranchID:           branchID,
			Period:             string(target),
			Groups:             make([]VoucherGroupResponse, 0, len(sum.Groups)),
			TotalMonthlyIncome: sum.TotalMonthlyIncome.InexactFloat64(),
			TotalPeriod:        sum.TotalPeriod.InexactFloat64(),
			TotalDifference:    sum.TotalDifference.InexactFloat64(),
			VoucherCount:       sum.VoucherCount,
		}
		for _, g := range sum.Groups {
			gr := VoucherGroupResponse{
				CategoryID:    g.Category.ID,
				CategoryName:  g.Category.Name,
				MonthlyIncome: g.MonthlyIncome.InexactFloat64(),
				Vouchers:      make([]VoucherAllocationResponse, 0, len(g.Allocations)),
				PeriodTotal:   g.PeriodTotal.InexactFloat64(),
				Difference:    g.Difference.InexactFloat64(),
			}
			for _, a := range g.Allocations {
				ar := VoucherAllocationResponse{
					VoucherID:       a.Voucher.ID,
					FaceAmount:      a.Voucher.FaceAmount.InexactFloat64(),
					FirstDate:       a.Voucher.FirstDate.Format("2006-01-02"),
					LastDate:        a.Voucher.LastDate.Format("2006-01-02"),
					PriorRecognized: a.PriorRecognized.InexactFloat64(),
					LaterRecognized: a.LaterRecognized.InexactFloat64(),
					Portion:         a.Portion.InexactFloat64(),
					Invoiced:        a.Invoiced,
				}
				if a.InvoiceDate != nil {
					d := a.InvoiceDate.Format("2006-01-02")
					ar.InvoiceDate = &d
				}
				gr.Vouchers = append(gr.Vouchers, ar)
			}
			resp.Groups = append(resp.Groups, gr)
		}
		return c.JSON(resp)
	}
}

// GET /periods/editable
// Yazılabilir dönemleri döner: içinde bulunulan dönem her zaman, önceki
// dönem yalnız ayın ilk 5 günü içindeyse.
func EditablePeriodsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		current := period.FromDate(now)

		resp := EditablePeriodsResponse{
			Current:  string(current),
			Editable: []string{string(current)},
		}
		prev := current.Predecessor()
		if period.IsEditable(prev, current, now) {
			resp.Editable = append([]string{string(prev)}, resp.Editable...)
		}
		return c.JSON(resp)
	}
}

func toRowResponses(rows []Row) []RowResponse {
	out := make([]RowResponse, 0, len(rows))
	for _, r := range rows {
		rr := RowResponse{
			Label:              r.Label,
			Kind:               string(r.Kind),
			Value:              r.Value.InexactFloat64(),
			FromPreviousPeriod: r.FromPreviousPeriod,
			PeriodUsed:         string(r.PeriodUsed),
			Hidden:             r.Hidden,
		}
		if r.Percentage != nil {
			p := r.Percentage.InexactFloat64()
			rr.Percentage = &p
		}
		out = append(out, rr)
	}
	return out
}

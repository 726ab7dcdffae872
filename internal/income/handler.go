package income

import (
	"fmt"
	"time"

	"mutabakat-backend/internal/auth"
	"mutabakat-backend/internal/database"
	"mutabakat-backend/internal/models"
	"mutabakat-backend/internal/period"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

type CreateDailyIncomeRequest struct {
	Date       string  `json:"date"` // "2025-08-12"
	CategoryID uint    `json:"category_id"`
	Amount     float64 `json:"amount"`
	BranchID   *uint   `json:"branch_id"` // super_admin için opsiyonel
}

type DailyIncomeResponse struct {
	ID         uint    `json:"id"`
	BranchID   uint    `json:"branch_id"`
	CategoryID uint    `json:"category_id"`
	Category   string  `json:"category"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
}

func resolveBranchIDFromBodyOrRole(c *fiber.Ctx, bodyBranchID *uint) (uint, error) {
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
	if bodyBranchID == nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "branch_id zorunlu")
	}
	return *bodyBranchID, nil
}

// POST /daily-incomes
// Aynı (şube, kategori, gün) için ikinci giriş üzerine yazar. Kapanmış
// dönemlere giriş reddedilir: içinde bulunulan dönem her zaman açıktır,
// önceki dönem yalnız ayın ilk 5 günü içinde yazılabilir.
func CreateDailyIncomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDailyIncomeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		branchID, err := resolveBranchIDFromBodyOrRole(c, body.BranchID)
		if err != nil {
			return err
		}

		if body.CategoryID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "category_id zorunlu")
		}
		if body.Amount < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar negatif olamaz")
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih 'YYYY-AA-GG' formatında olmalı")
		}

		now := time.Now()
		target := period.FromDate(date)
		if !period.IsEditable(target, period.FromDate(now), now) {
			return fiber.NewError(fiber.StatusForbidden, "Bu dönem kapandı, giriş yapılamaz")
		}

		var cat models.Category
		if err := database.DB.First(&cat, body.CategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori bulunamadı")
		}
		if cat.Type != models.CategoryIncome || !cat.Active {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori gelir girişine uygun değil")
		}

		entry := models.DailyIncome{
			BranchID:   branchID,
			CategoryID: body.CategoryID,
			Date:       date,
			Amount:     decimal.NewFromFloat(body.Amount),
		}

		err = database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "branch_id"}, {Name: "category_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).Create(&entry).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gelir kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(DailyIncomeResponse{
			ID:         entry.ID,
			BranchID:   entry.BranchID,
			CategoryID: entry.CategoryID,
			Category:   cat.Name,
			Date:       entry.Date.Format("2006-01-02"),
			Amount:     entry.Amount.InexactFloat64(),
		})
	}
}

// GET /daily-incomes?donem=2508&branch_id=1
func ListDailyIncomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(auth.CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
		}

		var branchID uint
		if role == models.RoleBranchAdmin {
			bVal := c.Locals(auth.CtxBranchIDKey)
			bPtr, ok := bVal.(*uint)
			if !ok || bPtr == nil {
				return fiber.NewError(fiber.StatusForbidden, "Şube bilgisi bulunamadı")
			}
			branchID = *bPtr
		} else {
			bidStr := c.Query("branch_id")
			if bidStr == "" {
				return fiber.NewError(fiber.StatusBadRequest, "branch_id zorunlu")
			}
			if _, err := fmt.Sscan(bidStr, &branchID); err != nil || branchID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "branch_id geçersiz")
			}
		}

		target := period.FromDate(time.Now())
		if donem := c.Query("donem"); donem != "" {
			p, err := period.Parse(donem)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "donem 'YYMM' formatında olmalı")
			}
			target = p
		}

		var entries []models.DailyIncome
		err := database.DB.Preload("Category").
			Where("branch_id = ? AND date >= ? AND date <= ?", branchID, target.FirstDay(), target.LastDay()).
			Order("date asc").
			Find(&entries).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gelirler listelenemedi")
		}

		out := make([]DailyIncomeResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, DailyIncomeResponse{
				ID:         e.ID,
				BranchID:   e.BranchID,
				CategoryID: e.CategoryID,
				Category:   e.Category.Name,
				Date:       e.Date.Format("2006-01-02"),
				Amount:     e.Amount.InexactFloat64(),
			})
		}
		return c.JSON(out)
	}
}

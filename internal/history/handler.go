package history

import (
	"time"

	"samara-backend/internal/database"
	"samara-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type HistoryLogResponse struct {
	ID      uint    `json:"id"`
	TS      string  `json:"ts"`
	Action  string  `json:"action"`
	By      string  `json:"by"`
	Details string  `json:"details"`
	RefType *string `json:"ref_type"`
	RefID   *string `json:"ref_id"`
}

// GET /history/?skip=0&limit=100
func ListHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip := c.QueryInt("skip", 0)
		limit := c.QueryInt("limit", 100)

		var logs []models.HistoryLog
		if err := database.DB.Order("ts DESC").Offset(skip).Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list history")
		}

		resp := make([]HistoryLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, HistoryLogResponse{
				ID:      l.ID,
				TS:      l.TS.Format(time.RFC3339),
				Action:  l.Action,
				By:      l.By,
				Details: l.Details,
				RefType: optional(l.RefType),
				RefID:   optional(l.RefID),
			})
		}
		return c.JSON(resp)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

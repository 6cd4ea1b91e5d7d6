package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/scheduler/day", h.Day)

	sessions := g.Group("/sessions/:session")
	{
		sessions.GET("", h.GetSession)
		sessions.DELETE("", h.ClearSession)
		sessions.POST("/check", h.Check)
		sessions.POST("/slots", h.AddSlot)
		sessions.PATCH("/slots/:slot", h.ResizeSlot)
		sessions.DELETE("/slots/:slot", h.RemoveSlot)
		sessions.GET("/at", h.SlotAt)
		sessions.PUT("/resizing", h.SetResizing)
		sessions.POST("/booking", h.CreateBooking)
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WelcomeMessage is served at the server root
const WelcomeMessage = "Welcome to Antaeus! see /swagger/index.html for routes"

// WelcomeHandler answers the root path
type WelcomeHandler struct{}

// NewWelcomeHandler creates a new WelcomeHandler
func NewWelcomeHandler() *WelcomeHandler {
	return &WelcomeHandler{}
}

// RegisterRoutes mounts GET /
func (h *WelcomeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Welcome)
}

// Welcome godoc
// @ID           welcome
// @Summary      Welcome message
// @Tags         system
// @Produce      plain
// @Success      200 {string} string
// @Router       / [get]
func (h *WelcomeHandler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, WelcomeMessage)
}

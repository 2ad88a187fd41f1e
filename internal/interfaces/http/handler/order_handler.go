package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/application/order"
	domain "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/domain/order"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/pkg/logger"
)

// loadFailedMessage is the single user-facing message for every fetch
// failure: the confirmation page fails soft and renders what it has.
const loadFailedMessage = "could not load order details"

type OrderHandler struct {
	svc *app.Service
	log logger.Logger
}

func NewOrderHandler(svc *app.Service, log logger.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	h.respond(c, "", c.Param("orderId"))
}

func (h *OrderHandler) GetStoreOrder(c *gin.Context) {
	h.respond(c, c.Param("storeId"), c.Param("orderId"))
}

func (h *OrderHandler) respond(c *gin.Context, storeID, orderID string) {
	order, err := h.svc.GetConfirmation(c.Request.Context(), storeID, orderID)
	if err != nil {
		h.log.Error("order confirmation failed",
			logger.String("order_id", orderID),
			logger.Error(err),
		)

		status := http.StatusBadGateway
		if domain.IsNotFound(err) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error":   loadFailedMessage,
			"orderId": orderID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":    order,
		"subtotal": domain.Subtotal(order),
	})
}

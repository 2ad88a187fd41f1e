package router

import (
	"github.com/gin-gonic/gin"

	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/interfaces/http/handler"
)

func RegisterRoutes(r *gin.Engine, orderHandler *handler.OrderHandler) {
	api := r.Group("/api")
	{
		api.GET("/orders/:orderId", orderHandler.GetOrder)
		api.GET("/stores/:storeId/orders/:orderId", orderHandler.GetStoreOrder)
	}
}

package routes

import (
	"net/http"

	"vitrin/auth"
	"vitrin/cart"
	"vitrin/catalog"
	"vitrin/checkout"
	"vitrin/middleware"
	"vitrin/notifications"
	"vitrin/orders"
	"vitrin/qna"
	"vitrin/ratelim"
	"vitrin/ratings"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddCatalogRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/catalog/products", rl.Limit(middleware.OptionalAuth(catalog.GetProducts)))
	router.GET("/api/catalog/products/:productid", middleware.OptionalAuth(catalog.GetProduct))
	router.GET("/api/catalog/categories", catalog.GetCategories)
	router.POST("/api/catalog/products",
		middleware.Authenticate(middleware.RequireRole(catalog.CreateProduct, "admin", "employee")))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart", rl.Limit(middleware.Authenticate(cart.AddToCart)))
	router.DELETE("/api/cart/:productid", middleware.Authenticate(cart.RemoveFromCart))

	router.POST("/api/buynow", rl.Limit(middleware.Authenticate(cart.BuyNow)))
	router.GET("/api/buynow/:entryid", middleware.Authenticate(cart.GetBuyNow))
}

func AddCheckoutRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/checkout/cart",
		rl.Limit(middleware.Authenticate(checkout.Idempotent(checkout.CheckoutCart))))
	router.POST("/api/checkout/buynow/:entryid",
		rl.Limit(middleware.Authenticate(checkout.Idempotent(checkout.CheckoutBuyNow))))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/orders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders/updates", middleware.Authenticate(orders.OrderUpdates))
	router.GET("/api/orders/verify",
		middleware.Authenticate(middleware.RequireRole(orders.VerifyReceipt, "admin", "employee")))
	router.GET("/api/orders/order/:orderid", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/order/:orderid/receipt", middleware.Authenticate(orders.DownloadReceipt))
	router.PUT("/api/orders/order/:orderid/cancel", middleware.Authenticate(orders.MarkCancelled))

	router.GET("/api/staff/orders",
		middleware.Authenticate(middleware.RequireRole(orders.GetOrdersByStatus, "admin", "employee")))
	router.PUT("/api/staff/orders/:orderid/ontheway",
		middleware.Authenticate(middleware.RequireRole(orders.MarkOnTheWay, "admin", "employee")))
	router.PUT("/api/staff/orders/:orderid/delivered",
		middleware.Authenticate(middleware.RequireRole(orders.MarkDelivered, "admin", "employee")))
}

func AddRatingsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/ratings/:productid", rl.Limit(middleware.OptionalAuth(ratings.GetRatings)))
	router.POST("/api/ratings/:productid", rl.Limit(middleware.Authenticate(ratings.AddRating)))
}

func AddQnARoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/qna/product/:productid", qna.ListQuestions)
	router.GET("/api/qna/product/:productid/answers", qna.ListAnswers)
	router.POST("/api/qna/product/:productid", rl.Limit(middleware.Authenticate(qna.AskQuestion)))
	router.POST("/api/qna/product/:productid/:questionid/answers",
		middleware.Authenticate(middleware.RequireRole(qna.AnswerQuestion, "admin", "employee")))
	router.POST("/api/qna/answers/:answerid/vote",
		rl.Limit(middleware.Authenticate(qna.VoteAnswer)))
}

func AddNotificationRoutes(router *httprouter.Router) {
	router.GET("/api/notifications", middleware.Authenticate(notifications.GetNotifications))
	router.PUT("/api/notifications/:notificationid/read", middleware.Authenticate(notifications.MarkRead))
}

package main

import (
	"barquea-server/routes"
	"barquea-server/storage"
	"barquea-server/utils"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the admin panel (http://localhost:3000)
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Get("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetUser)
		user.Patch("/profile", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateUserProfile)
		user.Post("/password", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ChangePassword)
		user.Post("/host-application", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.SubmitHostApplication)
	}

	boats := app.Party("/api/boats")
	{
		boats.Get("/search", routes.SearchBoats)
		boats.Get("/popular", routes.GetPopularBoats)
		boats.Get("/recent", routes.GetRecentBoats)
		boats.Get("/top-rated", routes.GetTopRatedBoats)
		boats.Get("/by-city/{city}", routes.GetBoatsByCity)
		boats.Get("/by-type/{type}", routes.GetBoatsByType)
		boats.Get("/price-range", routes.GetBoatsByPriceRange)
		boats.Get("/stats", routes.GetBoatStats)
		boats.Get("/mine", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.GetHostBoats)
		boats.Post("/", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.CreateBoat)
		boats.Get("/{id:uint}", routes.GetBoat)
		boats.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.UpdateBoat)
		boats.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.DeleteBoat)

		boats.Get("/{id:uint}/reviews", routes.ListBoatReviews)
		boats.Post("/{id:uint}/reviews", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateBoatReview)
		boats.Delete("/{id:uint}/reviews/{reviewId:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.DeleteBoatReview)
	}

	bookings := app.Party("/api/bookings", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		bookings.Post("/", routes.CreateBooking)
		bookings.Get("/", routes.GetUserBookings)
		bookings.Get("/host", routes.GetHostBookings)
		bookings.Patch("/{id:uint}/status", routes.UpdateBookingStatus)
		bookings.Post("/{id:uint}/cancel", routes.CancelBooking)
	}

	chats := app.Party("/api/chats", accessTokenVerifierMiddleware)
	{
		chats.Get("/", routes.ListChats)
		chats.Get("/{id:uint}/messages", routes.ListChatMessages)
		chats.Post("/{id:uint}/messages", routes.SendChatMessage)
		chats.Post("/{id:uint}/read", routes.MarkChatRead)
		chats.Post("/{id:uint}/typing", routes.Typing)
		chats.Get("/{id:uint}/typing", routes.ListTyping)
	}

	countries := app.Party("/api/countries")
	{
		countries.Get("/", routes.ListCountries)
		countries.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateCountry)
		countries.Delete("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteCountry)
	}
	cities := app.Party("/api/cities")
	{
		cities.Get("/", routes.ListCities)
		cities.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateCity)
		cities.Delete("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteCity)
	}
	ports := app.Party("/api/ports")
	{
		ports.Get("/", routes.ListPorts)
		ports.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreatePort)
		ports.Delete("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeletePort)
	}

	app.Get("/api/host-applications", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.ListHostApplications)

	// Admin routes
	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Patch("/users/{id:uint}/role", utils.SuperAdminOnlyMiddleware, routes.AdminChangeUserRole)
		admin.Post("/users/approve-host", routes.ApproveHost)
		admin.Post("/users/reject-host", routes.RejectHost)
		admin.Get("/stats", routes.AdminStats)
		admin.Get("/activity", routes.AdminActivity)
		admin.Patch("/bookings/{id:uint}/payment", routes.UpdatePaymentStatus)
		admin.Post("/messages/send", routes.AdminSendMessage)
		admin.Post("/messages/broadcast", routes.AdminBroadcast)
		admin.Get("/messages/broadcast/list", routes.AdminListBroadcasts)
		admin.Delete("/messages/broadcast/cleanup", routes.AdminCleanupBroadcasts)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	// Start server
	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"gearshare/internal/auth"
	"gearshare/internal/config"
	"gearshare/internal/errors"
	"gearshare/internal/handler"
	"gearshare/internal/metrics"
	"gearshare/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	userService service.UserService,
	collector *metrics.Collector,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	gearHandler *handler.GearHandler,
	bookingHandler *handler.BookingHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(collector.Middleware())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/metrics", echo.WrapHandler(collector.Handler()))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes; credential endpoints are rate limited per IP.
	limiter := newLoginRateLimiter(cfg.LoginRatePerMin)
	api.POST("/auth/signup", authHandler.Signup, limiter.middleware)
	api.POST("/auth/login", authHandler.Login, limiter.middleware)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/oauth/google", authHandler.OAuthLogin)
	api.GET("/auth/oauth/google/callback", authHandler.OAuthCallback)

	api.GET("/gear", gearHandler.ListGear)
	api.GET("/gear/:id", gearHandler.GetGear)
	api.GET("/users/:id", userHandler.GetProfile)

	// Secured routes (require a valid session token). ParseTokenFunc delegates
	// to the same JWTService that mints tokens, so the context carries
	// *auth.Claims rather than a raw parsed token.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
	}))

	secured.GET("/me", userHandler.Me)
	secured.PUT("/me/profile", userHandler.UpdateProfile)
	secured.GET("/me/gear", gearHandler.ListMyGear)

	// Product routes additionally require a complete profile.
	gated := secured.Group("", profileGate(userService))
	gated.POST("/gear", gearHandler.CreateGear)
	gated.POST("/bookings", bookingHandler.CreateBooking)
	gated.GET("/bookings", bookingHandler.ListMyBookings)
}

// profileGate blocks product routes until birthday and phone number are set.
// Claims are checked first; because they are frozen at issuance, a miss falls
// back to re-querying the user row before rejecting.
func profileGate(userService service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "not authenticated",
					Code:  "NOT_AUTHENTICATED",
				})
			}

			if claims.ProfileComplete() {
				return next(c)
			}

			complete, err := userService.ProfileComplete(c.Request().Context(), claims.UserID)
			if err != nil {
				// A failed lookup is not a policy rejection
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if !complete {
				httpErr := errors.MapErrorToHTTP(errors.ErrProfileIncomplete)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

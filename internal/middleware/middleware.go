package middleware

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/metrics"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/pkg/jwt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	LocalsUserID = "user_id"
	LocalsToken  = "token"
)

type (
	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		CORSMiddleware() fiber.Handler
		MetricsMiddleware() fiber.Handler
	}

	middleware struct {
		blacklist jwt.TokenBlacklist
	}
)

func NewMiddleware(blacklist jwt.TokenBlacklist) Middleware {
	if blacklist == nil {
		blacklist = jwt.NewTokenBlacklist(nil)
	}
	return &middleware{blacklist: blacklist}
}

// bearerToken accepts "Token <t>" as well as "Bearer <t>".
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
		return strings.TrimSpace(token)
	default:
		return ""
	}
}

func (m *middleware) authenticate(c *fiber.Ctx, jwtService jwt.JWTService, token string) error {
	claims, err := jwtService.ParseUserClaims(token)
	if err != nil {
		return err
	}

	revoked, err := m.blacklist.IsRevoked(c.UserContext(), claims.ID)
	if err != nil {
		logging.Warn().Err(err).Msg("token deny list lookup failed")
	}
	if revoked {
		return domain.ErrTokenRevoked
	}

	c.Locals(LocalsUserID, claims.UserID)
	c.Locals(LocalsToken, token)
	return nil
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}
		if err := m.authenticate(c, jwtService, token); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}
		return c.Next()
	}
}

// OptionalAuthMiddleware lets anonymous requests through but still rejects a
// bad token when one is sent.
func (m *middleware) OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}
		token := bearerToken(header)
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
		}
		if err := m.authenticate(c, jwtService, token); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}
		return c.Next()
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  utils.GetConfigOrDefault("CORS_ORIGINS", "*"),
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Disposition",
	})
}

func (m *middleware) MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		metrics.TrackInFlight(true)
		defer metrics.TrackInFlight(false)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = presenters.StatusFromError(err)
		}
		metrics.RecordHTTPRequest(c.Method(), c.Route().Path, strconv.Itoa(status), time.Since(start))
		return err
	}
}

// UserID returns the authenticated user's id, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsUserID).(string)
	return id
}

func Token(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalsToken).(string)
	return token
}

package handlers

import (
	"crypto/subtle"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"supermarkt/models"
	"supermarkt/utils"
)

// TokenTTL is how long an operator token stays valid.
const TokenTTL = 12 * time.Hour

// HandleLogin authenticates the operator and returns a JWT token.
// POST /api/v1/auth/login
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	if len(h.opts.JWTSecret) == 0 || h.opts.OperatorPasswordHash == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "Operator login is not configured"})
	}

	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.opts.OperatorUsername)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(h.opts.OperatorPasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		log.Printf("Failed operator login for %q", req.Username)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid credentials"})
	}

	token, err := createJWT(h.opts.JWTSecret, req.Username, utils.RoleOperator)
	if err != nil {
		log.Printf("Error creating JWT for %s: %v", req.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not sign token"})
	}

	return c.JSON(fiber.Map{"success": true, "accessToken": token, "expiresIn": int(TokenTTL.Seconds())})
}

func createJWT(secret []byte, userID, role string) (string, error) {
	now := time.Now()
	claims := models.JwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

package userControllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Fausto-Grilo/VulnWebApp/auth"
	"github.com/Fausto-Grilo/VulnWebApp/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /users/login
func Login(db *gorm.DB, jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.String(http.StatusUnauthorized, "Invalid email or password")
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("❌ Login lookup failed:", err)
			}
			c.String(http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if !auth.CheckPassword(user.Password, input.Password) {
			c.String(http.StatusUnauthorized, "Invalid email or password")
			return
		}

		resp := user.Public()
		if len(jwtSecret) > 0 {
			token, err := auth.IssueToken(jwtSecret, user.ID, user.Email, user.IsAdmin == 1)
			if err != nil {
				log.Println("❌ Token generation failed:", err)
				c.String(http.StatusInternalServerError, "Token generation failed")
				return
			}
			resp.Token = token
		}
		c.JSON(http.StatusOK, resp)
	}
}

// POST /users/register
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil ||
			strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
			c.String(http.StatusBadRequest, "name, email and password required")
			return
		}

		var existing models.User
		if err := db.Select("id").Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.String(http.StatusConflict, "Email already registered")
			return
		}

		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to register user")
			return
		}
		user := models.User{Name: input.Name, Email: input.Email, Password: hash}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.String(http.StatusConflict, "Email already registered")
				return
			}
			log.Println("❌ Failed to create user:", err)
			c.String(http.StatusInternalServerError, "Failed to register user")
			return
		}
		c.JSON(http.StatusOK, user.Public())
	}
}

// POST /users/logout
// There is no server session; the endpoint only acknowledges.
func Logout(c *gin.Context) {
	c.String(http.StatusOK, "Logout successful")
}

package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	config "github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/configs"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/db"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/models"
	"github.com/SHARAT-S-UNNITHAN/pure-dairy-harvesting/internal/uploads"
)

// POST /auth/register (multipart form)
//
// Customers are approved immediately; farmers register with farm details, a
// license document and a profile picture, and stay unapproved until an admin
// reviews them.
func Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	phone := c.PostForm("phone")
	roleName := c.PostForm("role")

	if name == "" || email == "" || password == "" || roleName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email, password and role are required"})
		return
	}

	var existing models.User
	if err := db.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	var role models.Role
	if err := db.DB.Where("name = ?", roleName).First(&role).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Phone:    phone,
		RoleID:   role.ID,
		Approved: roleName == models.RoleCustomer,
	}

	if roleName == models.RoleFarmer {
		user.FarmName = c.PostForm("farm_name")
		user.Location = c.PostForm("location")

		cfg := config.LoadAppConfig()

		licenseDoc, err := c.FormFile("license_doc")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a license document is required for farmer registration"})
			return
		}
		licenseName, err := uploads.SaveFile(cfg.UploadDir, uploads.KindLicenses, licenseDoc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		user.LicenseFile = licenseName

		profilePic, err := c.FormFile("profile_picture")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a profile picture is required for farmer registration"})
			return
		}
		profileName, err := uploads.SaveFile(cfg.UploadDir, uploads.KindProfiles, profilePic)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		user.ProfilePicture = profileName
	}

	if err := db.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	message := "registration successful, please log in"
	if roleName == models.RoleFarmer {
		message = "registration successful, your farmer account is pending admin approval"
	}
	c.JSON(http.StatusCreated, gin.H{"message": message, "user_id": user.ID})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var user models.User
	if err := db.DB.Preload("Role").Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if user.Role.Name == models.RoleFarmer && !user.Approved {
		c.JSON(http.StatusForbidden, gin.H{"error": "your farmer account is pending admin approval"})
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Set("role", user.Role.Name)
	sess.Set("user_name", user.Name)
	if err := sess.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged in", "role": user.Role.Name, "user_id": user.ID})
}

// POST /auth/logout
func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /profile
func Profile(c *gin.Context) {
	userID, _ := CurrentUserID(c)

	var user models.User
	if err := db.DB.Preload("Role").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /profile (multipart form, profile_picture optional)
func UpdateProfile(c *gin.Context) {
	userID, _ := CurrentUserID(c)

	var user models.User
	if err := db.DB.Preload("Role").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	user.Name = c.DefaultPostForm("name", user.Name)
	user.Email = c.DefaultPostForm("email", user.Email)
	user.Phone = c.DefaultPostForm("phone", user.Phone)
	user.Bio = c.DefaultPostForm("bio", user.Bio)
	user.Address = c.DefaultPostForm("address", user.Address)

	if user.Role.Name == models.RoleFarmer {
		user.FarmName = c.DefaultPostForm("farm_name", user.FarmName)
		user.Location = c.DefaultPostForm("location", user.Location)
	}

	if profilePic, err := c.FormFile("profile_picture"); err == nil {
		cfg := config.LoadAppConfig()
		name, err := uploads.SaveFile(cfg.UploadDir, uploads.KindProfiles, profilePic)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		user.ProfilePicture = name
	}

	if err := db.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated", "user": user})
}

// RequireAuth ensures a user is logged in, whatever their role.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// RequireRole is the single authorization gate in front of each protected
// route group; handlers behind it never branch on role again.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID, ok := sess.Get("user_id").(uint)
		if !ok || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if r, _ := sess.Get("role").(string); r != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// CurrentUserID reads the authenticated user's ID from the session.
func CurrentUserID(c *gin.Context) (uint, bool) {
	sess := sessions.Default(c)
	id, ok := sess.Get("user_id").(uint)
	return id, ok && id != 0
}

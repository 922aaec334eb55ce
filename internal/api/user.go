package api

import (
	"net/http"                   // HTTP status codes
	"pos_system/internal/domain" // Domain models
	"regexp"                     // Username validation
	"strings"                    // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// usernamePattern allows 3-30 letters, digits and underscores
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// CreateUserRequest is the new-account request body
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"` // Unique username
	Password string `json:"password" binding:"required"` // Plain password, hashed before storage
	Role     string `json:"role" binding:"required"`     // Cashier, Admin or Super Admin
}

// CreateUserHandler registers a staff account (Super Admin-gated)
func CreateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			failValidation(c, "Username, password and role are required")
			return
		}
		username := strings.TrimSpace(req.Username)
		if !usernamePattern.MatchString(username) {
			failValidation(c, "Username must be 3-30 letters, digits or underscores")
			return
		}
		if len(req.Password) < 8 {
			failValidation(c, "Password must be at least 8 characters")
			return
		}
		role := domain.Role(req.Role)
		if !role.Valid() {
			failValidation(c, "Unknown role")
			return
		}
		// Hash the password before it touches the database
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			failInternal(c, "Failed to hash password")
			return
		}
		user := domain.User{Username: username, Password: string(hash), Role: role}
		// Attempt to create the user; a duplicate username fails here
		if err := db.Create(&user).Error; err != nil {
			failValidation(c, "Username already exists")
			return
		}
		// Log the new account
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
			"role":     user.Role,     // Assigned role
		}).Info("User created")
		c.JSON(http.StatusOK, gin.H{"success": true, "id": user.ID})
	}
}

// UpdateUserRequest changes a user's role and/or password
type UpdateUserRequest struct {
	ID       uint   `json:"id" binding:"required"` // User to change
	Role     string `json:"role"`                  // Optional new role
	Password string `json:"password"`              // Optional new password
}

// UpdateUserHandler changes a user's role or password (Super Admin-gated).
// A role change takes effect on the user's next login; sessions already issued
// keep the role snapshotted when they were created.
func UpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			failValidation(c, "User id is required")
			return
		}
		if req.Role == "" && req.Password == "" {
			failValidation(c, "Nothing to update")
			return
		}
		updates := map[string]any{} // Columns to rewrite
		if req.Role != "" {
			role := domain.Role(req.Role)
			if !role.Valid() {
				failValidation(c, "Unknown role")
				return
			}
			updates["role"] = role // New role, effective from next login
		}
		if req.Password != "" {
			if len(req.Password) < 8 {
				failValidation(c, "Password must be at least 8 characters")
				return
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				failInternal(c, "Failed to hash password")
				return
			}
			updates["password"] = string(hash) // New password hash
		}
		var user domain.User // Only non-deleted users can be updated
		if err := db.Where("id = ? AND is_deleted = ?", req.ID, false).First(&user).Error; err != nil {
			fail(c, http.StatusNotFound, codeNotFound, "User not found")
			return
		}
		// Apply the update
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": req.ID,      // User being updated
				"error":   err.Error(), // Database failure
			}).Error("Failed to update user")
			failInternal(c, "Failed to update user")
			return
		}
		logrus.WithField("user_id", req.ID).Info("User updated")
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// DeleteUserRequest soft-deletes an account
type DeleteUserRequest struct {
	ID uint `json:"id" binding:"required"` // User to delete
}

// DeleteUserHandler soft-deletes a user (Super Admin-gated). The row stays for
// historical records; the flag blocks future logins and hides the account from
// listings. An already-issued session keeps working until it expires or the
// user logs out, per the role-snapshot contract.
func DeleteUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			failValidation(c, "User id is required")
			return
		}
		var user domain.User // Make sure the user exists first
		if err := db.Where("id = ? AND is_deleted = ?", req.ID, false).First(&user).Error; err != nil {
			fail(c, http.StatusNotFound, codeNotFound, "User not found")
			return
		}
		// Flip the soft-delete flag; never a hard delete
		if err := db.Model(&user).Update("is_deleted", true).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": req.ID,      // User being deleted
				"error":   err.Error(), // Database failure
			}).Error("Failed to delete user")
			failInternal(c, "Failed to delete user")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // Deleted user ID
			"username": user.Username, // Username
		}).Info("User soft-deleted")
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ListUsersHandler returns all active accounts (Super Admin-gated)
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User // Slice to hold users
		// Soft-deleted accounts stay hidden
		if err := db.Where("is_deleted = ?", false).Order("username").Find(&users).Error; err != nil {
			failInternal(c, "Failed to fetch users")
			return
		}
		// Map users to the public shape; hashes never leave the server
		resp := make([]gin.H, len(users))
		for i := range users {
			resp[i] = userView(&users[i])
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
	}
}

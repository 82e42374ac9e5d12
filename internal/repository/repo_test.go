package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/codegrader/codegrader-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Assignment{}, &models.Submission{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	t.Helper()

	user := models.User{Email: email, Password: "hashed", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestAssignment(t *testing.T, db *gorm.DB, title string) models.Assignment {
	t.Helper()

	assignment := models.Assignment{Title: title, Description: "desc", Criteria: "criteria"}
	require.NoError(t, db.Create(&assignment).Error)
	return assignment
}

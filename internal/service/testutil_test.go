package service

import (
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/models"
)

// openTestDB opens a named in-memory database with the full schema. Each
// test uses its own name so state never leaks between tests.
func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.Subject{},
		&models.Mark{},
		&models.Attendance{},
		&models.Assignment{},
		&models.Submission{},
		&models.Announcement{},
		&models.AnnouncementRead{},
		&models.StudyMaterial{},
		&models.StudyPlan{},
		&models.StudyTask{},
		&models.WeakSubject{},
		&models.Event{},
	))

	return db
}

func testValidator() *validator.Validate {
	return validator.New()
}

func createTestStudent(t *testing.T, db *gorm.DB, email, roll string) models.StudentProfile {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "x",
		FullName:     "Test Student",
		Role:         models.RoleStudent,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)

	profile := models.StudentProfile{
		UserID:     user.ID,
		RollNumber: roll,
		Class:      "10",
		Section:    "A",
	}
	require.NoError(t, db.Create(&profile).Error)
	profile.User = user

	return profile
}

func createTestSubject(t *testing.T, db *gorm.DB, name, code string) models.Subject {
	t.Helper()

	subject := models.Subject{
		Name:       name,
		Code:       code,
		TotalMarks: 100,
		PassMarks:  40,
		Credits:    3,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&subject).Error)

	return subject
}

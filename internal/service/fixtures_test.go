package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"edusync/backend/config"
	"edusync/backend/internal/model"
	"edusync/backend/internal/policy"
	"edusync/backend/pkg/jwt"
	"edusync/backend/pkg/password"
)

var (
	testLogger = zap.NewNop()
	testHasher = password.NewHasher(bcrypt.MinCost)
)

func newTestJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:   "service-test-secret-0123456789",
		Issuer:      "EduSync",
		Audience:    "EduSyncClient",
		ExpiryHours: 1,
	})
}

func intPtr(v int) *int { return &v }

// ── seed helpers ──

func (db *mockDB) seedUser(name, role string) *model.User {
	hash, _ := testHasher.Hash("secret123")
	u := &model.User{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: hash,
		Role:         role,
	}
	db.users[u.UserID] = u
	return u
}

func (db *mockDB) seedCourse(title string, instructor *model.User) *model.Course {
	c := &model.Course{
		CourseID:     uuid.NewString(),
		Title:        title,
		InstructorID: instructor.UserID,
	}
	db.courses[c.CourseID] = c
	return c
}

func (db *mockDB) seedAssessment(title string, course *model.Course, maxScore int) *model.Assessment {
	a := &model.Assessment{
		AssessmentID: uuid.NewString(),
		CourseID:     course.CourseID,
		Title:        title,
		Questions:    `[{"q":"2+2","a":"4"}]`,
		MaxScore:     maxScore,
	}
	db.assessments[a.AssessmentID] = a
	return a
}

func (db *mockDB) seedResult(a *model.Assessment, student *model.User, score int, at time.Time) *model.Result {
	r := &model.Result{
		ResultID:     uuid.NewString(),
		AssessmentID: a.AssessmentID,
		UserID:       student.UserID,
		Score:        score,
		AttemptDate:  at,
	}
	db.results[r.ResultID] = r
	return r
}

func identityOf(u *model.User) policy.Identity {
	return policy.Identity{UserID: u.UserID, Email: u.Email, Role: u.Role}
}

//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"edusync/backend/internal/model"
	"edusync/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=edusync password=edusync_password dbname=edusync_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect test database: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Assessment{},
		&model.Result{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

type fixture struct {
	instructor *model.User
	student    *model.User
	course     *model.Course
	assessment *model.Assessment
	result     *model.Result
}

// setupFixture creates one instructor, student, course, assessment and result.
func setupFixture(t *testing.T, repo *repository.Repository) *fixture {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	f := &fixture{
		instructor: &model.User{
			UserID: uuid.NewString(), Name: "Grace", Email: fmt.Sprintf("grace%d@example.com", suffix),
			PasswordHash: "$2a$10$placeholder", Role: model.RoleInstructor,
		},
		student: &model.User{
			UserID: uuid.NewString(), Name: "Alan", Email: fmt.Sprintf("alan%d@example.com", suffix),
			PasswordHash: "$2a$10$placeholder", Role: model.RoleStudent,
		},
	}
	mustNoErr(t, repo.User.Create(ctx, f.instructor))
	mustNoErr(t, repo.User.Create(ctx, f.student))

	f.course = &model.Course{CourseID: uuid.NewString(), Title: "Compilers", InstructorID: f.instructor.UserID}
	mustNoErr(t, repo.Course.Create(ctx, f.course))

	f.assessment = &model.Assessment{
		AssessmentID: uuid.NewString(), CourseID: f.course.CourseID,
		Title: "Quiz 1", Questions: `[{"q":"2+2"}]`, MaxScore: 10,
	}
	mustNoErr(t, repo.Assessment.Create(ctx, f.assessment))

	f.result = &model.Result{
		ResultID: uuid.NewString(), AssessmentID: f.assessment.AssessmentID, UserID: f.student.UserID,
		Score: 7, AttemptDate: time.Now().UTC(),
	}
	mustNoErr(t, repo.Result.Create(ctx, f.result))

	t.Cleanup(func() {
		testDB.Where("user_id IN ?", []string{f.student.UserID, f.instructor.UserID}).Delete(&model.Result{})
		testDB.Where("course_id = ?", f.course.CourseID).Delete(&model.Assessment{})
		testDB.Where("course_id = ?", f.course.CourseID).Delete(&model.Course{})
		testDB.Where("user_id IN ?", []string{f.student.UserID, f.instructor.UserID}).Delete(&model.User{})
	})
	return f
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Tests
// ═══════════════════════════════════════════════════════════

func TestUserRepo_GetByEmail(t *testing.T) {
	repo := repository.NewRepository(testDB)
	f := setupFixture(t, repo)

	got, err := repo.User.GetByEmail(context.Background(), f.student.Email)
	mustNoErr(t, err)
	if got.UserID != f.student.UserID {
		t.Errorf("expected %s, got %s", f.student.UserID, got.UserID)
	}

	_, err = repo.User.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUserRepo_DuplicateEmailRejected(t *testing.T) {
	repo := repository.NewRepository(testDB)
	f := setupFixture(t, repo)

	dup := &model.User{
		UserID: uuid.NewString(), Name: "Copy", Email: f.student.Email,
		PasswordHash: "x", Role: model.RoleStudent,
	}
	if err := repo.User.Create(context.Background(), dup); err == nil {
		testDB.Delete(dup)
		t.Fatal("expected unique violation on email")
	}
}

func TestCourseRepo_DeleteCascades(t *testing.T) {
	repo := repository.NewRepository(testDB)
	f := setupFixture(t, repo)
	ctx := context.Background()

	mustNoErr(t, repo.Course.Delete(ctx, f.course.CourseID))

	if _, err := repo.Course.GetByID(ctx, f.course.CourseID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("course should be gone, got %v", err)
	}
	if _, err := repo.Assessment.GetByID(ctx, f.assessment.AssessmentID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("assessment should be gone, got %v", err)
	}
	if _, err := repo.Result.GetByID(ctx, f.result.ResultID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("result should be gone, got %v", err)
	}
}

func TestAssessmentRepo_DeleteCascades(t *testing.T) {
	repo := repository.NewRepository(testDB)
	f := setupFixture(t, repo)
	ctx := context.Background()

	mustNoErr(t, repo.Assessment.Delete(ctx, f.assessment.AssessmentID))

	if _, err := repo.Result.GetByID(ctx, f.result.ResultID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("result should be gone, got %v", err)
	}
	if _, err := repo.Course.GetByID(ctx, f.course.CourseID); err != nil {
		t.Errorf("course should survive, got %v", err)
	}
}

func TestUserRepo_DeleteRemovesResults(t *testing.T) {
	repo := repository.NewRepository(testDB)
	f := setupFixture(t, repo)
	ctx := context.Background()

	mustNoErr(t, repo.User.Delete(ctx, f.student.UserID))

	if _, err := repo.Result.GetByID(ctx, f.result.ResultID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("result should be gone, got %v", err)
	}
}

func TestCourseRepo_CountByInstructor(t *testing.T) {
	repo := repository.NewRepository(testDB)
	f := setupFixture(t, repo)

	n, err := repo.Course.CountByInstructor(context.Background(), f.instructor.UserID)
	mustNoErr(t, err)
	if n != 1 {
		t.Errorf("expected 1 course, got %d", n)
	}
}

func TestResultRepo_ListFilters(t *testing.T) {
	repo := repository.NewRepository(testDB)
	f := setupFixture(t, repo)
	ctx := context.Background()

	mine, err := repo.Result.List(ctx, repository.ResultFilter{UserID: f.student.UserID})
	mustNoErr(t, err)
	if len(mine) != 1 {
		t.Errorf("expected 1 result for student, got %d", len(mine))
	}

	none, err := repo.Result.List(ctx, repository.ResultFilter{UserID: f.instructor.UserID})
	mustNoErr(t, err)
	if len(none) != 0 {
		t.Errorf("expected 0 results for instructor, got %d", len(none))
	}
}

func TestResultRepo_ListByCourse(t *testing.T) {
	repo := repository.NewRepository(testDB)
	f := setupFixture(t, repo)

	list, err := repo.Result.ListByCourse(context.Background(), f.course.CourseID)
	mustNoErr(t, err)
	if len(list) != 1 {
		t.Fatalf("expected 1 result, got %d", len(list))
	}
	if list[0].Assessment == nil || list[0].Assessment.Title != "Quiz 1" {
		t.Errorf("expected assessment to be joined, got %+v", list[0].Assessment)
	}
	if list[0].User == nil || list[0].User.Name != "Alan" {
		t.Errorf("expected user to be preloaded, got %+v", list[0].User)
	}
}

func TestResultRepo_HighestScore(t *testing.T) {
	repo := repository.NewRepository(testDB)
	f := setupFixture(t, repo)
	ctx := context.Background()

	highest, err := repo.Result.HighestScore(ctx, f.assessment.AssessmentID)
	mustNoErr(t, err)
	if highest != 7 {
		t.Errorf("expected 7, got %d", highest)
	}

	highest, err = repo.Result.HighestScore(ctx, uuid.NewString())
	mustNoErr(t, err)
	if highest != 0 {
		t.Errorf("expected 0 without results, got %d", highest)
	}
}

func TestCourseRepo_CountByMediaURL(t *testing.T) {
	repo := repository.NewRepository(testDB)
	f := setupFixture(t, repo)
	ctx := context.Background()

	mediaURL := fmt.Sprintf("https://blobs.example.com/course-media/%s_intro.mp4", uuid.NewString())
	f.course.MediaURL = mediaURL
	mustNoErr(t, repo.Course.Update(ctx, f.course))

	n, err := repo.Course.CountByMediaURL(ctx, mediaURL)
	mustNoErr(t, err)
	if n != 1 {
		t.Errorf("expected 1 course, got %d", n)
	}
}

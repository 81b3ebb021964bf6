package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"edusync/backend/internal/model"
	"edusync/backend/internal/repository"
)

// mockDB is the shared in-memory state behind the mock repositories so that
// cascading deletes behave like the gorm implementations.
type mockDB struct {
	users       map[string]*model.User
	courses     map[string]*model.Course
	assessments map[string]*model.Assessment
	results     map[string]*model.Result
}

func newMockDB() *mockDB {
	return &mockDB{
		users:       make(map[string]*model.User),
		courses:     make(map[string]*model.Course),
		assessments: make(map[string]*model.Assessment),
		results:     make(map[string]*model.Result),
	}
}

// repository returns a Repository whose members all read db.
func (db *mockDB) repository() *repository.Repository {
	return &repository.Repository{
		User:       &mockUserRepo{db: db},
		Course:     &mockCourseRepo{db: db},
		Assessment: &mockAssessmentRepo{db: db},
		Result:     &mockResultRepo{db: db},
	}
}

func (db *mockDB) deleteResultsWhere(match func(*model.Result) bool) {
	for id, r := range db.results {
		if match(r) {
			delete(db.results, id)
		}
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	db *mockDB
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.db.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.db.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.db.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.db.users))
	for _, u := range m.db.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	for _, u := range m.db.users {
		if u.UserID != user.UserID && u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *user
	m.db.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	m.db.deleteResultsWhere(func(r *model.Result) bool { return r.UserID == id })
	delete(m.db.users, id)
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	db *mockDB
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	cp := *course
	m.db.courses[course.CourseID] = &cp
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.db.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	result := make([]model.Course, 0, len(m.db.courses))
	for _, c := range m.db.courses {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	cp := *course
	m.db.courses[course.CourseID] = &cp
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	for aid, a := range m.db.assessments {
		if a.CourseID == id {
			m.db.deleteResultsWhere(func(r *model.Result) bool { return r.AssessmentID == aid })
			delete(m.db.assessments, aid)
		}
	}
	delete(m.db.courses, id)
	return nil
}

func (m *mockCourseRepo) CountByInstructor(_ context.Context, instructorID string) (int64, error) {
	var n int64
	for _, c := range m.db.courses {
		if c.InstructorID == instructorID {
			n++
		}
	}
	return n, nil
}

func (m *mockCourseRepo) CountByMediaURL(_ context.Context, mediaURL string) (int64, error) {
	var n int64
	for _, c := range m.db.courses {
		if c.MediaURL == mediaURL {
			n++
		}
	}
	return n, nil
}

// ── Mock AssessmentRepository ──

type mockAssessmentRepo struct {
	db *mockDB
}

func (m *mockAssessmentRepo) Create(_ context.Context, a *model.Assessment) error {
	cp := *a
	m.db.assessments[a.AssessmentID] = &cp
	return nil
}

func (m *mockAssessmentRepo) GetByID(_ context.Context, id string) (*model.Assessment, error) {
	if a, ok := m.db.assessments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssessmentRepo) List(_ context.Context, courseID string) ([]model.Assessment, error) {
	result := make([]model.Assessment, 0, len(m.db.assessments))
	for _, a := range m.db.assessments {
		if courseID != "" && a.CourseID != courseID {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func (m *mockAssessmentRepo) Update(_ context.Context, a *model.Assessment) error {
	cp := *a
	m.db.assessments[a.AssessmentID] = &cp
	return nil
}

func (m *mockAssessmentRepo) Delete(_ context.Context, id string) error {
	m.db.deleteResultsWhere(func(r *model.Result) bool { return r.AssessmentID == id })
	delete(m.db.assessments, id)
	return nil
}

// ── Mock ResultRepository ──

type mockResultRepo struct {
	db *mockDB
}

func (m *mockResultRepo) Create(_ context.Context, res *model.Result) error {
	cp := *res
	m.db.results[res.ResultID] = &cp
	return nil
}

func (m *mockResultRepo) GetByID(_ context.Context, id string) (*model.Result, error) {
	if r, ok := m.db.results[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResultRepo) List(_ context.Context, filter repository.ResultFilter) ([]model.Result, error) {
	result := make([]model.Result, 0, len(m.db.results))
	for _, r := range m.db.results {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.AssessmentID != "" && r.AssessmentID != filter.AssessmentID {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AttemptDate.After(result[j].AttemptDate) })
	return result, nil
}

func (m *mockResultRepo) ListByCourse(_ context.Context, courseID string) ([]model.Result, error) {
	var result []model.Result
	for _, r := range m.db.results {
		a, ok := m.db.assessments[r.AssessmentID]
		if !ok || a.CourseID != courseID {
			continue
		}
		cp := *r
		cp.Assessment = a
		cp.User = m.db.users[r.UserID]
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Assessment.Title != result[j].Assessment.Title {
			return result[i].Assessment.Title < result[j].Assessment.Title
		}
		return result[i].AttemptDate.Before(result[j].AttemptDate)
	})
	return result, nil
}

func (m *mockResultRepo) HighestScore(_ context.Context, assessmentID string) (int, error) {
	highest := 0
	for _, r := range m.db.results {
		if r.AssessmentID == assessmentID && r.Score > highest {
			highest = r.Score
		}
	}
	return highest, nil
}

func (m *mockResultRepo) Update(_ context.Context, res *model.Result) error {
	cp := *res
	m.db.results[res.ResultID] = &cp
	return nil
}

func (m *mockResultRepo) Delete(_ context.Context, id string) error {
	delete(m.db.results, id)
	return nil
}

package validation

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type courseInput struct {
	Title        string `json:"title"        binding:"required,notblank,max=200"`
	InstructorID string `json:"instructorId" binding:"required,uuid"`
}

type resultInput struct {
	Score       *int       `json:"score"       binding:"required,min=0"`
	AttemptDate *time.Time `json:"attemptDate" binding:"required"`
}

type registerInput struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"  binding:"required,oneof=Student Instructor"`
}

func TestFromBindError_FieldMessages(t *testing.T) {
	require.NoError(t, Setup())

	err := binding.Validator.ValidateStruct(&courseInput{Title: string(make([]byte, 201))})
	ve := FromBindError(err)
	require.NotNil(t, ve)

	fields := ve.Map()
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields["title"], "200")
	assert.Equal(t, "instructorId is required", fields["instructorId"])
}

func TestFromBindError_ScoreBounds(t *testing.T) {
	require.NoError(t, Setup())

	now := time.Now()
	neg := -1
	ve := FromBindError(binding.Validator.ValidateStruct(&resultInput{Score: &neg, AttemptDate: &now}))
	require.NotNil(t, ve)
	assert.Contains(t, ve.Map(), "score")

	zero := 0
	assert.NoError(t, binding.Validator.ValidateStruct(&resultInput{Score: &zero, AttemptDate: &now}))

	ve = FromBindError(binding.Validator.ValidateStruct(&resultInput{}))
	require.NotNil(t, ve)
	assert.Equal(t, "score is required", ve.Map()["score"])
	assert.Equal(t, "attemptDate is required", ve.Map()["attemptDate"])
}

func TestFromBindError_EmailAndRole(t *testing.T) {
	require.NoError(t, Setup())

	ve := FromBindError(binding.Validator.ValidateStruct(&registerInput{Email: "nope", Role: "Admin"}))
	require.NotNil(t, ve)
	assert.Contains(t, ve.Map()["email"], "valid email")
	assert.Contains(t, ve.Map()["role"], "Student Instructor")
}

func TestFromBindError_NonValidationError(t *testing.T) {
	assert.Nil(t, FromBindError(assert.AnError))
	assert.Nil(t, FromBindError(nil))
}

func TestSetup_Idempotent(t *testing.T) {
	require.NoError(t, Setup())
	require.NoError(t, Setup())
}

func TestFromBindError_BlankTitle(t *testing.T) {
	require.NoError(t, Setup())

	err := binding.Validator.ValidateStruct(&courseInput{
		Title:        "   ",
		InstructorID: "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d",
	})
	ve := FromBindError(err)
	require.NotNil(t, ve)

	assert.Equal(t, map[string]string{"title": "title is required"}, ve.Map())
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"edusync/backend/internal/model"
	"edusync/backend/internal/policy"
	"edusync/backend/internal/repository"
	"edusync/backend/pkg/storage"
)

var ErrExportGenerateFail = errors.New("failed to generate spreadsheet")

const resultsSheet = "Results"

// ExportService builds spreadsheet reports. The workbook is returned as a
// buffer; the handler sets the download headers.
type ExportService interface {
	// ExportCourseResults returns every result recorded against the course's
	// assessments and a suggested file name.
	ExportCourseResults(ctx context.Context, courseID string, caller policy.Identity) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportCourseResults
// ═══════════════════════════════════════════════════════════
//
// Layout: one sheet "Results", a header row, then one row per result
// ordered by assessment title and attempt date.

func (s *exportService) ExportCourseResults(ctx context.Context, courseID string, caller policy.Identity) (*bytes.Buffer, string, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get course failed", zap.String("id", courseID), zap.Error(err))
		}
		return nil, "", notFoundAs(err, ErrCourseNotFound)
	}

	err = policy.Authorize(policy.Request{
		Caller:       caller,
		RequiredRole: model.RoleInstructor,
		OwnerID:      course.InstructorID,
	})
	if err != nil {
		return nil, "", err
	}

	results, err := s.repo.Result.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("list course results failed", zap.String("course_id", courseID), zap.Error(err))
		return nil, "", err
	}

	buf, err := writeResultsWorkbook(results)
	if err != nil {
		s.logger.Error("write results workbook failed", zap.String("course_id", courseID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	s.logger.Info("course results exported",
		zap.String("course_id", courseID),
		zap.Int("rows", len(results)),
		zap.String("by", caller.UserID),
	)
	return buf, exportFilename(course.Title), nil
}

func writeResultsWorkbook(results []model.Result) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(resultsSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"Assessment", "Student", "Email", "Score", "Max Score", "Attempt Date"}
	widths := []float64{32, 24, 32, 10, 12, 22}
	for i, h := range headers {
		col := colName(i)
		if err := f.SetColWidth(resultsSheet, col, col, widths[i]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(resultsSheet, cell(col, 1), h); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(resultsSheet, "A1", cell(colName(len(headers)-1), 1), headerStyle); err != nil {
		return nil, err
	}

	for i, r := range results {
		row := i + 2
		values := []any{"", "", "", r.Score, "", r.AttemptDate.UTC().Format("2006-01-02 15:04")}
		if r.Assessment != nil {
			values[0] = r.Assessment.Title
			values[4] = r.Assessment.MaxScore
		}
		if r.User != nil {
			values[1] = r.User.Name
			values[2] = r.User.Email
		}
		for c, v := range values {
			if err := f.SetCellValue(resultsSheet, cell(colName(c), row), v); err != nil {
				return nil, err
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ── helpers ──

func exportFilename(title string) string {
	name := strings.TrimSuffix(storage.SanitizeFilename(title), ".xlsx")
	return fmt.Sprintf("results_%s.xlsx", name)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

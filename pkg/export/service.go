package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/lead"
	"github.com/jordanlanch/salespipe/pkg/domain"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/jordanlanch/salespipe/pkg/policy"
	"github.com/xuri/excelize/v2"
)

// Service exports the actor's visible leads as spreadsheet files.
type Service struct {
	db     *ent.Client
	policy *policy.Evaluator
	log    logger.Logger
}

// NewService creates a new export service
func NewService(db *ent.Client, pol *policy.Evaluator, log logger.Logger) *Service {
	return &Service{
		db:     db,
		policy: pol,
		log:    log,
	}
}

var headers = []string{
	"ID", "First Name", "Last Name", "Email", "Phone", "Company", "Title",
	"Status", "Source", "Estimated Value", "Assigned To", "Created By", "Created At",
}

// LeadsExcel builds an xlsx workbook of all leads the actor may see and
// returns the serialized file.
func (s *Service) LeadsExcel(ctx context.Context, actor *ent.User) ([]byte, error) {
	rows, err := s.visibleLeads(ctx, actor)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Leads"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to create sheet: %w", err))
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to create style: %w", err))
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, l := range rows {
		row := rowIdx + 2 // Start from row 2 (after header)
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), l.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), l.FirstName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), l.LastName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), l.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), l.Phone)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), l.Company)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), l.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), string(l.Status))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), l.Source)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), l.EstimatedValue)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), edgeUserName(l.Edges.AssignedTo))
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), edgeUserName(l.Edges.CreatedBy))
		f.SetCellValue(sheetName, fmt.Sprintf("M%d", row), l.CreatedAt)
	}

	for i := 0; i < len(headers); i++ {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, 15)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to serialize workbook: %w", err))
	}

	s.log.Info("leads exported to excel", "rows", len(rows), "actor", actor.Email)
	return buf.Bytes(), nil
}

// LeadsCSV builds a CSV file of all leads the actor may see.
func (s *Service) LeadsCSV(ctx context.Context, actor *ent.User) ([]byte, error) {
	rows, err := s.visibleLeads(ctx, actor)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to write header: %w", err))
	}

	for _, l := range rows {
		record := []string{
			strconv.Itoa(l.ID),
			l.FirstName,
			l.LastName,
			l.Email,
			l.Phone,
			l.Company,
			l.Title,
			string(l.Status),
			l.Source,
			strconv.FormatFloat(l.EstimatedValue, 'f', 2, 64),
			edgeUserName(l.Edges.AssignedTo),
			edgeUserName(l.Edges.CreatedBy),
			l.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, domain.NewInternalError(fmt.Errorf("failed to write row: %w", err))
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to flush csv: %w", err))
	}

	s.log.Info("leads exported to csv", "rows", len(rows), "actor", actor.Email)
	return buf.Bytes(), nil
}

func (s *Service) visibleLeads(ctx context.Context, actor *ent.User) ([]*ent.Lead, error) {
	scope, err := s.policy.VisibilityScope(ctx, actor)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	q := s.db.Lead.Query().
		WithAssignedTo().
		WithCreatedBy().
		Order(ent.Asc(lead.FieldID))
	if !scope.Unrestricted {
		q = q.Where(lead.AssignedToID(actor.ID))
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Errorf("failed to query leads: %w", err))
	}
	return rows, nil
}

func edgeUserName(u *ent.User) string {
	if u == nil {
		return ""
	}
	return u.FirstName + " " + u.LastName
}

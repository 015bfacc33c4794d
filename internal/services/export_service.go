package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/danvitmon/contactpro/internal/models"
)

// ExportService writes an owner's address book to an xlsx workbook
type ExportService struct {
	contactService *ContactService
}

func NewExportService(contactService *ContactService) *ExportService {
	return &ExportService{contactService: contactService}
}

var exportHeaders = []string{
	"First Name", "Last Name", "Email", "Phone",
	"Address 1", "Address 2", "City", "State", "Zip Code", "Categories",
}

// ExportContacts builds an xlsx workbook containing every contact owned by
// the user, one row per contact with its category names joined by comma.
func (s *ExportService) ExportContacts(appUserID string) ([]byte, error) {
	contacts, err := s.contactService.ListContacts(appUserID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Contacts"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, contact := range contacts {
		values := []interface{}{
			contact.FirstName, contact.LastName, contact.Email, contact.Phone,
			contact.Address1, contact.Address2, contact.City, contact.State,
			contact.ZipCode, categoryNames(contact.Categories),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func categoryNames(categories []*models.Category) string {
	names := ""
	for i, category := range categories {
		if i > 0 {
			names += ", "
		}
		names += category.Name
	}
	return names
}

// Package csvimport parses user rows out of loosely-structured CSV files.
// Column headers are matched case-insensitively after stripping a UTF-8 BOM;
// either a single "name" column or separate "firstname"/"lastname" columns
// are accepted.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"assetdesk/internal/model"
)

// Result summarizes a parsed file. Rows without an email are skipped, not
// treated as errors.
type Result struct {
	Users   []model.User
	Skipped int
}

// Parse reads CSV data and returns the user rows it contains. Emails are
// lowercased so the upsert key is stable; a blank status defaults to active.
func Parse(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		columns[h] = i
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	result := &Result{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV record: %w", err)
		}

		email := strings.ToLower(field(record, "email"))
		if email == "" {
			result.Skipped++
			continue
		}

		var firstName, lastName string
		if name := field(record, "name"); name != "" {
			parts := strings.Fields(name)
			firstName = parts[0]
			lastName = strings.Join(parts[1:], " ")
		} else {
			firstName = field(record, "firstname")
			lastName = field(record, "lastname")
		}

		status := strings.ToLower(field(record, "status"))
		if status == "" {
			status = model.UserStatusActive
		}

		result.Users = append(result.Users, model.User{
			FirstName:  firstName,
			LastName:   lastName,
			Email:      email,
			Status:     status,
			Department: field(record, "department"),
			Location:   field(record, "location"),
		})
	}

	return result, nil
}

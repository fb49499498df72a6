package banking

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatementRow is one parsed line of an imported bank statement.
type StatementRow struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Reference   string
}

// ParseStatement reads a CSV bank statement with the header
// date,description,amount,type,reference. Rows that fail to parse are
// collected as ImportRowError so a partially valid file still imports.
func ParseStatement(r io.Reader) ([]StatementRow, []ImportRowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read statement header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, nil, err
	}

	var (
		rows    []StatementRow
		rowErrs []ImportRowError
		lineNo  = 1
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			rowErrs = append(rowErrs, ImportRowError{Line: lineNo, Message: err.Error()})
			continue
		}
		row, err := parseRecord(record)
		if err != nil {
			rowErrs = append(rowErrs, ImportRowError{Line: lineNo, Message: err.Error()})
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

func checkHeader(header []string) error {
	expected := []string{"date", "description", "amount", "type", "reference"}
	if len(header) != len(expected) {
		return fmt.Errorf("statement header must have %d columns", len(expected))
	}
	for i, name := range expected {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return fmt.Errorf("statement column %d must be %q", i+1, name)
		}
	}
	return nil
}

func parseRecord(record []string) (StatementRow, error) {
	if len(record) != 5 {
		return StatementRow{}, fmt.Errorf("expected 5 fields, got %d", len(record))
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
	if err != nil {
		return StatementRow{}, fmt.Errorf("invalid date %q", record[0])
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return StatementRow{}, fmt.Errorf("invalid amount %q", record[2])
	}
	if !amount.IsPositive() {
		return StatementRow{}, fmt.Errorf("amount %q must be positive", record[2])
	}
	txnType := TransactionType(strings.ToUpper(strings.TrimSpace(record[3])))
	if !txnType.Valid() {
		return StatementRow{}, fmt.Errorf("invalid type %q", record[3])
	}
	return StatementRow{
		Date:        date,
		Description: strings.TrimSpace(record[1]),
		Amount:      amount,
		Type:        txnType,
		Reference:   strings.TrimSpace(record[4]),
	}, nil
}

package banking

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseStatement(t *testing.T) {
	statement := strings.Join([]string{
		"date,description,amount,type,reference",
		"2026-03-01,Invoice 42,1250.00,credit,INV-42",
		"2026-03-02,Office rent,800.50,DEBIT,RENT-03",
	}, "\n")

	rows, rowErrs, err := ParseStatement(strings.NewReader(statement))
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, rows, 2)

	require.Equal(t, TypeCredit, rows[0].Type)
	require.True(t, rows[0].Amount.Equal(decimal.RequireFromString("1250.00")))
	require.Equal(t, "INV-42", rows[0].Reference)
	require.Equal(t, TypeDebit, rows[1].Type)
}

func TestParseStatementCollectsBadRows(t *testing.T) {
	statement := strings.Join([]string{
		"date,description,amount,type,reference",
		"2026-03-01,ok row,100,CREDIT,R1",
		"not-a-date,bad date,100,CREDIT,R2",
		"2026-03-03,bad amount,abc,CREDIT,R3",
		"2026-03-04,bad type,100,WIRE,R4",
		"2026-03-05,negative,-5,DEBIT,R5",
	}, "\n")

	rows, rowErrs, err := ParseStatement(strings.NewReader(statement))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rowErrs, 4)
	require.Equal(t, 3, rowErrs[0].Line)
	require.Equal(t, 6, rowErrs[3].Line)
}

func TestParseStatementRejectsWrongHeader(t *testing.T) {
	_, _, err := ParseStatement(strings.NewReader("when,what,much,kind,ref\n"))
	require.Error(t, err)
}

package postgresql

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
)

type statutoryRepositoryImpl struct {
	db *database.DB
}

// NewStatutoryRepository loads the statutory deduction brackets from the
// statutory_brackets table. An empty table falls back to the built-in
// defaults so a fresh database still produces deductions.
func NewStatutoryRepository(db *database.DB) payroll.StatutoryRepository {
	return &statutoryRepositoryImpl{db: db}
}

func (r *statutoryRepositoryImpl) GetTables(ctx context.Context) (payroll.StatutoryTables, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT table_name, salary_floor, salary_ceiling, amount
		FROM statutory_brackets
		ORDER BY table_name, salary_floor
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return payroll.StatutoryTables{}, err
	}
	defer rows.Close()

	var tables payroll.StatutoryTables
	count := 0
	for rows.Next() {
		var tableName string
		var bracket payroll.RateBracket
		if err := rows.Scan(&tableName, &bracket.SalaryFloor, &bracket.SalaryCeiling, &bracket.Amount); err != nil {
			return payroll.StatutoryTables{}, err
		}
		switch tableName {
		case "sss":
			tables.SSS = append(tables.SSS, bracket)
		case "philhealth":
			tables.PhilHealth = append(tables.PhilHealth, bracket)
		case "pagibig":
			tables.PagIbig = append(tables.PagIbig, bracket)
		case "withholding_tax":
			tables.WithholdingTax = append(tables.WithholdingTax, bracket)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return payroll.StatutoryTables{}, err
	}

	if count == 0 {
		return defaultStatutoryTables(), nil
	}
	return tables, nil
}

func bracket(floor, ceiling, amount float64) payroll.RateBracket {
	b := payroll.RateBracket{
		SalaryFloor: decimal.NewFromFloat(floor),
		Amount:      decimal.NewFromFloat(amount),
	}
	if ceiling > 0 {
		c := decimal.NewFromFloat(ceiling)
		b.SalaryCeiling = &c
	}
	return b
}

// defaultStatutoryTables is a coarse built-in contribution schedule. Real
// deployments seed statutory_brackets with the current government tables.
func defaultStatutoryTables() payroll.StatutoryTables {
	return payroll.StatutoryTables{
		SSS: []payroll.RateBracket{
			bracket(0, 9999.99, 450),
			bracket(10000, 19999.99, 900),
			bracket(20000, 29999.99, 1350),
			bracket(30000, 0, 1800),
		},
		PhilHealth: []payroll.RateBracket{
			bracket(0, 9999.99, 250),
			bracket(10000, 19999.99, 400),
			bracket(20000, 0, 500),
		},
		PagIbig: []payroll.RateBracket{
			bracket(0, 0, 100),
		},
		WithholdingTax: []payroll.RateBracket{
			bracket(0, 20832.99, 0),
			bracket(20833, 33332.99, 1250),
			bracket(33333, 66666.99, 3750),
			bracket(66667, 0, 10000),
		},
	}
}

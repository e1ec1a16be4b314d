package ledger

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source=ledger_repo.go -destination=mock/ledger_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Seed(ctx context.Context, employeeID string, entitlement map[Category]int) error
	GetRemaining(ctx context.Context, employeeID string, category Category) (int, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error)
	Debit(ctx context.Context, employeeID string, category Category, days int) (bool, error)
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Seed(ctx context.Context, employeeID string, entitlement map[Category]int) error {
	query := `
        INSERT INTO leave_balances (id, employee_id, category, remaining_days, created_at, updated_at)
        VALUES (gen_random_uuid(), $1, $2, $3, NOW(), NOW())
    `

	exec := r.execer()
	for _, category := range Categories() {
		days := entitlement[category]
		if _, err := exec.ExecContext(ctx, query, employeeID, string(category), days); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) GetRemaining(ctx context.Context, employeeID string, category Category) (int, error) {
	query := `
SELECT remaining_days
FROM leave_balances
WHERE employee_id = $1 AND category = $2
`

	var remaining int
	err := r.queryer().QueryRowContext(ctx, query, employeeID, string(category)).Scan(&remaining)
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error) {
	query := `
SELECT id, employee_id, category, remaining_days, created_at, updated_at
FROM leave_balances
WHERE employee_id = $1
ORDER BY category ASC
`

	rows, err := r.queryer().QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []LeaveBalance
	for rows.Next() {
		var b LeaveBalance
		if err := rows.Scan(
			&b.ID,
			&b.EmployeeID,
			&b.Category,
			&b.RemainingDays,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return balances, nil
}

// Debit subtracts days from the balance in one guarded statement. The
// remaining_days >= days predicate makes the sufficiency check and the
// subtraction a single atomic step: returns false when the balance cannot
// cover the debit at commit time, regardless of what an earlier read saw.
func (r *repository) Debit(ctx context.Context, employeeID string, category Category, days int) (bool, error) {
	query := `
UPDATE leave_balances
SET remaining_days = remaining_days - $3,
	updated_at = NOW()
WHERE employee_id = $1
	AND category = $2
	AND remaining_days >= $3
`

	res, err := r.execer().ExecContext(ctx, query, employeeID, string(category), days)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) queryer() interface {
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/veloxline/reception_backend/internal/apperrors"
	"github.com/veloxline/reception_backend/internal/core/domain"
	portsrepo "github.com/veloxline/reception_backend/internal/core/ports/repositories"
	"github.com/veloxline/reception_backend/internal/models"
	"github.com/veloxline/reception_backend/internal/utils/mapping"
)

// PgxAccountRepository persists customer accounts in PostgreSQL.
type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_token, display_name, contact_phone, site_identifier,
	provisioned_number, telephony_subaccount_id, telephony_subaccount_secret, status,
	billable_call_count, billable_call_limit, spam_call_count, spam_call_limit,
	silent_call_count, silent_call_limit, operator_test_call_count, operator_test_call_limit,
	total_call_count, total_call_limit, training_count, training_limit,
	training_token_count, training_token_limit,
	billing_period_start, billing_period_end, created_at, updated_at`

// counterColumns whitelists the columns IncrementCounter may touch; the column
// name is interpolated into SQL so it must never come from caller input.
var counterColumns = map[domain.UsageCounter]string{
	domain.CounterBillableCalls:     "billable_call_count",
	domain.CounterSpamCalls:         "spam_call_count",
	domain.CounterSilentCalls:       "silent_call_count",
	domain.CounterOperatorTestCalls: "operator_test_call_count",
	domain.CounterTotalCalls:        "total_call_count",
	domain.CounterTraining:          "training_count",
	domain.CounterTrainingTokens:    "training_token_count",
}

// SaveAccount inserts a new account. A unique violation on the token or the
// site identifier surfaces as apperrors.ErrDuplicate.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);
	`
	// Nullable columns go through sql.NullString
	var contactPhone, siteIdentifier sql.NullString
	if m.ContactPhone != "" {
		contactPhone = sql.NullString{String: m.ContactPhone, Valid: true}
	}
	if m.SiteIdentifier != "" {
		siteIdentifier = sql.NullString{String: m.SiteIdentifier, Valid: true}
	}

	_, err := r.pool.Exec(ctx, query,
		m.AccountToken,
		m.DisplayName,
		contactPhone,
		siteIdentifier,
		m.ProvisionedNumber,
		m.TelephonySubaccountID,
		m.TelephonySubaccountToken,
		m.Status,
		m.BillableCallCount,
		m.BillableCallLimit,
		m.SpamCallCount,
		m.SpamCallLimit,
		m.SilentCallCount,
		m.SilentCallLimit,
		m.OperatorTestCallCount,
		m.OperatorTestCallLimit,
		m.TotalCallCount,
		m.TotalCallLimit,
		m.TrainingCount,
		m.TrainingLimit,
		m.TrainingTokenCount,
		m.TrainingTokenLimit,
		m.BillingPeriodStart,
		m.BillingPeriodEnd,
		m.CreatedAt,
		m.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: account for site %s or token already exists", apperrors.ErrDuplicate, m.SiteIdentifier)
			}
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountToken, err)
	}
	return nil
}

// FindAccountByToken retrieves an account by its bearer token.
func (r *PgxAccountRepository) FindAccountByToken(ctx context.Context, accountToken string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_token = $1;`
	return r.findOne(ctx, query, accountToken)
}

// FindAccountBySiteIdentifier retrieves the account registered for a site.
func (r *PgxAccountRepository) FindAccountBySiteIdentifier(ctx context.Context, siteIdentifier string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE site_identifier = $1;`
	return r.findOne(ctx, query, siteIdentifier)
}

func (r *PgxAccountRepository) findOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var m models.Account
	var contactPhone, siteIdentifier sql.NullString

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&m.AccountToken,
		&m.DisplayName,
		&contactPhone,
		&siteIdentifier,
		&m.ProvisionedNumber,
		&m.TelephonySubaccountID,
		&m.TelephonySubaccountToken,
		&m.Status,
		&m.BillableCallCount,
		&m.BillableCallLimit,
		&m.SpamCallCount,
		&m.SpamCallLimit,
		&m.SilentCallCount,
		&m.SilentCallLimit,
		&m.OperatorTestCallCount,
		&m.OperatorTestCallLimit,
		&m.TotalCallCount,
		&m.TotalCallLimit,
		&m.TrainingCount,
		&m.TrainingLimit,
		&m.TrainingTokenCount,
		&m.TrainingTokenLimit,
		&m.BillingPeriodStart,
		&m.BillingPeriodEnd,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	m.ContactPhone = contactPhone.String
	m.SiteIdentifier = siteIdentifier.String

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// IncrementCounter atomically adds delta to one usage counter and refreshes
// updated_at.
func (r *PgxAccountRepository) IncrementCounter(ctx context.Context, accountToken string, counter domain.UsageCounter, delta int) error {
	column, ok := counterColumns[counter]
	if !ok {
		return fmt.Errorf("%w: unknown usage counter %q", apperrors.ErrValidation, counter)
	}

	query := fmt.Sprintf(`UPDATE accounts SET %s = %s + $1, updated_at = now() WHERE account_token = $2;`, column, column)
	tag, err := r.pool.Exec(ctx, query, delta, accountToken)
	if err != nil {
		return fmt.Errorf("failed to increment %s for account %s: %w", column, accountToken, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

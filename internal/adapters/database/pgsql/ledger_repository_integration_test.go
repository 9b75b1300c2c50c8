package pgsql_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vsend/vsend_wallet_backend/internal/adapters/database/pgsql"
	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	"github.com/vsend/vsend_wallet_backend/pkg/database"
)

// TestLedgerRepositoryIntegration runs the balance-mutation paths against a
// real PostgreSQL so the row locks actually contend. Each move must hold
// SELECT ... FOR UPDATE and re-check sufficiency on the locked balance;
// nothing short of a live database can verify that.
func TestLedgerRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, dbURL := startPostgresContainer(t, ctx)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	}()

	applyMigrations(t, dbURL)

	pool, err := database.NewPgxPool(ctx, dbURL)
	require.NoError(t, err)
	defer pool.Close()

	repo := pgsql.NewLedgerRepository(pool)

	t.Run("concurrent debits settle exactly once", func(t *testing.T) {
		accountID := seedAccount(t, ctx, pool, "0551000001", "500")

		results := make(chan error, 2)
		for i := 0; i < 2; i++ {
			go func(n int) {
				_, _, err := repo.DebitAccount(ctx, completedTxn(accountID, domain.Debit, "300", fmt.Sprintf("VS_RACE_%d", n)))
				results <- err
			}(i)
		}

		var rejected int
		for i := 0; i < 2; i++ {
			if err := <-results; err != nil {
				require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
				rejected++
			}
		}

		require.Equal(t, 1, rejected, "500 covers one 300 debit, never both")
		requireBalance(t, ctx, pool, accountID, "200")
		require.Equal(t, 1, countTransactions(t, ctx, pool, accountID))
	})

	t.Run("debit rechecks sufficiency on the locked balance", func(t *testing.T) {
		accountID := seedAccount(t, ctx, pool, "0551000002", "100")

		_, _, err := repo.DebitAccount(ctx, completedTxn(accountID, domain.Debit, "100.01", "VS_OVER_1"))
		require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

		requireBalance(t, ctx, pool, accountID, "100")
		require.Equal(t, 0, countTransactions(t, ctx, pool, accountID))
	})

	t.Run("transfer commits both legs atomically", func(t *testing.T) {
		senderID := seedAccount(t, ctx, pool, "0551000003", "500")
		recipientID := seedAccount(t, ctx, pool, "0551000004", "50")

		out := completedTxn(senderID, domain.TransferOut, "120.50", "VS_TRF_PAIR_1")
		in := completedTxn(recipientID, domain.TransferIn, "120.50", "VS_TRF_PAIR_1")

		_, newBalance, err := repo.TransferFunds(ctx, out, in)
		require.NoError(t, err)
		require.True(t, newBalance.Equal(decimal.RequireFromString("379.50")))

		requireBalance(t, ctx, pool, senderID, "379.50")
		requireBalance(t, ctx, pool, recipientID, "170.50")

		var legs int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE reference = $1`, "VS_TRF_PAIR_1").Scan(&legs))
		require.Equal(t, 2, legs)
	})

	t.Run("failed transfer leaves no trace of either leg", func(t *testing.T) {
		senderID := seedAccount(t, ctx, pool, "0551000005", "100")
		recipientID := seedAccount(t, ctx, pool, "0551000006", "0")

		out := completedTxn(senderID, domain.TransferOut, "250", "VS_TRF_FAIL_1")
		in := completedTxn(recipientID, domain.TransferIn, "250", "VS_TRF_FAIL_1")

		_, _, err := repo.TransferFunds(ctx, out, in)
		require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

		requireBalance(t, ctx, pool, senderID, "100")
		requireBalance(t, ctx, pool, recipientID, "0")
		require.Equal(t, 0, countTransactions(t, ctx, pool, senderID))
		require.Equal(t, 0, countTransactions(t, ctx, pool, recipientID))
	})

	t.Run("concurrent transfers drain the sender at most once", func(t *testing.T) {
		senderID := seedAccount(t, ctx, pool, "0551000007", "500")
		recipientA := seedAccount(t, ctx, pool, "0551000008", "0")
		recipientB := seedAccount(t, ctx, pool, "0551000009", "0")

		results := make(chan error, 2)
		for i, recipientID := range []string{recipientA, recipientB} {
			reference := fmt.Sprintf("VS_TRF_RACE_%d", i)
			out := completedTxn(senderID, domain.TransferOut, "300", reference)
			in := completedTxn(recipientID, domain.TransferIn, "300", reference)
			go func(out, in domain.Transaction) {
				_, _, err := repo.TransferFunds(ctx, out, in)
				results <- err
			}(out, in)
		}

		var rejected int
		for i := 0; i < 2; i++ {
			if err := <-results; err != nil {
				require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
				rejected++
			}
		}

		require.Equal(t, 1, rejected)
		requireBalance(t, ctx, pool, senderID, "200")
	})
}

func startPostgresContainer(t *testing.T, ctx context.Context) (testcontainers.Container, string) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("could not start postgres container (docker unavailable?): %v", err)
	}

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbURL := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
	return container, dbURL
}

func applyMigrations(t *testing.T, dbURL string) {
	t.Helper()

	migrationDB, err := sql.Open("pgx", dbURL)
	require.NoError(t, err)
	defer migrationDB.Close()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	require.NoError(t, err)

	m, err := migrate.NewWithDatabaseInstance("file://../../../../migrations", "postgres", driver)
	require.NoError(t, err)
	require.NoError(t, m.Up())

	sourceErr, dbErr := m.Close()
	require.NoError(t, sourceErr)
	require.NoError(t, dbErr)
}

func seedAccount(t *testing.T, ctx context.Context, pool *pgxpool.Pool, phone, balance string) string {
	t.Helper()

	userID := uuid.NewString()
	accountID := uuid.NewString()
	now := time.Now().UTC()

	_, err := pool.Exec(ctx, `
		INSERT INTO users (user_id, phone_number, first_name, last_name, is_verified, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, 'Ama', 'Mensah', TRUE, TRUE, $3, $1, $3, $1);
	`, userID, phone, now)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `
		INSERT INTO accounts (account_id, user_id, account_number, balance, currency_code, status, daily_limit, monthly_limit, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, 'GHS', 'active', 0, 0, $5, $2, $5, $2);
	`, accountID, userID, phone, balance, now)
	require.NoError(t, err)

	return accountID
}

func completedTxn(accountID string, txnType domain.TransactionType, amount, reference string) domain.Transaction {
	now := time.Now().UTC()
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		Type:          txnType,
		Amount:        decimal.RequireFromString(amount),
		CurrencyCode:  "GHS",
		Reference:     reference,
		Status:        domain.TxnCompleted,
		CreatedAt:     now,
		CompletedAt:   &now,
	}
}

func requireBalance(t *testing.T, ctx context.Context, pool *pgxpool.Pool, accountID, want string) {
	t.Helper()

	var balance decimal.Decimal
	require.NoError(t, pool.QueryRow(ctx, `SELECT balance FROM accounts WHERE account_id = $1`, accountID).Scan(&balance))
	require.True(t, balance.Equal(decimal.RequireFromString(want)), "balance %s, want %s", balance, want)
}

func countTransactions(t *testing.T, ctx context.Context, pool *pgxpool.Pool, accountID string) int {
	t.Helper()

	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE account_id = $1`, accountID).Scan(&n))
	return n
}

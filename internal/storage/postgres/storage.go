package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage relies on.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// newPgxPool is a seam for substituting the pool in tests.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type accountRepository struct {
	storage *Storage
}

type cartRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type plantRepository struct {
	storage *Storage
}

type recyclingRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Accounts() repository.AccountRepository {
	return &accountRepository{storage: s}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Plants() repository.PlantRepository {
	return &plantRepository{storage: s}
}

func (s *Storage) Recycling() repository.RecyclingRepository {
	return &recyclingRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
            id BIGSERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            points BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            account_id BIGINT PRIMARY KEY REFERENCES accounts(id),
            snapshot JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            lines JSONB NOT NULL,
            status TEXT NOT NULL,
            total DOUBLE PRECISION NOT NULL DEFAULT 0,
            points_spent BIGINT NOT NULL DEFAULT 0,
            points_earned BIGINT NOT NULL DEFAULT 0,
            external_ref TEXT NOT NULL DEFAULT '',
            plants_projected BOOLEAN NOT NULL DEFAULT FALSE,
            uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS plants (
            id BIGSERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            order_id BIGINT REFERENCES orders(id),
            product_id BIGINT NOT NULL DEFAULT 0,
            name TEXT NOT NULL,
            species TEXT NOT NULL DEFAULT '',
            growth_stage TEXT NOT NULL,
            health_status TEXT NOT NULL,
            height_cm DOUBLE PRECISION,
            last_watered TIMESTAMPTZ,
            last_fertilized TIMESTAMPTZ,
            purchase_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            planting_date TIMESTAMPTZ,
            notes TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS recycling_submissions (
            id BIGSERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            plastic_type TEXT NOT NULL,
            weight_kg DOUBLE PRECISION NOT NULL,
            points BIGINT NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_account ON orders(account_id, uploaded_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_plants_account ON plants(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recycling_account ON recycling_submissions(account_id, submitted_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- AccountRepository implementation ---

func (r *accountRepository) Create(ctx context.Context, login, passwordHash string, startingPoints int64) (*model.Account, error) {
	const query = `INSERT INTO accounts (login, password_hash, points) VALUES ($1, $2, $3) RETURNING id, created_at`
	var a model.Account
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, startingPoints).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	a.Login = login
	a.PasswordHash = passwordHash
	a.Points = startingPoints
	return &a, nil
}

func (r *accountRepository) GetByLogin(ctx context.Context, login string) (*model.Account, error) {
	const query = `SELECT id, login, password_hash, points, created_at FROM accounts WHERE login=$1`
	var a model.Account
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&a.ID, &a.Login, &a.PasswordHash, &a.Points, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	const query = `SELECT id, login, password_hash, points, created_at FROM accounts WHERE id=$1`
	var a model.Account
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Login, &a.PasswordHash, &a.Points, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) Balance(ctx context.Context, id int64) (int64, error) {
	const query = `SELECT points FROM accounts WHERE id=$1`
	var points int64
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, err
	}
	return points, nil
}

func (r *accountRepository) Earn(ctx context.Context, id int64, amount int64) error {
	const query = `UPDATE accounts SET points = points + $2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *accountRepository) Spend(ctx context.Context, id int64, amount int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT points FROM accounts WHERE id=$1 FOR UPDATE`
		var points int64
		if err := tx.QueryRow(ctx, selectQuery, id).Scan(&points); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if points < amount {
			return domainErrors.ErrInsufficientPoints
		}

		const updateQuery = `UPDATE accounts SET points = points - $2 WHERE id=$1`
		if _, err := tx.Exec(ctx, updateQuery, id, amount); err != nil {
			return err
		}
		return nil
	})
}

// --- CartRepository implementation ---

func (r *cartRepository) Load(ctx context.Context, accountID int64) (*model.CartSnapshot, error) {
	const query = `SELECT snapshot FROM carts WHERE account_id=$1`
	var raw []byte
	err := r.storage.pool.QueryRow(ctx, query, accountID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.CartSnapshot{}, nil
		}
		return nil, err
	}

	var snap model.CartSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// A snapshot that cannot be decoded is treated as an empty cart
		// rather than a hard failure.
		r.storage.logger.Warn("discarding unreadable cart snapshot",
			slog.Int64("account_id", accountID),
			slog.String("error", err.Error()),
		)
		return &model.CartSnapshot{}, nil
	}
	return &snap, nil
}

func (r *cartRepository) Save(ctx context.Context, accountID int64, snapshot *model.CartSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	const query = `INSERT INTO carts (account_id, snapshot, updated_at)
                   VALUES ($1, $2, NOW())
                   ON CONFLICT (account_id) DO UPDATE
                   SET snapshot = EXCLUDED.snapshot, updated_at = NOW()`
	_, err = r.storage.pool.Exec(ctx, query, accountID, raw)
	return err
}

func (r *cartRepository) Clear(ctx context.Context, accountID int64) error {
	const query = `DELETE FROM carts WHERE account_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, accountID)
	return err
}

// --- OrderRepository implementation ---

const orderColumns = `id, account_id, lines, status, total, points_spent, points_earned, external_ref, plants_projected, uploaded_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var rawLines []byte
	err := row.Scan(&o.ID, &o.AccountID, &rawLines, &o.Status, &o.Total, &o.PointsSpent, &o.PointsEarned, &o.ExternalRef, &o.PlantsProjected, &o.UploadedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawLines, &o.Lines); err != nil {
		return nil, fmt.Errorf("decode order lines: %w", err)
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	rawLines, err := json.Marshal(order.Lines)
	if err != nil {
		return nil, err
	}

	const query = `INSERT INTO orders (account_id, lines, status, total, points_spent, points_earned, external_ref)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, uploaded_at, updated_at`
	created := *order
	err = r.storage.pool.QueryRow(ctx, query,
		order.AccountID, rawLines, order.Status, order.Total,
		order.PointsSpent, order.PointsEarned, order.ExternalRef,
	).Scan(&created.ID, &created.UploadedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE account_id=$1 ORDER BY uploaded_at DESC`
	return r.list(ctx, query, accountID)
}

func (r *orderRepository) ListFulfilledByAccount(ctx context.Context, accountID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE account_id=$1 AND status='FULFILLED' ORDER BY uploaded_at DESC`
	return r.list(ctx, query, accountID)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) SelectBatchForProcessing(ctx context.Context, limit int) ([]model.Order, error) {
	selectQuery := `SELECT ` + orderColumns + `
                    FROM orders
                    WHERE status IN ('SUBMITTED', 'PROCESSING')
                    ORDER BY uploaded_at
                    LIMIT $1
                    FOR UPDATE SKIP LOCKED`

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			order, err := scanOrder(rows)
			if err != nil {
				return err
			}
			orders = append(orders, *order)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range orders {
			if orders[i].Status != model.OrderStatusProcessing {
				if _, err := tx.Exec(ctx, `UPDATE orders SET status='PROCESSING', updated_at=NOW() WHERE id=$1`, orders[i].ID); err != nil {
					return err
				}
				orders[i].Status = model.OrderStatusProcessing
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- PlantRepository implementation ---

const plantColumns = `id, account_id, product_id, name, species, growth_stage, health_status, height_cm, last_watered, last_fertilized, purchase_date, planting_date, notes`

func scanPlant(row pgx.Row) (*model.PlantRecord, error) {
	var p model.PlantRecord
	err := row.Scan(&p.ID, &p.AccountID, &p.ProductID, &p.Name, &p.Species, &p.GrowthStage, &p.HealthStatus, &p.HeightCm, &p.LastWatered, &p.LastFertilized, &p.PurchaseDate, &p.PlantingDate, &p.Notes)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *plantRepository) GetByID(ctx context.Context, id int64) (*model.PlantRecord, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE id=$1`
	plant, err := scanPlant(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return plant, nil
}

func (r *plantRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.PlantRecord, error) {
	query := `SELECT ` + plantColumns + ` FROM plants WHERE account_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PlantRecord
	for rows.Next() {
		plant, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *plant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *plantRepository) Update(ctx context.Context, plant *model.PlantRecord) error {
	const query = `UPDATE plants
                   SET name=$2, species=$3, growth_stage=$4, health_status=$5, height_cm=$6,
                       last_watered=$7, last_fertilized=$8, planting_date=$9, notes=$10
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query,
		plant.ID, plant.Name, plant.Species, plant.GrowthStage, plant.HealthStatus,
		plant.HeightCm, plant.LastWatered, plant.LastFertilized, plant.PlantingDate, plant.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *plantRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM plants WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *plantRepository) MaterializeFromOrder(ctx context.Context, order *model.Order) ([]model.PlantRecord, error) {
	var created []model.PlantRecord
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const flagQuery = `SELECT plants_projected FROM orders WHERE id=$1 FOR UPDATE`
		var projected bool
		if err := tx.QueryRow(ctx, flagQuery, order.ID).Scan(&projected); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if projected {
			query := `SELECT ` + plantColumns + ` FROM plants WHERE order_id=$1 ORDER BY id`
			rows, err := tx.Query(ctx, query, order.ID)
			if err != nil {
				return err
			}
			defer rows.Close()
			for rows.Next() {
				plant, err := scanPlant(rows)
				if err != nil {
					return err
				}
				created = append(created, *plant)
			}
			return rows.Err()
		}

		const insertQuery = `INSERT INTO plants (account_id, order_id, product_id, name, growth_stage, health_status, purchase_date)
                             VALUES ($1, $2, $3, $4, $5, $6, $7)
                             RETURNING id`
		for _, line := range order.Lines {
			if !line.IsPlant {
				continue
			}
			for i := 0; i < line.Quantity; i++ {
				plant := model.PlantRecord{
					AccountID:    order.AccountID,
					ProductID:    line.ProductID,
					Name:         line.Name,
					GrowthStage:  model.StageSeedling,
					HealthStatus: model.HealthGood,
					PurchaseDate: order.UploadedAt,
				}
				if err := tx.QueryRow(ctx, insertQuery,
					plant.AccountID, order.ID, plant.ProductID, plant.Name,
					plant.GrowthStage, plant.HealthStatus, plant.PurchaseDate,
				).Scan(&plant.ID); err != nil {
					return err
				}
				created = append(created, plant)
			}
		}

		if _, err := tx.Exec(ctx, `UPDATE orders SET plants_projected=TRUE, updated_at=NOW() WHERE id=$1`, order.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// --- RecyclingRepository implementation ---

func (r *recyclingRepository) Create(ctx context.Context, submission *model.RecyclingSubmission) (*model.RecyclingSubmission, error) {
	const query = `INSERT INTO recycling_submissions (account_id, plastic_type, weight_kg, points, notes)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, submitted_at`
	created := *submission
	err := r.storage.pool.QueryRow(ctx, query,
		submission.AccountID, submission.PlasticType, submission.WeightKg, submission.Points, submission.Notes,
	).Scan(&created.ID, &created.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *recyclingRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.RecyclingSubmission, error) {
	const query = `SELECT id, account_id, plastic_type, weight_kg, points, notes, submitted_at
                   FROM recycling_submissions WHERE account_id=$1 ORDER BY submitted_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.RecyclingSubmission
	for rows.Next() {
		var s model.RecyclingSubmission
		if err := rows.Scan(&s.ID, &s.AccountID, &s.PlasticType, &s.WeightKg, &s.Points, &s.Notes, &s.SubmittedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/mkoval/rpmarket/internal/domain/errors"
	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage layer relies on.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

// newPgxPool is swapped in tests to inject a mock pool.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

type userRepository struct{ storage *Storage }
type productRepository struct{ storage *Storage }
type currencyRepository struct{ storage *Storage }
type cartRepository struct{ storage *Storage }
type couponRepository struct{ storage *Storage }
type statusRepository struct{ storage *Storage }
type orderRepository struct{ storage *Storage }
type redeemRepository struct{ storage *Storage }
type loyaltyRepository struct{ storage *Storage }

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
func (s *Storage) Users() repository.UserRepository { return &userRepository{storage: s} }
func (s *Storage) Products() repository.ProductRepository { return &productRepository{storage: s} }
func (s *Storage) Currencies() repository.CurrencyRepository { return &currencyRepository{storage: s} }
func (s *Storage) Carts() repository.CartRepository { return &cartRepository{storage: s} }
func (s *Storage) Coupons() repository.CouponRepository { return &couponRepository{storage: s} }
func (s *Storage) Statuses() repository.StatusRepository { return &statusRepository{storage: s} }
func (s *Storage) Orders() repository.OrderRepository { return &orderRepository{storage: s} }
func (s *Storage) Redeems() repository.RedeemRepository { return &redeemRepository{storage: s} }
func (s *Storage) Loyalty() repository.LoyaltyRepository { return &loyaltyRepository{storage: s} }

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS currencies (
            id SERIAL PRIMARY KEY,
            code TEXT UNIQUE NOT NULL,
            symbol TEXT NOT NULL DEFAULT '',
            rate DOUBLE PRECISION NOT NULL DEFAULT 1
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            kind TEXT NOT NULL,
            name TEXT NOT NULL,
            tier_rp BIGINT NOT NULL DEFAULT 0,
            price_safe_rp DOUBLE PRECISION NOT NULL,
            price_cheap_rp DOUBLE PRECISION NOT NULL,
            image_url TEXT NOT NULL DEFAULT '',
            active BOOLEAN NOT NULL DEFAULT TRUE,
            region TEXT,
            level INT,
            blue_essence BIGINT
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            user_id BIGINT PRIMARY KEY REFERENCES users(id),
            currency_id BIGINT NOT NULL DEFAULT 1
        )`,
		`CREATE TABLE IF NOT EXISTS cart_lines (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            kind TEXT NOT NULL,
            name TEXT NOT NULL,
            tier_rp BIGINT NOT NULL DEFAULT 0,
            quantity INT NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL,
            safe_currency BOOLEAN NOT NULL,
            selected_for_coupon INT NOT NULL DEFAULT 0,
            UNIQUE (user_id, product_id, safe_currency)
        )`,
		`CREATE TABLE IF NOT EXISTS coupons (
            id SERIAL PRIMARY KEY,
            code TEXT NOT NULL,
            kind TEXT NOT NULL,
            value DOUBLE PRECISION NOT NULL,
            reward BOOLEAN NOT NULL DEFAULT FALSE,
            rp_type TEXT NOT NULL DEFAULT 'BOTH',
            price_tier BIGINT,
            max_units INT,
            category TEXT NOT NULL DEFAULT 'BOTH',
            currency_id BIGINT,
            owner_user_id BIGINT,
            redeemed BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS order_statuses (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            color TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL DEFAULT '',
            requires_confirmation BOOLEAN NOT NULL DEFAULT FALSE,
            confirm_button_text TEXT NOT NULL DEFAULT '',
            action_kind TEXT NOT NULL DEFAULT 'NONE',
            action_duration_minutes INT NOT NULL DEFAULT 0,
            action_target_status_id BIGINT,
            is_default BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            public_id TEXT UNIQUE NOT NULL,
            user_id BIGINT NOT NULL REFERENCES users(id),
            status_id BIGINT NOT NULL REFERENCES order_statuses(id),
            confirmed BOOLEAN NOT NULL DEFAULT FALSE,
            confirmed_at TIMESTAMPTZ,
            timer_ends_at TIMESTAMPTZ,
            total DOUBLE PRECISION NOT NULL,
            currency_id BIGINT NOT NULL,
            coupon_id BIGINT,
            riot_name TEXT NOT NULL DEFAULT '',
            discord_name TEXT NOT NULL DEFAULT '',
            region TEXT NOT NULL DEFAULT '',
            payment TEXT NOT NULL DEFAULT '',
            receipt_file TEXT NOT NULL DEFAULT '',
            viewed BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_lines (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL,
            kind TEXT NOT NULL,
            name TEXT NOT NULL,
            quantity INT NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL,
            safe_currency BOOLEAN NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS redeems (
            id SERIAL PRIMARY KEY,
            public_id TEXT UNIQUE NOT NULL,
            user_id BIGINT NOT NULL REFERENCES users(id),
            coupon_id BIGINT NOT NULL REFERENCES coupons(id),
            status_id BIGINT NOT NULL REFERENCES order_statuses(id),
            confirmed BOOLEAN NOT NULL DEFAULT FALSE,
            confirmed_at TIMESTAMPTZ,
            timer_ends_at TIMESTAMPTZ,
            points_spent DOUBLE PRECISION NOT NULL,
            viewed BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS loyalty_balances (
            user_id BIGINT PRIMARY KEY REFERENCES users(id),
            current DOUBLE PRECISION NOT NULL DEFAULT 0,
            spent DOUBLE PRECISION NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS loyalty_entries (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            order_id BIGINT,
            points DOUBLE PRECISION NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_cart_lines_user ON cart_lines(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_coupons_code ON coupons(code)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_timer ON orders(timer_ends_at) WHERE timer_ends_at IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_loyalty_entries_user ON loyalty_entries(user_id, created_at DESC)`,
		`INSERT INTO currencies (id, code, symbol, rate) VALUES (1, 'USD', '$', 1) ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO order_statuses (id, name, color, description, is_default)
         VALUES (1, 'Pending', '#f5a623', 'Order received and awaiting processing', TRUE)
         ON CONFLICT (id) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- ProductRepository implementation ---

const productColumns = `id, kind, name, tier_rp, price_safe_rp, price_cheap_rp, image_url, active, region, level, blue_essence`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	var region *string
	var level *int
	var blueEssence *int64
	err := row.Scan(&p.ID, &p.Kind, &p.Name, &p.TierRP, &p.PriceSafeRP, &p.PriceCheapRP, &p.ImageURL, &p.Active, &region, &level, &blueEssence)
	if err != nil {
		return nil, err
	}
	if p.Kind == model.KindUnranked && region != nil {
		p.Unranked = &model.UnrankedMeta{Region: *region}
		if level != nil {
			p.Unranked.Level = *level
		}
		if blueEssence != nil {
			p.Unranked.BlueEssence = *blueEssence
		}
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE active`
	args := []any{}
	arg := 1
	if filter.Kind != nil {
		query += fmt.Sprintf(" AND kind=$%d", arg)
		args = append(args, *filter.Kind)
		arg++
	}
	if filter.TierRP != nil {
		query += fmt.Sprintf(" AND tier_rp=$%d", arg)
		args = append(args, *filter.TierRP)
		arg++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", arg)
		args = append(args, "%"+filter.Search+"%")
		arg++
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", arg, arg+1)
	args = append(args, filter.PageSize, filter.Page*filter.PageSize)

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	product, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// --- CurrencyRepository implementation ---

func (r *currencyRepository) GetByID(ctx context.Context, id int64) (*model.Currency, error) {
	const query = `SELECT id, code, symbol, rate FROM currencies WHERE id=$1`
	var c model.Currency
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Code, &c.Symbol, &c.Rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *currencyRepository) List(ctx context.Context) ([]model.Currency, error) {
	const query = `SELECT id, code, symbol, rate FROM currencies ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Currency
	for rows.Next() {
		var c model.Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Symbol, &c.Rate); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- CartRepository implementation ---

const cartLineColumns = `id, product_id, kind, name, tier_rp, quantity, unit_price, safe_currency, selected_for_coupon`

func (r *cartRepository) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	const ensure = `INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.storage.pool.Exec(ctx, ensure, userID); err != nil {
		return nil, err
	}

	cart := &model.Cart{UserID: userID}
	const currencyQuery = `SELECT currency_id FROM carts WHERE user_id=$1`
	if err := r.storage.pool.QueryRow(ctx, currencyQuery, userID).Scan(&cart.CurrencyID); err != nil {
		return nil, err
	}

	const linesQuery = `SELECT ` + cartLineColumns + ` FROM cart_lines WHERE user_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, linesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Kind, &l.Name, &l.TierRP, &l.Quantity, &l.UnitPrice, &l.SafeCurrency, &l.SelectedForCoupon); err != nil {
			return nil, err
		}
		cart.Lines = append(cart.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) AddLine(ctx context.Context, userID int64, line model.CartLine) (*model.Cart, error) {
	const query = `INSERT INTO cart_lines (user_id, product_id, kind, name, tier_rp, quantity, unit_price, safe_currency)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   ON CONFLICT (user_id, product_id, safe_currency)
                   DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity, unit_price = EXCLUDED.unit_price`
	if _, err := r.storage.pool.Exec(ctx, query, userID, line.ProductID, line.Kind, line.Name, line.TierRP, line.Quantity, line.UnitPrice, line.SafeCurrency); err != nil {
		return nil, err
	}
	return r.Get(ctx, userID)
}

func (r *cartRepository) SetQuantity(ctx context.Context, userID, lineID int64, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		const remove = `DELETE FROM cart_lines WHERE user_id=$1 AND id=$2`
		tag, err := r.storage.pool.Exec(ctx, remove, userID, lineID)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, domainErrors.ErrNotFound
		}
		return r.Get(ctx, userID)
	}

	const query = `UPDATE cart_lines
                   SET quantity=$3, selected_for_coupon=LEAST(selected_for_coupon, $3)
                   WHERE user_id=$1 AND id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, userID, lineID, quantity)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return r.Get(ctx, userID)
}

func (r *cartRepository) SetSelections(ctx context.Context, userID int64, selections map[int64]int) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `UPDATE cart_lines
                       SET selected_for_coupon = LEAST($3, quantity)
                       WHERE user_id=$1 AND id=$2`
		for lineID, selected := range selections {
			if _, err := tx.Exec(ctx, query, userID, lineID, selected); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *cartRepository) SetCurrency(ctx context.Context, userID, currencyID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `INSERT INTO carts (user_id, currency_id) VALUES ($1, $2)
                        ON CONFLICT (user_id) DO UPDATE SET currency_id = EXCLUDED.currency_id`
		if _, err := tx.Exec(ctx, update, userID, currencyID); err != nil {
			return err
		}

		const reprice = `UPDATE cart_lines cl
                         SET unit_price = (CASE WHEN cl.safe_currency THEN p.price_safe_rp ELSE p.price_cheap_rp END) * c.rate
                         FROM products p, currencies c
                         WHERE cl.user_id=$1 AND p.id = cl.product_id AND c.id = $2`
		if _, err := tx.Exec(ctx, reprice, userID, currencyID); err != nil {
			return err
		}
		return nil
	})
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	const query = `DELETE FROM cart_lines WHERE user_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return err
}

// --- CouponRepository implementation ---

const couponColumns = `id, code, kind, value, reward, rp_type, price_tier, max_units, category, currency_id, owner_user_id, redeemed`

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.Kind, &c.Value, &c.RewardCoupon, &c.RPType, &c.PriceTier, &c.MaxUnits, &c.Category, &c.CurrencyID, &c.OwnerUserID, &c.Redeemed)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *couponRepository) GetMerchantCoupon(ctx context.Context, code string, currencyID int64) (*model.Coupon, error) {
	const query = `SELECT ` + couponColumns + ` FROM coupons
                   WHERE code=$1 AND NOT reward AND NOT redeemed
                     AND (currency_id IS NULL OR currency_id=$2)`
	coupon, err := scanCoupon(r.storage.pool.QueryRow(ctx, query, code, currencyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return coupon, nil
}

func (r *couponRepository) GetRewardCoupon(ctx context.Context, code string, userID int64) (*model.Coupon, error) {
	const query = `SELECT ` + couponColumns + ` FROM coupons
                   WHERE code=$1 AND reward AND NOT redeemed AND owner_user_id=$2`
	coupon, err := scanCoupon(r.storage.pool.QueryRow(ctx, query, code, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return coupon, nil
}

func (r *couponRepository) MarkRedeemed(ctx context.Context, couponID int64) error {
	const query = `UPDATE coupons SET redeemed=TRUE WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, couponID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *couponRepository) CreateRewardCoupon(ctx context.Context, coupon model.Coupon) (*model.Coupon, error) {
	const query = `INSERT INTO coupons (code, kind, value, reward, rp_type, price_tier, max_units, category, owner_user_id)
                   VALUES ($1, $2, $3, TRUE, $4, $5, $6, $7, $8)
                   RETURNING id`
	err := r.storage.pool.QueryRow(ctx, query,
		coupon.Code, coupon.Kind, coupon.Value, coupon.RPType, coupon.PriceTier, coupon.MaxUnits, coupon.Category, coupon.OwnerUserID,
	).Scan(&coupon.ID)
	if err != nil {
		return nil, err
	}
	coupon.RewardCoupon = true
	return &coupon, nil
}

// --- StatusRepository implementation ---

const statusColumns = `id, name, color, description, requires_confirmation, confirm_button_text, action_kind, action_duration_minutes, action_target_status_id, is_default`

func scanStatus(row pgx.Row) (*model.OrderStatus, error) {
	var st model.OrderStatus
	var target *int64
	err := row.Scan(&st.ID, &st.Name, &st.Color, &st.Description, &st.RequiresConfirmation, &st.ConfirmButtonText, &st.Action.Kind, &st.Action.DurationMinutes, &target, &st.Default)
	if err != nil {
		return nil, err
	}
	if target != nil {
		st.Action.TargetStatusID = *target
	}
	return &st, nil
}

func (r *statusRepository) List(ctx context.Context) ([]model.OrderStatus, error) {
	const query = `SELECT ` + statusColumns + ` FROM order_statuses ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderStatus
	for rows.Next() {
		status, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *status)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *statusRepository) GetByID(ctx context.Context, id int64) (*model.OrderStatus, error) {
	const query = `SELECT ` + statusColumns + ` FROM order_statuses WHERE id=$1`
	status, err := scanStatus(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return status, nil
}

func (r *statusRepository) GetDefault(ctx context.Context) (*model.OrderStatus, error) {
	const query = `SELECT ` + statusColumns + ` FROM order_statuses WHERE is_default LIMIT 1`
	status, err := scanStatus(r.storage.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return status, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, public_id, user_id, status_id, confirmed, confirmed_at, timer_ends_at, total, currency_id, coupon_id, riot_name, discord_name, region, payment, receipt_file, viewed, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.PublicID, &o.UserID, &o.StatusID, &o.Confirmed, &o.ConfirmedAt, &o.TimerEndsAt,
		&o.Total, &o.CurrencyID, &o.CouponID, &o.RiotName, &o.DiscordName, &o.Region, &o.Payment, &o.ReceiptFile,
		&o.Viewed, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (public_id, user_id, status_id, total, currency_id, coupon_id, riot_name, discord_name, region, payment, receipt_file)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                             RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insertOrder,
			order.PublicID, order.UserID, order.StatusID, order.Total, order.CurrencyID, order.CouponID,
			order.RiotName, order.DiscordName, order.Region, order.Payment, order.ReceiptFile,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return err
		}

		const insertLine = `INSERT INTO order_lines (order_id, product_id, kind, name, quantity, unit_price, safe_currency)
                            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
		for i := range order.Lines {
			line := &order.Lines[i]
			if err := tx.QueryRow(ctx, insertLine,
				order.ID, line.ProductID, line.Kind, line.Name, line.Quantity, line.UnitPrice, line.SafeCurrency,
			).Scan(&line.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) loadLines(ctx context.Context, order *model.Order) error {
	const query = `SELECT id, product_id, kind, name, quantity, unit_price, safe_currency
                   FROM order_lines WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Kind, &l.Name, &l.Quantity, &l.UnitPrice, &l.SafeCurrency); err != nil {
			return err
		}
		order.Lines = append(order.Lines, l)
	}
	return rows.Err()
}

func (r *orderRepository) GetByPublicID(ctx context.Context, userID int64, publicID string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 AND public_id=$2`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, userID, publicID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
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

// updateClause renders the dynamic SET clause shared by orders and redeems.
func updateClause(update repository.OrderUpdate) (string, []any) {
	set := []string{"updated_at=NOW()"}
	var args []any
	arg := 1

	if update.StatusID != nil {
		set = append(set, fmt.Sprintf("status_id=$%d", arg))
		args = append(args, *update.StatusID)
		arg++
	}
	if update.Confirmed != nil {
		set = append(set, fmt.Sprintf("confirmed=$%d", arg))
		args = append(args, *update.Confirmed)
		arg++
	}
	if update.ConfirmedAt != nil {
		set = append(set, fmt.Sprintf("confirmed_at=$%d", arg))
		args = append(args, *update.ConfirmedAt)
		arg++
	}
	if update.TimerEndsAt != nil {
		set = append(set, fmt.Sprintf("timer_ends_at=$%d", arg))
		args = append(args, *update.TimerEndsAt)
		arg++
	}
	if update.ClearTimer {
		set = append(set, "timer_ends_at=NULL", "confirmed_at=NULL")
	}
	if update.Viewed != nil {
		set = append(set, fmt.Sprintf("viewed=$%d", arg))
		args = append(args, *update.Viewed)
		arg++
	}

	return strings.Join(set, ", "), args
}

func (r *orderRepository) Update(ctx context.Context, orderID int64, update repository.OrderUpdate) (*model.Order, error) {
	clause, args := updateClause(update)
	query := fmt.Sprintf(`UPDATE orders SET %s WHERE id=$%d RETURNING `+orderColumns, clause, len(args)+1)
	args = append(args, orderID)

	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) MarkViewed(ctx context.Context, userID int64, publicID string) error {
	const query = `UPDATE orders SET viewed=TRUE, updated_at=NOW() WHERE user_id=$1 AND public_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, userID, publicID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE user_id=$1 AND NOT viewed`
	var count int
	if err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// SelectExpiredTimers atomically claims orders whose countdown has passed:
// the timer is cleared inside the claiming transaction, so concurrent
// workers never finalize the same order twice.
func (r *orderRepository) SelectExpiredTimers(ctx context.Context, now time.Time, limit int) ([]model.Order, error) {
	const selectQuery = `SELECT ` + orderColumns + `
                         FROM orders
                         WHERE timer_ends_at IS NOT NULL AND timer_ends_at <= $1
                         ORDER BY timer_ends_at
                         LIMIT $2
                         FOR UPDATE SKIP LOCKED`

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, now, limit)
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
			if _, err := tx.Exec(ctx, `UPDATE orders SET timer_ends_at=NULL, updated_at=NOW() WHERE id=$1`, orders[i].ID); err != nil {
				return err
			}
			orders[i].TimerEndsAt = nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// --- RedeemRepository implementation ---

const redeemColumns = `id, public_id, user_id, coupon_id, status_id, confirmed, confirmed_at, timer_ends_at, points_spent, viewed, created_at, updated_at`

func scanRedeem(row pgx.Row) (*model.Redeem, error) {
	var rd model.Redeem
	err := row.Scan(&rd.ID, &rd.PublicID, &rd.UserID, &rd.CouponID, &rd.StatusID, &rd.Confirmed, &rd.ConfirmedAt,
		&rd.TimerEndsAt, &rd.PointsSpent, &rd.Viewed, &rd.CreatedAt, &rd.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *redeemRepository) Create(ctx context.Context, redeem model.Redeem) (*model.Redeem, error) {
	const query = `INSERT INTO redeems (public_id, user_id, coupon_id, status_id, points_spent)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		redeem.PublicID, redeem.UserID, redeem.CouponID, redeem.StatusID, redeem.PointsSpent,
	).Scan(&redeem.ID, &redeem.CreatedAt, &redeem.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &redeem, nil
}

func (r *redeemRepository) GetByPublicID(ctx context.Context, userID int64, publicID string) (*model.Redeem, error) {
	const query = `SELECT ` + redeemColumns + ` FROM redeems WHERE user_id=$1 AND public_id=$2`
	redeem, err := scanRedeem(r.storage.pool.QueryRow(ctx, query, userID, publicID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return redeem, nil
}

func (r *redeemRepository) ListByUser(ctx context.Context, userID int64) ([]model.Redeem, error) {
	const query = `SELECT ` + redeemColumns + ` FROM redeems WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Redeem
	for rows.Next() {
		redeem, err := scanRedeem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *redeem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *redeemRepository) Update(ctx context.Context, redeemID int64, update repository.OrderUpdate) (*model.Redeem, error) {
	clause, args := updateClause(update)
	query := fmt.Sprintf(`UPDATE redeems SET %s WHERE id=$%d RETURNING `+redeemColumns, clause, len(args)+1)
	args = append(args, redeemID)

	redeem, err := scanRedeem(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return redeem, nil
}

// --- LoyaltyRepository implementation ---

func (r *loyaltyRepository) GetSummary(ctx context.Context, userID int64) (*model.LoyaltySummary, error) {
	const query = `SELECT current, spent FROM loyalty_balances WHERE user_id=$1`
	var summary model.LoyaltySummary
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&summary.Current, &summary.Spent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

func (r *loyaltyRepository) AddPoints(ctx context.Context, userID int64, orderID *int64, points float64, description string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateBalance = `INSERT INTO loyalty_balances (user_id, current, spent)
                               VALUES ($1, $2, 0)
                               ON CONFLICT (user_id) DO UPDATE SET current = loyalty_balances.current + EXCLUDED.current`
		if _, err := tx.Exec(ctx, updateBalance, userID, points); err != nil {
			return err
		}

		const insertEntry = `INSERT INTO loyalty_entries (user_id, order_id, points, description) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, insertEntry, userID, orderID, points, description); err != nil {
			return err
		}
		return nil
	})
}

func (r *loyaltyRepository) SpendPoints(ctx context.Context, userID int64, points float64, description string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const balanceQuery = `SELECT current FROM loyalty_balances WHERE user_id=$1 FOR UPDATE`
		var current float64
		err := tx.QueryRow(ctx, balanceQuery, userID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				current = 0
			} else {
				return err
			}
		}
		if current < points {
			return domainErrors.ErrInsufficientPoints
		}

		const updateBalance = `UPDATE loyalty_balances
                               SET current = current - $2, spent = spent + $2
                               WHERE user_id=$1`
		if _, err := tx.Exec(ctx, updateBalance, userID, points); err != nil {
			return err
		}

		const insertEntry = `INSERT INTO loyalty_entries (user_id, points, description) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insertEntry, userID, -points, description); err != nil {
			return err
		}
		return nil
	})
}

func (r *loyaltyRepository) History(ctx context.Context, userID int64) ([]model.LoyaltyEntry, error) {
	const query = `SELECT id, user_id, order_id, points, description, created_at
                   FROM loyalty_entries WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.LoyaltyEntry
	for rows.Next() {
		var e model.LoyaltyEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.OrderID, &e.Points, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
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

package dish

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dishColumns = `id, name, category_id, price::text, image, description, status, create_time, update_time`

// Repository handles all dish database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateWithFlavors inserts the dish and its flavors in one transaction and
// fills in the generated ids and timestamps.
func (r *Repository) CreateWithFlavors(ctx context.Context, d *Dish, flavors []Flavor) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	err = tx.QueryRow(ctx,
		`INSERT INTO dish (name, category_id, price, image, description, status)
		 VALUES ($1, $2, $3::numeric, $4, $5, $6)
		 RETURNING id, create_time, update_time`,
		d.Name, d.CategoryID, d.Price, d.Image, d.Description, d.Status,
	).Scan(&d.ID, &d.CreateTime, &d.UpdateTime)
	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return fmt.Errorf("insert dish: %w", err)
	}

	if len(flavors) > 0 {
		batch := &pgx.Batch{}
		for i := range flavors {
			flavors[i].DishID = d.ID
			batch.Queue(
				`INSERT INTO dish_flavor (dish_id, name, value) VALUES ($1, $2, $3) RETURNING id`,
				d.ID, flavors[i].Name, flavors[i].Value,
			).QueryRow(func(row pgx.Row) error {
				return row.Scan(&flavors[i].ID)
			})
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert dish flavors: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Page returns one page of dishes matching q and the total match count.
func (r *Repository) Page(ctx context.Context, q PageQuery) ([]Dish, int64, error) {
	var (
		conds []string
		args  []any
	)
	if name := strings.TrimSpace(q.Name); name != "" {
		args = append(args, "%"+escapeLike(name)+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if q.CategoryID != nil {
		args = append(args, *q.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if q.Status != nil {
		args = append(args, *q.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM dish`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count dishes: %w", err)
	}
	if total == 0 {
		return []Dish{}, 0, nil
	}

	args = append(args, q.PageSize, q.offset())
	rows, err := r.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM dish%s ORDER BY update_time DESC, id DESC LIMIT $%d OFFSET $%d`,
			dishColumns, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("page dishes: %w", err)
	}
	records, err := pgx.CollectRows(rows, scanDish)
	if err != nil {
		return nil, 0, fmt.Errorf("scan dishes: %w", err)
	}
	return records, total, nil
}

// GetByID fetches a dish by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Dish, error) {
	rows, err := r.db.Query(ctx, `SELECT `+dishColumns+` FROM dish WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get dish by id: %w", err)
	}
	d, err := pgx.CollectExactlyOneRow(rows, scanDish)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get dish by id: %w", err)
	}
	return &d, nil
}

// FlavorsByDishID lists the flavors of a dish.
func (r *Repository) FlavorsByDishID(ctx context.Context, dishID int64) ([]Flavor, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, dish_id, name, value FROM dish_flavor WHERE dish_id = $1 ORDER BY id`,
		dishID,
	)
	if err != nil {
		return nil, fmt.Errorf("list dish flavors: %w", err)
	}
	flavors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Flavor, error) {
		var f Flavor
		err := row.Scan(&f.ID, &f.DishID, &f.Name, &f.Value)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan dish flavors: %w", err)
	}
	return flavors, nil
}

// DeleteBatch removes the dishes and their flavors in one transaction. The
// rows are locked before their status is checked; if any is on sale nothing
// is deleted and ErrOnSale is returned.
func (r *Repository) DeleteBatch(ctx context.Context, ids []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	rows, err := tx.Query(ctx, `SELECT status FROM dish WHERE id = ANY($1) FOR UPDATE`, ids)
	if err != nil {
		return fmt.Errorf("lock dishes: %w", err)
	}
	statuses, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return fmt.Errorf("lock dishes: %w", err)
	}
	for _, status := range statuses {
		if status == StatusOnSale {
			return ErrOnSale
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM dish_flavor WHERE dish_id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete dish flavors: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM dish WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete dishes: %w", err)
	}

	return tx.Commit(ctx)
}

func scanDish(row pgx.CollectableRow) (Dish, error) {
	var d Dish
	err := row.Scan(&d.ID, &d.Name, &d.CategoryID, &d.Price, &d.Image, &d.Description, &d.Status, &d.CreateTime, &d.UpdateTime)
	return d, err
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE wildcards so s matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

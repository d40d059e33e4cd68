package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/greeter/internal/common"
	"github.com/dmitrijs2005/greeter/internal/dbx"
	"github.com/dmitrijs2005/greeter/internal/server/models"
)

// PostgresRepository stores users in the users table. Ids come from the
// users_id_seq sequence, so they survive restarts and are never reused.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.db.QueryRowContext(ctx, `SELECT nextval('users_id_seq')`).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]models.User, error) {
	query :=
		`SELECT id, greeting FROM users
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Greeting); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Add(ctx context.Context, user models.User) (models.User, error) {
	query :=
		`INSERT INTO users (id, greeting)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, user.ID, user.Greeting)
	if err != nil {
		return models.User{}, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.User{}, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return models.User{}, common.ErrorAlreadyExists
	}

	// ids added from outside the allocator must not be handed out again
	seq :=
		`SELECT setval('users_id_seq', GREATEST($1, (SELECT last_value FROM users_id_seq)))`

	if _, err := r.db.ExecContext(ctx, seq, user.ID); err != nil {
		return models.User{}, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, greeting string) (models.User, error) {
	query :=
		`UPDATE users SET greeting = $2
		 WHERE id = $1
		 RETURNING id, greeting
		 `

	var u models.User
	err := r.db.QueryRowContext(ctx, query, id, greeting).Scan(&u.ID, &u.Greeting)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, common.ErrorNotFound
		}
		return models.User{}, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

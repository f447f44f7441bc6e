package directory

import (
	"context"

	"github.com/jackc/pgx"
	"github.com/pkg/errors"
)

const createUsersTable = `create table if not exists users (
	account  text primary key,
	password text not null,
	email    text not null
)`

// Postgres stores users in a "users" table keyed by account.
type Postgres struct {
	db *pgx.ConnPool
}

// NewPostgres connects with a libpq style connection string, e.g.
// "user=jwp dbname=jwp password=secret host=127.0.0.1 port=5432 sslmode=disable".
func NewPostgres(connStr string, maxConns int) (*Postgres, error) {
	connConfig, err := pgx.ParseConnectionString(connStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid connection string")
	}

	pool, err := pgx.NewConnPool(pgx.ConnPoolConfig{
		ConnConfig:     connConfig,
		MaxConnections: maxConns,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}

	if _, err := pool.Exec(createUsersTable); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to create users table")
	}
	return &Postgres{db: pool}, nil
}

func (p *Postgres) FindByAccount(ctx context.Context, account string) (User, error) {
	query := `select account, password, email from users where account = $1`

	u := User{}
	err := p.db.QueryRowEx(ctx, query, nil, account).Scan(&u.Account, &u.Password, &u.Email)
	if err == pgx.ErrNoRows {
		return User{}, errors.Wrapf(ErrUserNotFound, "account %q", account)
	}
	if err != nil {
		return User{}, errors.Wrap(err, "failed to query user")
	}
	return u, nil
}

func (p *Postgres) Save(ctx context.Context, u User) error {
	query := `insert into users (account, password, email) values ($1, $2, $3)
		on conflict (account) do nothing`

	tag, err := p.db.ExecEx(ctx, query, nil, u.Account, u.Password, u.Email)
	if err != nil {
		return errors.Wrap(err, "failed to insert user")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(ErrAlreadyRegistered, "account %q", u.Account)
	}
	return nil
}

func (p *Postgres) Close() {
	p.db.Close()
}

package data

import (
	"database/sql"

	_ "github.com/lib/pq"
	"magpie/logger"
)

// PostgresTranscript stores exchanges in a shared Postgres database, selected
// by setting DB_CONNECTION_STRING.
type PostgresTranscript struct {
	db *sql.DB
}

func (r *PostgresTranscript) Init(connectionString string) error {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return err
	}

	err = db.Ping()
	if err != nil {
		return err
	}

	createQuery := `
		CREATE TABLE IF NOT EXISTS exchanges (
			id SERIAL PRIMARY KEY,
			mode TEXT NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			strategy TEXT,
			created TIMESTAMPTZ DEFAULT now()
		);`
	if _, err := db.Exec(createQuery); err != nil {
		return err
	}

	r.db = db
	return nil
}

func (r *PostgresTranscript) InsertExchange(exchange Exchange) (int64, error) {
	logger.Debug.Println("inserting exchange (postgres)")

	var id int64
	err := r.db.QueryRow("INSERT INTO exchanges (mode, question, answer, strategy) VALUES ($1, $2, $3, $4) RETURNING id",
		exchange.Mode, exchange.Question, exchange.Answer, exchange.Strategy).
		Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresTranscript) RecentExchanges(maxCount int) ([]Exchange, error) {
	rows, err := r.db.Query("SELECT id, mode, question, answer, COALESCE(strategy, ''), created FROM exchanges ORDER BY created DESC, id DESC LIMIT $1",
		maxCount)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exchanges []Exchange
	for rows.Next() {
		var x Exchange
		if err := rows.Scan(&x.Id, &x.Mode, &x.Question, &x.Answer, &x.Strategy, &x.Created); err != nil {
			return nil, err
		}
		exchanges = append(exchanges, x)
	}

	return exchanges, rows.Err()
}

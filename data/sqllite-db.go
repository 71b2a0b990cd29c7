package data

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"magpie/logger"
)

// SqliteTranscript stores exchanges in ~/.magpie/<name>.db. The connection is
// opened per call; throughput is bounded by one interactive question at a
// time anyway.
type SqliteTranscript struct {
	Name string
	// Path overrides the default location, used by tests.
	Path string
}

func (st *SqliteTranscript) getDb() (*sql.DB, error) {
	path := st.Path
	if path == "" {
		homeDir, err := getHomeDir()
		if err != nil {
			return nil, fmt.Errorf("did not find home dir for db creation: %v", err)
		}

		dir := filepath.Join(homeDir, ".magpie")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, fmt.Sprintf("%s.db", st.Name))
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := setupDb(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func setupDb(db *sql.DB) error {
	createQuery := `
		CREATE TABLE IF NOT EXISTS exchanges (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			strategy TEXT,
			created DATETIME DEFAULT CURRENT_TIMESTAMP
		);`

	_, err := db.Exec(createQuery)
	return err
}

func (st *SqliteTranscript) InsertExchange(exchange Exchange) (int64, error) {
	db, err := st.getDb()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	logger.Debug.Println("inserting exchange (sqlite)")

	insertQuery := "INSERT INTO exchanges (mode, question, answer, strategy) VALUES (?, ?, ?, ?)"
	result, err := db.Exec(insertQuery, exchange.Mode, exchange.Question, exchange.Answer, exchange.Strategy)
	if err != nil {
		logger.Debug.Println("insert of exchange failed", err)
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (st *SqliteTranscript) RecentExchanges(maxCount int) ([]Exchange, error) {
	db, err := st.getDb()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	selectQuery := `
		SELECT id, mode, question, answer, strategy, created
		FROM exchanges ORDER BY created DESC, id DESC LIMIT ?`

	rows, err := db.Query(selectQuery, maxCount)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exchanges []Exchange
	for rows.Next() {
		var x Exchange
		var strategy sql.NullString
		if err := rows.Scan(&x.Id, &x.Mode, &x.Question, &x.Answer, &strategy, &x.Created); err != nil {
			return nil, err
		}
		x.Strategy = strategy.String
		exchanges = append(exchanges, x)
	}

	return exchanges, rows.Err()
}

package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func newJobDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	db.MustExec(`
		CREATE TABLE flights (
			flight_id    INTEGER PRIMARY KEY,
			departure_at DATETIME NOT NULL,
			status       TEXT NOT NULL
		);
		CREATE TABLE orders (
			order_id  INTEGER PRIMARY KEY,
			flight_id INTEGER NOT NULL,
			status    TEXT NOT NULL
		);
	`)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestFlightStatusSweep(t *testing.T) {
	db := newJobDB(t)
	now := time.Now().UTC()

	db.MustExec(`INSERT INTO flights VALUES
		(1001, ?, 'active'),
		(1002, ?, 'full'),
		(1003, ?, 'active'),
		(1004, ?, 'cancelled')`,
		now.Add(-2*time.Hour), now.Add(-1*time.Hour), now.Add(48*time.Hour), now.Add(-3*time.Hour))
	db.MustExec(`INSERT INTO orders VALUES
		(9001, 1001, 'active'),
		(9002, 1003, 'active'),
		(9003, 1001, 'customercancellation')`)

	if err := NewFlightStatusJob(db).Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	status := map[int]string{}
	rows, err := db.Queryx(`SELECT flight_id, status FROM flights`)
	if err != nil {
		t.Fatalf("read flights: %v", err)
	}
	for rows.Next() {
		var id int
		var s string
		if err := rows.Scan(&id, &s); err != nil {
			t.Fatalf("scan: %v", err)
		}
		status[id] = s
	}

	if status[1001] != "done" || status[1002] != "done" {
		t.Errorf("departed flights = %v, want done", status)
	}
	if status[1003] != "active" {
		t.Errorf("future flight = %q, want active", status[1003])
	}
	if status[1004] != "cancelled" {
		t.Errorf("cancelled flight = %q, must not change", status[1004])
	}

	var orderStatus string
	db.Get(&orderStatus, `SELECT status FROM orders WHERE order_id = 9001`)
	if orderStatus != "done" {
		t.Errorf("order on departed flight = %q, want done", orderStatus)
	}
	db.Get(&orderStatus, `SELECT status FROM orders WHERE order_id = 9002`)
	if orderStatus != "active" {
		t.Errorf("order on future flight = %q, want active", orderStatus)
	}
	db.Get(&orderStatus, `SELECT status FROM orders WHERE order_id = 9003`)
	if orderStatus != "customercancellation" {
		t.Errorf("cancelled order = %q, must not change", orderStatus)
	}
}

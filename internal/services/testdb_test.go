package services

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"skyharbor/dispatch/internal/common"
	"skyharbor/dispatch/internal/db/repositories"
)

const testSchema = `
CREATE TABLE airports (
	airport_id   INTEGER PRIMARY KEY,
	airport_name TEXT NOT NULL,
	city         TEXT NOT NULL,
	country      TEXT NOT NULL
);

CREATE TABLE routes (
	origin_airport      INTEGER NOT NULL,
	destination_airport INTEGER NOT NULL,
	duration            TEXT NOT NULL,
	PRIMARY KEY (origin_airport, destination_airport)
);

CREATE TABLE planes (
	plane_id INTEGER PRIMARY KEY
);

CREATE TABLE seats (
	plane_id      INTEGER NOT NULL,
	row_num       INTEGER NOT NULL,
	column_number TEXT NOT NULL,
	class         TEXT NOT NULL,
	PRIMARY KEY (plane_id, row_num, column_number)
);

CREATE TABLE pilots (
	worker_id    INTEGER PRIMARY KEY,
	first_name   TEXT,
	last_name    TEXT,
	phone        TEXT,
	city         TEXT,
	street       TEXT,
	house_number INTEGER,
	start_date   DATETIME,
	is_qualified INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE attendants (
	worker_id    INTEGER PRIMARY KEY,
	first_name   TEXT,
	last_name    TEXT,
	phone        TEXT,
	city         TEXT,
	street       TEXT,
	house_number INTEGER,
	start_date   DATETIME,
	is_qualified INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE managers (
	worker_id  INTEGER PRIMARY KEY,
	first_name TEXT,
	last_name  TEXT
);

CREATE TABLE flights (
	flight_id           INTEGER PRIMARY KEY,
	plane_id            INTEGER NOT NULL,
	origin_airport      INTEGER NOT NULL,
	destination_airport INTEGER NOT NULL,
	departure_at        DATETIME NOT NULL,
	economy_price       REAL NOT NULL,
	business_price      REAL NOT NULL DEFAULT 0,
	status              TEXT NOT NULL
);

CREATE TABLE flight_pilots (
	worker_id INTEGER NOT NULL,
	flight_id INTEGER NOT NULL,
	PRIMARY KEY (worker_id, flight_id)
);

CREATE TABLE flight_attendants (
	worker_id INTEGER NOT NULL,
	flight_id INTEGER NOT NULL,
	PRIMARY KEY (worker_id, flight_id)
);

CREATE TABLE orders (
	order_id     INTEGER PRIMARY KEY,
	flight_id    INTEGER NOT NULL,
	client_email TEXT,
	guest_email  TEXT,
	status       TEXT NOT NULL,
	final_total  REAL NOT NULL,
	quantity     INTEGER NOT NULL,
	created_at   DATETIME NOT NULL
);

CREATE TABLE selected_seats (
	plane_id      INTEGER NOT NULL,
	order_id      INTEGER NOT NULL,
	row_num       INTEGER NOT NULL,
	column_number TEXT NOT NULL,
	is_occupied   INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE guests (
	email_address TEXT PRIMARY KEY,
	first_name    TEXT,
	last_name     TEXT
);
`

// newTestDB opens an in-memory sqlite database with the full schema. The
// connection pool is pinned to one connection so every query sees the same
// in-memory database.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	db.MustExec(testSchema)

	t.Cleanup(func() { db.Close() })
	return db
}

func newRouteRepo(db *sqlx.DB) *repositories.RouteRepository {
	return repositories.NewRouteRepository(db)
}

// newTestDraftStore builds a draft store over the in-memory cache backend.
func newTestDraftStore() *common.DraftStore {
	return common.NewDraftStore(common.NewCacheService(600, 600), 10*time.Minute)
}

func seedAirports(t *testing.T, db *sqlx.DB) {
	t.Helper()
	db.MustExec(`INSERT INTO airports VALUES
		(1, 'Harbor Intl', 'Harborview', 'Norland'),
		(2, 'Eastgate', 'Eastwick', 'Norland'),
		(3, 'Farfield', 'Faris', 'Sudland')`)
}

func seedRoute(t *testing.T, db *sqlx.DB, origin, dest int, duration string) {
	t.Helper()
	db.MustExec(`INSERT INTO routes (origin_airport, destination_airport, duration) VALUES (?, ?, ?)`,
		origin, dest, duration)
}

// seedSmallPlane creates a plane with two economy rows (1A-2B).
func seedSmallPlane(t *testing.T, db *sqlx.DB, planeID int) {
	t.Helper()
	db.MustExec(`INSERT INTO planes (plane_id) VALUES (?)`, planeID)
	for row := 1; row <= 2; row++ {
		for _, col := range []string{"A", "B"} {
			db.MustExec(`INSERT INTO seats (plane_id, row_num, column_number, class) VALUES (?, ?, ?, 'Economy')`,
				planeID, row, col)
		}
	}
}

// seedLargePlane creates a plane with one business row (1A-1B) and two
// economy rows (2A-3B).
func seedLargePlane(t *testing.T, db *sqlx.DB, planeID int) {
	t.Helper()
	db.MustExec(`INSERT INTO planes (plane_id) VALUES (?)`, planeID)
	for _, col := range []string{"A", "B"} {
		db.MustExec(`INSERT INTO seats (plane_id, row_num, column_number, class) VALUES (?, 1, ?, 'Business')`,
			planeID, col)
	}
	for row := 2; row <= 3; row++ {
		for _, col := range []string{"A", "B"} {
			db.MustExec(`INSERT INTO seats (plane_id, row_num, column_number, class) VALUES (?, ?, ?, 'Economy')`,
				planeID, row, col)
		}
	}
}

func seedPilot(t *testing.T, db *sqlx.DB, workerID int, qualified bool) {
	t.Helper()
	db.MustExec(`INSERT INTO pilots (worker_id, first_name, last_name, is_qualified) VALUES (?, 'Test', 'Pilot', ?)`,
		workerID, qualified)
}

func seedAttendant(t *testing.T, db *sqlx.DB, workerID int, qualified bool) {
	t.Helper()
	db.MustExec(`INSERT INTO attendants (worker_id, first_name, last_name, is_qualified) VALUES (?, 'Test', 'Attendant', ?)`,
		workerID, qualified)
}

func seedFlight(t *testing.T, db *sqlx.DB, flightID, planeID, origin, dest int, departureAt time.Time, status string) {
	t.Helper()
	db.MustExec(`INSERT INTO flights
		(flight_id, plane_id, origin_airport, destination_airport, departure_at, economy_price, business_price, status)
		VALUES (?, ?, ?, ?, ?, 100, 250, ?)`,
		flightID, planeID, origin, dest, departureAt, status)
}

func assignPilot(t *testing.T, db *sqlx.DB, workerID, flightID int) {
	t.Helper()
	db.MustExec(`INSERT INTO flight_pilots (worker_id, flight_id) VALUES (?, ?)`, workerID, flightID)
}

func assignAttendant(t *testing.T, db *sqlx.DB, workerID, flightID int) {
	t.Helper()
	db.MustExec(`INSERT INTO flight_attendants (worker_id, flight_id) VALUES (?, ?)`, workerID, flightID)
}

func seedOrder(t *testing.T, db *sqlx.DB, orderID, flightID int, guestEmail string, total float64, quantity int) {
	t.Helper()
	db.MustExec(`INSERT INTO orders
		(order_id, flight_id, guest_email, status, final_total, quantity, created_at)
		VALUES (?, ?, ?, 'active', ?, ?, ?)`,
		orderID, flightID, guestEmail, total, quantity, time.Now().UTC())
}

func seedSelectedSeat(t *testing.T, db *sqlx.DB, planeID, orderID, row int, col string) {
	t.Helper()
	db.MustExec(`INSERT INTO selected_seats (plane_id, order_id, row_num, column_number, is_occupied) VALUES (?, ?, ?, ?, 1)`,
		planeID, orderID, row, col)
}

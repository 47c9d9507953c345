package constants

// Shared scheduling queries. All three pools resolve to the same commitment
// shape (resource_id, departure_at, duration) so the overlap predicate lives
// in exactly one place in Go code.
const (
	PlaneCommitments = `
	SELECT f.plane_id AS resource_id, f.departure_at, r.duration
	FROM flights f
	JOIN routes r
	  ON r.origin_airport = f.origin_airport
	 AND r.destination_airport = f.destination_airport
	WHERE f.status IN ('active', 'full', 'done')
	`

	PlaneCommitmentsByID = PlaneCommitments + ` AND f.plane_id = ?`

	PilotCommitments = `
	SELECT fp.worker_id AS resource_id, f.departure_at, r.duration
	FROM flight_pilots fp
	JOIN flights f ON f.flight_id = fp.flight_id
	JOIN routes r
	  ON r.origin_airport = f.origin_airport
	 AND r.destination_airport = f.destination_airport
	WHERE f.status IN ('active', 'full', 'done')
	`

	PilotCommitmentsByID = PilotCommitments + ` AND fp.worker_id = ?`

	AttendantCommitments = `
	SELECT fa.worker_id AS resource_id, f.departure_at, r.duration
	FROM flight_attendants fa
	JOIN flights f ON f.flight_id = fa.flight_id
	JOIN routes r
	  ON r.origin_airport = f.origin_airport
	 AND r.destination_airport = f.destination_airport
	WHERE f.status IN ('active', 'full', 'done')
	`

	AttendantCommitmentsByID = AttendantCommitments + ` AND fa.worker_id = ?`
)

const (
	ListPlanes = `
	SELECT p.plane_id,
	       CASE WHEN EXISTS (
	           SELECT 1 FROM seats s
	           WHERE s.plane_id = p.plane_id
	             AND LOWER(s.class) = 'business'
	       ) THEN 1 ELSE 0 END AS has_business
	FROM planes p
	ORDER BY p.plane_id
	`

	ListPilots = `
	SELECT worker_id, is_qualified
	FROM pilots
	WHERE (? = 0 OR is_qualified = 1)
	ORDER BY worker_id
	`

	ListAttendants = `
	SELECT worker_id, is_qualified
	FROM attendants
	WHERE (? = 0 OR is_qualified = 1)
	ORDER BY worker_id
	`

	PlaneHasBusinessSeat = `
	SELECT 1 FROM seats
	WHERE plane_id = ?
	  AND LOWER(class) = 'business'
	LIMIT 1
	`
)

const (
	OccupiedSeatsForFlight = `
	SELECT ss.row_num, ss.column_number
	FROM selected_seats ss
	JOIN orders o ON o.order_id = ss.order_id
	WHERE o.flight_id = ?
	  AND ss.plane_id = ?
	  AND ss.is_occupied = 1
	  AND o.status = 'active'
	`

	SeatOccupiedCheck = `
	SELECT 1
	FROM selected_seats ss
	JOIN orders o ON o.order_id = ss.order_id
	WHERE o.flight_id = ?
	  AND ss.plane_id = ?
	  AND ss.row_num = ?
	  AND ss.column_number = ?
	  AND ss.is_occupied = 1
	  AND o.status = 'active'
	LIMIT 1
	`

	OrderTicketClass = `
	SELECT s.class
	FROM selected_seats ss
	JOIN seats s
	  ON s.plane_id = ss.plane_id
	 AND s.row_num = ss.row_num
	 AND s.column_number = ss.column_number
	WHERE ss.order_id = ?
	  AND ss.is_occupied = 1
	LIMIT 1
	`
)

package entities

type Plane struct {
	PlaneID      int    `db:"plane_id"`
	Manufacturer string `db:"manufacturer"`
	PurchaseDate string `db:"purchase_date"`
}

// PlaneCandidate is an availability-query result row. A plane is large iff it
// owns at least one Business-class seat; the label is derived, never stored.
type PlaneCandidate struct {
	PlaneID     int  `db:"plane_id" json:"plane_id"`
	HasBusiness bool `db:"has_business" json:"has_business"`
}

func (p PlaneCandidate) SizeLabel() string {
	if p.HasBusiness {
		return "large"
	}
	return "small"
}

// WorkerCandidate is an availability-query result row for pilots/attendants.
type WorkerCandidate struct {
	WorkerID    int  `db:"worker_id" json:"worker_id"`
	IsQualified bool `db:"is_qualified" json:"is_qualified"`
}

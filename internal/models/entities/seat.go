package entities

import (
	"fmt"
	"strconv"
	"strings"
)

type Seat struct {
	PlaneID      int    `db:"plane_id"`
	RowNum       int    `db:"row_num" json:"row_num"`
	ColumnNumber string `db:"column_number" json:"column_number"`
	Class        string `db:"class" json:"class"`
}

// ID renders the client-facing seat identifier, e.g. "12A".
func (s Seat) ID() string {
	return fmt.Sprintf("%d%s", s.RowNum, s.ColumnNumber)
}

// SeatRef identifies a seat within one plane's fixed layout.
type SeatRef struct {
	RowNum       int    `db:"row_num" json:"row_num"`
	ColumnNumber string `db:"column_number" json:"column_number"`
}

func (r SeatRef) ID() string {
	return fmt.Sprintf("%d%s", r.RowNum, r.ColumnNumber)
}

// ParseSeatID splits an identifier like "12A" into row and column. The column
// is always the trailing letter, the row the leading digits.
func ParseSeatID(id string) (SeatRef, error) {
	id = strings.TrimSpace(id)
	if len(id) < 2 {
		return SeatRef{}, fmt.Errorf("invalid seat id %q", id)
	}
	col := strings.ToUpper(id[len(id)-1:])
	if col[0] < 'A' || col[0] > 'Z' {
		return SeatRef{}, fmt.Errorf("invalid seat id %q", id)
	}
	row, err := strconv.Atoi(id[:len(id)-1])
	if err != nil || row < 1 {
		return SeatRef{}, fmt.Errorf("invalid seat id %q", id)
	}
	return SeatRef{RowNum: row, ColumnNumber: col}, nil
}

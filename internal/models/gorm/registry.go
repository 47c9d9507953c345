package gorm

import "time"

// Registry models cover the CRUD side of the platform: reference data the
// scheduler reads but never mutates mid-flight. The scheduling core itself
// stays on sqlx.

type Airport struct {
	AirportID   int    `gorm:"column:airport_id;primaryKey"`
	AirportName string `gorm:"column:airport_name"`
	City        string `gorm:"column:city"`
	Country     string `gorm:"column:country"`
}

func (Airport) TableName() string {
	return "airports"
}

type Pilot struct {
	WorkerID    int       `gorm:"column:worker_id;primaryKey"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	Phone       string    `gorm:"column:phone"`
	City        string    `gorm:"column:city"`
	Street      string    `gorm:"column:street"`
	HouseNumber int       `gorm:"column:house_number"`
	StartDate   time.Time `gorm:"column:start_date"`
	IsQualified bool      `gorm:"column:is_qualified;default:false"`
}

func (Pilot) TableName() string {
	return "pilots"
}

type Attendant struct {
	WorkerID    int       `gorm:"column:worker_id;primaryKey"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	Phone       string    `gorm:"column:phone"`
	City        string    `gorm:"column:city"`
	Street      string    `gorm:"column:street"`
	HouseNumber int       `gorm:"column:house_number"`
	StartDate   time.Time `gorm:"column:start_date"`
	IsQualified bool      `gorm:"column:is_qualified;default:false"`
}

func (Attendant) TableName() string {
	return "attendants"
}

type Manager struct {
	WorkerID  int    `gorm:"column:worker_id;primaryKey"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
}

func (Manager) TableName() string {
	return "managers"
}

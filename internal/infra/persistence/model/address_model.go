package model

import "time"

// AddressModel is the GORM-specific struct for the 'addresses' table.
type AddressModel struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Street    string  `gorm:"type:varchar(100);not null"`
	City      string  `gorm:"type:varchar(50);not null"`
	State     string  `gorm:"type:varchar(50);not null"`
	Country   string  `gorm:"type:varchar(50);not null"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}

// AllModels lists every model managed by schema migration.
func AllModels() []any {
	return []any{
		&AddressModel{},
		&AddressEventModel{},
	}
}

// AddressEventModel is the GORM-specific struct for the 'address_events' journal.
type AddressEventModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	MessageID   string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	EventType   string    `gorm:"type:varchar(32);not null"`
	AddressID   int64     `gorm:"not null;index"`
	RequestID   string    `gorm:"type:varchar(128)"`
	Street      string    `gorm:"type:varchar(100)"`
	City        string    `gorm:"type:varchar(50)"`
	State       string    `gorm:"type:varchar(50)"`
	Country     string    `gorm:"type:varchar(50)"`
	Latitude    float64
	Longitude   float64
	PublishedAt time.Time `gorm:"not null"`
	ReceivedAt  time.Time `gorm:"not null"`
}

func (AddressEventModel) TableName() string {
	return "address_events"
}

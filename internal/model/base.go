package model

import "time"

// StringIDBase is the embedded base for records keyed by generated string
// identifiers of the form <prefix>_<unixms>_<random>. The identifier is set
// by the service layer before create, never by the database.
type StringIDBase struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

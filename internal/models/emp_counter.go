package models

// EmpCounter holds the per-role sequence behind employee-ID issuance. It is
// only ever mutated through an atomic increment-and-return statement.
type EmpCounter struct {
	Role       string `gorm:"size:32;primaryKey" json:"role"`
	LastNumber int64  `gorm:"not null;default:0" json:"lastNumber"`
}

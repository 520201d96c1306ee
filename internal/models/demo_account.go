package models

// DemoAccount is the sandbox identity path: it bypasses the federated
// identity provider and binds a local name/secret pair to a synthetic
// client or professional.
type DemoAccount struct {
	BaseModel
	Name       string   `gorm:"uniqueIndex;not null"`
	SecretHash string   `gorm:"not null"`
	Role       UserRole `gorm:"type:varchar(20);not null"`
	SubjectID  string   `gorm:"not null"`
}

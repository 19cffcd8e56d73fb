package models

type Product struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null"   json:"name"`
	Price    float64 `gorm:"not null"   json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `gorm:"not null"   json:"image"`
}

func (Product) TableName() string { return "product" }

type User struct {
	ID       string `gorm:"primaryKey"     json:"id"`
	Username string `gorm:"not null"       json:"username"`
	Email    string `gorm:"index;not null" json:"email"`
	// PasswordHash lives in the "password" column and marshals under the
	// "password" key. It only ever holds the bcrypt hash, redaction is
	// the route layer's job.
	PasswordHash string `gorm:"column:password;not null" json:"password"`
}

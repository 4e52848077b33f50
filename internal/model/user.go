package model

import "github.com/shopspring/decimal"

// User is the single freelancer profile. gigdash only reads it.
type User struct {
	Name       string          `json:"name" validate:"required"`
	Email      string          `json:"email" validate:"required,email"`
	Role       string          `json:"role"`
	Phone      string          `json:"phone"`
	Location   string          `json:"location"`
	Bio        string          `json:"bio"`
	Company    string          `json:"company"`
	Website    string          `json:"website"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
}

package models

import "time"

// InstitutionalHoliday registra el feriado/evento que originó un bloqueo
// masivo. Es solo referencia: el resolver consulta las DateException
// generadas, nunca esta tabla.
type InstitutionalHoliday struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string    `gorm:"size:120;not null" json:"name"`
	DateFrom time.Time `gorm:"type:date;not null" json:"date_from"`
	DateTo   time.Time `gorm:"type:date;not null" json:"date_to"`

	// Vacíos => día completo
	TimeFrom string `gorm:"size:5" json:"time_from"`
	TimeTo   string `gorm:"size:5" json:"time_to"`

	CreatedAt time.Time `json:"created_at"`
}

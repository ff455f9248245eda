package entity

import "time"

// UnitOfMeasure unidad de medida de un material.
type UnitOfMeasure string

const (
	UnitPieces    UnitOfMeasure = "PC"
	UnitKilograms UnitOfMeasure = "KG"
	UnitLiters    UnitOfMeasure = "LT"
	UnitMeters    UnitOfMeasure = "MT"
	UnitEach      UnitOfMeasure = "EA"
)

// Valid indica si la unidad es una de las soportadas.
func (u UnitOfMeasure) Valid() bool {
	switch u {
	case UnitPieces, UnitKilograms, UnitLiters, UnitMeters, UnitEach:
		return true
	}
	return false
}

// Material dato maestro de un artículo inventariable.
type Material struct {
	ID            string
	Code          string // único
	Description   string
	Group         string
	UnitOfMeasure UnitOfMeasure
	CreatedAt     time.Time
}

package entity

import "time"

// Location representa un almacén (centro + almacén de almacenamiento) donde se guarda stock.
type Location struct {
	ID              string
	PlantCode       string
	PlantName       string
	StorageLocation string
	Description     string
	CreatedAt       time.Time
}

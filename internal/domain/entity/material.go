package entity

import "github.com/shopspring/decimal"

// Material representa un EPI del catálogo (equipo de protección individual).
// Lo mantiene el backend; el motor de inventario solo lo lee.
type Material struct {
	ID           string
	Name         string
	Manufacturer string
	CA           string              // certificado de aprobación del EPI
	MinimumStock decimal.NullDecimal // inválido = sin alerta configurada (distinto de cero)
	UnitValue    decimal.NullDecimal // valor unitario vigente
	ValidityDays *int                // validez del EPI en días, opcional
}

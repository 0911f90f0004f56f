package entity

import "github.com/shopspring/decimal"

// Estado de una salida tal como lo guarda el backend.
const (
	OutflowStatusActive   = "ativo"
	OutflowStatusCanceled = "cancelado"
)

// InflowEvent es una entrada de stock. Append-only.
// EntryDate es el texto crudo del backend (fecha o timestamp ISO); el ledger lo interpreta.
type InflowEvent struct {
	ID         string
	MaterialID string
	Quantity   decimal.NullDecimal
	EntryDate  string
	CostCenter string
	UnitValue  decimal.NullDecimal // precio registrado en la entrada, opcional
}

// MaterialKey devuelve el material al que pertenece la entrada.
func (e InflowEvent) MaterialKey() string { return e.MaterialID }

// Qty devuelve la cantidad; inválida o ausente cuenta como cero.
func (e InflowEvent) Qty() decimal.Decimal { return orZero(e.Quantity) }

// OutflowEvent es una salida (entrega de EPI a un colaborador). Append-only.
// Status solo lo usa el repositorio para excluir canceladas; el ledger nunca lo lee.
type OutflowEvent struct {
	ID            string
	MaterialID    string
	Quantity      decimal.NullDecimal
	DeliveryDate  string
	RecipientID   string
	CostCenter    string
	ServiceCenter string
	Status        string
}

// MaterialKey devuelve el material al que pertenece la salida.
func (e OutflowEvent) MaterialKey() string { return e.MaterialID }

// Qty devuelve la cantidad; inválida o ausente cuenta como cero.
func (e OutflowEvent) Qty() decimal.Decimal { return orZero(e.Quantity) }

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

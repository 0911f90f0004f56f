package ledger_test

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
)

func num(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func material(id, name, unitValue string) entity.Material {
	return entity.Material{ID: id, Name: name, UnitValue: num(unitValue)}
}

func inflow(materialID, quantity, date string) entity.InflowEvent {
	return entity.InflowEvent{MaterialID: materialID, Quantity: num(quantity), EntryDate: date}
}

func outflow(materialID, quantity, date string) entity.OutflowEvent {
	return entity.OutflowEvent{MaterialID: materialID, Quantity: num(quantity), DeliveryDate: date}
}

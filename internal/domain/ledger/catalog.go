package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
)

// Catalog es la tabla de búsqueda de materiales y personas de una llamada.
// La construye quien llama con NewCatalog y se pasa explícitamente; no se
// modifica después de creada, así que puede compartirse entre goroutines.
type Catalog struct {
	materials map[string]entity.Material
	people    map[string]entity.Person
}

// NewCatalog indexa materiales y personas por ID. Con IDs repetidos gana el último.
func NewCatalog(materials []entity.Material, people []entity.Person) *Catalog {
	c := &Catalog{
		materials: make(map[string]entity.Material, len(materials)),
		people:    make(map[string]entity.Person, len(people)),
	}
	for _, m := range materials {
		c.materials[m.ID] = m
	}
	for _, p := range people {
		c.people[p.ID] = p
	}
	return c
}

// Material busca un material por ID.
func (c *Catalog) Material(id string) (entity.Material, bool) {
	if c == nil {
		return entity.Material{}, false
	}
	m, ok := c.materials[id]
	return m, ok
}

// Person busca una persona por ID.
func (c *Catalog) Person(id string) (entity.Person, bool) {
	if c == nil {
		return entity.Person{}, false
	}
	p, ok := c.people[id]
	return p, ok
}

// CurrentUnitValue es el valor unitario vigente del material; cero si no existe o es inválido.
func (c *Catalog) CurrentUnitValue(materialID string) decimal.Decimal {
	m, ok := c.Material(materialID)
	if !ok {
		return decimal.Zero
	}
	return decimalOrZero(m.UnitValue)
}

// InflowUnitValue valora una entrada con el precio registrado en el evento y,
// si no lo tiene, con el valor vigente del material.
func InflowUnitValue(c *Catalog) UnitValueFunc[entity.InflowEvent] {
	return func(e entity.InflowEvent) decimal.Decimal {
		if e.UnitValue.Valid {
			return e.UnitValue.Decimal
		}
		return c.CurrentUnitValue(e.MaterialID)
	}
}

// OutflowUnitValue valora una salida con el valor vigente del material.
func OutflowUnitValue(c *Catalog) UnitValueFunc[entity.OutflowEvent] {
	return func(e entity.OutflowEvent) decimal.Decimal {
		return c.CurrentUnitValue(e.MaterialID)
	}
}

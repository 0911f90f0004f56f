package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/epi-estoque/internal/domain/entity"
)

// DefaultTopN es el tamaño del ranking de materiales más movidos.
const DefaultTopN = 10

// SnapshotMode decide qué foto de stock va embebida en el dashboard.
type SnapshotMode int

const (
	// SnapshotAllTime: saldo histórico completo, ignora el período (por defecto).
	SnapshotAllTime SnapshotMode = iota
	// SnapshotMovement: saldo solo con los movimientos del período.
	SnapshotMovement
)

// ComposeOptions ajusta Compose. El valor cero es válido.
type ComposeOptions struct {
	Snapshot SnapshotMode
	TopN     int // <= 0 usa DefaultTopN
}

// DashboardInput son las colecciones de una llamada. Si Catalog es nil se
// construye con Materials y People.
type DashboardInput struct {
	Materials []entity.Material
	Inflows   []entity.InflowEvent
	Outflows  []entity.OutflowEvent
	People    []entity.Person
	Catalog   *Catalog
}

// MaterialRef es la referencia desnormalizada de un material para mostrar.
type MaterialRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	CA           string `json:"ca,omitempty"`
}

// PersonRef es la referencia desnormalizada del colaborador que recibió el EPI.
type PersonRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Registration string `json:"registration,omitempty"`
	Role         string `json:"role,omitempty"`
}

// InflowDetail es una entrada del período con su material resuelto.
type InflowDetail struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"materialId"`
	Quantity   decimal.Decimal `json:"quantity"`
	EntryDate  string          `json:"entryDate"`
	CostCenter string          `json:"costCenter"`
	UnitValue  decimal.Decimal `json:"unitValue"`
	Value      decimal.Decimal `json:"value"`
	Material   *MaterialRef    `json:"material"`
}

// OutflowDetail es una salida del período con material y destinatario resueltos.
type OutflowDetail struct {
	ID            string          `json:"id"`
	MaterialID    string          `json:"materialId"`
	Quantity      decimal.Decimal `json:"quantity"`
	DeliveryDate  string          `json:"deliveryDate"`
	RecipientID   string          `json:"recipientId,omitempty"`
	CostCenter    string          `json:"costCenter"`
	ServiceCenter string          `json:"serviceCenter"`
	UnitValue     decimal.Decimal `json:"unitValue"`
	Value         decimal.Decimal `json:"value"`
	Material      *MaterialRef    `json:"material"`
	Recipient     *PersonRef      `json:"recipient"`
}

// StreamTotals resume un flujo: cantidad de eventos, cantidad total y valor.
type StreamTotals struct {
	Count    int             `json:"count"`
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// MovedMaterial es una fila del ranking de materiales más movidos.
type MovedMaterial struct {
	MaterialID string          `json:"materialId"`
	Name       string          `json:"name"`
	Inflow     decimal.Decimal `json:"inflow"`
	Outflow    decimal.Decimal `json:"outflow"`
	Total      decimal.Decimal `json:"total"`
}

// PeriodSummary describe el período aplicado. Range es nil sin restricción.
type PeriodSummary struct {
	Kind  string     `json:"kind"`
	Label string     `json:"label"`
	Start *Bound     `json:"start,omitempty"`
	End   *Bound     `json:"end,omitempty"`
	Range *DateRange `json:"range,omitempty"`
}

// Summarize describe el período para la capa de API.
func Summarize(p Period) PeriodSummary {
	s := PeriodSummary{Kind: p.Kind().String(), Label: p.String()}
	if r, ok := ResolveRange(p); ok {
		start, end := p.Start(), p.End()
		s.Start, s.End, s.Range = &start, &end, &r
	}
	return s
}

// Dashboard es el modelo de vista completo del panel de inventario.
type Dashboard struct {
	Period                PeriodSummary   `json:"period"`
	InflowTotals          StreamTotals    `json:"inflowTotals"`
	OutflowTotals         StreamTotals    `json:"outflowTotals"`
	InflowDetails         []InflowDetail  `json:"inflowDetails"`
	OutflowDetails        []OutflowDetail `json:"outflowDetails"`
	InflowMonthlyHistory  []MonthlyBucket `json:"inflowMonthlyHistory"`
	OutflowMonthlyHistory []MonthlyBucket `json:"outflowMonthlyHistory"`
	TopMovedMaterials     []MovedMaterial `json:"topMovedMaterials"`
	StockSnapshot         Snapshot        `json:"stockSnapshot"`
}

// Compose arma el dashboard en una sola pasada:
//
//  1. Filtra entradas y salidas por período (cada una por su propia fecha).
//  2. Adjunta referencias de material y persona a cada evento filtrado.
//  3. Totales por flujo; los valores se redondean al final.
//  4. Historial mensual de cada flujo con GroupMonthly.
//  5. Ranking de materiales por entradas + salidas, top N.
//  6. Foto de stock: histórica por defecto, del período con SnapshotMovement.
func Compose(in DashboardInput, period Period, opts ComposeOptions) Dashboard {
	cat := in.Catalog
	if cat == nil {
		cat = NewCatalog(in.Materials, in.People)
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	inflows := FilterEvents(in.Inflows, EntryDate, period)
	outflows := FilterEvents(in.Outflows, DeliveryDate, period)
	inflowValue := InflowUnitValue(cat)
	outflowValue := OutflowUnitValue(cat)

	inDetails, inTotals := inflowDetails(inflows, cat, inflowValue)
	outDetails, outTotals := outflowDetails(outflows, cat, outflowValue)

	snapPeriod := AllTime()
	if opts.Snapshot == SnapshotMovement {
		snapPeriod = period
	}

	return Dashboard{
		Period:                Summarize(period),
		InflowTotals:          inTotals,
		OutflowTotals:         outTotals,
		InflowDetails:         inDetails,
		OutflowDetails:        outDetails,
		InflowMonthlyHistory:  GroupMonthly(inflows, EntryDate, inflowValue),
		OutflowMonthlyHistory: GroupMonthly(outflows, DeliveryDate, outflowValue),
		TopMovedMaterials:     topMoved(inflows, outflows, cat, topN),
		StockSnapshot:         BuildSnapshot(in.Materials, in.Inflows, in.Outflows, snapPeriod),
	}
}

func inflowDetails(events []entity.InflowEvent, cat *Catalog, unitValue UnitValueFunc[entity.InflowEvent]) ([]InflowDetail, StreamTotals) {
	details := make([]InflowDetail, 0, len(events))
	qty, value := decimal.Zero, decimal.Zero
	for _, e := range events {
		q, unit := e.Qty(), unitValue(e)
		v := q.Mul(unit)
		qty, value = qty.Add(q), value.Add(v)
		details = append(details, InflowDetail{
			ID:         e.ID,
			MaterialID: e.MaterialID,
			Quantity:   q,
			EntryDate:  e.EntryDate,
			CostCenter: e.CostCenter,
			UnitValue:  unit,
			Value:      v.Round(2),
			Material:   materialRef(cat, e.MaterialID),
		})
	}
	return details, StreamTotals{Count: len(events), Quantity: qty, Value: value.Round(2)}
}

func outflowDetails(events []entity.OutflowEvent, cat *Catalog, unitValue UnitValueFunc[entity.OutflowEvent]) ([]OutflowDetail, StreamTotals) {
	details := make([]OutflowDetail, 0, len(events))
	qty, value := decimal.Zero, decimal.Zero
	for _, e := range events {
		q, unit := e.Qty(), unitValue(e)
		v := q.Mul(unit)
		qty, value = qty.Add(q), value.Add(v)
		details = append(details, OutflowDetail{
			ID:            e.ID,
			MaterialID:    e.MaterialID,
			Quantity:      q,
			DeliveryDate:  e.DeliveryDate,
			RecipientID:   e.RecipientID,
			CostCenter:    e.CostCenter,
			ServiceCenter: e.ServiceCenter,
			UnitValue:     unit,
			Value:         v.Round(2),
			Material:      materialRef(cat, e.MaterialID),
			Recipient:     personRef(cat, e.RecipientID),
		})
	}
	return details, StreamTotals{Count: len(events), Quantity: qty, Value: value.Round(2)}
}

func materialRef(cat *Catalog, id string) *MaterialRef {
	m, ok := cat.Material(id)
	if !ok {
		return nil
	}
	return &MaterialRef{ID: m.ID, Name: m.Name, Manufacturer: m.Manufacturer, CA: m.CA}
}

func personRef(cat *Catalog, id string) *PersonRef {
	if id == "" {
		return nil
	}
	p, ok := cat.Person(id)
	if !ok {
		return nil
	}
	return &PersonRef{ID: p.ID, Name: p.Name, Registration: p.Registration, Role: p.Role}
}

// topMoved ordena por total descendente; empates por nombre (collation pt-BR)
// y luego por ID. Recibe los eventos ya filtrados por período.
func topMoved(inflows []entity.InflowEvent, outflows []entity.OutflowEvent, cat *Catalog, n int) []MovedMaterial {
	totals := Tally(inflows, outflows, AllTime())

	rows := make([]MovedMaterial, 0, len(totals))
	for id, t := range totals {
		name := ""
		if m, ok := cat.Material(id); ok {
			name = m.Name
		}
		rows = append(rows, MovedMaterial{
			MaterialID: id,
			Name:       name,
			Inflow:     t.Inflow,
			Outflow:    t.Outflow,
			Total:      t.Inflow.Add(t.Outflow),
		})
	}

	// collate.Collator no es seguro para uso concurrente: uno por llamada.
	col := collate.New(language.BrazilianPortuguese)
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Total.Cmp(rows[j].Total); c != 0 {
			return c > 0
		}
		if c := col.CompareString(rows[i].Name, rows[j].Name); c != 0 {
			return c < 0
		}
		return rows[i].MaterialID < rows[j].MaterialID
	})

	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// Package memory implementa los repositorios de solo lectura sobre datos en
// memoria. Lo usan los tests de aplicación y HTTP.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/epi-estoque/internal/domain"
	"github.com/jhoicas/epi-estoque/internal/domain/entity"
	"github.com/jhoicas/epi-estoque/internal/domain/ledger"
	"github.com/jhoicas/epi-estoque/internal/domain/repository"
)

var (
	_ repository.MaterialRepository = (*Store)(nil)
	_ repository.InflowRepository   = InflowView{}
	_ repository.OutflowRepository  = OutflowView{}
	_ repository.PersonRepository   = PersonView{}
)

// Company son los datos de una empresa.
type Company struct {
	Materials []entity.Material
	Inflows   []entity.InflowEvent
	Outflows  []entity.OutflowEvent
	People    []entity.Person
}

// Store guarda los datos por empresa.
type Store struct {
	mu        sync.RWMutex
	companies map[string]Company
	err       error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{companies: make(map[string]Company)}
}

// Put reemplaza los datos de una empresa.
func (s *Store) Put(companyID string, c Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[companyID] = c
}

// SetErr hace que todas las consultas devuelvan err (nil lo quita).
// Simula fallas de infraestructura.
func (s *Store) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Store) company(ctx context.Context, companyID string) (Company, error) {
	if err := ctx.Err(); err != nil {
		return Company{}, fmt.Errorf("memory: %w: %w", domain.ErrUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return Company{}, s.err
	}
	return s.companies[companyID], nil
}

// List devuelve los materiales en el orden en que se cargaron.
func (s *Store) List(ctx context.Context, companyID string) ([]entity.Material, error) {
	c, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return append([]entity.Material(nil), c.Materials...), nil
}

// GetByID busca un material; domain.ErrNotFound si no existe.
func (s *Store) GetByID(ctx context.Context, companyID, id string) (*entity.Material, error) {
	c, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for _, m := range c.Materials {
		if m.ID == id {
			m := m
			return &m, nil
		}
	}
	return nil, fmt.Errorf("material %s: %w", id, domain.ErrNotFound)
}

// Inflows expone las entradas como repository.InflowRepository.
func (s *Store) Inflows() InflowView { return InflowView{s} }

// Outflows expone las salidas vigentes como repository.OutflowRepository.
// canceledStatus vacío usa entity.OutflowStatusCanceled.
func (s *Store) Outflows(canceledStatus string) OutflowView {
	if canceledStatus == "" {
		canceledStatus = entity.OutflowStatusCanceled
	}
	return OutflowView{s: s, canceled: canceledStatus}
}

// People expone los colaboradores como repository.PersonRepository.
func (s *Store) People() PersonView { return PersonView{s} }

// InflowView adapta Store a repository.InflowRepository.
type InflowView struct{ s *Store }

// List aplica el filtro como lo haría la base: material exacto y rango sobre la fecha.
func (v InflowView) List(ctx context.Context, companyID string, f repository.MovementFilter) ([]entity.InflowEvent, error) {
	c, err := v.s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.InflowEvent, 0, len(c.Inflows))
	for _, e := range c.Inflows {
		if matches(e.MaterialID, e.EntryDate, f) {
			out = append(out, e)
		}
	}
	return out, nil
}

// OutflowView adapta Store a repository.OutflowRepository.
type OutflowView struct {
	s        *Store
	canceled string
}

// ListActive excluye las salidas con el estado de cancelación.
func (v OutflowView) ListActive(ctx context.Context, companyID string, f repository.MovementFilter) ([]entity.OutflowEvent, error) {
	c, err := v.s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.OutflowEvent, 0, len(c.Outflows))
	for _, e := range c.Outflows {
		if e.Status == v.canceled {
			continue
		}
		if matches(e.MaterialID, e.DeliveryDate, f) {
			out = append(out, e)
		}
	}
	return out, nil
}

// PersonView adapta Store a repository.PersonRepository.
type PersonView struct{ s *Store }

// List devuelve los colaboradores de la empresa.
func (v PersonView) List(ctx context.Context, companyID string) ([]entity.Person, error) {
	c, err := v.s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return append([]entity.Person(nil), c.People...), nil
}

// matches: con rango, una fecha inválida no pasa (igual que una columna NULL en SQL).
func matches(materialID, date string, f repository.MovementFilter) bool {
	if f.MaterialID != "" && materialID != f.MaterialID {
		return false
	}
	if f.Range == nil {
		return true
	}
	t, ok := ledger.ParseDate(date)
	return ok && f.Range.Contains(t)
}

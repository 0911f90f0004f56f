package entity

// Person es un colaborador que recibe EPIs.
type Person struct {
	ID           string
	Name         string
	Registration string // matrícula
	Role         string // cargo
	CostCenter   string
}

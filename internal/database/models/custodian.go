package models

import "fmt"

// Custodian is the current holder of responsibility for an asset.
// Variants: EmployeeCustodian, StockCustodian, MaintenanceCustodian, TeamCustodian, RoleCustodian.
type Custodian interface {
	Kind() CustodianKind
	isCustodian()
}

// EmployeeCustodian targets a single active employee
type EmployeeCustodian struct {
	EmployeeID string
}

// StockCustodian targets the IT stock sentinel
type StockCustodian struct{}

// MaintenanceCustodian targets a repair provider. Empty fields fall back to the configured default.
type MaintenanceCustodian struct {
	ID    string
	Label string
}

// TeamCustodian targets a team as a whole
type TeamCustodian struct {
	TeamID string
}

// RoleCustodian targets a job position, filled or open
type RoleCustodian struct {
	RoleID string
}

func (EmployeeCustodian) Kind() CustodianKind    { return CustodianEmployee }
func (StockCustodian) Kind() CustodianKind       { return CustodianStock }
func (MaintenanceCustodian) Kind() CustodianKind { return CustodianMaintenance }
func (TeamCustodian) Kind() CustodianKind        { return CustodianTeam }
func (RoleCustodian) Kind() CustodianKind        { return CustodianRole }

func (EmployeeCustodian) isCustodian()    {}
func (StockCustodian) isCustodian()       {}
func (MaintenanceCustodian) isCustodian() {}
func (TeamCustodian) isCustodian()        {}
func (RoleCustodian) isCustodian()        {}

// NewCustodian builds the variant matching kind from the wire triple (kind, id, label).
func NewCustodian(kind CustodianKind, id, label string) (Custodian, error) {
	switch kind {
	case CustodianEmployee:
		return EmployeeCustodian{EmployeeID: id}, nil
	case CustodianStock:
		return StockCustodian{}, nil
	case CustodianMaintenance:
		return MaintenanceCustodian{ID: id, Label: label}, nil
	case CustodianTeam:
		return TeamCustodian{TeamID: id}, nil
	case CustodianRole:
		return RoleCustodian{RoleID: id}, nil
	}
	return nil, fmt.Errorf("unknown custodian kind %q", kind)
}

// CustodianRef is a resolved custodian: kind, id and display name kept mutually consistent.
type CustodianRef struct {
	Kind CustodianKind `json:"kind"`
	ID   string        `json:"id"`
	Name string        `json:"name"`
}

package models

// AssetType defines the equipment categories
type AssetType string

const (
	AssetTypeNotebook  AssetType = "NOTEBOOK"
	AssetTypeDesktop   AssetType = "DESKTOP"
	AssetTypeCelular   AssetType = "CELULAR"
	AssetTypeTablet    AssetType = "TABLET"
	AssetTypeAcessorio AssetType = "ACESSÓRIO"
	AssetTypeMonitor   AssetType = "MONITOR"
)

// AssetStatus defines the lifecycle status of an asset
type AssetStatus string

const (
	AssetStatusInUse          AssetStatus = "EM USO"
	AssetStatusInStock        AssetStatus = "EM ESTOQUE"
	AssetStatusInMaintenance  AssetStatus = "EM MANUTENÇÃO"
	AssetStatusDecommissioned AssetStatus = "BAIXADO"
	AssetStatusLost           AssetStatus = "PERDIDO"
)

// AssetCondition defines the physical condition of an asset
type AssetCondition string

const (
	AssetConditionNew   AssetCondition = "NOVO"
	AssetConditionGood  AssetCondition = "BOM"
	AssetConditionFair  AssetCondition = "REGULAR"
	AssetConditionPoor  AssetCondition = "RUIM"
	AssetConditionScrap AssetCondition = "SUCATA"
)

// CustodianKind identifies who holds an asset
type CustodianKind string

const (
	CustodianEmployee    CustodianKind = "FUNCIONÁRIO"
	CustodianRole        CustodianKind = "VAGA"
	CustodianTeam        CustodianKind = "EQUIPE"
	CustodianStock       CustodianKind = "ESTOQUE"
	CustodianMaintenance CustodianKind = "MANUTENÇÃO"
)

// Region defines the operating regions
type Region string

const (
	RegionGO       Region = "GO"
	RegionTO       Region = "TO"
	RegionMT       Region = "MT"
	RegionIndireto Region = "INDIRETO"
)

// Channel defines the sales channel a team works in
type Channel string

const (
	ChannelCV             Channel = "CV"
	ChannelAtacado        Channel = "ATACADO"
	ChannelKeyAccount     Channel = "KEY ACCOUNT"
	ChannelAdministrativo Channel = "ADMINISTRATIVO"
	ChannelLogistica      Channel = "LOGÍSTICA"
)

// RoleStatus defines the state of a job position
type RoleStatus string

const (
	RoleStatusOpen     RoleStatus = "VAGA_ABERTA"
	RoleStatusActive   RoleStatus = "ATIVA"
	RoleStatusInactive RoleStatus = "INATIVA"
	RoleStatusFilled   RoleStatus = "PREENCHIDA"
)

// ImportStatus defines the state of a persisted import plan
type ImportStatus string

const (
	ImportStatusPending   ImportStatus = "PENDING"
	ImportStatusCommitted ImportStatus = "COMMITTED"
	ImportStatusFailed    ImportStatus = "FAILED"
)

// IsValid checks if the AssetType is one of the catalogue types
func (t AssetType) IsValid() bool {
	switch t {
	case AssetTypeNotebook, AssetTypeDesktop, AssetTypeCelular, AssetTypeTablet, AssetTypeAcessorio, AssetTypeMonitor:
		return true
	}
	return false
}

// IsValid checks if the AssetStatus is valid
func (s AssetStatus) IsValid() bool {
	switch s {
	case AssetStatusInUse, AssetStatusInStock, AssetStatusInMaintenance, AssetStatusDecommissioned, AssetStatusLost:
		return true
	}
	return false
}

// IsValid checks if the CustodianKind is valid
func (k CustodianKind) IsValid() bool {
	switch k {
	case CustodianEmployee, CustodianRole, CustodianTeam, CustodianStock, CustodianMaintenance:
		return true
	}
	return false
}

// IsValid checks if the Region is valid
func (r Region) IsValid() bool {
	switch r {
	case RegionGO, RegionTO, RegionMT, RegionIndireto:
		return true
	}
	return false
}

// IsValid checks if the Channel is valid
func (c Channel) IsValid() bool {
	switch c {
	case ChannelCV, ChannelAtacado, ChannelKeyAccount, ChannelAdministrativo, ChannelLogistica:
		return true
	}
	return false
}

// IsValid checks if the RoleStatus is valid
func (s RoleStatus) IsValid() bool {
	switch s {
	case RoleStatusOpen, RoleStatusActive, RoleStatusInactive, RoleStatusFilled:
		return true
	}
	return false
}

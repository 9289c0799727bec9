package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"asset-management-backend/internal/config"
	"asset-management-backend/internal/database"
	"asset-management-backend/internal/database/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type TeamData struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Region   string `yaml:"region"`
	Channel  string `yaml:"channel"`
	LeaderID string `yaml:"leader_id,omitempty"`
}

type RoleData struct {
	ID          string `yaml:"id"`
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
	Region      string `yaml:"region"`
	TeamID      string `yaml:"team_id,omitempty"`
	Status      string `yaml:"status"`
}

type EmployeeData struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Role   string `yaml:"role"`
	RoleID string `yaml:"role_id,omitempty"`
	Region string `yaml:"region"`
	TeamID string `yaml:"team_id,omitempty"`
	Active bool   `yaml:"active"`
}

type AssetData struct {
	ID                string `yaml:"id"`
	Type              string `yaml:"type"`
	Brand             string `yaml:"brand"`
	AssetTag          string `yaml:"asset_tag,omitempty"`
	PrimaryID         string `yaml:"primary_id,omitempty"`
	Status            string `yaml:"status"`
	PhysicalCondition string `yaml:"physical_condition"`
	Color             string `yaml:"color,omitempty"`
	Details           string `yaml:"details,omitempty"`
	Value             string `yaml:"value,omitempty"`
	OwnerType         string `yaml:"current_owner_type"`
	OwnerID           string `yaml:"current_owner_id"`
	Region            string `yaml:"region"`
}

type MovementData struct {
	ID           string    `yaml:"id"`
	AssetID      string    `yaml:"asset_id"`
	Date         time.Time `yaml:"date"`
	FromType     string    `yaml:"from_owner_type"`
	FromID       string    `yaml:"from_owner_id"`
	ToType       string    `yaml:"to_owner_type"`
	ToID         string    `yaml:"to_owner_id"`
	Reason       string    `yaml:"reason"`
	Observations string    `yaml:"observations,omitempty"`
	RegisteredBy string    `yaml:"registered_by"`
}

// File structures
type TeamsFile struct {
	Teams []TeamData `yaml:"teams"`
}

type RolesFile struct {
	Roles []RoleData `yaml:"roles"`
}

type EmployeesFile struct {
	Employees []EmployeeData `yaml:"employees"`
}

type AssetsFile struct {
	Assets []AssetData `yaml:"assets"`
}

type MovementsFile struct {
	Movements []MovementData `yaml:"movements"`
}

func main() {
	log.Println("🚀 Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadDataFromYAMLFiles(db, cfg, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("✅ Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress SQL and "record not found" noise while seeding
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, cfg *config.Config, dataDir string) error {
	var teams TeamsFile
	if err := readYAML(dataDir, "teams.yaml", &teams); err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}
	var roles RolesFile
	if err := readYAML(dataDir, "roles.yaml", &roles); err != nil {
		return fmt.Errorf("failed to load roles: %w", err)
	}
	var employees EmployeesFile
	if err := readYAML(dataDir, "employees.yaml", &employees); err != nil {
		return fmt.Errorf("failed to load employees: %w", err)
	}
	var assets AssetsFile
	if err := readYAML(dataDir, "assets.yaml", &assets); err != nil {
		return fmt.Errorf("failed to load assets: %w", err)
	}
	var movements MovementsFile
	if err := readYAML(dataDir, "movements.yaml", &movements); err != nil {
		return fmt.Errorf("failed to load movements: %w", err)
	}

	names := newCustodianNames(cfg, &teams, &roles, &employees)

	return db.Transaction(func(tx *gorm.DB) error {
		if err := upsertTeams(tx, teams.Teams); err != nil {
			return err
		}
		if err := upsertRoles(tx, roles.Roles); err != nil {
			return err
		}
		if err := upsertEmployees(tx, employees.Employees); err != nil {
			return err
		}
		if err := upsertAssets(tx, names, assets.Assets); err != nil {
			return err
		}
		return insertMovements(tx, names, movements.Movements)
	})
}

func readYAML(dataDir, name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(dataDir, name))
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// custodianNames resolves the display name stored next to every custody reference
type custodianNames struct {
	cfg   *config.Config
	names map[models.CustodianKind]map[string]string
}

func newCustodianNames(cfg *config.Config, teams *TeamsFile, roles *RolesFile, employees *EmployeesFile) *custodianNames {
	n := &custodianNames{cfg: cfg, names: map[models.CustodianKind]map[string]string{
		models.CustodianTeam:     {},
		models.CustodianRole:     {},
		models.CustodianEmployee: {},
	}}
	for _, t := range teams.Teams {
		n.names[models.CustodianTeam][t.ID] = t.Name
	}
	for _, r := range roles.Roles {
		n.names[models.CustodianRole][r.ID] = r.Code
	}
	for _, e := range employees.Employees {
		n.names[models.CustodianEmployee][e.ID] = e.Name
	}
	return n
}

func (n *custodianNames) resolve(kind, id string) (models.CustodianRef, error) {
	k := models.CustodianKind(kind)
	switch k {
	case models.CustodianStock:
		return models.CustodianRef{Kind: k, ID: n.cfg.StockOwnerID, Name: n.cfg.StockOwnerName}, nil
	case models.CustodianMaintenance:
		if id == "" {
			id = n.cfg.MaintenanceOwnerID
		}
		return models.CustodianRef{Kind: k, ID: id, Name: n.cfg.MaintenanceOwnerName}, nil
	}
	byID, ok := n.names[k]
	if !ok {
		return models.CustodianRef{}, fmt.Errorf("unknown custodian kind %q", kind)
	}
	name, ok := byID[id]
	if !ok {
		return models.CustodianRef{}, fmt.Errorf("custodian %s %q is not seeded", kind, id)
	}
	return models.CustodianRef{Kind: k, ID: id, Name: name}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func upsertTeams(tx *gorm.DB, data []TeamData) error {
	for _, t := range data {
		team := models.Team{
			BaseModel: models.BaseModel{ID: t.ID},
			Name:      t.Name,
			Region:    models.Region(t.Region),
			Channel:   models.Channel(t.Channel),
			LeaderID:  optional(t.LeaderID),
		}
		if !team.Region.IsValid() || !team.Channel.IsValid() {
			return fmt.Errorf("team %s: invalid region or channel", t.ID)
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&team).Error; err != nil {
			return fmt.Errorf("failed to upsert team %s: %w", t.ID, err)
		}
	}
	log.Printf("Teams: %d", len(data))
	return nil
}

func upsertRoles(tx *gorm.DB, data []RoleData) error {
	for _, r := range data {
		role := models.Role{
			BaseModel:   models.BaseModel{ID: r.ID},
			Code:        r.Code,
			Description: r.Description,
			Region:      models.Region(r.Region),
			TeamID:      optional(r.TeamID),
			Status:      models.RoleStatus(r.Status),
		}
		if !role.Status.IsValid() {
			return fmt.Errorf("role %s: invalid status %q", r.ID, r.Status)
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&role).Error; err != nil {
			return fmt.Errorf("failed to upsert role %s: %w", r.ID, err)
		}
	}
	log.Printf("Roles: %d", len(data))
	return nil
}

func upsertEmployees(tx *gorm.DB, data []EmployeeData) error {
	for _, e := range data {
		employee := models.Employee{
			BaseModel: models.BaseModel{ID: e.ID},
			Name:      e.Name,
			Role:      e.Role,
			RoleID:    optional(e.RoleID),
			Region:    models.Region(e.Region),
			TeamID:    optional(e.TeamID),
			Active:    e.Active,
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&employee).Error; err != nil {
			return fmt.Errorf("failed to upsert employee %s: %w", e.ID, err)
		}
	}
	log.Printf("Employees: %d", len(data))
	return nil
}

func upsertAssets(tx *gorm.DB, names *custodianNames, data []AssetData) error {
	for _, a := range data {
		holder, err := names.resolve(a.OwnerType, a.OwnerID)
		if err != nil {
			return fmt.Errorf("asset %s: %w", a.ID, err)
		}
		value := decimal.Zero
		if a.Value != "" {
			if value, err = decimal.NewFromString(a.Value); err != nil {
				return fmt.Errorf("asset %s: invalid value %q", a.ID, a.Value)
			}
		}
		asset := models.Asset{
			BaseModel:         models.BaseModel{ID: a.ID},
			Type:              models.AssetType(a.Type),
			Brand:             a.Brand,
			AssetTag:          optional(a.AssetTag),
			PrimaryID:         optional(a.PrimaryID),
			Status:            models.AssetStatus(a.Status),
			PhysicalCondition: models.AssetCondition(a.PhysicalCondition),
			Color:             a.Color,
			Details:           a.Details,
			Value:             value.Round(2),
			Region:            models.Region(a.Region),
			Revision:          1,
		}
		asset.AssignTo(holder)
		if !asset.Type.IsValid() || !asset.Status.IsValid() {
			return fmt.Errorf("asset %s: invalid type or status", a.ID)
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&asset).Error; err != nil {
			return fmt.Errorf("failed to upsert asset %s: %w", a.ID, err)
		}
	}
	log.Printf("Assets: %d", len(data))
	return nil
}

// Movements are append-only; existing ids are left as they are
func insertMovements(tx *gorm.DB, names *custodianNames, data []MovementData) error {
	for _, m := range data {
		from, err := names.resolve(m.FromType, m.FromID)
		if err != nil {
			return fmt.Errorf("movement %s: %w", m.ID, err)
		}
		to, err := names.resolve(m.ToType, m.ToID)
		if err != nil {
			return fmt.Errorf("movement %s: %w", m.ID, err)
		}
		movement := models.Movement{
			ID:            m.ID,
			AssetID:       m.AssetID,
			Date:          m.Date,
			FromOwnerType: from.Kind,
			FromOwnerID:   from.ID,
			FromOwnerName: from.Name,
			ToOwnerType:   to.Kind,
			ToOwnerID:     to.ID,
			ToOwnerName:   to.Name,
			Reason:        m.Reason,
			Observations:  m.Observations,
			RegisteredBy:  m.RegisteredBy,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to insert movement %s: %w", m.ID, err)
		}
	}
	log.Printf("Movements: %d", len(data))
	return nil
}

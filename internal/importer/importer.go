// Package importer turns spreadsheet rows into deduplicated asset import rows.
// It has no store access: classification and persistence belong to the import service.
package importer

import (
	"context"
	"strings"

	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"
	"asset-management-backend/internal/logger"

	"github.com/shopspring/decimal"
)

const (
	DefaultType      = "NOTEBOOK"
	DefaultBrand     = "GENERICO"
	DefaultCondition = "NOVO"
	DefaultColor     = "Padrão"
)

// Row is a normalized asset record ready for classification and upsert
type Row struct {
	Line              int                 `json:"line"`
	PrimaryID         string              `json:"primary_id"`
	AssetTag          *string             `json:"asset_tag,omitempty"`
	Type              string              `json:"type"`
	Brand             string              `json:"brand"`
	PhysicalCondition string              `json:"physical_condition"`
	Value             decimal.Decimal     `json:"value"`
	Details           string              `json:"details"`
	Color             string              `json:"color"`
	Status            models.AssetStatus  `json:"status"`
	Custodian         models.CustodianRef `json:"custodian"`
}

// Result is the outcome of normalizing a sheet
type Result struct {
	Rows     []Row                      `json:"rows"`
	Rejected []apperrors.ImportRowError `json:"rejected"`
	Read     int                        `json:"read"`
}

// Normalizer maps raw rows onto asset rows. New imports are placed in the stock custodian.
type Normalizer struct {
	stock models.CustodianRef
}

// NewNormalizer creates a normalizer placing new assets with the given stock custodian
func NewNormalizer(stock models.CustodianRef) *Normalizer {
	return &Normalizer{stock: stock}
}

// Normalize resolves every field through its alias list, applies defaults, rejects rows
// without a primary identifier and deduplicates by primary identifier. On duplicates the
// last row in file order wins while the position of the first occurrence is kept.
// The result depends only on the input rows.
func (n *Normalizer) Normalize(ctx context.Context, rows []RawRow) *Result {
	log := logger.WithContext(ctx)
	result := &Result{Rows: make([]Row, 0, len(rows))}
	positions := make(map[string]int, len(rows))

	for _, raw := range rows {
		if raw.IsBlank() {
			continue
		}
		result.Read++

		row, ok := n.normalizeRow(raw)
		if !ok {
			rowErr := apperrors.ImportRowError{Line: raw.Line, Reason: "missing SERIAL"}
			log.Warn(rowErr.Error())
			result.Rejected = append(result.Rejected, rowErr)
			continue
		}

		if idx, seen := positions[row.PrimaryID]; seen {
			log.Debugf("line %d overrides earlier row for %s", row.Line, row.PrimaryID)
			result.Rows[idx] = row
			continue
		}
		positions[row.PrimaryID] = len(result.Rows)
		result.Rows = append(result.Rows, row)
	}

	return result
}

func (n *Normalizer) normalizeRow(raw RawRow) (Row, bool) {
	primary, ok := lookup(raw.Cells, PrimaryIDAliases)
	if !ok || strings.TrimSpace(primary.Value) == "" {
		return Row{}, false
	}

	row := Row{
		Line:              raw.Line,
		PrimaryID:         strings.TrimSpace(primary.Value),
		Type:              upperOr(raw.Cells, TypeAliases, DefaultType),
		Brand:             upperOr(raw.Cells, BrandAliases, DefaultBrand),
		PhysicalCondition: upperOr(raw.Cells, ConditionAliases, DefaultCondition),
		Details:           valueOr(raw.Cells, DetailsAliases, ""),
		Color:             valueOr(raw.Cells, ColorAliases, DefaultColor),
		Value:             decimal.Zero,
		Status:            models.AssetStatusInStock,
		Custodian:         n.stock,
	}

	if tag, ok := lookup(raw.Cells, AssetTagAliases); ok {
		v := tag.Value
		row.AssetTag = &v
	}
	if value, ok := lookup(raw.Cells, ValueAliases); ok {
		row.Value = ParseCurrency(value)
	}

	return row, true
}

func valueOr(cells []Cell, aliases []string, fallback string) string {
	if c, ok := lookup(cells, aliases); ok {
		return c.Value
	}
	return fallback
}

func upperOr(cells []Cell, aliases []string, fallback string) string {
	return strings.ToUpper(valueOr(cells, aliases, fallback))
}

// PrimaryIDs returns the primary identifiers of rows in order
func PrimaryIDs(rows []Row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.PrimaryID
	}
	return ids
}

// ToAsset builds the asset a row inserts when its primary identifier is new
func (r Row) ToAsset() *models.Asset {
	primaryID := r.PrimaryID
	asset := &models.Asset{
		Type:              models.AssetType(r.Type),
		Brand:             r.Brand,
		AssetTag:          r.AssetTag,
		PrimaryID:         &primaryID,
		Status:            r.Status,
		PhysicalCondition: models.AssetCondition(r.PhysicalCondition),
		Color:             r.Color,
		Details:           r.Details,
		Value:             r.Value,
		Revision:          1,
	}
	asset.AssignTo(r.Custodian)
	return asset
}

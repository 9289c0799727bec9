package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"asset-management-backend/internal/config"
	"asset-management-backend/internal/database/models"
	apperrors "asset-management-backend/internal/errors"
	"asset-management-backend/internal/importer"
	"asset-management-backend/internal/logger"
	"asset-management-backend/internal/repository"
)

// Import actions
const (
	ImportActionNew    = "NEW"
	ImportActionUpdate = "UPDATE"
)

// ImportService reconciles spreadsheets with the inventory in two steps:
// Analyze persists a plan, Commit applies it.
type ImportService struct {
	assets     repository.AssetRepositoryInterface
	runs       repository.ImportRunRepositoryInterface
	normalizer *importer.Normalizer
	batchSize  int
	notifier   Notifier
}

// Ensure ImportService implements ImportServiceInterface
var _ ImportServiceInterface = (*ImportService)(nil)

// NewImportService creates a new import service. Imported assets land in the configured stock.
func NewImportService(
	assets repository.AssetRepositoryInterface,
	runs repository.ImportRunRepositoryInterface,
	cfg *config.Config,
	notifier Notifier,
) *ImportService {
	stock := models.CustodianRef{
		Kind: models.CustodianStock,
		ID:   cfg.StockOwnerID,
		Name: cfg.StockOwnerName,
	}
	batchSize := cfg.ImportBatchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	return &ImportService{
		assets:     assets,
		runs:       runs,
		normalizer: importer.NewNormalizer(stock),
		batchSize:  batchSize,
		notifier:   notifier,
	}
}

// PlannedRow is a normalized row and what committing it will do
type PlannedRow struct {
	importer.Row
	Action string `json:"action"`
}

// ImportPlanResponse represents an analyzed or committed import run
type ImportPlanResponse struct {
	ID            string                     `json:"id"`
	FileName      string                     `json:"file_name"`
	Status        string                     `json:"status"`
	NewCount      int                        `json:"new_count"`
	UpdateCount   int                        `json:"update_count"`
	RejectedCount int                        `json:"rejected_count"`
	Rows          []PlannedRow               `json:"rows,omitempty"`
	Rejected      []apperrors.ImportRowError `json:"rejected"`
	Error         string                     `json:"error,omitempty"`
	CreatedBy     string                     `json:"created_by"`
	CreatedAt     time.Time                  `json:"created_at"`
	CommittedAt   *time.Time                 `json:"committed_at,omitempty"`
}

// ImportRunListResponse represents a paginated list of import runs
type ImportRunListResponse struct {
	Runs     []ImportPlanResponse `json:"runs"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// Analyze reads a spreadsheet, normalizes and deduplicates its rows, classifies each
// as new or update and stores the plan as a pending run. Nothing touches the assets.
func (s *ImportService) Analyze(ctx context.Context, fileName string, r io.Reader, actor string) (*ImportPlanResponse, error) {
	log := logger.WithContext(ctx).WithField("file_name", fileName)

	raw, err := importer.ReadSpreadsheet(r)
	if err != nil {
		return nil, apperrors.NewImportBatchError("unreadable spreadsheet", err)
	}

	result := s.normalizer.Normalize(ctx, raw)
	if len(result.Rows) == 0 {
		log.WithField("rejected", len(result.Rejected)).Warn("Import has no valid rows")
		return nil, apperrors.ErrEmptyImport
	}

	existing, err := s.existingPrimaryIDs(ctx, importer.PrimaryIDs(result.Rows))
	if err != nil {
		return nil, apperrors.NewPersistenceError("classify import rows", err)
	}

	planned := make([]PlannedRow, len(result.Rows))
	newCount, updateCount := 0, 0
	for i, row := range result.Rows {
		action := ImportActionNew
		if _, ok := existing[row.PrimaryID]; ok {
			action = ImportActionUpdate
			updateCount++
		} else {
			newCount++
		}
		planned[i] = PlannedRow{Row: row, Action: action}
	}

	rejected := result.Rejected
	if rejected == nil {
		rejected = []apperrors.ImportRowError{}
	}
	rowsJSON, err := json.Marshal(planned)
	if err != nil {
		return nil, fmt.Errorf("encode import rows: %w", err)
	}
	rejectedJSON, err := json.Marshal(rejected)
	if err != nil {
		return nil, fmt.Errorf("encode rejected rows: %w", err)
	}

	run := &models.ImportRun{
		FileName:      fileName,
		Status:        models.ImportStatusPending,
		NewCount:      newCount,
		UpdateCount:   updateCount,
		RejectedCount: len(rejected),
		Rows:          rowsJSON,
		Rejected:      rejectedJSON,
		CreatedBy:     actor,
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, apperrors.NewPersistenceError("save import run", err)
	}

	log.WithFields(map[string]interface{}{
		"run_id":   run.ID,
		"new":      newCount,
		"update":   updateCount,
		"rejected": len(rejected),
	}).Info("Import analyzed")
	publish(s.notifier, CollectionImports)

	return &ImportPlanResponse{
		ID:            run.ID,
		FileName:      run.FileName,
		Status:        string(run.Status),
		NewCount:      newCount,
		UpdateCount:   updateCount,
		RejectedCount: len(rejected),
		Rows:          planned,
		Rejected:      rejected,
		CreatedBy:     actor,
		CreatedAt:     run.CreatedAt,
	}, nil
}

// existingPrimaryIDs looks identifiers up in chunks to keep statements bounded
func (s *ImportService) existingPrimaryIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(ids))
	for start := 0; start < len(ids); start += s.batchSize {
		end := start + s.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		found, err := s.assets.FindExistingPrimaryIDs(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		for _, id := range found {
			existing[id] = struct{}{}
		}
	}
	return existing, nil
}

// Commit applies a pending run as one upsert keyed on primary_id. Existing assets get
// their descriptive fields refreshed; custody and status are left alone. Any failure
// marks the run failed and nothing is applied.
func (s *ImportService) Commit(ctx context.Context, runID string, actor string) (*ImportPlanResponse, error) {
	log := logger.WithContext(ctx).WithField("run_id", runID)

	run, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrImportRunNotFound, "get import run")
	}
	if run.Status != models.ImportStatusPending {
		return nil, apperrors.ErrImportNotPending
	}

	defer publish(s.notifier, CollectionAssets, CollectionImports)

	var planned []PlannedRow
	if err := json.Unmarshal(run.Rows, &planned); err != nil {
		return nil, s.fail(ctx, run, fmt.Errorf("decode import rows: %w", err))
	}

	assets := make([]*models.Asset, len(planned))
	for i, row := range planned {
		assets[i] = row.ToAsset()
	}

	if err := s.runs.Commit(ctx, run.ID, assets, s.batchSize); err != nil {
		if errors.Is(err, apperrors.ErrImportNotPending) {
			return nil, err
		}
		return nil, s.fail(ctx, run, err)
	}

	now := time.Now()
	run.Status = models.ImportStatusCommitted
	run.CommittedAt = &now

	log.WithFields(map[string]interface{}{
		"rows":         len(assets),
		"committed_by": actor,
	}).Info("Import committed")

	return toImportPlanResponse(run, true)
}

func (s *ImportService) fail(ctx context.Context, run *models.ImportRun, cause error) error {
	log := logger.WithContext(ctx).WithField("run_id", run.ID)
	log.WithError(cause).Error("Import commit failed")
	if err := s.runs.MarkFailed(ctx, run.ID, cause.Error()); err != nil {
		log.WithError(err).Error("Failed to mark import run as failed")
	}
	return apperrors.NewImportBatchError("commit failed", cause)
}

// Get retrieves a run with its planned and rejected rows
func (s *ImportService) Get(ctx context.Context, runID string) (*ImportPlanResponse, error) {
	run, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrImportRunNotFound, "get import run")
	}
	return toImportPlanResponse(run, true)
}

// List retrieves runs with pagination, newest first, without their rows
func (s *ImportService) List(ctx context.Context, page, pageSize int) (*ImportRunListResponse, error) {
	page, pageSize, offset := normalizePagination(page, pageSize)

	runs, total, err := s.runs.List(ctx, pageSize, offset)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list import runs", err)
	}

	responses := make([]ImportPlanResponse, len(runs))
	for i := range runs {
		resp, err := toImportPlanResponse(&runs[i], false)
		if err != nil {
			return nil, err
		}
		responses[i] = *resp
	}

	return &ImportRunListResponse{
		Runs:     responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func toImportPlanResponse(run *models.ImportRun, withRows bool) (*ImportPlanResponse, error) {
	resp := &ImportPlanResponse{
		ID:            run.ID,
		FileName:      run.FileName,
		Status:        string(run.Status),
		NewCount:      run.NewCount,
		UpdateCount:   run.UpdateCount,
		RejectedCount: run.RejectedCount,
		Rejected:      []apperrors.ImportRowError{},
		Error:         run.Error,
		CreatedBy:     run.CreatedBy,
		CreatedAt:     run.CreatedAt,
		CommittedAt:   run.CommittedAt,
	}
	if !withRows {
		return resp, nil
	}
	if len(run.Rows) > 0 {
		if err := json.Unmarshal(run.Rows, &resp.Rows); err != nil {
			return nil, fmt.Errorf("decode import rows: %w", err)
		}
	}
	if len(run.Rejected) > 0 {
		if err := json.Unmarshal(run.Rejected, &resp.Rejected); err != nil {
			return nil, fmt.Errorf("decode rejected rows: %w", err)
		}
	}
	return resp, nil
}

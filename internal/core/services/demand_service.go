package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/municipal_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
	"github.com/google/uuid"
)

const (
	defaultDemandPageSize = 20
	maxDemandPageSize     = 100
	d2dcPeriodLayout      = "2006-01"
)

// demandService is the demand generator. Single and unified generation share
// buildDemand and the tariff so both apply identical pricing.
type demandService struct {
	BaseService
	assessmentRepo portsrepo.AssessmentReader
	demandRepo     portsrepo.DemandRepositoryFacade
	tariff         domain.Tariff
}

// NewDemandService creates a new demand service.
func NewDemandService(assessmentRepo portsrepo.AssessmentReader, demandRepo portsrepo.DemandRepositoryFacade, tariff domain.Tariff, opts ...ServiceOption) portssvc.DemandSvcFacade {
	return &demandService{
		BaseService:    newBaseService(opts),
		assessmentRepo: assessmentRepo,
		demandRepo:     demandRepo,
		tariff:         tariff,
	}
}

// Ensure demandService implements the portssvc.DemandSvcFacade interface
var _ portssvc.DemandSvcFacade = (*demandService)(nil)

func (s *demandService) GenerateDemand(ctx context.Context, caller domain.Caller, req dto.GenerateDemandRequest) (*domain.GenerationResult, error) {
	if err := s.Authorize(ctx, caller, domain.ActionGenerateDemand); err != nil {
		return nil, err
	}
	if req.DueDate.IsZero() {
		return nil, apperrors.NewValidationError("dueDate is required")
	}

	switch req.Mode {
	case domain.GenerateSingle:
		return s.generateSingle(ctx, caller, req)
	case domain.GenerateUnified:
		return s.generateUnified(ctx, caller, req)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown generation mode %q", req.Mode))
	}
}

func (s *demandService) generateSingle(ctx context.Context, caller domain.Caller, req dto.GenerateDemandRequest) (*domain.GenerationResult, error) {
	if req.AssessmentID == "" {
		return nil, apperrors.NewValidationError("assessmentId is required in single mode")
	}
	a, err := s.assessmentRepo.FindAssessmentByID(ctx, req.AssessmentID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load assessment for demand", slog.String("assessment_id", req.AssessmentID))
		return nil, err
	}
	if !a.IsBillable() {
		return nil, apperrors.NewAppError(422, fmt.Sprintf("assessment %s is %s and cannot be billed", a.AssessmentNumber, a.Status), apperrors.ErrNoApprovedAssessment)
	}

	d := s.buildDemand(a.ServiceType.DemandServiceType(), a.PropertyID, a.FinancialYear, req.DueDate, []domain.DemandItem{assessmentItem(a)}, nil, caller)
	saved, created, err := s.create(ctx, d)
	if err != nil {
		return nil, err
	}
	return &domain.GenerationResult{Demand: saved, AlreadyExisted: !created}, nil
}

func (s *demandService) generateUnified(ctx context.Context, caller domain.Caller, req dto.GenerateDemandRequest) (*domain.GenerationResult, error) {
	if req.PropertyID == "" || req.FinancialYear == "" {
		return nil, apperrors.NewValidationError("propertyId and financialYear are required in unified mode")
	}
	if _, err := domain.ParseFinancialYear(req.FinancialYear); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if !req.IncludeHouseTax && !req.IncludeWaterTax && !req.IncludeD2DC && !req.IncludeShopDemands {
		return nil, apperrors.NewValidationError("select at least one service to include")
	}

	// Resolve every selected stream before writing anything, so a missing
	// approval fails the call without leaving a partial bundle behind.
	var mainItems []domain.DemandItem
	if req.IncludeHouseTax {
		house, err := s.billable(ctx, req.PropertyID, req.FinancialYear, domain.AssessmentProperty)
		if err != nil {
			return nil, err
		}
		mainItems = append(mainItems, assessmentItem(&house[0]))
	}
	if req.IncludeWaterTax {
		water, err := s.billable(ctx, req.PropertyID, req.FinancialYear, domain.AssessmentWater)
		if err != nil {
			return nil, err
		}
		for i := range water {
			mainItems = append(mainItems, assessmentItem(&water[i]))
		}
	}
	var shops []domain.Assessment
	if req.IncludeShopDemands {
		var err error
		if shops, err = s.billable(ctx, req.PropertyID, req.FinancialYear, domain.AssessmentShop); err != nil {
			return nil, err
		}
	}
	var d2dcItem domain.DemandItem
	if req.IncludeD2DC {
		item, err := s.d2dcItem(req)
		if err != nil {
			return nil, err
		}
		d2dcItem = item
	}

	groupID := uuid.NewString()
	result := &domain.GenerationResult{}

	if len(mainItems) > 0 {
		if err := s.createMain(ctx, caller, req, mainItems, &groupID, result); err != nil {
			return nil, err
		}
	}

	// Siblings are independent demands; a failure is reported, never rolled back.
	for i := range shops {
		item := assessmentItem(&shops[i])
		d := s.buildDemand(domain.ShopTax, req.PropertyID, req.FinancialYear, req.DueDate, []domain.DemandItem{item}, &groupID, caller)
		result.Siblings = append(result.Siblings, s.createSibling(ctx, d, item))
	}
	if req.IncludeD2DC {
		d := s.buildDemand(domain.D2DC, req.PropertyID, req.FinancialYear, req.DueDate, []domain.DemandItem{d2dcItem}, &groupID, caller)
		result.Siblings = append(result.Siblings, s.createSibling(ctx, d, d2dcItem))
	}

	if result.Demand == nil {
		result.AlreadyExisted = len(result.Siblings) > 0
		for _, sib := range result.Siblings {
			if !sib.AlreadyExisted {
				result.AlreadyExisted = false
			}
		}
	}
	return result, nil
}

// createMain bills the unified streams that no live demand holds yet. Streams
// already billed elsewhere (for example in single mode) are reported as
// alreadyExisted siblings pointing at their holder. When every stream is held
// the first holder becomes the result's demand.
func (s *demandService) createMain(ctx context.Context, caller domain.Caller, req dto.GenerateDemandRequest, items []domain.DemandItem, groupID *string, result *domain.GenerationResult) error {
	var held []domain.SiblingResult
	for len(items) > 0 {
		d := s.buildDemand(items[0].TaxType, req.PropertyID, req.FinancialYear, req.DueDate, items, groupID, caller)
		saved, created, err := s.create(ctx, d)
		if err != nil {
			return err
		}
		if created {
			result.Demand = saved
			break
		}

		holderKeys := make(map[string]bool, len(saved.Items))
		for _, k := range saved.BillingKeys() {
			holderKeys[k.String()] = true
		}
		remaining := make([]domain.DemandItem, 0, len(items))
		for _, it := range items {
			key := domain.BillingKey{PropertyID: req.PropertyID, FinancialYear: req.FinancialYear, ServiceType: it.TaxType, SubjectID: it.SubjectID}
			if holderKeys[key.String()] {
				held = append(held, domain.SiblingResult{ServiceType: it.TaxType, SubjectID: it.SubjectID, Demand: saved, AlreadyExisted: true})
				continue
			}
			remaining = append(remaining, it)
		}
		if len(remaining) == len(items) {
			return apperrors.NewAppError(500, fmt.Sprintf("demand %s was reported as holding none of the requested billing keys", saved.DemandID), apperrors.ErrInternal)
		}
		items = remaining
	}

	if result.Demand == nil {
		result.Demand = held[0].Demand
		result.AlreadyExisted = true
	}
	for _, h := range held {
		if h.Demand.DemandID != result.Demand.DemandID {
			result.Siblings = append(result.Siblings, h)
		}
	}
	return nil
}

// billable returns the latest approved assessment per subject, failing when there is none.
func (s *demandService) billable(ctx context.Context, propertyID, financialYear string, serviceType domain.AssessmentServiceType) ([]domain.Assessment, error) {
	all, err := s.assessmentRepo.FindBillableAssessments(ctx, propertyID, financialYear, serviceType)
	if err != nil {
		s.LogError(ctx, err, "Failed to load billable assessments",
			slog.String("property_id", propertyID),
			slog.String("service_type", string(serviceType)))
		return nil, err
	}
	seen := make(map[string]bool, len(all))
	latest := make([]domain.Assessment, 0, len(all))
	for _, a := range all {
		if seen[a.SubjectID()] {
			continue
		}
		seen[a.SubjectID()] = true
		latest = append(latest, a)
	}
	if len(latest) == 0 {
		return nil, apperrors.NewAppError(422, fmt.Sprintf("no approved %s assessment for property %s in %s", serviceType, propertyID, financialYear), apperrors.ErrNoApprovedAssessment)
	}
	return latest, nil
}

func (s *demandService) d2dcItem(req dto.GenerateDemandRequest) (domain.DemandItem, error) {
	period := req.D2DCPeriod
	if period == "" {
		period = req.DueDate.Format(d2dcPeriodLayout)
	}
	month, err := time.Parse(d2dcPeriodLayout, period)
	if err != nil {
		return domain.DemandItem{}, apperrors.NewValidationError(fmt.Sprintf("d2dcPeriod %q must be YYYY-MM", period))
	}
	if domain.FinancialYearOf(month) != req.FinancialYear {
		return domain.DemandItem{}, apperrors.NewValidationError(fmt.Sprintf("d2dcPeriod %s falls outside financial year %s", period, req.FinancialYear))
	}
	return domain.DemandItem{
		TaxType:     domain.D2DC,
		Description: fmt.Sprintf("Door-to-door collection fee for %s", month.Format("January 2006")),
		Amount:      s.tariff.D2DCMonthlyFee,
		SubjectID:   period,
	}, nil
}

func assessmentItem(a *domain.Assessment) domain.DemandItem {
	id := a.AssessmentID
	var desc string
	switch a.ServiceType {
	case domain.AssessmentWater:
		desc = fmt.Sprintf("Water tax %s, connection %s (%s)", a.FinancialYear, a.SubjectID(), a.AssessmentNumber)
	case domain.AssessmentShop:
		desc = fmt.Sprintf("Shop tax %s, shop %s (%s)", a.FinancialYear, a.SubjectID(), a.AssessmentNumber)
	default:
		desc = fmt.Sprintf("House tax %s (%s)", a.FinancialYear, a.AssessmentNumber)
	}
	return domain.DemandItem{
		TaxType:      a.ServiceType.DemandServiceType(),
		Description:  desc,
		Amount:       a.AnnualTaxAmount,
		SubjectID:    a.SubjectID(),
		AssessmentID: &id,
	}
}

func (s *demandService) buildDemand(serviceType domain.DemandServiceType, propertyID, financialYear string, dueDate time.Time, items []domain.DemandItem, groupID *string, caller domain.Caller) domain.Demand {
	now := s.Now()
	d := domain.Demand{
		DemandID:       uuid.NewString(),
		ServiceType:    serviceType,
		PropertyID:     propertyID,
		FinancialYear:  financialYear,
		DueDate:        dueDate.UTC(),
		Items:          items,
		UnifiedGroupID: groupID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}
	for _, it := range items {
		if it.AssessmentID != nil {
			d.AssessmentIDs = append(d.AssessmentIDs, *it.AssessmentID)
		}
	}
	d.Price(s.tariff, now)
	return d
}

func (s *demandService) create(ctx context.Context, d domain.Demand) (*domain.Demand, bool, error) {
	saved, created, err := s.demandRepo.CreateDemand(ctx, d)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create demand",
			slog.String("property_id", d.PropertyID),
			slog.String("service_type", string(d.ServiceType)))
		return nil, false, err
	}
	s.Metrics.IncrementDemandGenerated(string(d.ServiceType), !created)
	if created {
		s.LogInfo(ctx, "Demand generated",
			slog.String("demand_id", saved.DemandID),
			slog.String("demand_number", saved.DemandNumber),
			slog.String("service_type", string(saved.ServiceType)),
			slog.String("total", saved.TotalAmount.StringFixed(2)))
	} else {
		s.LogInfo(ctx, "Demand already existed for billing key",
			slog.String("demand_id", saved.DemandID),
			slog.String("service_type", string(d.ServiceType)))
	}
	saved.RefreshStatus(s.Now())
	return saved, created, nil
}

func (s *demandService) createSibling(ctx context.Context, d domain.Demand, item domain.DemandItem) domain.SiblingResult {
	res := domain.SiblingResult{ServiceType: item.TaxType, SubjectID: item.SubjectID}
	saved, created, err := s.create(ctx, d)
	if err != nil {
		res.Error = err
		return res
	}
	res.Demand = saved
	res.AlreadyExisted = !created
	return res
}

func (s *demandService) GetDemandByID(ctx context.Context, caller domain.Caller, demandID string) (*domain.Demand, error) {
	if err := s.RequireCaller(caller); err != nil {
		return nil, err
	}
	d, err := s.demandRepo.FindDemandByID(ctx, demandID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load demand", slog.String("demand_id", demandID))
		return nil, err
	}
	d.RefreshStatus(s.Now())
	return d, nil
}

func (s *demandService) ListDemandsByProperty(ctx context.Context, caller domain.Caller, propertyID string, params dto.ListDemandsParams) (*dto.ListDemandsResponse, error) {
	if err := s.RequireCaller(caller); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultDemandPageSize
	}
	if limit > maxDemandPageSize {
		limit = maxDemandPageSize
	}
	demands, next, err := s.demandRepo.ListDemandsByProperty(ctx, propertyID, limit, params.NextToken)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list demands", slog.String("property_id", propertyID))
		return nil, err
	}
	now := s.Now()
	res := &dto.ListDemandsResponse{Demands: make([]dto.DemandResponse, len(demands)), NextToken: next}
	for i := range demands {
		demands[i].RefreshStatus(now)
		res.Demands[i] = dto.ToDemandResponse(&demands[i])
	}
	return res, nil
}

func (s *demandService) VoidDemand(ctx context.Context, caller domain.Caller, demandID string, reason string) (*domain.Demand, error) {
	if err := s.Authorize(ctx, caller, domain.ActionVoidDemand); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, apperrors.NewValidationError("a reason is required to void a demand")
	}
	d, err := s.demandRepo.VoidDemand(ctx, demandID, reason, caller.UserID, s.Now())
	if err != nil {
		s.LogFailure(ctx, err, "Failed to void demand", slog.String("demand_id", demandID))
		return nil, err
	}
	s.LogInfo(ctx, "Demand voided", slog.String("demand_id", demandID), slog.String("reason", reason))
	return d, nil
}

func (s *demandService) RefreshOverdue(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.demandRepo.RefreshOverdueStatuses(ctx, now)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.LogError(ctx, err, "Overdue sweep failed")
		}
		return 0, err
	}
	s.Metrics.AddOverdueSwept(n)
	s.LogInfo(ctx, "Overdue sweep completed", slog.Int64("updated", n))
	return n, nil
}

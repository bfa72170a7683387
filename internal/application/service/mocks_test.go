package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/billing"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	infraRepo "github.com/miracle7662/Miracle-Account-sub000/internal/infrastructure/repository"
)

// ============================================================================
// IN-MEMORY STORE
// ============================================================================

type memStore struct {
	companies map[uuid.UUID]*entity.Company
	ledgers   map[uuid.UUID]*entity.Ledger
	soudas    map[uuid.UUID]*entity.Souda
	bills     map[uuid.UUID]*entity.Bill
	order     []uuid.UUID // bill insertion order

	// Error injection
	createBillError error
}

func newMemStore() *memStore {
	return &memStore{
		companies: make(map[uuid.UUID]*entity.Company),
		ledgers:   make(map[uuid.UUID]*entity.Ledger),
		soudas:    make(map[uuid.UUID]*entity.Souda),
		bills:     make(map[uuid.UUID]*entity.Bill),
	}
}

func inCompany(ctx context.Context, companyID uuid.UUID) bool {
	id, ok := infraRepo.GetCompanyID(ctx)
	return ok && id == companyID
}

// ============================================================================
// COMPANY
// ============================================================================

type mockCompanyRepo struct{ s *memStore }

func (m *mockCompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	m.s.companies[c.ID] = &cp
	return nil
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	c, ok := m.s.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockCompanyRepo) GetBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	for _, c := range m.s.companies {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockCompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	cp := *c
	m.s.companies[c.ID] = &cp
	return nil
}

type mockRateCache struct {
	rates map[uuid.UUID]billing.Rates
	gets  int
	hits  int
}

func newMockRateCache() *mockRateCache {
	return &mockRateCache{rates: make(map[uuid.UUID]billing.Rates)}
}

func (m *mockRateCache) Get(ctx context.Context, companyID uuid.UUID) (*billing.Rates, error) {
	m.gets++
	r, ok := m.rates[companyID]
	if !ok {
		return nil, nil
	}
	m.hits++
	return &r, nil
}

func (m *mockRateCache) Set(ctx context.Context, companyID uuid.UUID, rates billing.Rates) error {
	m.rates[companyID] = rates
	return nil
}

func (m *mockRateCache) Invalidate(ctx context.Context, companyID uuid.UUID) error {
	delete(m.rates, companyID)
	return nil
}

// ============================================================================
// LEDGER
// ============================================================================

type mockLedgerRepo struct{ s *memStore }

func (m *mockLedgerRepo) Create(ctx context.Context, l *entity.Ledger) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	cp := *l
	m.s.ledgers[l.ID] = &cp
	return nil
}

func (m *mockLedgerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ledger, error) {
	l, ok := m.s.ledgers[id]
	if !ok || !inCompany(ctx, l.CompanyID) {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (m *mockLedgerRepo) Update(ctx context.Context, l *entity.Ledger) error {
	cp := *l
	m.s.ledgers[l.ID] = &cp
	return nil
}

func (m *mockLedgerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.s.ledgers, id)
	return nil
}

func (m *mockLedgerRepo) List(ctx context.Context, params *repository.LedgerFilterParams) ([]entity.Ledger, int64, error) {
	result := []entity.Ledger{}
	for _, l := range m.s.ledgers {
		if !inCompany(ctx, l.CompanyID) {
			continue
		}
		if params.Type != nil && l.LedgerType != *params.Type {
			continue
		}
		result = append(result, *l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, int64(len(result)), nil
}

// ============================================================================
// SOUDA
// ============================================================================

type mockSoudaRepo struct{ s *memStore }

func (m *mockSoudaRepo) Create(ctx context.Context, so *entity.Souda) error {
	if so.ID == uuid.Nil {
		so.ID = uuid.New()
	}
	cp := *so
	m.s.soudas[so.ID] = &cp
	return nil
}

func (m *mockSoudaRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Souda, error) {
	so, ok := m.s.soudas[id]
	if !ok || !inCompany(ctx, so.CompanyID) {
		return nil, nil
	}
	cp := *so
	return &cp, nil
}

func (m *mockSoudaRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Souda, error) {
	result := []entity.Souda{}
	for _, id := range ids {
		if so, ok := m.s.soudas[id]; ok && inCompany(ctx, so.CompanyID) {
			result = append(result, *so)
		}
	}
	return result, nil
}

func (m *mockSoudaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.s.soudas, id)
	return nil
}

func (m *mockSoudaRepo) List(ctx context.Context, params *repository.SoudaFilterParams) ([]entity.Souda, int64, error) {
	result := []entity.Souda{}
	for _, so := range m.s.soudas {
		if inCompany(ctx, so.CompanyID) {
			result = append(result, *so)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockSoudaRepo) ListUnbilled(ctx context.Context, filter repository.UnbilledFilter) ([]entity.Souda, error) {
	result := []entity.Souda{}
	for _, so := range m.s.soudas {
		if !inCompany(ctx, so.CompanyID) || so.PartyFor(filter.BillType) != filter.LedgerID {
			continue
		}
		if so.BilledOn(filter.BillType) != nil {
			continue
		}
		if filter.StartDate != nil && so.SoudaDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && so.SoudaDate.After(*filter.EndDate) {
			continue
		}
		result = append(result, *so)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SoudaDate.Before(result[j].SoudaDate) })
	return result, nil
}

// ============================================================================
// BILL
// ============================================================================

type mockBillRepo struct{ s *memStore }

func (m *mockBillRepo) claim(bill *entity.Bill) error {
	for _, id := range bill.SoudaIDs() {
		so, ok := m.s.soudas[id]
		if !ok || so.BilledOn(bill.BillType) != nil {
			return repository.ErrSoudaAlreadyBilled
		}
	}
	for _, id := range bill.SoudaIDs() {
		billID := bill.ID
		if bill.BillType == enum.BillTypeFarmer {
			m.s.soudas[id].FarmerBillID = &billID
		} else {
			m.s.soudas[id].CustomerBillID = &billID
		}
	}
	return nil
}

func (m *mockBillRepo) release(bill *entity.Bill) {
	for _, so := range m.s.soudas {
		claimed := so.BilledOn(bill.BillType)
		if claimed == nil || *claimed != bill.ID {
			continue
		}
		if bill.BillType == enum.BillTypeFarmer {
			so.FarmerBillID = nil
		} else {
			so.CustomerBillID = nil
		}
	}
}

func (m *mockBillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	if m.s.createBillError != nil {
		return m.s.createBillError
	}
	if err := m.claim(bill); err != nil {
		return err
	}
	cp := *bill
	cp.Lines = append([]entity.BillLine(nil), bill.Lines...)
	m.s.bills[bill.ID] = &cp
	m.s.order = append(m.s.order, bill.ID)
	return nil
}

func (m *mockBillRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	b, ok := m.s.bills[id]
	if !ok || !inCompany(ctx, b.CompanyID) {
		return nil, nil
	}
	cp := *b
	cp.Lines = append([]entity.BillLine(nil), b.Lines...)
	return &cp, nil
}

func (m *mockBillRepo) Update(ctx context.Context, bill *entity.Bill) error {
	m.release(bill)
	if err := m.claim(bill); err != nil {
		return err
	}
	cp := *bill
	cp.Lines = append([]entity.BillLine(nil), bill.Lines...)
	m.s.bills[bill.ID] = &cp
	return nil
}

func (m *mockBillRepo) Delete(ctx context.Context, bill *entity.Bill) error {
	m.release(bill)
	delete(m.s.bills, bill.ID)
	return nil
}

func (m *mockBillRepo) List(ctx context.Context, params *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	result := []entity.Bill{}
	for _, id := range m.s.order {
		b, ok := m.s.bills[id]
		if !ok || !inCompany(ctx, b.CompanyID) {
			continue
		}
		if params.Type != nil && b.BillType != *params.Type {
			continue
		}
		result = append(result, *b)
	}
	return result, int64(len(result)), nil
}

func (m *mockBillRepo) LatestForLedger(ctx context.Context, ledgerID uuid.UUID, billType enum.BillType) (*entity.Bill, error) {
	for i := len(m.s.order) - 1; i >= 0; i-- {
		b, ok := m.s.bills[m.s.order[i]]
		if ok && inCompany(ctx, b.CompanyID) && b.LedgerID == ledgerID && b.BillType == billType {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockBillRepo) Outstanding(ctx context.Context, billType enum.BillType) ([]entity.OutstandingRow, error) {
	latest := make(map[uuid.UUID]*entity.Bill)
	for _, id := range m.s.order {
		if b, ok := m.s.bills[id]; ok && inCompany(ctx, b.CompanyID) && b.BillType == billType {
			latest[b.LedgerID] = b
		}
	}
	rows := []entity.OutstandingRow{}
	for ledgerID, b := range latest {
		rows = append(rows, entity.OutstandingRow{
			LedgerID:   ledgerID,
			LedgerName: m.s.ledgers[ledgerID].Name,
			BillID:     b.ID,
			BillNo:     b.BillNo,
			BillDate:   b.BillDate,
			GrandTotal: b.GrandTotal,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].LedgerName < rows[j].LedgerName })
	return rows, nil
}

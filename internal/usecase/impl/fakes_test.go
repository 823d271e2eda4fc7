package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/repository"
	"lnlfit/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
)

// Hand-written fakes with overridable function fields. Unset fields return
// zero values so each test only wires the calls it cares about.

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeOrderRepo struct {
	createFn     func(ctx context.Context, order *entity.Order) (string, error)
	findFn       func(ctx context.Context, paymentSessionID string) (*entity.Order, error)
	attachFn     func(ctx context.Context, orderID, mealPlanID string) error
	attachedID   string
	attachedPlan string
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, order *entity.Order) (string, error) {
	if f.createFn != nil {
		return f.createFn(ctx, order)
	}

	return "order-1", nil
}

func (f *fakeOrderRepo) FindOrderByPaymentSessionID(ctx context.Context, paymentSessionID string) (*entity.Order, error) {
	if f.findFn != nil {
		return f.findFn(ctx, paymentSessionID)
	}

	return nil, repository.ErrOrderNotFound
}

func (f *fakeOrderRepo) AttachMealPlan(ctx context.Context, orderID, mealPlanID string) error {
	f.attachedID = orderID
	f.attachedPlan = mealPlanID
	if f.attachFn != nil {
		return f.attachFn(ctx, orderID, mealPlanID)
	}

	return nil
}

type fakeCustomerRepo struct {
	createFn      func(ctx context.Context, customer *entity.Customer) (string, error)
	updateFn      func(ctx context.Context, customer *entity.Customer) error
	findByIDFn    func(ctx context.Context, id string) (*entity.Customer, error)
	findByEmailFn func(ctx context.Context, email string) (*entity.Customer, error)
	markFn        func(ctx context.Context, id, orderID string, purchasedAt time.Time) error
	listFn        func(ctx context.Context, limit int) ([]*entity.Customer, error)
	markedID      string
}

func (f *fakeCustomerRepo) CreateCustomer(ctx context.Context, customer *entity.Customer) (string, error) {
	if f.createFn != nil {
		return f.createFn(ctx, customer)
	}

	return "customer-1", nil
}

func (f *fakeCustomerRepo) UpdateCustomer(ctx context.Context, customer *entity.Customer) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, customer)
	}

	return nil
}

func (f *fakeCustomerRepo) FindCustomerByID(ctx context.Context, id string) (*entity.Customer, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}

	return nil, repository.ErrCustomerNotFound
}

func (f *fakeCustomerRepo) FindCustomerByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}

	return nil, repository.ErrCustomerNotFound
}

func (f *fakeCustomerRepo) MarkCustomerPurchased(ctx context.Context, id, orderID string, purchasedAt time.Time) error {
	f.markedID = id
	if f.markFn != nil {
		return f.markFn(ctx, id, orderID, purchasedAt)
	}

	return nil
}

func (f *fakeCustomerRepo) ListCustomers(ctx context.Context, limit int) ([]*entity.Customer, error) {
	if f.listFn != nil {
		return f.listFn(ctx, limit)
	}

	return nil, nil
}

type fakeMealPlanRepo struct {
	createFn      func(ctx context.Context, plan *entity.MealPlan) (string, error)
	findFn        func(ctx context.Context, id string) (*entity.MealPlan, error)
	markStartedFn func(ctx context.Context, id string, startedAt time.Time) error
	markReadyFn   func(ctx context.Context, id string, content json.RawMessage, generatedAt time.Time) error
	markFailedFn  func(ctx context.Context, id, errMsg string, failedAt time.Time) error
	findStaleFn   func(ctx context.Context, cutoff time.Time) ([]*entity.MealPlan, error)
}

func (f *fakeMealPlanRepo) CreateMealPlan(ctx context.Context, plan *entity.MealPlan) (string, error) {
	if f.createFn != nil {
		return f.createFn(ctx, plan)
	}

	return "plan-1", nil
}

func (f *fakeMealPlanRepo) FindMealPlanByID(ctx context.Context, id string) (*entity.MealPlan, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}

	return nil, repository.ErrMealPlanNotFound
}

func (f *fakeMealPlanRepo) MarkGenerationStarted(ctx context.Context, id string, startedAt time.Time) error {
	if f.markStartedFn != nil {
		return f.markStartedFn(ctx, id, startedAt)
	}

	return nil
}

func (f *fakeMealPlanRepo) MarkMealPlanReady(ctx context.Context, id string, content json.RawMessage, generatedAt time.Time) error {
	if f.markReadyFn != nil {
		return f.markReadyFn(ctx, id, content, generatedAt)
	}

	return nil
}

func (f *fakeMealPlanRepo) MarkMealPlanFailed(ctx context.Context, id, errMsg string, failedAt time.Time) error {
	if f.markFailedFn != nil {
		return f.markFailedFn(ctx, id, errMsg, failedAt)
	}

	return nil
}

func (f *fakeMealPlanRepo) FindStaleGenerating(ctx context.Context, cutoff time.Time) ([]*entity.MealPlan, error) {
	if f.findStaleFn != nil {
		return f.findStaleFn(ctx, cutoff)
	}

	return nil, nil
}

type fakeAffiliateRepo struct {
	createFn           func(ctx context.Context, affiliate *entity.Affiliate) (string, error)
	findActiveFn       func(ctx context.Context, code string) (*entity.Affiliate, error)
	recordClickFn      func(ctx context.Context, affiliateID string, click *entity.AffiliateClick) error
	recordConversionFn func(ctx context.Context, affiliateID string, revenue, commission int64, at time.Time) error
	createCommissionFn func(ctx context.Context, commission *entity.AffiliateCommission) (string, error)
	listFn             func(ctx context.Context) ([]*entity.Affiliate, error)
}

func (f *fakeAffiliateRepo) CreateAffiliate(ctx context.Context, affiliate *entity.Affiliate) (string, error) {
	if f.createFn != nil {
		return f.createFn(ctx, affiliate)
	}

	return "affiliate-1", nil
}

func (f *fakeAffiliateRepo) FindActiveAffiliateByCode(ctx context.Context, code string) (*entity.Affiliate, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(ctx, code)
	}

	return nil, repository.ErrAffiliateNotFound
}

func (f *fakeAffiliateRepo) RecordClick(ctx context.Context, affiliateID string, click *entity.AffiliateClick) error {
	if f.recordClickFn != nil {
		return f.recordClickFn(ctx, affiliateID, click)
	}

	return nil
}

func (f *fakeAffiliateRepo) RecordConversion(ctx context.Context, affiliateID string, revenue, commission int64, at time.Time) error {
	if f.recordConversionFn != nil {
		return f.recordConversionFn(ctx, affiliateID, revenue, commission, at)
	}

	return nil
}

func (f *fakeAffiliateRepo) CreateCommission(ctx context.Context, commission *entity.AffiliateCommission) (string, error) {
	if f.createCommissionFn != nil {
		return f.createCommissionFn(ctx, commission)
	}

	return "commission-1", nil
}

func (f *fakeAffiliateRepo) ListAffiliates(ctx context.Context) ([]*entity.Affiliate, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}

	return nil, nil
}

type fakeChatSessionRepo struct {
	upsertFn func(ctx context.Context, session *entity.ChatSession) error
	findFn   func(ctx context.Context, token string) (*entity.ChatSession, error)
	linkFn   func(ctx context.Context, token, customerID, name, email string) error
	upserted *entity.ChatSession
}

func (f *fakeChatSessionRepo) UpsertChatSession(ctx context.Context, session *entity.ChatSession) error {
	f.upserted = session
	if f.upsertFn != nil {
		return f.upsertFn(ctx, session)
	}

	return nil
}

func (f *fakeChatSessionRepo) FindChatSessionByToken(ctx context.Context, token string) (*entity.ChatSession, error) {
	if f.findFn != nil {
		return f.findFn(ctx, token)
	}

	return nil, repository.ErrChatSessionNotFound
}

func (f *fakeChatSessionRepo) LinkChatSessionToCustomer(ctx context.Context, token, customerID, name, email string) error {
	if f.linkFn != nil {
		return f.linkFn(ctx, token, customerID, name, email)
	}

	return nil
}

type fakeTemplateRepo struct {
	createFn     func(ctx context.Context, template *entity.MealPlanTemplate) (string, error)
	updateFn     func(ctx context.Context, template *entity.MealPlanTemplate) error
	findFn       func(ctx context.Context, id string) (*entity.MealPlanTemplate, error)
	listActiveFn func(ctx context.Context) ([]*entity.MealPlanTemplate, error)
	listFn       func(ctx context.Context) ([]*entity.MealPlanTemplate, error)
}

func (f *fakeTemplateRepo) CreateTemplate(ctx context.Context, template *entity.MealPlanTemplate) (string, error) {
	if f.createFn != nil {
		return f.createFn(ctx, template)
	}

	return "template-1", nil
}

func (f *fakeTemplateRepo) UpdateTemplate(ctx context.Context, template *entity.MealPlanTemplate) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, template)
	}

	return nil
}

func (f *fakeTemplateRepo) FindTemplateByID(ctx context.Context, id string) (*entity.MealPlanTemplate, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}

	return nil, repository.ErrTemplateNotFound
}

func (f *fakeTemplateRepo) ListActiveTemplates(ctx context.Context) ([]*entity.MealPlanTemplate, error) {
	if f.listActiveFn != nil {
		return f.listActiveFn(ctx)
	}

	return nil, nil
}

func (f *fakeTemplateRepo) ListTemplates(ctx context.Context) ([]*entity.MealPlanTemplate, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}

	return nil, nil
}

type fakeAdminUserRepo struct {
	createFn func(ctx context.Context, user *entity.AdminUser) (string, error)
	findFn   func(ctx context.Context, email string) (*entity.AdminUser, error)
}

func (f *fakeAdminUserRepo) CreateAdminUser(ctx context.Context, user *entity.AdminUser) (string, error) {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}

	return "admin-1", nil
}

func (f *fakeAdminUserRepo) FindAdminUserByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	if f.findFn != nil {
		return f.findFn(ctx, email)
	}

	return nil, repository.ErrAdminUserNotFound
}

type fakePublisher struct {
	publishFn func(ctx context.Context, event *service.PlanGenerationEvent) error
	published []*service.PlanGenerationEvent
}

func (f *fakePublisher) PublishPlanGeneration(ctx context.Context, event *service.PlanGenerationEvent) error {
	f.published = append(f.published, event)
	if f.publishFn != nil {
		return f.publishFn(ctx, event)
	}

	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeTextGenerator struct {
	completeFn func(ctx context.Context, req *service.CompletionRequest) (string, error)
	requests   []*service.CompletionRequest
}

func (f *fakeTextGenerator) Complete(ctx context.Context, req *service.CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.completeFn != nil {
		return f.completeFn(ctx, req)
	}

	return "", nil
}

type fakeGateway struct {
	checkoutFn func(ctx context.Context, params *service.CheckoutParams) (*service.CheckoutSession, error)
	parseFn    func(payload []byte, signature string) (*service.WebhookEvent, error)
	params     *service.CheckoutParams
}

func (f *fakeGateway) CreateCheckoutSession(ctx context.Context, params *service.CheckoutParams) (*service.CheckoutSession, error) {
	f.params = params
	if f.checkoutFn != nil {
		return f.checkoutFn(ctx, params)
	}

	return &service.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (f *fakeGateway) ParseWebhookEvent(payload []byte, signature string) (*service.WebhookEvent, error) {
	if f.parseFn != nil {
		return f.parseFn(payload, signature)
	}

	return &service.WebhookEvent{Type: service.WebhookEventIgnored}, nil
}

type fakeHasher struct {
	checkFn func(password, hash string) bool
}

func (f *fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (f *fakeHasher) Check(password, hash string) bool {
	if f.checkFn != nil {
		return f.checkFn(password, hash)
	}

	return hash == "hashed:"+password
}

type fakeTokenService struct {
	generateFn func(adminID, email, role string) (string, error)
}

func (f *fakeTokenService) GenerateToken(adminID, email, role string) (string, error) {
	if f.generateFn != nil {
		return f.generateFn(adminID, email, role)
	}

	return "token-" + adminID, nil
}

func (f *fakeTokenService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return &jwt.Token{Valid: true}, nil
}

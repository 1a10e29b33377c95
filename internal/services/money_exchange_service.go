package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backoffice/internal/lifecycle"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/repository"
)

type moneyExchangeService struct {
	exchanges *repository.Repository[models.MoneyExchange]
	files     attachments[models.MoneyExchange]
}

// NewMoneyExchangeService creates a new MoneyExchangeServicer.
func NewMoneyExchangeService(db *gorm.DB, files Files) MoneyExchangeServicer {
	repo := newMoneyExchangeRepo(db)
	return &moneyExchangeService{
		exchanges: repo,
		files: attachments[models.MoneyExchange]{
			files:    files,
			repo:     repo,
			machine:  lifecycle.MoneyExchange,
			resource: "money-exchanges",
			filePath: func(m *models.MoneyExchange) *string { return m.FilePath },
		},
	}
}

// convertedAmount is the destination amount of an exchange.
func convertedAmount(from, rate decimal.Decimal) decimal.Decimal {
	return models.RoundMoney(from.Mul(rate))
}

func (s *moneyExchangeService) CreateMoneyExchange(ctx context.Context, in MoneyExchangeInput) (*models.MoneyExchange, error) {
	from := models.RoundMoney(in.FromAmount)
	exchange := &models.MoneyExchange{
		Document:     models.Document{Status: lifecycle.MoneyExchange.Initial()},
		FromCurrency: in.FromCurrency,
		ToCurrency:   in.ToCurrency,
		Rate:         in.Rate,
		FromAmount:   from,
		ToAmount:     convertedAmount(from, in.Rate),
		Taxes:        models.RoundMoney(in.Taxes),
		Description:  in.Description,
	}
	if err := s.exchanges.Insert(ctx, exchange); err != nil {
		return nil, internal(err)
	}
	return exchange, nil
}

func (s *moneyExchangeService) ListMoneyExchanges(ctx context.Context, page pagination.PageRequest, status *models.Status) (*pagination.PageResponse[models.MoneyExchange], error) {
	return s.exchanges.List(ctx, page, eq("money_exchanges.status", status))
}

func (s *moneyExchangeService) GetMoneyExchange(ctx context.Context, id string) (*models.MoneyExchange, error) {
	return s.exchanges.FindByID(ctx, id)
}

// UpdateMoneyExchange edits a pending exchange and recomputes the converted amount.
func (s *moneyExchangeService) UpdateMoneyExchange(ctx context.Context, id string, in MoneyExchangeInput) (*models.MoneyExchange, error) {
	from := models.RoundMoney(in.FromAmount)
	return edit(ctx, s.exchanges, lifecycle.MoneyExchange, id, map[string]any{
		"from_currency": in.FromCurrency,
		"to_currency":   in.ToCurrency,
		"rate":          in.Rate,
		"from_amount":   from,
		"to_amount":     convertedAmount(from, in.Rate),
		"taxes":         models.RoundMoney(in.Taxes),
		"description":   in.Description,
	})
}

func (s *moneyExchangeService) IssueMoneyExchange(ctx context.Context, id string, in IssueMoneyExchangeInput) (*models.MoneyExchange, error) {
	return transition(ctx, s.exchanges, lifecycle.MoneyExchange, id, lifecycle.Issue, map[string]any{
		"exchange_date": in.ExchangeDate,
	})
}

func (s *moneyExchangeService) CancelMoneyExchange(ctx context.Context, id string) (*models.MoneyExchange, error) {
	return transition(ctx, s.exchanges, lifecycle.MoneyExchange, id, lifecycle.Cancel, nil)
}

func (s *moneyExchangeService) AttachFile(ctx context.Context, id string, file FileUpload) (*models.MoneyExchange, error) {
	return s.files.attach(ctx, id, file)
}

func (s *moneyExchangeService) FileURL(ctx context.Context, id string) (*FileLink, error) {
	return s.files.link(ctx, id)
}

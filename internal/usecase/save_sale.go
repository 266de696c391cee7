package usecase

import (
	"context"
	"strings"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

type SaveSaleUseCase struct {
	Sales entity.SaleRepositoryInterface
}

func NewSaveSaleUseCase(sales entity.SaleRepositoryInterface) *SaveSaleUseCase {
	return &SaveSaleUseCase{Sales: sales}
}

// Execute validates then creates or updates one sale. The caller
// re-fetches the whole snapshot afterwards.
func (uc *SaveSaleUseCase) Execute(ctx context.Context, input SaleInput) error {
	if errs := ValidateSaleInput(input); len(errs) > 0 {
		return &DomainError{Code: "validation", Message: FirstValidationMessage(errs)}
	}

	sale := entity.NewSale(input.TrainerID)
	if input.ID != "" {
		sale.ID = input.ID
	}
	sale.BuyerName = strings.TrimSpace(input.BuyerName)
	sale.BuyerContact = strings.TrimSpace(input.BuyerContact)
	sale.UnitsAssigned = input.UnitsAssigned
	sale.UnitsSold = input.UnitsSold
	sale.MarginPercentage = input.MarginPercentage
	sale.IncentiveAmount = input.IncentiveAmount
	sale.ExpiryDate = input.ExpiryDate

	var err error
	if input.ID != "" {
		err = uc.Sales.Update(ctx, sale)
	} else {
		err = uc.Sales.Create(ctx, sale)
	}
	if err != nil {
		return &TechnicalError{Code: "sale_save", Message: err.Error()}
	}
	return nil
}

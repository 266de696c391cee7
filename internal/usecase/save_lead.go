package usecase

import (
	"context"
	"strings"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

type SaveLeadUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewSaveLeadUseCase(leads entity.LeadRepositoryInterface) *SaveLeadUseCase {
	return &SaveLeadUseCase{Leads: leads}
}

func (uc *SaveLeadUseCase) Execute(ctx context.Context, input LeadInput) error {
	if errs := ValidateLeadInput(input); len(errs) > 0 {
		return &DomainError{Code: "validation", Message: FirstValidationMessage(errs)}
	}

	lead := entity.NewLead(input.TrainerID, input.BuyerName)
	if input.ID != "" {
		lead.ID = input.ID
	}
	lead.TrainerContact = strings.TrimSpace(input.TrainerContact)
	lead.BuyerContact = strings.TrimSpace(input.BuyerContact)
	if input.Status != "" {
		lead.Status = input.Status
	}

	var err error
	if input.ID != "" {
		err = uc.Leads.Update(ctx, lead)
	} else {
		err = uc.Leads.Create(ctx, lead)
	}
	if err != nil {
		return &TechnicalError{Code: "lead_save", Message: err.Error()}
	}
	return nil
}

type SaveTrainerUseCase struct {
	Trainers entity.TrainerRepositoryInterface
}

func NewSaveTrainerUseCase(trainers entity.TrainerRepositoryInterface) *SaveTrainerUseCase {
	return &SaveTrainerUseCase{Trainers: trainers}
}

func (uc *SaveTrainerUseCase) Execute(ctx context.Context, input TrainerInput) error {
	if errs := ValidateTrainerInput(input); len(errs) > 0 {
		return &DomainError{Code: "validation", Message: FirstValidationMessage(errs)}
	}

	trainer := entity.NewTrainer(input.Name, input.Contact, input.Notes)
	if err := uc.Trainers.Create(ctx, trainer); err != nil {
		return &TechnicalError{Code: "trainer_save", Message: err.Error()}
	}
	return nil
}

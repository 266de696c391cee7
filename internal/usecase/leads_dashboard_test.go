package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

func leadFixture() []entity.Lead {
	return []entity.Lead{
		{ID: "l1", TrainerID: "t1", TrainerName: "Marta", BuyerName: "Padaria Central", BuyerContact: "+55 11 91234-5678", Status: entity.LeadStatusNew},
		{ID: "l2", TrainerID: "t1", TrainerName: "Marta", BuyerName: "Café Aurora", Status: entity.LeadStatusConverted},
		{ID: "l3", TrainerID: "t2", TrainerName: "Jonas", BuyerName: "Mercearia do Zé", Status: entity.LeadStatusNew},
		{ID: "l4", TrainerID: "t2", TrainerName: "Jonas", BuyerName: "Empório Sul", Status: entity.LeadStatusLost},
	}
}

func TestGetLeadsDashboardComputesKPIsFromFullSnapshot(t *testing.T) {
	trainers := new(MockTrainerRepository)
	leads := new(MockLeadRepository)

	trainers.On("List", mock.Anything).Return([]entity.Trainer{{ID: "t1", Name: "Marta"}}, nil)
	leads.On("List", mock.Anything).Return(leadFixture(), nil)

	uc := NewGetLeadsDashboardUseCase(trainers, leads)
	d, err := uc.Execute(context.Background(), LeadFilters{Status: entity.LeadStatusNew})
	require.NoError(t, err)

	// KPIs count the whole snapshot even though the rows are filtered.
	assert.Equal(t, 4, d.Total)
	assert.Equal(t, 2, d.New)
	assert.Equal(t, 1, d.Converted)
	assert.Equal(t, 1, d.Lost)
	assert.Equal(t, 25.0, d.ConversionRate)
	assert.Len(t, d.Leads, 2)
}

func TestGetLeadsDashboardWrapsRepositoryError(t *testing.T) {
	trainers := new(MockTrainerRepository)
	leads := new(MockLeadRepository)
	leads.On("List", mock.Anything).Return(nil, assert.AnError)

	uc := NewGetLeadsDashboardUseCase(trainers, leads)
	_, err := uc.Execute(context.Background(), LeadFilters{})

	require.Error(t, err)
	assert.True(t, IsTechnicalError(err))
}

func TestFilterLeads(t *testing.T) {
	rows := leadFixture()

	tests := []struct {
		name    string
		filters LeadFilters
		wantIDs []string
	}{
		{"no filters", LeadFilters{}, []string{"l1", "l2", "l3", "l4"}},
		{"all sentinels", LeadFilters{Status: "all", TrainerID: "all"}, []string{"l1", "l2", "l3", "l4"}},
		{"by status", LeadFilters{Status: entity.LeadStatusConverted}, []string{"l2"}},
		{"by trainer", LeadFilters{TrainerID: "t2"}, []string{"l3", "l4"}},
		{"search buyer name", LeadFilters{Search: "aurora"}, []string{"l2"}},
		{"search trainer name", LeadFilters{Search: "JONAS"}, []string{"l3", "l4"}},
		{"search buyer contact", LeadFilters{Search: "91234"}, []string{"l1"}},
		{"combined", LeadFilters{Status: entity.LeadStatusNew, TrainerID: "t1"}, []string{"l1"}},
		{"no match", LeadFilters{Search: "nothing here"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterLeads(rows, tt.filters)
			ids := make([]string, 0, len(got))
			for _, l := range got {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestConversionRate(t *testing.T) {
	assert.Equal(t, 0.0, ConversionRate(0, 0))
	assert.Equal(t, 25.0, ConversionRate(1, 4))
	assert.Equal(t, 33.3, ConversionRate(1, 3))
	assert.Equal(t, 66.7, ConversionRate(2, 3))
	assert.Equal(t, 100.0, ConversionRate(5, 5))
}

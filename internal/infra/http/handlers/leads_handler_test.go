package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnyops/sunny-admin/internal/entity"
	"github.com/sunnyops/sunny-admin/internal/usecase"
)

type stubLeadRepo struct {
	leads   []entity.Lead
	err     error
	created *entity.Lead
	updated *entity.Lead
	deleted string
}

func (s *stubLeadRepo) List(ctx context.Context) ([]entity.Lead, error) { return s.leads, s.err }
func (s *stubLeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	s.created = l
	return s.err
}
func (s *stubLeadRepo) Update(ctx context.Context, l *entity.Lead) error {
	s.updated = l
	return s.err
}
func (s *stubLeadRepo) Delete(ctx context.Context, id string) error {
	s.deleted = id
	return s.err
}

func newLeadsHandler(t *testing.T, leads *stubLeadRepo) *LeadsHandler {
	t.Helper()
	return NewLeadsHandler(
		usecase.NewGetLeadsDashboardUseCase(&stubTrainerRepo{}, leads),
		usecase.NewSaveLeadUseCase(leads),
		leads,
		testRenderer(t),
		"/sunny",
		nil,
	)
}

func postLeadForm(t *testing.T, h *LeadsHandler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/sunny/leads", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Save(rec, req)
	return rec
}

func TestLeadStatusUpdateKeepsTrainerContact(t *testing.T) {
	leads := &stubLeadRepo{}
	h := newLeadsHandler(t, leads)

	rec := postLeadForm(t, h, url.Values{
		"id":              {"l1"},
		"trainer_id":      {"t1"},
		"trainer_contact": {"+5511912345678"},
		"buyer_name":      {"Padaria Central"},
		"buyer_contact":   {"123"},
		"status":          {"converted"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "flash=")
	require.NotNil(t, leads.updated)
	assert.Equal(t, "+5511912345678", leads.updated.TrainerContact)
	assert.Equal(t, "converted", leads.updated.Status)
}

func TestLeadCreateCarriesTrainerContact(t *testing.T) {
	leads := &stubLeadRepo{}
	h := newLeadsHandler(t, leads)

	rec := postLeadForm(t, h, url.Values{
		"trainer_id":      {"t1"},
		"trainer_contact": {"11 91234-5678"},
		"buyer_name":      {"Padaria Central"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	require.NotNil(t, leads.created)
	assert.Equal(t, "11 91234-5678", leads.created.TrainerContact)
	assert.Equal(t, entity.LeadStatusNew, leads.created.Status)
}

func TestLeadStatusFormCarriesTrainerContactField(t *testing.T) {
	leads := &stubLeadRepo{leads: []entity.Lead{{
		ID:             "l1",
		TrainerID:      "t1",
		TrainerName:    "Marta",
		TrainerContact: "+5511912345678",
		BuyerName:      "Padaria Central",
		Status:         entity.LeadStatusNew,
	}}}
	h := newLeadsHandler(t, leads)

	rec := httptest.NewRecorder()
	h.Show(rec, httptest.NewRequest(http.MethodGet, "/sunny/leads", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="trainer_contact" value="+5511912345678"`)
}

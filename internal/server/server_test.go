package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"tg_escrow/internal/domain/entity"
	"tg_escrow/internal/domain/service/access"
	"tg_escrow/internal/domain/service/deal"
	"tg_escrow/internal/infrastructure/dealstore"
	"tg_escrow/internal/infrastructure/stats"
	"tg_escrow/internal/server"
	"tg_escrow/pkg/logx"
	"tg_escrow/pkg/middlewarex"
	"tg_escrow/pkg/rest"
	"tg_escrow/pkg/tests"
)

const operatorID = int64(5118322610)

type notifierStub struct{}

func (notifierStub) DealSettled(context.Context, entity.Deal, int) {}

type auditorStub struct{}

func (auditorStub) Event(context.Context, int64, string, string, string) {}

type fixture struct {
	client tests.APIClient
	store  *dealstore.Store
	stats  *stats.Registry
	policy *access.Policy
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := dealstore.New()
	registry := stats.NewRegistry()
	policy := access.NewPolicy(operatorID, registry, 5)
	dealSvc := deal.NewService(store, registry, notifierStub{}, auditorStub{})

	opsServer := server.NewServer(
		server.NewDealServer(dealSvc),
		server.NewUserServer(registry, policy),
	)

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.ResponseLogging(logx.NewNopSensitiveDataMasker(), 1024),
	)
	opsServer.RegisterRoutes(router)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return fixture{
		client: tests.NewAPIClient(ts.URL, ts.Client()),
		store:  store,
		stats:  registry,
		policy: policy,
	}
}

func (f fixture) createDeal(t *testing.T) entity.Deal {
	t.Helper()

	d, err := f.store.Create(entity.DealDraft{
		SellerID:       101,
		SellerUsername: "seller",
		Item:           "Gift Card",
		Currency:       entity.CurrencyStars,
		Price:          500,
		Requisites:     "@seller_wallet",
	})
	require.NoError(t, err)

	return d
}

func TestGetDeals(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	f := newFixture(t)

	var list rest.DealList
	_, err := f.client.Get(ctx, "/v1/deals", nil, &list, nil)
	rq.NoError(err)
	rq.Zero(list.Total)

	first := f.createDeal(t)
	second := f.createDeal(t)

	_, err = f.client.Get(ctx, "/v1/deals", nil, &list, nil)
	rq.NoError(err)
	rq.Equal(2, list.Total)
	rq.Equal(first.ID, list.Deals[0].ID)
	rq.Equal(second.ID, list.Deals[1].ID)
	rq.Equal("OPEN", list.Deals[0].Status)
}

func TestGetDeal(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	f := newFixture(t)
	d := f.createDeal(t)

	var got rest.Deal
	resp, err := f.client.Get(ctx, "/v1/deals/"+d.ID, nil, &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(d.ID, got.ID)
	rq.Equal("Gift Card", got.Item)
	rq.Equal(int64(500), got.Price)

	var restErr rest.Error
	resp, err = f.client.Get(ctx, "/v1/deals/ZZZZ9999", nil, nil, &restErr)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
	rq.Equal(rest.ErrorCode("DealNotFound"), restErr.Code)

	resp, err = f.client.Get(ctx, "/v1/deals/short", nil, nil, &restErr)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode("InvalidDealID"), restErr.Code)
}

func TestSettleDeal(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	f := newFixture(t)
	d := f.createDeal(t)

	var settled rest.Deal
	resp, err := f.client.Post(ctx, "/v1/deals/"+d.ID+"/settle", nil,
		rest.SettleRequest{SettlerID: operatorID}, &settled, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("SETTLED", settled.Status)
	rq.Equal(operatorID, settled.SettledBy)
	rq.Equal(1, f.stats.Settled(101))

	// Повтор идемпотентен.
	resp, err = f.client.Post(ctx, "/v1/deals/"+d.ID+"/settle", nil,
		rest.SettleRequest{SettlerID: operatorID}, &settled, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(1, f.stats.Settled(101))

	// Валидация тела.
	var restErr rest.Error
	resp, err = f.client.PostJSON(ctx, "/v1/deals/"+d.ID+"/settle", nil,
		`{"settlerId": 0}`, nil, &restErr)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode("ValidationError"), restErr.Code)
}

func TestDeleteDeal(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	f := newFixture(t)
	d := f.createDeal(t)

	resp, err := f.client.Delete(ctx, "/v1/deals/"+d.ID, nil, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusNoContent, resp.StatusCode)

	_, ok := f.store.Get(d.ID)
	rq.False(ok)

	var restErr rest.Error
	resp, err = f.client.Delete(ctx, "/v1/deals/"+d.ID, nil, nil, &restErr)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestUserStats(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	f := newFixture(t)
	f.stats.AddCreated(101)
	f.stats.AddSettled(101)
	f.stats.AddSettled(101)

	var got rest.UserStats
	resp, err := f.client.Get(ctx, "/v1/users/101/stats", nil, &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(int64(101), got.UserID)
	rq.Equal(1, got.Created)
	rq.Equal(2, got.Settled)
	rq.False(got.Operator)

	var restErr rest.Error
	resp, err = f.client.Get(ctx, "/v1/users/abc/stats", nil, nil, &restErr)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode("InvalidUserID"), restErr.Code)
}

func TestGrantOperator(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	f := newFixture(t)
	rq.False(f.policy.IsOperator(202))

	resp, err := f.client.Post(ctx, "/v1/operators", nil, rest.GrantRequest{UserID: 202}, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.True(f.policy.IsOperator(202))

	var restErr rest.Error
	resp, err = f.client.PostJSON(ctx, "/v1/operators", nil, `{"userId": -1}`, nil, &restErr)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

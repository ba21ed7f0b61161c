package server

import (
	"net/http"
	"regexp"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"tg_escrow/internal/domain"
	"tg_escrow/internal/domain/service/deal"
	"tg_escrow/pkg/errcodes"
	"tg_escrow/pkg/httpx/reply"
	"tg_escrow/pkg/httpx/req"
	"tg_escrow/pkg/lox"
	"tg_escrow/pkg/rest"
)

var dealIDPattern = regexp.MustCompile(`^[0-9A-Z]{8}$`) //nolint:gochecknoglobals

type DealServer struct {
	deals *deal.Service
}

func NewDealServer(deals *deal.Service) DealServer {
	return DealServer{deals: deals}
}

func (s DealServer) getV1Deals(w http.ResponseWriter, r *http.Request) error {
	open := s.deals.ListOpen()

	reply.JSON(r.Context(), w, http.StatusOK, rest.DealList{
		Deals: lox.Map(open, newRESTDeal),
		Total: len(open),
	})

	return nil
}

func (s DealServer) getV1Deal(w http.ResponseWriter, r *http.Request) error {
	id, err := dealIDParam(r)
	if err != nil {
		return err
	}

	found, ok := s.deals.Get(id)
	if !ok {
		return dealNotFound(id)
	}

	reply.JSON(r.Context(), w, http.StatusOK, newRESTDeal(found))

	return nil
}

func (s DealServer) postV1DealSettle(w http.ResponseWriter, r *http.Request) error {
	id, err := dealIDParam(r)
	if err != nil {
		return err
	}

	var request rest.SettleRequest
	if err := req.Read(r, &request); err != nil {
		return err
	}

	settled, err := s.deals.Settle(r.Context(), id, request.SettlerID)
	if err != nil {
		if domain.HasCode(err, errcodes.DealNotFound) {
			return dealNotFound(id)
		}
		return err
	}

	reply.JSON(r.Context(), w, http.StatusOK, newRESTDeal(settled))

	return nil
}

func (s DealServer) deleteV1Deal(w http.ResponseWriter, r *http.Request) error {
	id, err := dealIDParam(r)
	if err != nil {
		return err
	}

	if !s.deals.Evict(id) {
		return dealNotFound(id)
	}

	reply.NoContent(w)

	return nil
}

func dealIDParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if !dealIDPattern.MatchString(id) {
		return "", failure.NewInvalidArgumentError(
			"invalid deal id "+id,
			failure.WithCode(errcodes.InvalidDealID),
			failure.WithDescription("Deal id must be 8 characters [0-9A-Z]"),
		)
	}

	return id, nil
}

func dealNotFound(id string) error {
	return failure.NewNotFoundError(
		"deal "+id+" not found",
		failure.WithCode(errcodes.DealNotFound),
		failure.WithDescription("Deal not found"),
	)
}

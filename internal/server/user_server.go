package server

import (
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"tg_escrow/internal/domain/service/access"
	"tg_escrow/internal/infrastructure/stats"
	"tg_escrow/pkg/errcodes"
	"tg_escrow/pkg/httpx/reply"
	"tg_escrow/pkg/httpx/req"
	"tg_escrow/pkg/rest"
)

type UserServer struct {
	stats  *stats.Registry
	policy *access.Policy
}

func NewUserServer(registry *stats.Registry, policy *access.Policy) UserServer {
	return UserServer{
		stats:  registry,
		policy: policy,
	}
}

func (s UserServer) getV1UserStats(w http.ResponseWriter, r *http.Request) error {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || userID <= 0 {
		return failure.NewInvalidArgumentError(
			"invalid user id",
			failure.WithCode(errcodes.InvalidUserID),
			failure.WithDescription("User id must be a positive integer"),
		)
	}

	reply.JSON(r.Context(), w, http.StatusOK, rest.UserStats{
		UserID:   userID,
		Created:  s.stats.Created(userID),
		Settled:  s.stats.Settled(userID),
		Operator: s.policy.IsOperator(userID),
	})

	return nil
}

func (s UserServer) postV1Operators(w http.ResponseWriter, r *http.Request) error {
	var request rest.GrantRequest
	if err := req.Read(r, &request); err != nil {
		return err
	}

	s.policy.Grant(request.UserID)

	reply.OK(w)

	return nil
}

package access_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tg_escrow/internal/domain/service/access"
	"tg_escrow/internal/infrastructure/stats"
)

const (
	operatorID = int64(5118322610)
	userID     = int64(101)
)

func TestPolicyOperators(t *testing.T) {
	rq := require.New(t)

	policy := access.NewPolicy(operatorID, stats.NewRegistry(), 5)

	rq.True(policy.IsOperator(operatorID))
	rq.False(policy.IsOperator(userID))

	policy.Grant(userID)
	rq.True(policy.IsOperator(userID))
}

func TestPolicyCreateQuota(t *testing.T) {
	rq := require.New(t)

	registry := stats.NewRegistry()
	policy := access.NewPolicy(operatorID, registry, 5)

	for i := 0; i < 5; i++ {
		rq.True(policy.CanCreate(userID), "deal %d", i+1)
		registry.AddCreated(userID)
	}

	// Шестая сделка не проходит, у оператора лимита нет.
	rq.False(policy.CanCreate(userID))

	registry.SetCreated(operatorID, 100)
	rq.True(policy.CanCreate(operatorID))
}

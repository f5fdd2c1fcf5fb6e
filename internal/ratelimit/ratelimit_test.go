package ratelimit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aurora-chain/aurora-core/internal/crypto"
	"github.com/aurora-chain/aurora-core/internal/ledgererrors"
	"github.com/aurora-chain/aurora-core/internal/ratelimit"
)

func TestCheckDailyLimitExceeded(t *testing.T) {
	g := ratelimit.New(ratelimit.Limits{Daily: 100, Monthly: 1000})
	var user crypto.PublicKey
	now := time.Now()

	require.NoError(t, g.Check(user, 60, now))
	require.ErrorIs(t, g.Check(user, 60, now), ledgererrors.ErrDailyLimitExceeded)
}

func TestCheckDailyWindowResets(t *testing.T) {
	g := ratelimit.New(ratelimit.Limits{Daily: 100, Monthly: 1000})
	var user crypto.PublicKey
	now := time.Now()

	require.NoError(t, g.Check(user, 90, now))
	later := now.Add(ratelimit.DailyWindow + time.Second)
	require.NoError(t, g.Check(user, 90, later))
}

func TestCheckMonthlyLimitExceeded(t *testing.T) {
	g := ratelimit.New(ratelimit.Limits{Daily: 1_000_000, Monthly: 100})
	var user crypto.PublicKey
	now := time.Now()

	require.NoError(t, g.Check(user, 60, now))
	require.ErrorIs(t, g.Check(user, 60, now), ledgererrors.ErrMonthlyLimitExceeded)
}

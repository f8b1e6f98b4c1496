package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"audiencehub/internal/modkit/repokit"
	perr "audiencehub/internal/platform/errors"
	"audiencehub/internal/services/tenancy/domain"
)

type fakeRepo struct {
	priv    domain.Privileges
	privErr error

	appUser    string
	appUserErr error
}

func (f *fakeRepo) Privileges(ctx context.Context, authUserID string) (domain.Privileges, error) {
	return f.priv, f.privErr
}

func (f *fakeRepo) AppUserID(ctx context.Context, authUserID string) (string, error) {
	return f.appUser, f.appUserErr
}

type nopTx struct{ repokit.Queryer }

func (nopTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error { return fn(nil) }

func newSvc(r *fakeRepo) *Svc {
	return New(nopTx{}, repokit.BindFunc[domain.Repo](func(repokit.Queryer) domain.Repo { return r }))
}

func TestResolveClaimPrecedence(t *testing.T) {
	svc := newSvc(&fakeRepo{priv: domain.Privileges{SystemAdmin: true, CustomerIDs: []string{"oracle-cust"}}})

	got, err := svc.Resolve(context.Background(), domain.Session{UserID: "auth-1", TenantClaim: "claim-cust"})
	require.NoError(t, err)
	require.Equal(t, "claim-cust", got.CustomerID)
	require.True(t, got.SystemAdmin)
}

func TestResolveOracleFallback(t *testing.T) {
	svc := newSvc(&fakeRepo{priv: domain.Privileges{CustomerIDs: []string{"oracle-cust"}}})

	got, err := svc.Resolve(context.Background(), domain.Session{UserID: "auth-1"})
	require.NoError(t, err)
	require.Equal(t, "oracle-cust", got.CustomerID)
	require.False(t, got.SystemAdmin)
}

func TestResolveAdminWithoutCustomerIsNotAnError(t *testing.T) {
	svc := newSvc(&fakeRepo{priv: domain.Privileges{SystemAdmin: true}})

	got, err := svc.Resolve(context.Background(), domain.Session{UserID: "auth-1"})
	require.NoError(t, err)
	require.False(t, got.Scoped())
	require.True(t, got.SystemAdmin)
}

func TestResolveWrapsOracleFailure(t *testing.T) {
	boom := errors.New("oracle exploded")
	svc := newSvc(&fakeRepo{privErr: boom})

	_, err := svc.Resolve(context.Background(), domain.Session{UserID: "auth-1"})
	require.Error(t, err)
	require.True(t, perr.IsCode(err, perr.ErrorCodeDB))
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "oracle exploded")
}

func TestResolveRequiresSession(t *testing.T) {
	svc := newSvc(&fakeRepo{})

	_, err := svc.Resolve(context.Background(), domain.Session{})
	require.True(t, perr.IsCode(err, perr.ErrorCodeUnauthorized))
}

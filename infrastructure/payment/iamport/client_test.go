package iamport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"storefront/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatewayStub serves the two endpoints the client uses
type gatewayStub struct {
	t          *testing.T
	tokenCalls atomic.Int32
	status     string
	amount     int64
}

func (g *gatewayStub) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/users/getToken", func(w http.ResponseWriter, r *http.Request) {
		g.tokenCalls.Add(1)
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var creds map[string]string
		require.NoError(g.t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["imp_key"] != "key" || creds["imp_secret"] != "secret" {
			fmt.Fprint(w, `{"code":-1,"message":"invalid credentials"}`)
			return
		}
		now := time.Now().Unix()
		fmt.Fprintf(w, `{"code":0,"response":{"access_token":"tok-1","now":%d,"expired_at":%d}}`, now, now+1800)
	})

	mux.HandleFunc("/payments/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		uid := r.URL.Path[len("/payments/"):]
		fmt.Fprintf(w, `{"code":0,"response":{"imp_uid":%q,"merchant_uid":"m-1","status":%q,"amount":%d}}`,
			uid, g.status, g.amount)
	})

	return mux
}

func TestVerifyPaid(t *testing.T) {
	stub := &gatewayStub{t: t, status: "paid", amount: 30000}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewClient(server.URL, "key", "secret", time.Second)

	result, err := client.Verify(context.Background(), "imp-1", shared.Won(30000))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	require.NotNil(t, result.Payment)
	assert.Equal(t, "imp-1", result.Payment.PaymentUID)
	assert.Equal(t, int64(30000), result.Payment.Amount)
}

func TestVerifyToleratesOneWon(t *testing.T) {
	stub := &gatewayStub{t: t, status: "paid", amount: 30001}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewClient(server.URL, "key", "secret", time.Second)

	result, err := client.Verify(context.Background(), "imp-1", shared.Won(30000))
	require.NoError(t, err)
	assert.True(t, result.Valid, "one won of slack must be tolerated")
}

func TestVerifyAmountMismatch(t *testing.T) {
	stub := &gatewayStub{t: t, status: "paid", amount: 100}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewClient(server.URL, "key", "secret", time.Second)

	result, err := client.Verify(context.Background(), "imp-1", shared.Won(30000))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Reason, "amount mismatch")
}

func TestVerifyNotPaid(t *testing.T) {
	stub := &gatewayStub{t: t, status: "ready", amount: 30000}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewClient(server.URL, "key", "secret", time.Second)

	result, err := client.Verify(context.Background(), "imp-1", shared.Won(30000))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Reason, "not completed")
}

func TestTokenIsCachedAcrossLookups(t *testing.T) {
	stub := &gatewayStub{t: t, status: "paid", amount: 30000}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewClient(server.URL, "key", "secret", time.Second)

	for i := 0; i < 3; i++ {
		_, err := client.Verify(context.Background(), "imp-1", shared.Won(30000))
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), stub.tokenCalls.Load(), "token must be fetched once and cached")
}

func TestVerifyBadCredentials(t *testing.T) {
	stub := &gatewayStub{t: t, status: "paid", amount: 30000}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	client := NewClient(server.URL, "key", "wrong", time.Second)

	_, err := client.Verify(context.Background(), "imp-1", shared.Won(30000))
	assert.Error(t, err, "credential failure means the gateway could not be consulted")
}

func TestVerifyUnreachableGateway(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // refuse connections

	client := NewClient(server.URL, "key", "secret", 200*time.Millisecond)

	_, err := client.Verify(context.Background(), "imp-1", shared.Won(30000))
	assert.Error(t, err)
}

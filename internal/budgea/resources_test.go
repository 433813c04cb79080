package budgea_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derickschaefer/biapi/internal/budgea"
)

func TestListBanksQuery(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{"banks":[]}`)
	c := newClient(srv)

	_, err := c.ListBanks(context.Background(), budgea.Page{Limit: 10, Offset: 0}, "fields")
	require.NoError(t, err)
	assert.Equal(t, "/2.0/banks", last.Path)
	assert.Equal(t, "10", last.Query["limit"][0])
	assert.Equal(t, "0", last.Query["offset"][0])
	assert.Equal(t, "fields", last.Query["expand"][0])

	_, err = c.ListBanks(context.Background(), budgea.Page{Limit: 10, Offset: 0}, "")
	require.NoError(t, err)
	assert.Len(t, last.Query, 2)
	assert.NotContains(t, last.Query, "expand")
	for k, vals := range last.Query {
		for _, v := range vals {
			assert.NotEqual(t, "undefined", v, k)
		}
	}
}

func TestSearchBanks(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{"banks":[]}`)
	_, err := newClient(srv).SearchBanks(context.Background(), "crédit agricole", 20)
	require.NoError(t, err)
	assert.Equal(t, "crédit agricole", last.Query["search"][0])
	assert.Equal(t, "20", last.Query["limit"][0])
}

func TestGetBankEscapesID(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{}`)
	_, err := newClient(srv).GetBank(context.Background(), "a/b", "")
	require.NoError(t, err)
	assert.Equal(t, "/2.0/banks/a/b", last.Path, "decoded path")
	assert.Empty(t, last.Query)
}

func TestTransactionFilterPath(t *testing.T) {
	assert.Equal(t, "/users/me/transactions", budgea.TransactionFilter{}.Path())
	assert.Equal(t, "/users/me/accounts/7/transactions", budgea.TransactionFilter{AccountID: "7"}.Path())
}

func TestListTransactionsParams(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{"transactions":[]}`)
	_, err := newClient(srv).ListTransactions(context.Background(), budgea.TransactionFilter{
		AccountID: "3",
		MinDate:   "2024-01-01",
		Page:      budgea.Page{Limit: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, "/2.0/users/me/accounts/3/transactions", last.Path)
	assert.Equal(t, "2024-01-01", last.Query["min_date"][0])
	assert.NotContains(t, last.Query, "max_date")
	assert.NotContains(t, last.Query, "expand")
	assert.Equal(t, "100", last.Query["limit"][0])
	assert.Equal(t, "0", last.Query["offset"][0])
}

func TestUpdateTransactionBody(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{}`)
	empty := ""
	_, err := newClient(srv).UpdateTransaction(context.Background(), "9", budgea.TransactionUpdate{Comment: &empty})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, last.Method)
	assert.JSONEq(t, `{"comment":""}`, string(last.Body))
}

func TestUpdateAccountBody(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{}`)
	off := false
	_, err := newClient(srv).UpdateAccount(context.Background(), "4", budgea.AccountUpdate{Disabled: &off})
	require.NoError(t, err)
	assert.Equal(t, "/2.0/users/me/accounts/4", last.Path)
	assert.JSONEq(t, `{"disabled":false}`, string(last.Body))
}

func TestCreateTransferKeepsDecimalAmount(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{"id":55,"state":"created"}`)
	_, err := newClient(srv).CreateTransfer(context.Background(), budgea.NewTransfer{
		AccountID:   "1",
		RecipientID: "2",
		Amount:      json.Number("1234.56"),
		Label:       "rent",
	})
	require.NoError(t, err)
	assert.Equal(t, "/2.0/users/me/accounts/1/recipients/2/transfers", last.Path)
	assert.Equal(t, `{"amount":1234.56,"label":"rent"}`, string(last.Body))
}

func TestExecuteTransferBody(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{}`)
	c := newClient(srv)

	_, err := c.ExecuteTransfer(context.Background(), "55", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"validated":true}`, string(last.Body))

	_, err = c.ExecuteTransfer(context.Background(), "55", "s3cret")
	require.NoError(t, err)
	assert.JSONEq(t, `{"validated":true,"password":"s3cret"}`, string(last.Body))
}

func TestSyncConnectionSendsEmptyObject(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{}`)
	_, err := newClient(srv).SyncConnection(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, "/2.0/users/me/connections/12", last.Path)
	assert.JSONEq(t, `{}`, string(last.Body))
}

func TestGenerateJWTBody(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{"jwt_token":"x"}`)
	uid := 42
	_, err := newClient(srv).GenerateJWT(context.Background(), budgea.JWTRequest{
		ClientID: "cid", ClientSecret: "sec", Expire: true, UserID: &uid,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"client_id":"cid","client_secret":"sec","expire":true,"id_user":42}`, string(last.Body))
}

func TestUserEndpoints(t *testing.T) {
	srv, last, _ := newServer(t, http.StatusOK, `{}`)
	c := newClient(srv)

	_, err := c.ListUsers(context.Background(), budgea.Page{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, "/2.0/users", last.Path)
	assert.Equal(t, "50", last.Query["limit"][0])

	_, err = c.DeleteMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, last.Method)
	assert.Equal(t, "/2.0/users/me", last.Path)
}

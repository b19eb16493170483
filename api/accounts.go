package api

import (
	"context"

	"github.com/GravityKit/drip-mcp-server/types"
)

const (
	pathAccounts         = "accounts"
	pathCustomFieldNames = "custom_field_identifiers"
)

// Accounts implements the account-level API methods.
// List is not scoped to the configured account: Drip returns every
// account the API key can access.
type Accounts struct {
	api       *apiClient
	accountId string
}

func NewAccountsApi(cfg Config) *Accounts {
	return &Accounts{
		api:       newApiClient(cfg),
		accountId: cfg.AccountId,
	}
}

// AccountId is the account every other module is scoped to.
func (a *Accounts) AccountId() string {
	return a.accountId
}

func (a *Accounts) List(ctx context.Context) (types.Object, error) {
	var res types.Object
	_, err := a.api.getJson(ctx, a.api.rootEndpoint(pathAccounts, nil), &res)
	return toNilErr(res, err)
}

// CustomFields lists the custom field identifiers in use on the account.
func (a *Accounts) CustomFields(ctx context.Context) (types.Object, error) {
	var res types.Object
	_, err := a.api.getJson(ctx, a.api.endpoint(pathCustomFieldNames, nil), &res)
	return toNilErr(res, err)
}

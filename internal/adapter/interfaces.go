package adapter

import (
	"context"

	"github.com/enki-somer/qs-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// APIClient is the thin HTTP surface of the remote API consumed by replay.
// Each method maps to exactly one verb + path + JSON body; the sync manager
// selects the method through an exhaustive switch on the action type.
//
// Authentication is handled by the application layer, which supplies a
// bearer token via SetToken; this client only attaches it.
type APIClient interface {
	CreateProject(ctx context.Context, p models.Project) error
	UpdateProject(ctx context.Context, p models.Project) error
	DeleteProject(ctx context.Context, id string) error

	CreateInvoice(ctx context.Context, inv models.Invoice) error
	UpdateInvoice(ctx context.Context, inv models.Invoice) error
	DeleteInvoice(ctx context.Context, id string) error
	ApproveInvoice(ctx context.Context, payload models.ApproveInvoicePayload) error

	CreateContractor(ctx context.Context, c models.Contractor) error
	UpdateContractor(ctx context.Context, c models.Contractor) error
	DeleteContractor(ctx context.Context, id string) error

	FundSafe(ctx context.Context, payload models.FundSafePayload) error

	CreateEmployee(ctx context.Context, e models.Employee) error
	UpdateEmployee(ctx context.Context, e models.Employee) error

	CreateExpense(ctx context.Context, e models.Expense) error
	UpdateExpense(ctx context.Context, e models.Expense) error

	// Health checks the remote API's health endpoint.
	Health(ctx context.Context) error

	SetToken(token string)
}

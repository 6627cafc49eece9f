package deposit

import "TotemIA/pkg/response"

var (
	ErrDepositNotFound = response.NewError(404, "deposit not found")
	ErrInvalidCategory = response.NewError(400, "invalid cap category")
	ErrInvalidPeriod   = response.NewError(400, "invalid period parameter")
	ErrCreateDeposit   = response.NewError(500, "failed to register deposit")
)

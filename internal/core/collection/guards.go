package collection

import "errors"

var (
	ErrProductNotFound  = errors.New("Produto não encontrado")  //nolint:staticcheck // user-facing message
	ErrProducerNotFound = errors.New("Produtor não encontrado") //nolint:staticcheck // user-facing message

	ErrCollectionNotFound = errors.New("Coleta não encontrada") //nolint:staticcheck // user-facing message
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Err     error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return r.Err
}

// CreateContext provides context for collection creation guards.
type CreateContext struct {
	ProductID      string
	ProductExists  bool
	ProducerID     string
	ProducerExists bool
}

// CanCreate evaluates whether a collection can be created.
// Rules:
// - Product must exist
// - Producer must exist
func CanCreate(ctx CreateContext) GuardResult {
	if !ctx.ProductExists {
		return GuardResult{Allowed: false, Err: ErrProductNotFound}
	}
	if !ctx.ProducerExists {
		return GuardResult{Allowed: false, Err: ErrProducerNotFound}
	}
	return GuardResult{Allowed: true}
}

package service

import (
	"fmt"

	"github.com/nurpe/ppl-catering/internal/model"
)

// checkTransition enforces the contract lifecycle:
// ABIERTO -> EN_PRODUCCION -> FINALIZADO, any state -> INACTIVO, and
// activation back to ABIERTO from any state.
func checkTransition(from, to model.ContractStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, to)
	}
	switch to {
	case model.ContractStatusOpen:
		return nil
	case model.ContractStatusInactive:
		if from != model.ContractStatusInactive {
			return nil
		}
	case model.ContractStatusInProduction:
		if from == model.ContractStatusOpen {
			return nil
		}
	case model.ContractStatusFinished:
		if from == model.ContractStatusInProduction {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

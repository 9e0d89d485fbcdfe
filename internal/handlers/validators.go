package handlers

import (
	"fmt"
	"sync"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validatorRegistration installs the validators at most once and remembers the outcome,
// so a failed first attempt keeps failing instead of silently reporting success.
type validatorRegistration struct {
	once sync.Once
	err  error
}

func (r *validatorRegistration) register(engine func() any) error {
	r.once.Do(func() {
		r.err = installValidators(engine())
	})
	return r.err
}

var bindingValidators validatorRegistration

// RegisterValidators installs the enum validators used by dto binding tags.
// Safe to call more than once.
func RegisterValidators() error {
	return bindingValidators.register(binding.Validator.Engine)
}

func installValidators(engine any) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", engine)
	}
	validators := map[string]validator.Func{
		"userrole": func(fl validator.FieldLevel) bool {
			return domain.NormalizeRoleName(fl.Field().String()) != ""
		},
		"providertype": func(fl validator.FieldLevel) bool {
			return domain.ProviderType(fl.Field().String()).IsValid()
		},
		"stockmovement": func(fl validator.FieldLevel) bool {
			return domain.MovementType(fl.Field().String()).IsValid()
		},
		"orderstatus": func(fl validator.FieldLevel) bool {
			return domain.OrderStatus(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

package resolve

import (
	"context"
	"sync"

	rterrors "route-engine/internal/common/errors"
)

// runValidators runs every validator concurrently and waits for all of
// them. The controller action only runs once every validator has passed;
// when any of them fail, the failure of the earliest-registered validator
// is reported as the authorization denial.
func runValidators(ctx context.Context, app *App, validators []Validator) error {
	if len(validators) == 0 {
		return nil
	}

	results := make([]error, len(validators))
	var wg sync.WaitGroup
	for i, v := range validators {
		wg.Add(1)
		go func(i int, v Validator) {
			defer wg.Done()
			results[i] = v.Validate(ctx, app)
		}(i, v)
	}
	wg.Wait()

	for _, err := range results {
		if err != nil {
			if rterrors.IsType(err, rterrors.ErrTypeAuthorizationDenied) {
				return err
			}
			return rterrors.AuthorizationDenied(err.Error())
		}
	}
	return nil
}

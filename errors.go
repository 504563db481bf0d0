package confetti

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrAssetNotFound is returned by an AssetLoader when no sprite exists
	// under the requested name.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidProfile is returned by EmitterProfile.Validate.
	ErrInvalidProfile = errors.New("invalid emitter profile")
)

// ConfigurationError reports that a profile could not be built because its
// sprite asset did not resolve. It is fatal: no controller is created.
type ConfigurationError struct {
	Variant Variant
	Asset   string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("confetti: %s profile: asset %q: %v", e.Variant, e.Asset, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

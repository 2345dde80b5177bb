package sealed

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Decoder decodes one JSON-encoded value of a sealed family.
type Decoder[T any] func(data []byte) (T, error)

// Encoder encodes one value of a sealed family to JSON.
type Encoder[T any] func(v T) ([]byte, error)

// Codec pairs a family's decoder and encoder. Codec values are immutable and
// safe for concurrent use.
type Codec[T any] struct {
	decode   Decoder[T]
	encode   Encoder[T]
	validate bool
}

// NewCodec pairs d and e. Generated code calls this once per family.
func NewCodec[T any](d Decoder[T], e Encoder[T]) Codec[T] {
	return Codec[T]{decode: d, encode: e}
}

// Decode decodes data into a family value.
func (c Codec[T]) Decode(data []byte) (T, error) {
	v, err := c.decode(data)
	if err != nil || !c.validate {
		return v, err
	}
	if err := getValidator().Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			// Non-struct values have nothing to validate.
			return v, nil
		}
		var zero T
		return zero, err
	}
	return v, nil
}

// Encode encodes v into its tagged JSON form.
func (c Codec[T]) Encode(v T) ([]byte, error) {
	return c.encode(v)
}

// WithValidation returns a copy of c that runs struct validation over every
// decoded value, honoring validate tags on record fields.
func (c Codec[T]) WithValidation() Codec[T] {
	c.validate = true
	return c
}

// validatorInstance is a cached validator to avoid recreation on each decode.
var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()
	})
	return validatorInstance
}

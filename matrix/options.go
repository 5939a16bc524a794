// SPDX-License-Identifier: MIT

package matrix

// DefaultValidateNaNInf toggles strict finite-value validation in Set/SetRow.
const DefaultValidateNaNInf = true

// Option configures a Dense at construction time.
type Option func(*Dense)

// WithNaNInfPolicy overrides the finite-value policy for one matrix.
// Pass false only for controlled ingestion where non-finite values are
// meaningful to the consumer.
func WithNaNInfPolicy(validate bool) Option {
	return func(m *Dense) {
		m.validateNaNInf = validate
	}
}

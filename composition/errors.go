// SPDX-License-Identifier: MIT

package composition

import "errors"

var (
	// ErrNotSimilar indicates ReplaceSimilar was pointed at a node that is
	// not a Similar reference.
	ErrNotSimilar = errors.New("composition: node is not a similar reference")

	// ErrIndexOutOfRange indicates a node index outside the list.
	ErrIndexOutOfRange = errors.New("composition: node index out of range")

	// ErrUnresolvedSimilar indicates expansion met a Similar node; similar
	// references must be spliced first.
	ErrUnresolvedSimilar = errors.New("composition: similar reference not resolved before expansion")

	// ErrUnknownKind indicates a node kind outside the closed set.
	ErrUnknownKind = errors.New("composition: unknown component kind")

	// ErrNilMixture indicates a nil *Mixture argument.
	ErrNilMixture = errors.New("composition: mixture is nil")
)

package syncing

import (
	"errors"
	"fmt"

	"github.com/mamadbah2/farmshop/internal/domain/models"
)

// Kind classifies why a collection could not be loaded from the remote store.
type Kind string

const (
	// KindTransport means the store was unreachable or answered with an error.
	KindTransport Kind = "transport_failure"
	// KindEmpty means the store answered with zero rows.
	KindEmpty Kind = "empty_collection"
	// KindDecode means the rows could not be turned into records.
	KindDecode Kind = "decode_failure"
)

// SyncError reports a failed load or save of one collection.
type SyncError struct {
	Collection models.Collection
	Kind       Kind
	Err        error
}

func (e *SyncError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sync %s: %s", e.Collection, e.Kind)
	}
	return fmt.Sprintf("sync %s: %s: %v", e.Collection, e.Kind, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of a SyncError found in err's chain, or "" when
// there is none.
func KindOf(err error) Kind {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Kind
	}
	return ""
}

package catalog

import "errors"

// ErrOffersNotSequence indicates an item's sell_to value is not a list, so its
// entries cannot be parsed one by one.
var ErrOffersNotSequence = errors.New("sell_to is not a list")

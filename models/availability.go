package models

const (
	ReasonOffShelf        = "Product offshelf"
	ReasonOutOfStock      = "Out of stock"
	ReasonProductNotFound = "Product not found"
)

type Availability struct {
	Available bool
	Reason    string
}

var Purchasable = Availability{Available: true}

func Unavailable(reason string) Availability {
	return Availability{Available: false, Reason: reason}
}

func (a Availability) Equal(other Availability) bool {
	if a.Available != other.Available {
		return false
	}
	return a.Available || a.Reason == other.Reason
}

type LookupStatus int

const (
	LookupFound LookupStatus = iota
	LookupNotFound
	LookupFailed
)

// ProductLookupResult is the outcome of resolving one product in the catalog.
type ProductLookupResult struct {
	Status  LookupStatus
	Product Product
	Err     error
}

func Found(p Product) ProductLookupResult {
	return ProductLookupResult{Status: LookupFound, Product: p}
}

func NotFound() ProductLookupResult {
	return ProductLookupResult{Status: LookupNotFound}
}

func LookupError(err error) ProductLookupResult {
	return ProductLookupResult{Status: LookupFailed, Err: err}
}

// EvaluateAvailability applies the availability precedence: approval, then
// shelf state, then stock. The first failing check decides the reason.
func EvaluateAvailability(r ProductLookupResult) Availability {
	if r.Status != LookupFound {
		return Unavailable(ReasonProductNotFound)
	}
	p := r.Product
	switch {
	case !p.IsApproved:
		return Unavailable(ReasonOffShelf)
	case !p.OnShelf:
		return Unavailable(ReasonOffShelf)
	case p.Stock <= 0:
		return Unavailable(ReasonOutOfStock)
	default:
		return Purchasable
	}
}

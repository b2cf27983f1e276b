package reconcile

// RefreshPolicy decides whether a matched point may be refreshed from the
// freshly parsed candidate (city, country and postcard link).
type RefreshPolicy interface {
	AllowRefresh(existing TravelPoint, batch string) bool
}

// SameBatchRefresh refreshes only points whose provenance is the current batch.
type SameBatchRefresh struct{}

// AllowRefresh implements RefreshPolicy.
func (SameBatchRefresh) AllowRefresh(existing TravelPoint, batch string) bool {
	return batch != "" && existing.SourceFolder == batch
}

// RefreshPolicyFunc adapts a function to RefreshPolicy.
type RefreshPolicyFunc func(existing TravelPoint, batch string) bool

// AllowRefresh implements RefreshPolicy.
func (f RefreshPolicyFunc) AllowRefresh(existing TravelPoint, batch string) bool {
	return f(existing, batch)
}

package tui

// ProviderAddedMsg reports the outcome of an add-provider discovery run.
type ProviderAddedMsg struct {
	Name       string
	ModelCount int
	OK         bool
}

// ProviderRefreshedMsg reports the outcome of re-running discovery for an
// existing provider.
type ProviderRefreshedMsg struct {
	Name       string
	ModelCount int
	OK         bool
}

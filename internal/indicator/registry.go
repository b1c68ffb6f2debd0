package indicator

import (
	"sync"

	"github.com/rxtech-lab/argo-zscore/internal/types"
	"github.com/rxtech-lab/argo-zscore/pkg/errors"
)

// IndicatorRegistry manages the indicators registered for bar types during a run.
type IndicatorRegistry interface {
	RegisterIndicator(barType types.BarType, indicator Indicator) error
	// ListIndicators returns the registered indicator names in registration order.
	ListIndicators() []types.IndicatorType
	// HandleBar feeds the bar to every indicator registered for its bar type.
	HandleBar(bar types.Bar)
	// AllInitialized reports whether every registered indicator is initialized.
	AllInitialized() bool
	ResetAll()
	Clear()
}

type registration struct {
	barType   types.BarType
	indicator Indicator
}

// IndicatorRegistryV1 manages all available indicators.
type IndicatorRegistryV1 struct {
	indicators map[types.IndicatorType]registration
	order      []types.IndicatorType
	mu         sync.RWMutex
}

// NewIndicatorRegistry creates a new indicator registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		indicators: make(map[types.IndicatorType]registration),
		mu:         sync.RWMutex{},
	}
}

// RegisterIndicator adds an indicator to the registry.
func (r *IndicatorRegistryV1) RegisterIndicator(barType types.BarType, indicator Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := indicator.Name()
	if _, exists := r.indicators[name]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "indicator with name %s already registered", name)
	}

	r.indicators[name] = registration{barType: barType, indicator: indicator}
	r.order = append(r.order, name)

	return nil
}

// ListIndicators returns the registered indicator names in registration order.
func (r *IndicatorRegistryV1) ListIndicators() []types.IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.IndicatorType, len(r.order))
	copy(names, r.order)

	return names
}

func (r *IndicatorRegistryV1) HandleBar(bar types.Bar) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		reg := r.indicators[name]
		if reg.barType == bar.BarType {
			reg.indicator.HandleBar(bar)
		}
	}
}

func (r *IndicatorRegistryV1) AllInitialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reg := range r.indicators {
		if !reg.indicator.Initialized() {
			return false
		}
	}

	return true
}

func (r *IndicatorRegistryV1) ResetAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reg := range r.indicators {
		reg.indicator.Reset()
	}
}

// Clear drops every registration.
func (r *IndicatorRegistryV1) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.indicators = make(map[types.IndicatorType]registration)
	r.order = nil
}

package progression

import (
	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// AllocatorConfig holds the dependencies for an Allocator
type AllocatorConfig struct {
	Attributes  *entities.AttributeSet
	Floor       entities.AttributeSet
	Progression *Progression
	// OnChange runs after every successful mutation
	OnChange func()
}

// Validate ensures all required dependencies are provided
func (c *AllocatorConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Attributes == nil {
		vb.RequiredField("Attributes")
	}
	if c.Progression == nil {
		vb.RequiredField("Progression")
	}
	if c.Attributes != nil {
		for _, attr := range entities.AllAttributes() {
			if c.Attributes.Get(attr) < c.Floor.Get(attr) {
				vb.Fieldf(string(attr), "value %d is below floor %d", c.Attributes.Get(attr), c.Floor.Get(attr))
			}
		}
	}

	return vb.Build()
}

// Allocator moves unallocated points into attributes. Pending points can be
// taken back down to the floor until Confirm moves the floor up.
type Allocator struct {
	attrs    *entities.AttributeSet
	floor    entities.AttributeSet
	prog     *Progression
	onChange func()
}

// NewAllocator creates an allocator over the given attributes
func NewAllocator(cfg *AllocatorConfig) (*Allocator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	onChange := cfg.OnChange
	if onChange == nil {
		onChange = func() {}
	}

	return &Allocator{
		attrs:    cfg.Attributes,
		floor:    cfg.Floor,
		prog:     cfg.Progression,
		onChange: onChange,
	}, nil
}

// Allocate spends points on one attribute
func (a *Allocator) Allocate(attr entities.Attribute, points int) error {
	if !attr.IsValid() {
		return errors.InvalidOperationf("unknown attribute %q", attr)
	}
	if points <= 0 {
		return errors.InvalidOperationf("points must be positive, got %d", points).
			WithMeta("attribute", string(attr))
	}
	if err := a.prog.spendPoints(points); err != nil {
		return err
	}

	a.attrs.Add(attr, points)
	a.onChange()
	return nil
}

// Deallocate returns pending points from one attribute; it never goes below the floor
func (a *Allocator) Deallocate(attr entities.Attribute, points int) error {
	if !attr.IsValid() {
		return errors.InvalidOperationf("unknown attribute %q", attr)
	}
	if points <= 0 {
		return errors.InvalidOperationf("points must be positive, got %d", points).
			WithMeta("attribute", string(attr))
	}
	if a.attrs.Get(attr)-points < a.floor.Get(attr) {
		return errors.InvalidOperationf("cannot take %s below %d", attr, a.floor.Get(attr)).
			WithMeta("attribute", string(attr)).
			WithMeta("floor", a.floor.Get(attr))
	}

	a.attrs.Add(attr, -points)
	a.prog.refundPoints(points)
	a.onChange()
	return nil
}

// Pending returns how many points were allocated since the last Confirm
func (a *Allocator) Pending() int {
	return a.attrs.Total() - a.floor.Total()
}

// Floor returns the attribute values at the last Confirm
func (a *Allocator) Floor() entities.AttributeSet {
	return a.floor
}

// Confirm locks in the current attributes as the new floor
func (a *Allocator) Confirm() {
	a.floor = *a.attrs
}

// Cancel refunds every pending point and restores the floor values
func (a *Allocator) Cancel() {
	pending := a.Pending()
	if pending == 0 {
		return
	}
	*a.attrs = a.floor
	a.prog.refundPoints(pending)
	a.onChange()
}

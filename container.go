package goaspect

import (
	"github.com/pkg/errors"
)

// Container applies registered aspects to a target in registration order.
type Container struct {
	aspects []Aspect
}

func (c *Container) Register(aspects ...Aspect) {
	c.aspects = append(c.aspects, aspects...)
}

func (c *Container) Len() int {
	return len(c.aspects)
}

// Weave applies every registered aspect to target. If one of them fails, the
// aspects already applied are rolled back and the error is returned.
func (c *Container) Weave(target Target) (*Woven, error) {
	woven := &Woven{
		target:    target,
		originals: make([]applied, 0, len(c.aspects)),
	}
	for i, aspect := range c.aspects {
		original, err := aspect.Apply(target)
		if err != nil {
			woven.Restore()
			return nil, errors.Wrapf(err, "aspect #%d", i)
		}
		woven.originals = append(woven.originals, applied{method: aspect.Method, original: original})
	}
	return woven, nil
}

type applied struct {
	method   string
	original Method
}

// Woven remembers the methods replaced by Container.Weave.
type Woven struct {
	target    Target
	originals []applied
}

// Restore puts the original methods back, last applied first.
func (w *Woven) Restore() {
	for i := len(w.originals) - 1; i >= 0; i-- {
		w.target.Assign(w.originals[i].method, w.originals[i].original)
	}
	w.originals = w.originals[:0]
}

// Package gpu finds queue families and picks the physical device the
// program renders with.
package gpu

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// Indices are the queue families used for graphics and for presenting.
// A nil field means no such family was found.
type Indices struct {
	Graphics *int
	Present  *int
}

func (i Indices) Complete() bool {
	return i.Graphics != nil && i.Present != nil
}

// Unique returns the distinct families, graphics first. It must only be
// called on complete indices.
func (i Indices) Unique() []int {
	if *i.Graphics == *i.Present {
		return []int{*i.Graphics}
	}
	return []int{*i.Graphics, *i.Present}
}

// FindQueueFamilies scans the families of one device. A family that can do
// both graphics and present wins; otherwise the first graphics family and
// the first present family are used.
func FindQueueFamilies(families []core1_0.QueueFlags, presentSupport func(family int) (bool, error)) (Indices, error) {
	var indices Indices

	for idx, flags := range families {
		graphics := flags&core1_0.QueueGraphics != 0

		present, err := presentSupport(idx)
		if err != nil {
			return Indices{}, errors.Wrapf(err, "present support of queue family %d", idx)
		}

		if graphics && present {
			family := idx
			return Indices{Graphics: &family, Present: &family}, nil
		}

		if graphics && indices.Graphics == nil {
			family := idx
			indices.Graphics = &family
		}
		if present && indices.Present == nil {
			family := idx
			indices.Present = &family
		}
	}

	return indices, nil
}

// MissingNames returns the required names absent from available, in order.
func MissingNames[V any](required []string, available map[string]V) []string {
	var missing []string
	for _, name := range required {
		if _, ok := available[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"team-tracker/internal/models"
)

// slotCollection is an ordered in-memory set of records mirrored to one slot
// as a JSON array.
type slotCollection[T any] struct {
	slots SlotRepository
	key   string
	items []*T
	idOf  func(*T) string
}

func newSlotCollection[T any](slots SlotRepository, key string, idOf func(*T) string) *slotCollection[T] {
	return &slotCollection[T]{
		slots: slots,
		key:   key,
		items: make([]*T, 0),
		idOf:  idOf,
	}
}

// load replaces the in-memory set with the slot contents. A missing slot loads
// as empty. A malformed slot also loads as empty and returns a ParseError.
func (c *slotCollection[T]) load() error {
	c.items = make([]*T, 0)

	data, found, err := c.slots.Get(c.key)
	if err != nil {
		return fmt.Errorf("read slot %s: %w", c.key, err)
	}
	if !found || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var items []*T
	if err := json.Unmarshal(data, &items); err != nil {
		return &models.ParseError{Source: "slot " + c.key, Err: err}
	}

	for _, item := range items {
		if item != nil {
			c.items = append(c.items, item)
		}
	}
	return nil
}

func (c *slotCollection[T]) save() error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", c.key, err)
	}
	return c.slots.Put(c.key, data)
}

func (c *slotCollection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if c.idOf(item) == id {
			return i
		}
	}
	return -1
}

func (c *slotCollection[T]) get(id string) (*T, error) {
	i := c.indexOf(id)
	if i < 0 {
		return nil, models.ErrNotFound
	}
	return c.items[i], nil
}

func (c *slotCollection[T]) replace(item *T) error {
	i := c.indexOf(c.idOf(item))
	if i < 0 {
		return models.ErrNotFound
	}
	c.items[i] = item
	return nil
}

func (c *slotCollection[T]) remove(id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return models.ErrNotFound
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

func (c *slotCollection[T]) reset(values []T) {
	c.items = make([]*T, 0, len(values))
	for i := range values {
		v := values[i]
		c.items = append(c.items, &v)
	}
}

func (c *slotCollection[T]) snapshot() []T {
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, *item)
	}
	return out
}

package model

import (
	"encoding/json"
	"fmt"

	"sharvari-site/internal/shared/errors"
)

// Direction is the direction of a Move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	}
	return "", errors.NewValidationError(fmt.Sprintf("invalid direction %q", s))
}

// List is an ordered, user-arranged sequence of content elements. Order only
// changes through Move, which swaps adjacent elements.
type List[T any] struct {
	items []T
}

// NewList creates a list holding items.
func NewList[T any](items ...T) List[T] {
	return List[T]{items: append([]T(nil), items...)}
}

// Len returns the number of elements.
func (l List[T]) Len() int { return len(l.items) }

// Items returns a copy of the elements.
func (l List[T]) Items() []T {
	return append([]T{}, l.items...)
}

// At returns the element at i.
func (l List[T]) At(i int) (T, error) {
	var zero T
	if err := l.check(i); err != nil {
		return zero, err
	}
	return l.items[i], nil
}

// Add appends items to the end of the list.
func (l *List[T]) Add(items ...T) {
	l.items = append(l.items, items...)
}

// Delete removes the element at i.
func (l *List[T]) Delete(i int) error {
	if err := l.check(i); err != nil {
		return err
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	return nil
}

// Move swaps the element at i with its neighbour. Moving the first element
// up or the last one down leaves the list unchanged.
func (l *List[T]) Move(i int, dir Direction) error {
	if err := l.check(i); err != nil {
		return err
	}
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= len(l.items) {
		return nil
	}
	l.items[i], l.items[j] = l.items[j], l.items[i]
	return nil
}

// Replace overwrites the element at i.
func (l *List[T]) Replace(i int, item T) error {
	if err := l.check(i); err != nil {
		return err
	}
	l.items[i] = item
	return nil
}

// Update applies fn to the element at i in place.
func (l *List[T]) Update(i int, fn func(*T) error) error {
	if err := l.check(i); err != nil {
		return err
	}
	return fn(&l.items[i])
}

func (l List[T]) check(i int) error {
	if i < 0 || i >= len(l.items) {
		return errors.NewValidationError(fmt.Sprintf("index %d out of range", i)).
			WithCause(errors.ErrIndexOutOfRange)
	}
	return nil
}

func (l List[T]) MarshalJSON() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

func (l *List[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	l.items = items
	return nil
}

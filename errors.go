package vram

import "errors"

// Errors returned by Store and Descriptor operations. Each is returned
// by the operation that detected the condition; none trigger automatic
// eviction or retry.
var (
	// ErrCreationFailed is returned when the backend refuses to allocate
	// an object. The caller must free memory or retry with a smaller
	// resource.
	ErrCreationFailed = errors.New("vram: backend object creation failed")

	// ErrAlreadyRegistered is returned when a Descriptor already bound to
	// one Store is used with another. Descriptors are never migrated
	// between Stores.
	ErrAlreadyRegistered = errors.New("vram: descriptor is registered to a different store")

	// ErrSlotOccupied is returned when a slot is already occupied by a
	// different resource of the same shape. The contention is surfaced,
	// never auto-resolved.
	ErrSlotOccupied = errors.New("vram: slot occupied by another resource")

	// ErrSizeMismatch is returned when a write's region exceeds the level
	// bounds, is misaligned for a block-compressed format, or its data
	// length differs from the computed byte length. Data is never
	// silently truncated.
	ErrSizeMismatch = errors.New("vram: write size does not match region and format")

	// ErrFormatMismatch is returned when write data of one texel kind is
	// enqueued against a format of another.
	ErrFormatMismatch = errors.New("vram: write data kind does not match resource format")

	// ErrUninitialized is returned when operating on a Descriptor that
	// has never been registered with a Store.
	ErrUninitialized = errors.New("vram: descriptor has no live runtime in this store")

	// ErrReentrantCall is returned when a Store operation is entered
	// while another one is still running on the same Store, typically a
	// restorer calling back into the Store during an eviction pass.
	ErrReentrantCall = errors.New("vram: re-entrant store call")

	// ErrReleased is returned when operating on a released Descriptor.
	ErrReleased = errors.New("vram: descriptor has been released")

	// ErrStoreClosed is returned when operating on a closed Store.
	ErrStoreClosed = errors.New("vram: store closed")

	// ErrInvalidLayout is returned when a Descriptor is created with
	// impossible dimensions, level counts, or a layout/format pairing
	// the package cannot size.
	ErrInvalidLayout = errors.New("vram: invalid resource layout")
)

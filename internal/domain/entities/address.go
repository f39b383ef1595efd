package entities

import (
	"github.com/google/uuid"
	domainerrors "storefront.backend/internal/domain/errors"
)

// AddressType represents what an address is used for
type AddressType string

const (
	AddressTypeShipping AddressType = "shipping"
	AddressTypeBilling  AddressType = "billing"
)

// Address is an entry of the account address book. Entries have no identity
// outside the owning account.
type Address struct {
	ID         uuid.UUID   `json:"id"`
	Type       AddressType `json:"type"`
	Label      string      `json:"label"`
	Street     string      `json:"street"`
	City       string      `json:"city"`
	State      string      `json:"state"`
	PostalCode string      `json:"postalCode"`
	Country    string      `json:"country"`
	IsDefault  bool        `json:"isDefault"`
	IsActive   bool        `json:"isActive"`
}

// AddressInput represents input for creating or updating an address
type AddressInput struct {
	Type       AddressType `json:"type" binding:"required,oneof=shipping billing"`
	Label      string      `json:"label" binding:"max=50"`
	Street     string      `json:"street" binding:"required,max=200"`
	City       string      `json:"city" binding:"required,max=100"`
	State      string      `json:"state" binding:"required,max=100"`
	PostalCode string      `json:"postalCode" binding:"required,max=20"`
	Country    string      `json:"country" binding:"required,max=100"`
	IsDefault  bool        `json:"isDefault"`
}

func (in *AddressInput) applyTo(addr *Address) {
	addr.Type = in.Type
	addr.Label = in.Label
	addr.Street = in.Street
	addr.City = in.City
	addr.State = in.State
	addr.PostalCode = in.PostalCode
	addr.Country = in.Country
}

// ActiveAddresses returns the active addresses in book order
func (a *Account) ActiveAddresses() []Address {
	out := make([]Address, 0, len(a.Addresses))
	for _, addr := range a.Addresses {
		if addr.IsActive {
			out = append(out, addr)
		}
	}
	return out
}

// DefaultAddress returns the active default address, if any
func (a *Account) DefaultAddress() (Address, bool) {
	for _, addr := range a.Addresses {
		if addr.IsActive && addr.IsDefault {
			return addr, true
		}
	}
	return Address{}, false
}

// ActiveAddress returns the active address with the given id
func (a *Account) ActiveAddress(id uuid.UUID) (Address, bool) {
	if i := a.activeAddressIndex(id); i >= 0 {
		return a.Addresses[i], true
	}
	return Address{}, false
}

// AddAddress appends a new active address. The first active address, or one
// flagged as default, becomes the default.
func (a *Account) AddAddress(id uuid.UUID, in *AddressInput) Address {
	addr := Address{ID: id, IsActive: true}
	in.applyTo(&addr)
	a.Addresses = append(a.Addresses, addr)
	i := len(a.Addresses) - 1

	if _, ok := a.DefaultAddress(); in.IsDefault || !ok {
		a.setDefaultAt(i)
	}
	return a.Addresses[i]
}

// UpdateAddress replaces the fields of an active address
func (a *Account) UpdateAddress(id uuid.UUID, in *AddressInput) (Address, error) {
	i := a.activeAddressIndex(id)
	if i < 0 {
		return Address{}, domainerrors.ErrNotFound
	}
	in.applyTo(&a.Addresses[i])
	if in.IsDefault {
		a.setDefaultAt(i)
	}
	return a.Addresses[i], nil
}

// RemoveAddress soft deletes an address. When it was the default, the first
// remaining active address takes over.
func (a *Account) RemoveAddress(id uuid.UUID) error {
	i := a.activeAddressIndex(id)
	if i < 0 {
		return domainerrors.ErrNotFound
	}
	wasDefault := a.Addresses[i].IsDefault
	a.Addresses[i].IsActive = false
	a.Addresses[i].IsDefault = false

	if wasDefault {
		for j := range a.Addresses {
			if a.Addresses[j].IsActive {
				a.setDefaultAt(j)
				break
			}
		}
	}
	return nil
}

// SetDefaultAddress makes the given active address the only default
func (a *Account) SetDefaultAddress(id uuid.UUID) error {
	i := a.activeAddressIndex(id)
	if i < 0 {
		return domainerrors.ErrNotFound
	}
	a.setDefaultAt(i)
	return nil
}

// setDefaultAt clears every default before flagging Addresses[i]. Every
// address write path that moves the default goes through here.
func (a *Account) setDefaultAt(i int) {
	for j := range a.Addresses {
		a.Addresses[j].IsDefault = false
	}
	a.Addresses[i].IsDefault = true
}

// NormalizeDefaultAddress keeps the default flag on the first active address
// that carries it and clears it everywhere else.
func (a *Account) NormalizeDefaultAddress() {
	seen := false
	for i := range a.Addresses {
		addr := &a.Addresses[i]
		if !addr.IsActive {
			addr.IsDefault = false
			continue
		}
		if addr.IsDefault {
			if seen {
				addr.IsDefault = false
			}
			seen = true
		}
	}
}

func (a *Account) activeAddressIndex(id uuid.UUID) int {
	for i, addr := range a.Addresses {
		if addr.ID == id && addr.IsActive {
			return i
		}
	}
	return -1
}

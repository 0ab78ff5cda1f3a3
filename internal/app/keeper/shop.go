package keeper

import (
	"slices"

	"github.com/pawden-app/pawden/internal/domain"
)

// CatalogItem is one purchasable shop entry.
type CatalogItem struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Price int64  `json:"price"`
}

// catalog is the fixed item shop.
var catalog = []CatalogItem{
	{Name: "kibble", Kind: "food", Price: 5},
	{Name: "salmon dinner", Kind: "food", Price: 12},
	{Name: "squeaky ball", Kind: "toy", Price: 8},
	{Name: "scratch post", Kind: "toy", Price: 15},
	{Name: "red bandana", Kind: "accessory", Price: 20},
	{Name: "top hat", Kind: "accessory", Price: 35},
	{Name: "bow tie", Kind: "accessory", Price: 25},
}

// Catalog returns the shop's fixed item list.
func Catalog() []CatalogItem {
	return slices.Clone(catalog)
}

func catalogLookup(name string) (CatalogItem, bool) {
	for _, it := range catalog {
		if it.Name == name {
			return it, true
		}
	}
	return CatalogItem{}, false
}

// Purchase buys one unit of a catalog item with the pet's coins. Unlike
// action coin deltas, an overdraw here is rejected outright.
func (s *Service) Purchase(petID, itemName string) (*domain.Pet, error) {
	item, ok := catalogLookup(itemName)
	if !ok {
		return nil, domain.ErrUnknownItem
	}

	return s.mutate(petID, func(p *domain.Pet) error {
		if p.Coins < item.Price {
			return domain.ErrInsufficientCoins
		}
		p.Coins -= item.Price

		for i := range p.Items {
			if p.Items[i].Name == item.Name {
				p.Items[i].Quantity++
				return nil
			}
		}
		p.Items = append(p.Items, domain.Item{Name: item.Name, Quantity: 1, Kind: item.Kind})
		return nil
	})
}

// Equip marks an owned accessory as worn. The accessory only shows on the
// public view once the pet reaches the adult stage, but equipping earlier
// is allowed.
func (s *Service) Equip(petID, itemName string) (*domain.Pet, error) {
	return s.mutate(petID, func(p *domain.Pet) error {
		item, ok := catalogLookup(itemName)
		if !ok {
			return domain.ErrUnknownItem
		}
		if item.Kind != "accessory" {
			return domain.ErrNotAccessory
		}
		if p.HasItem(itemName) == 0 {
			return domain.ErrItemNotOwned
		}
		if !slices.Contains(p.EquippedAccessories, itemName) {
			p.EquippedAccessories = append(p.EquippedAccessories, itemName)
		}
		return nil
	})
}

// Unequip removes a worn accessory.
func (s *Service) Unequip(petID, itemName string) (*domain.Pet, error) {
	return s.mutate(petID, func(p *domain.Pet) error {
		idx := slices.Index(p.EquippedAccessories, itemName)
		if idx < 0 {
			return domain.ErrItemNotOwned
		}
		p.EquippedAccessories = slices.Delete(p.EquippedAccessories, idx, idx+1)
		return nil
	})
}

package sim

import (
	"errors"
	"math"
)

// priceMultiplier scales an item's internal price by its level into the
// coin cost shown to the player.
const priceMultiplier = 2.1

var (
	errNotEnoughCoins = errors.New("Not enough coins")
	errItemMaxed      = errors.New("Item already at max level")
	errItemNotFound   = errors.New("Item not found")
)

// shopItem is one upgrade on offer. apply mutates the game settings and
// runs once per purchased level.
type shopItem struct {
	id            int
	title         string
	description   string
	internalPrice int
	maxLevel      int
	level         int
	apply         func(*settings)
}

type shop struct {
	items []shopItem
}

func newShop() *shop {
	return &shop{items: []shopItem{
		{
			id:            0,
			title:         "Energy Refresher",
			description:   "Shortens the cannon cooldown between shots.",
			internalPrice: 100,
			maxLevel:      6,
			apply:         func(s *settings) { s.shootTimeout -= 10 },
		},
		{
			id:            1,
			title:         "Warp Shot Amplifier",
			description:   "Projectiles travel faster across the field.",
			internalPrice: 120,
			maxLevel:      5,
			apply:         func(s *settings) { s.projectileSpeed += 2.5 },
		},
		{
			id:            2,
			title:         "Optic Obfuscator",
			description:   "Raiders have a harder time spotting your ship.",
			internalPrice: 200,
			maxLevel:      4,
			apply:         func(s *settings) { s.shipVisibility -= 1.0 },
		},
		{
			id:            3,
			title:         "Treasure Enrichment Device",
			description:   "Every kill pays out more coins.",
			internalPrice: 130,
			maxLevel:      5,
			apply:         func(s *settings) { s.coinMultiplier++ },
		},
		{
			id:            4,
			title:         "Piercing Projectile Mod",
			description:   "Shots punch through one extra enemy.",
			internalPrice: 300,
			maxLevel:      2,
			apply:         func(s *settings) { s.projectileHits++ },
		},
		{
			id:            5,
			title:         "Unbreakable Fortitude",
			description:   "Extends the grace period after taking a hit.",
			internalPrice: 150,
			maxLevel:      6,
			apply:         func(s *settings) { s.invulnerabilityTime += 50 },
		},
	}}
}

// nextPrice is the cost of the item's next level. At max level it keeps
// reporting the final level's price.
func (s *shop) nextPrice(it *shopItem) int {
	level := it.level + 1
	if level > it.maxLevel {
		level = it.maxLevel
	}
	return int(math.Round(float64(it.internalPrice) * float64(level) * priceMultiplier))
}

// buy raises the item one level and returns the coin cost charged. With
// ignoreCoins set the coin check is skipped and the cost returned is 0,
// used when replaying purchases from a saved game.
func (s *shop) buy(id, coins int, ignoreCoins bool) (int, func(*settings), error) {
	for i := range s.items {
		it := &s.items[i]
		if it.id != id {
			continue
		}
		if it.level >= it.maxLevel {
			return 0, nil, errItemMaxed
		}
		cost := s.nextPrice(it)
		if !ignoreCoins && coins < cost {
			return 0, nil, errNotEnoughCoins
		}
		if ignoreCoins {
			cost = 0
		}
		it.level++
		return cost, it.apply, nil
	}
	return 0, nil, errItemNotFound
}

// list returns UI copies of the items with next-level prices filled in.
func (s *shop) list() []Item {
	out := make([]Item, len(s.items))
	for i := range s.items {
		it := &s.items[i]
		out[i] = Item{
			ID:            it.id,
			Title:         it.title,
			Description:   it.description,
			InternalPrice: it.internalPrice,
			Price:         s.nextPrice(it),
			Level:         it.level,
			MaxLevel:      it.maxLevel,
		}
	}
	return out
}

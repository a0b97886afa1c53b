package world

// FindFirstItem returns the first item stack in c, by slot index, for which
// pred returns true. Empty slots are skipped.
func FindFirstItem(c Container, pred func(item ItemStack, index int) bool) (ItemStack, bool) {
	for i := 0; i < c.Size(); i++ {
		item, ok := c.Item(i)
		if ok && pred(item, i) {
			return item, true
		}
	}
	return nil, false
}

// FindFirstSlot returns the first slot in c, by index, for which pred returns
// true. Empty slots are offered to pred as well.
func FindFirstSlot(c Container, pred func(slot ContainerSlot, index int) bool) (ContainerSlot, bool) {
	for i := 0; i < c.Size(); i++ {
		slot := c.Slot(i)
		if pred(slot, i) {
			return slot, true
		}
	}
	return nil, false
}
